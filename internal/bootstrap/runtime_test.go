package bootstrap

import (
	"testing"

	"soulverse/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRuntime_SQLiteWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		Port:         "3000",
		Env:          "test",
		DBDriver:     config.DriverSQLite,
		DBSQLitePath: ":memory:",
		RedisURL:     mr.Addr(),
	}

	db, rdb, err := InitRuntime(cfg)
	require.NoError(t, err)
	require.NotNil(t, db)
	require.NotNil(t, rdb)
	t.Cleanup(func() { _ = rdb.Close() })
	assert.True(t, db.Migrator().HasTable("comments"))
}

func TestInitRuntime_RedisDown(t *testing.T) {
	cfg := &config.Config{
		Port:         "3000",
		Env:          "test",
		DBDriver:     config.DriverSQLite,
		DBSQLitePath: ":memory:",
		RedisURL:     "127.0.0.1:1",
	}

	db, rdb, err := InitRuntime(cfg)
	require.NoError(t, err)
	assert.NotNil(t, db)
	assert.Nil(t, rdb)
}

func TestInitRuntime_BadDriver(t *testing.T) {
	_, _, err := InitRuntime(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}
