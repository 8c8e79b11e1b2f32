package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonalityColumn(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"mbti", "personality_mbti", true},
		{" Zodiac ", "personality_zodiac", true},
		{"ENNEAGRAM", "personality_enneagram", true},
		{"socionics", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := PersonalityColumn(tt.name)
		assert.Equal(t, tt.wantOK, ok, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestPersonalities_JSONKeepsNullSystems(t *testing.T) {
	t.Parallel()
	infp := "INFP"
	b, err := json.Marshal(Personalities{MBTI: &infp})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mbti":"INFP","enneagram":null,"zodiac":null}`, string(b))
	assert.False(t, Personalities{MBTI: &infp}.Empty())
	assert.True(t, Personalities{}.Empty())
}

func TestStatusFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, fiber.StatusBadRequest, StatusFor(NewValidationError("bad")))
	assert.Equal(t, fiber.StatusNotFound, StatusFor(NewNotFoundError("Profile")))
	assert.Equal(t, fiber.StatusNotFound, StatusFor(fmt.Errorf("wrapped: %w", NewNotFoundError("Profile"))))
	assert.Equal(t, fiber.StatusInternalServerError, StatusFor(NewInternalError(errors.New("boom"))))
	assert.Equal(t, fiber.StatusInternalServerError, StatusFor(errors.New("boom")))
}

func TestNewNotFoundError_Message(t *testing.T) {
	t.Parallel()
	err := NewNotFoundError("Profile")
	assert.Equal(t, "Profile not found", err.Error())
	assert.Equal(t, CodeNotFound, err.Code)
}
