package cache

import (
	"fmt"
	"time"
)

const (
	ProfileKeyPrefix = "profile:%d"
)

const (
	// Profiles are never mutated, so the TTL only bounds memory use.
	ProfileTTL = 5 * time.Minute
)

func ProfileKey(profileID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, profileID)
}
