package models

import (
	"strings"
	"time"
)

// Personality system names a comment can be tagged with.
const (
	PersonalityMBTI      = "mbti"
	PersonalityEnneagram = "enneagram"
	PersonalityZodiac    = "zodiac"
)

// personalityColumns maps a personality system name to its column on the comments table.
var personalityColumns = map[string]string{
	PersonalityMBTI:      "personality_mbti",
	PersonalityEnneagram: "personality_enneagram",
	PersonalityZodiac:    "personality_zodiac",
}

// PersonalityColumn returns the comments column holding the value for the named
// personality system. Names are matched case-insensitively.
func PersonalityColumn(name string) (string, bool) {
	col, ok := personalityColumns[strings.ToLower(strings.TrimSpace(name))]
	return col, ok
}

// Personalities holds the value a comment carries for each personality system.
// A nil value means the comment is not tagged for that system.
type Personalities struct {
	MBTI      *string `gorm:"column:mbti" json:"mbti"`
	Enneagram *string `gorm:"column:enneagram" json:"enneagram"`
	Zodiac    *string `gorm:"column:zodiac" json:"zodiac"`
}

// Empty reports whether no personality system is set.
func (p Personalities) Empty() bool {
	return p.MBTI == nil && p.Enneagram == nil && p.Zodiac == nil
}

// Comment is a post authored by a profile and tagged with personality values.
type Comment struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UserID        uint          `gorm:"not null;index" json:"userId"`
	User          *Profile      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Title         string        `gorm:"not null" json:"title"`
	Text          string        `gorm:"type:text;not null" json:"text"`
	Personalities Personalities `gorm:"embedded;embeddedPrefix:personality_" json:"personalities"`
	// LikesCount is not persisted; computed at query time
	LikesCount int       `gorm:"->;-:migration" json:"likesCount"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
