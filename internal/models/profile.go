// Package models contains data structures for the application's domain models.
package models

import "time"

// Profile represents a persona that can author and like comments.
type Profile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	MBTI        string    `gorm:"column:mbti" json:"mbti"`
	Enneagram   string    `json:"enneagram"`
	Variant     string    `json:"variant"`
	Tritype     int       `json:"tritype"`
	Socionics   string    `json:"socionics"`
	Sloan       string    `json:"sloan"`
	Psyche      string    `json:"psyche"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
