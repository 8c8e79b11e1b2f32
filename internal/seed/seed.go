package seed

import (
	"fmt"
	"log/slog"

	"soulverse/internal/middleware"
	"soulverse/internal/models"

	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	Profiles           int
	Comments           int
	MaxLikesPerComment int
	MaxDays            int
	// Seed fixes the generator for reproducible data. Zero picks a random seed.
	Seed  int64
	Clean bool
}

// Summary reports how many rows a run inserted.
type Summary struct {
	Profiles int
	Comments int
	Likes    int
}

// Seeder populates the database with generated profiles, comments and likes.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll removes every like, comment and profile.
func (s *Seeder) ClearAll() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.CommentLike{}, &models.Comment{}, &models.Profile{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
}

// Run seeds the database inside a single transaction.
func (s *Seeder) Run(opts Options) (Summary, error) {
	var summary Summary
	if opts.Clean {
		if err := s.ClearAll(); err != nil {
			return summary, err
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		f := NewFactory(tx, opts.Seed, opts.MaxDays)

		profiles, err := f.CreateProfiles(opts.Profiles)
		if err != nil {
			return err
		}
		comments, err := f.CreateComments(profiles, opts.Comments)
		if err != nil {
			return err
		}
		likes, err := f.CreateLikes(profiles, comments, opts.MaxLikesPerComment)
		if err != nil {
			return err
		}

		summary = Summary{Profiles: len(profiles), Comments: len(comments), Likes: likes}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	middleware.Logger.Info("seed complete",
		slog.Int("profiles", summary.Profiles),
		slog.Int("comments", summary.Comments),
		slog.Int("likes", summary.Likes))
	return summary, nil
}
