package service

import (
	"context"
	"errors"

	"soulverse/internal/cache"
	"soulverse/internal/models"
	"soulverse/internal/observability"
	"soulverse/internal/repository"
	"soulverse/internal/validation"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// CreateProfileInput carries the fields accepted when creating a profile. Every field
// is optional.
type CreateProfileInput struct {
	Name        string `json:"name" validate:"max=200"`
	Description string `json:"description" validate:"max=10000"`
	MBTI        string `json:"mbti" validate:"max=16"`
	Enneagram   string `json:"enneagram" validate:"max=16"`
	Variant     string `json:"variant" validate:"max=16"`
	Tritype     int    `json:"tritype" validate:"gte=0,lte=999"`
	Socionics   string `json:"socionics" validate:"max=16"`
	Sloan       string `json:"sloan" validate:"max=16"`
	Psyche      string `json:"psyche" validate:"max=16"`
	Image       string `json:"image" validate:"omitempty,url,max=2048"`
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

func (s *ProfileService) CreateProfile(ctx context.Context, in CreateProfileInput) (profile *models.Profile, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "ProfileService", "CreateProfile")
	defer func() { observability.EndSpan(span, err) }()

	in.Name = validation.StripHTML(in.Name)
	in.Description = validation.StripHTML(in.Description)
	if err := validation.Struct(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	profile = &models.Profile{
		Name:        in.Name,
		Description: in.Description,
		MBTI:        in.MBTI,
		Enneagram:   in.Enneagram,
		Variant:     in.Variant,
		Tritype:     in.Tritype,
		Socionics:   in.Socionics,
		Sloan:       in.Sloan,
		Psyche:      in.Psyche,
		Image:       in.Image,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, models.NewInternalError(err)
	}
	return profile, nil
}

func (s *ProfileService) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

// GetProfile serves the profile from the cache when possible.
func (s *ProfileService) GetProfile(ctx context.Context, id uint) (profile *models.Profile, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "ProfileService", "GetProfile",
		attribute.Int64("profile.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	var cached models.Profile
	err = cache.Aside(ctx, cache.ProfileKey(id), &cached, cache.ProfileTTL, func() error {
		p, err := s.profileRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Profile")
			}
			return models.NewInternalError(err)
		}
		cached = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cached, nil
}
