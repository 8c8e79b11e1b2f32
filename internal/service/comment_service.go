package service

import (
	"context"
	"errors"
	"strings"

	"soulverse/internal/models"
	"soulverse/internal/observability"
	"soulverse/internal/repository"
	"soulverse/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// MaxListLimit caps the page size of a comment listing.
const MaxListLimit = 100

type CommentService struct {
	commentRepo repository.CommentRepository
	profileRepo repository.ProfileRepository
	likeRepo    repository.LikeRepository
}

type CreateCommentInput struct {
	UserID               uint    `json:"userId" validate:"required"`
	Title                string  `json:"title" validate:"required,max=300"`
	Text                 string  `json:"text" validate:"required,max=10000"`
	MBTIPersonality      *string `json:"mbtiPersonality" validate:"omitnil,min=1,max=64"`
	EnneagramPersonality *string `json:"enneagramPersonality" validate:"omitnil,min=1,max=64"`
	ZodiacPersonality    *string `json:"zodiacPersonality" validate:"omitnil,min=1,max=64"`
}

type ListCommentsInput struct {
	Sort string
	// Personalities is the raw comma separated list from the query string.
	Personalities string
	Limit         int
	Offset        int
}

type LikeCommentInput struct {
	CommentID uint
	UserID    uint `json:"userId"`
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	profileRepo repository.ProfileRepository,
	likeRepo repository.LikeRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		profileRepo: profileRepo,
		likeRepo:    likeRepo,
	}
}

// CreateComment validates the body, then requires at least one personality and an
// existing author, in that order.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (comment *models.Comment, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "CommentService", "CreateComment",
		attribute.Int64("user.id", int64(in.UserID)))
	defer func() { observability.EndSpan(span, err) }()

	in.Title = validation.StripHTML(in.Title)
	in.Text = validation.StripHTML(in.Text)
	in.MBTIPersonality = validation.StripHTMLPtr(in.MBTIPersonality)
	in.EnneagramPersonality = validation.StripHTMLPtr(in.EnneagramPersonality)
	in.ZodiacPersonality = validation.StripHTMLPtr(in.ZodiacPersonality)
	if err := validation.Struct(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	personalities := models.Personalities{
		MBTI:      in.MBTIPersonality,
		Enneagram: in.EnneagramPersonality,
		Zodiac:    in.ZodiacPersonality,
	}
	if personalities.Empty() {
		return nil, models.NewValidationError("No personalities specified")
	}

	if err := s.requireProfile(ctx, in.UserID); err != nil {
		return nil, err
	}

	comment = &models.Comment{
		UserID:        in.UserID,
		Title:         in.Title,
		Text:          in.Text,
		Personalities: personalities,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.CommentsCreated.Inc()

	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, in ListCommentsInput) (comments []*models.Comment, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "CommentService", "ListComments",
		attribute.String("sort", in.Sort),
		attribute.String("personalities", in.Personalities))
	defer func() { observability.EndSpan(span, err) }()

	if in.Limit < 0 || in.Offset < 0 {
		return nil, models.NewValidationError("limit and offset must not be negative")
	}
	limit := in.Limit
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	comments, err = s.commentRepo.List(ctx, repository.ListCommentsQuery{
		Sort:          in.Sort,
		Personalities: ParsePersonalities(in.Personalities),
		Limit:         limit,
		Offset:        in.Offset,
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// LikeComment records the like and returns it. Checks run comment, user, then like.
func (s *CommentService) LikeComment(ctx context.Context, in LikeCommentInput) (like *models.CommentLike, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "CommentService", "LikeComment",
		attribute.Int64("comment.id", int64(in.CommentID)),
		attribute.Int64("user.id", int64(in.UserID)))
	defer func() { observability.EndSpan(span, err) }()

	if err := s.requireCommentAndProfile(ctx, in); err != nil {
		return nil, err
	}

	like, err = s.likeRepo.Like(ctx, in.UserID, in.CommentID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyLiked) {
			return nil, models.NewValidationError("User already liked this comment")
		}
		return nil, models.NewInternalError(err)
	}
	observability.CommentLikeActions.WithLabelValues("like").Inc()

	return like, nil
}

func (s *CommentService) UnlikeComment(ctx context.Context, in LikeCommentInput) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "CommentService", "UnlikeComment",
		attribute.Int64("comment.id", int64(in.CommentID)),
		attribute.Int64("user.id", int64(in.UserID)))
	defer func() { observability.EndSpan(span, err) }()

	if err := s.requireCommentAndProfile(ctx, in); err != nil {
		return err
	}

	if err := s.likeRepo.Unlike(ctx, in.UserID, in.CommentID); err != nil {
		if errors.Is(err, repository.ErrLikeNotFound) {
			return models.NewValidationError("User has not liked this comment")
		}
		return models.NewInternalError(err)
	}
	observability.CommentLikeActions.WithLabelValues("unlike").Inc()

	return nil
}

// LikesCount reports the current number of likes on a comment.
func (s *CommentService) LikesCount(ctx context.Context, commentID uint) (int64, error) {
	return s.likeRepo.CountByComment(ctx, commentID)
}

func (s *CommentService) requireCommentAndProfile(ctx context.Context, in LikeCommentInput) error {
	ok, err := s.commentRepo.Exists(ctx, in.CommentID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !ok {
		return models.NewValidationError("Comment not found")
	}
	return s.requireProfile(ctx, in.UserID)
}

func (s *CommentService) requireProfile(ctx context.Context, userID uint) error {
	if userID == 0 {
		return models.NewValidationError("User not found")
	}
	ok, err := s.profileRepo.Exists(ctx, userID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !ok {
		return models.NewValidationError("User not found")
	}
	return nil
}

// ParsePersonalities splits a comma separated list of personality systems. Names are
// trimmed and lower-cased; blanks and duplicates are dropped.
func ParsePersonalities(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	seen := map[string]struct{}{}
	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
