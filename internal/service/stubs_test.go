package service

import (
	"context"
	"errors"
	"testing"

	"soulverse/internal/models"
	"soulverse/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	createFn  func(context.Context, *models.Profile) error
	getByIDFn func(context.Context, uint) (*models.Profile, error)
	listFn    func(context.Context) ([]*models.Profile, error)
	existsFn  func(context.Context, uint) (bool, error)
}

func (s *profileRepoStub) Create(ctx context.Context, p *models.Profile) error {
	return s.createFn(ctx, p)
}
func (s *profileRepoStub) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	return s.getByIDFn(ctx, id)
}
func (s *profileRepoStub) List(ctx context.Context) ([]*models.Profile, error) {
	return s.listFn(ctx)
}
func (s *profileRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		createFn:  func(_ context.Context, p *models.Profile) error { p.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Profile, error) { return &models.Profile{ID: id}, nil },
		listFn:    func(_ context.Context) ([]*models.Profile, error) { return []*models.Profile{}, nil },
		existsFn:  func(_ context.Context, _ uint) (bool, error) { return true, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn  func(context.Context, *models.Comment) error
	getByIDFn func(context.Context, uint) (*models.Comment, error)
	existsFn  func(context.Context, uint) (bool, error)
	listFn    func(context.Context, repository.ListCommentsQuery) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *commentRepoStub) List(ctx context.Context, q repository.ListCommentsQuery) ([]*models.Comment, error) {
	return s.listFn(ctx, q)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(_ context.Context, c *models.Comment) error { c.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		existsFn:  func(_ context.Context, _ uint) (bool, error) { return true, nil },
		listFn: func(_ context.Context, _ repository.ListCommentsQuery) ([]*models.Comment, error) {
			return []*models.Comment{}, nil
		},
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	likeFn   func(context.Context, uint, uint) (*models.CommentLike, error)
	unlikeFn func(context.Context, uint, uint) error
	countFn  func(context.Context, uint) (int64, error)
}

func (s *likeRepoStub) Like(ctx context.Context, userID, commentID uint) (*models.CommentLike, error) {
	return s.likeFn(ctx, userID, commentID)
}
func (s *likeRepoStub) Unlike(ctx context.Context, userID, commentID uint) error {
	return s.unlikeFn(ctx, userID, commentID)
}
func (s *likeRepoStub) CountByComment(ctx context.Context, commentID uint) (int64, error) {
	return s.countFn(ctx, commentID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		likeFn: func(_ context.Context, userID, commentID uint) (*models.CommentLike, error) {
			return &models.CommentLike{ID: 1, UserID: userID, CommentID: commentID}, nil
		},
		unlikeFn: func(_ context.Context, _, _ uint) error { return nil },
		countFn:  func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// assertAppError asserts that err is an AppError with the given code and message.
func assertAppError(t *testing.T, err error, code, message string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

func assertValidationError(t *testing.T, err error, message string) {
	t.Helper()
	assertAppError(t, err, models.CodeValidation, message)
}
