package repository

import (
	"context"

	"soulverse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines interface for comment like operations
type LikeRepository interface {
	Like(ctx context.Context, userID, commentID uint) (*models.CommentLike, error)
	Unlike(ctx context.Context, userID, commentID uint) error
	CountByComment(ctx context.Context, commentID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Like inserts the like with ON CONFLICT DO NOTHING against the (user_id, comment_id)
// unique index, so a concurrent duplicate surfaces as ErrAlreadyLiked.
func (r *likeRepository) Like(ctx context.Context, userID, commentID uint) (*models.CommentLike, error) {
	like := &models.CommentLike{UserID: userID, CommentID: commentID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "comment_id"}},
			DoNothing: true,
		}).
		Create(like)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrAlreadyLiked
	}
	return like, nil
}

// Unlike hard-deletes the like.
func (r *likeRepository) Unlike(ctx context.Context, userID, commentID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&models.CommentLike{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

func (r *likeRepository) CountByComment(ctx context.Context, commentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}
