package repository

import (
	"context"
	"strings"

	"soulverse/internal/models"

	"gorm.io/gorm"
)

// Comment list orderings.
const (
	SortRecent = "recent"
	SortBest   = "best"
)

// ListCommentsQuery narrows and orders a comment listing.
type ListCommentsQuery struct {
	// Sort is SortRecent for newest first; any other value orders by likes.
	Sort string
	// Personalities lists the systems a comment must carry a value for.
	Personalities []string
	// Limit of zero returns every matching row.
	Limit  int
	Offset int
}

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, query ListCommentsQuery) ([]*models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := applyCommentDetails(r.db.WithContext(ctx)).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *commentRepository) List(ctx context.Context, query ListCommentsQuery) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0)

	db := applyCommentDetails(r.db.WithContext(ctx).Model(&models.Comment{}))
	db = applyPersonalityFilter(db, query.Personalities)
	db = applyCommentSort(db, query.Sort)
	if query.Limit > 0 {
		db = db.Limit(query.Limit)
	}
	if query.Offset > 0 {
		db = db.Offset(query.Offset)
	}

	if err := db.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// applyCommentDetails selects the like count alongside each comment in a single query.
func applyCommentDetails(db *gorm.DB) *gorm.DB {
	return db.Select("comments.*, " +
		"(SELECT COUNT(*) FROM comment_likes WHERE comment_likes.comment_id = comments.id) AS likes_count")
}

// applyPersonalityFilter keeps comments that carry a value for every named system.
// An unknown system can never be set, so it empties the result.
func applyPersonalityFilter(db *gorm.DB, names []string) *gorm.DB {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		col, ok := models.PersonalityColumn(name)
		if !ok {
			return db.Where("1 = 0")
		}
		db = db.Where("comments." + col + " IS NOT NULL")
	}
	return db
}

// applyCommentSort appends the ORDER BY clause for the requested sort. Only the exact
// value SortRecent orders by time. likes_count is the alias selected by
// applyCommentDetails.
func applyCommentSort(db *gorm.DB, sort string) *gorm.DB {
	if sort == SortRecent {
		return db.Order("comments.created_at DESC, comments.id DESC")
	}
	return db.Order("likes_count DESC, comments.created_at DESC, comments.id DESC")
}
