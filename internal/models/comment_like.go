package models

import "time"

// CommentLike represents a profile's like on a comment.
// The combination of UserID and CommentID must be unique.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_likes_user_comment" json:"userId"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_likes_user_comment;index" json:"commentId"`
	CreatedAt time.Time `json:"createdAt"`

	User    *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Comment *Comment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
}
