package database

import "soulverse/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Order matters: referenced tables come first.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Profile{},
		&models.Comment{},
		&models.CommentLike{},
	}
}
