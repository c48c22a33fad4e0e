package database

import (
	"gorm.io/gorm"

	"github.com/hiremeo/job-board-api/internal/models"
	"github.com/hiremeo/job-board-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// VisiblePosts restricts a post query to publicly listable posts.
func VisiblePosts(db *gorm.DB) *gorm.DB {
	return db.Where("posts.status = ?", models.PostStatusActive)
}
