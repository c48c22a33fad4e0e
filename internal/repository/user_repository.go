package repository

import (
	"gorm.io/gorm"

	"github.com/hiremeo/job-board-api/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID with optional preloading
func (r *GormUserRepository) FindByID(id uint64, preload ...string) (*models.User, error) {
	var user models.User
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user record
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// ReplaceSkills replaces the user's full skill set
func (r *GormUserRepository) ReplaceSkills(userID uint64, skills []models.UserSkill) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserSkill{}).Error; err != nil {
			return err
		}

		if len(skills) == 0 {
			return nil
		}

		for i := range skills {
			skills[i].UserID = userID
		}
		return tx.Create(&skills).Error
	})
}

// ReplaceTags replaces the user's tag links
func (r *GormUserRepository) ReplaceTags(user *models.User, tags []models.Tag) error {
	return r.db.Model(user).Association("Tags").Replace(tags)
}

// SavePost bookmarks a post for the user
func (r *GormUserRepository) SavePost(userID, postID uint64) error {
	return r.db.Create(&models.SavedPost{UserID: userID, PostID: postID}).Error
}

// UnsavePost removes a bookmark
func (r *GormUserRepository) UnsavePost(userID, postID uint64) error {
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.SavedPost{}).Error
}

// FindSavedPost finds a specific bookmark
func (r *GormUserRepository) FindSavedPost(userID, postID uint64) (*models.SavedPost, error) {
	var saved models.SavedPost
	if err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// ListSavedPosts lists the user's bookmarked posts, newest bookmark first
func (r *GormUserRepository) ListSavedPosts(userID uint64) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Joins("JOIN saved_posts ON saved_posts.post_id = posts.id").
		Where("saved_posts.user_id = ?", userID).
		Order("saved_posts.created_at DESC").
		Preload("Company").
		Preload("Tags").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
