package repository

import (
	"gorm.io/gorm"

	"github.com/hiremeo/job-board-api/internal/database"
	"github.com/hiremeo/job-board-api/internal/models"
	"github.com/hiremeo/job-board-api/internal/utils"
)

// GormPostRepository is a GORM implementation of PostRepository
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &GormPostRepository{db: db}
}

// Create creates a new post
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// FindByID finds a post by ID with optional preloading
func (r *GormPostRepository) FindByID(id uint64, preload ...string) (*models.Post, error) {
	var post models.Post
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves posts with filtering and pagination
func (r *GormPostRepository) List(filter PostFilter) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})

	if filter.OnlyListable {
		query = query.Scopes(database.VisiblePosts)
	}
	if filter.NameQuery != "" {
		query = query.Where("posts.title LIKE ?", "%"+filter.NameQuery+"%")
	}
	if filter.CompanyID != nil {
		query = query.Where("posts.company_id = ?", *filter.CompanyID)
	}
	if filter.StateID != nil {
		query = query.Where("posts.state_id = ?", *filter.StateID)
	}
	if len(filter.TagNames) > 0 {
		sub := r.db.Table("post_tags").
			Select("post_tags.post_id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.name IN ?", filter.TagNames)
		query = query.Where("posts.id IN (?)", sub)
	} else if len(filter.TagIDs) > 0 {
		sub := r.db.Table("post_tags").
			Select("post_tags.post_id").
			Where("post_tags.tag_id IN ?", filter.TagIDs)
		query = query.Where("posts.id IN (?)", sub)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query
	if filter.OrderByResponses {
		listQuery = listQuery.Order("posts.number_of_responses DESC")
	} else {
		listQuery = listQuery.Order("posts.created_at DESC")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	var posts []models.Post
	if err := listQuery.Preload("Company").Preload("Tags").Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// ListByCompany lists a company's posts, optionally restricted to a status
func (r *GormPostRepository) ListByCompany(companyID uint64, status *models.PostStatus) ([]models.Post, error) {
	query := r.db.Where("company_id = ?", companyID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var posts []models.Post
	err := query.
		Order("created_at DESC").
		Preload("Tags").
		Preload("Responses").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Update updates a post
func (r *GormPostRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// CreateResponse stores a response and bumps the post counter in one transaction
func (r *GormPostRepository) CreateResponse(response *models.Response) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(response).Error; err != nil {
			return err
		}

		return tx.Model(&models.Post{}).
			Where("id = ?", response.PostID).
			UpdateColumn("number_of_responses", gorm.Expr("number_of_responses + 1")).Error
	})
}

// FindResponse finds the response of a user to a post
func (r *GormPostRepository) FindResponse(userID, postID uint64) (*models.Response, error) {
	var response models.Response
	if err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		First(&response).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

// FindResponseByID finds a response by ID
func (r *GormPostRepository) FindResponseByID(id uint64) (*models.Response, error) {
	var response models.Response
	if err := r.db.First(&response, id).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

// ListResponses lists a post's responses with applicant profiles, oldest first
func (r *GormPostRepository) ListResponses(postID uint64) ([]models.Response, error) {
	var responses []models.Response
	err := r.db.Where("post_id = ?", postID).
		Order("created_at ASC").
		Preload("User").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// UpdateResponseStatus sets the review status of a response
func (r *GormPostRepository) UpdateResponseStatus(responseID uint64, status models.ResponseStatus) error {
	return r.db.Model(&models.Response{}).
		Where("id = ?", responseID).
		UpdateColumn("status", status).Error
}

// ListApplications lists the posts a user has applied to, in application order
func (r *GormPostRepository) ListApplications(userID uint64) ([]models.Response, error) {
	var responses []models.Response
	err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Preload("Post").
		Preload("Post.Company").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// RecountResponses recomputes the response counter from the response rows
func (r *GormPostRepository) RecountResponses(postID uint64) (int64, error) {
	var count int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Response{}).
			Where("post_id = ?", postID).
			Count(&count).Error; err != nil {
			return err
		}

		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("number_of_responses", count).Error
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
