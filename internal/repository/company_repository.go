package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hiremeo/job-board-api/internal/models"
)

var (
	// ErrNotSubscribed is returned when removing a subscription that does not exist.
	ErrNotSubscribed = errors.New("company repository: subscription not found")
)

// GormCompanyRepository is a GORM implementation of CompanyRepository
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &GormCompanyRepository{db: db}
}

// Create creates a new company
func (r *GormCompanyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

// FindByID finds a company by ID with optional preloading
func (r *GormCompanyRepository) FindByID(id uint64, preload ...string) (*models.Company, error) {
	var company models.Company
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// FindByEmail finds a company by email
func (r *GormCompanyRepository) FindByEmail(email string) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("email = ?", email).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// FindByName finds a company by its unique name
func (r *GormCompanyRepository) FindByName(name string) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("name = ?", name).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// Update updates a company record
func (r *GormCompanyRepository) Update(company *models.Company) error {
	return r.db.Save(company).Error
}

// ReplaceTags replaces the company's tag links
func (r *GormCompanyRepository) ReplaceTags(company *models.Company, tags []models.Tag) error {
	return r.db.Model(company).Association("Tags").Replace(tags)
}

// List retrieves companies matching the filter
func (r *GormCompanyRepository) List(filter CompanyFilter) ([]models.Company, error) {
	query := r.db.Model(&models.Company{})

	if filter.NameQuery != "" {
		query = query.Where("companies.name LIKE ?", "%"+filter.NameQuery+"%")
	}
	if len(filter.TagNames) > 0 {
		sub := r.db.Table("company_tags").
			Select("company_tags.company_id").
			Joins("JOIN tags ON tags.id = company_tags.tag_id").
			Where("tags.name IN ?", filter.TagNames)
		query = query.Where("companies.id IN (?)", sub)
	}
	if filter.StateID != nil {
		query = query.Where("companies.state_id = ?", *filter.StateID)
	}

	var companies []models.Company
	if err := query.Order("companies.created_at DESC").Preload("Tags").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// Subscribe records a user subscription and bumps the counter in one transaction
func (r *GormCompanyRepository) Subscribe(userID, companyID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		sub := &models.Subscription{UserID: userID, CompanyID: companyID}
		if err := tx.Create(sub).Error; err != nil {
			return err
		}

		return tx.Model(&models.Company{}).
			Where("id = ?", companyID).
			UpdateColumn("subscribers", gorm.Expr("subscribers + 1")).Error
	})
}

// Unsubscribe removes a subscription and drops the counter in one transaction
func (r *GormCompanyRepository) Unsubscribe(userID, companyID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND company_id = ?", userID, companyID).
			Delete(&models.Subscription{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotSubscribed
		}

		// Counter floor at zero guards against repair races, not double
		// deletes; those are caught above.
		return tx.Model(&models.Company{}).
			Where("id = ? AND subscribers > 0", companyID).
			UpdateColumn("subscribers", gorm.Expr("subscribers - 1")).Error
	})
}

// FindSubscription finds a specific subscription
func (r *GormCompanyRepository) FindSubscription(userID, companyID uint64) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.Where("user_id = ? AND company_id = ?", userID, companyID).
		First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListSubscribed lists the companies a user is subscribed to
func (r *GormCompanyRepository) ListSubscribed(userID uint64) ([]models.Company, error) {
	var companies []models.Company
	err := r.db.
		Joins("JOIN subscriptions ON subscriptions.company_id = companies.id").
		Where("subscriptions.user_id = ?", userID).
		Order("subscriptions.created_at DESC").
		Preload("Tags").
		Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

// RecountSubscribers recomputes the subscriber counter from the subscription rows
func (r *GormCompanyRepository) RecountSubscribers(companyID uint64) (int64, error) {
	var count int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Subscription{}).
			Where("company_id = ?", companyID).
			Count(&count).Error; err != nil {
			return err
		}

		return tx.Model(&models.Company{}).
			Where("id = ?", companyID).
			UpdateColumn("subscribers", count).Error
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
