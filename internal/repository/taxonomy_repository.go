package repository

import (
	"gorm.io/gorm"

	"github.com/hiremeo/job-board-api/internal/models"
)

// GormTaxonomyRepository is a GORM implementation of TaxonomyRepository
type GormTaxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository creates a new TaxonomyRepository
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &GormTaxonomyRepository{db: db}
}

// CreateTag creates a tag
func (r *GormTaxonomyRepository) CreateTag(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// ListTags lists all tags sorted by name
func (r *GormTaxonomyRepository) ListTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// FindTagsByNames finds the tags matching the given names
func (r *GormTaxonomyRepository) FindTagsByNames(names []string) ([]models.Tag, error) {
	var tags []models.Tag
	if len(names) == 0 {
		return tags, nil
	}
	if err := r.db.Where("name IN ?", names).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateState creates a state
func (r *GormTaxonomyRepository) CreateState(state *models.State) error {
	return r.db.Create(state).Error
}

// ListStates lists all states sorted by name
func (r *GormTaxonomyRepository) ListStates() ([]models.State, error) {
	var states []models.State
	if err := r.db.Order("name ASC").Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

// FindStateByID finds a state by ID
func (r *GormTaxonomyRepository) FindStateByID(id uint64) (*models.State, error) {
	var state models.State
	if err := r.db.First(&state, id).Error; err != nil {
		return nil, err
	}
	return &state, nil
}
