package services

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"

	"github.com/hiremeo/job-board-api/internal/models"
	"github.com/hiremeo/job-board-api/internal/repository"
	"github.com/hiremeo/job-board-api/internal/storage"
)

// CompanyService owns company profile mutations and the public company view.
type CompanyService struct {
	companyRepo  repository.CompanyRepository
	postRepo     repository.PostRepository
	taxonomyRepo repository.TaxonomyRepository
	blobs        storage.Store
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(
	companyRepo repository.CompanyRepository,
	postRepo repository.PostRepository,
	taxonomyRepo repository.TaxonomyRepository,
	blobs storage.Store,
) *CompanyService {
	return &CompanyService{
		companyRepo:  companyRepo,
		postRepo:     postRepo,
		taxonomyRepo: taxonomyRepo,
		blobs:        blobs,
	}
}

// mutableCompany loads a company and applies the disabled-status gate.
func (s *CompanyService) mutableCompany(companyID uint64) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	if company.Status == models.AccountStatusDisabled {
		return nil, ErrAccountDisabled
	}
	return company, nil
}

// CompanySettingsInput holds the editable company fields.
type CompanySettingsInput struct {
	Name          string
	Description   string
	StreetAddress string
	StateID       *uint64
	Tags          []string
}

// UpdateSettings edits the company's profile fields.
func (s *CompanyService) UpdateSettings(companyID uint64, input CompanySettingsInput) (*models.Company, error) {
	company, err := s.mutableCompany(companyID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name != company.Name {
		if _, err := s.companyRepo.FindByName(name); err == nil {
			return nil, ErrCompanyNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check name: %w", err)
		}
	}

	if err := checkState(s.taxonomyRepo, input.StateID); err != nil {
		return nil, err
	}

	company.Name = name
	company.Description = input.Description
	company.StreetAddress = input.StreetAddress
	company.StateID = input.StateID

	if err := s.companyRepo.Update(company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	if input.Tags != nil {
		tags, err := s.taxonomyRepo.FindTagsByNames(input.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tags: %w", err)
		}
		if err := s.companyRepo.ReplaceTags(company, tags); err != nil {
			return nil, fmt.Errorf("failed to replace tags: %w", err)
		}
		company.Tags = tags
	}

	return company, nil
}

// UpdateProfilePicture stores the uploaded picture, persists the new
// reference, then deletes the previous blob.
func (s *CompanyService) UpdateProfilePicture(companyID uint64, filename string, r io.Reader) (*models.Company, error) {
	company, err := s.mutableCompany(companyID)
	if err != nil {
		return nil, err
	}

	ref, err := s.blobs.Save("logo", filename, r)
	if err != nil {
		return nil, fmt.Errorf("failed to store picture: %w", err)
	}

	old := company.ProfilePicture
	company.ProfilePicture = ref
	if err := s.companyRepo.Update(company); err != nil {
		s.blobs.Delete(ref)
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	if old != "" {
		s.blobs.Delete(old)
	}
	return company, nil
}

// SetStatus toggles the account between Active and Disabled.
func (s *CompanyService) SetStatus(companyID uint64, status models.AccountStatus) (*models.Company, error) {
	if status != models.AccountStatusActive && status != models.AccountStatusDisabled {
		return nil, fmt.Errorf("invalid account status: %q", status)
	}

	company, err := s.companyRepo.FindByID(companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}

	company.Status = status
	if err := s.companyRepo.Update(company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return company, nil
}

// GetPublicProfile returns a company with its publicly listable posts.
func (s *CompanyService) GetPublicProfile(companyID uint64) (*models.Company, []models.Post, error) {
	company, err := s.companyRepo.FindByID(companyID, "State", "Tags")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCompanyNotFound
		}
		return nil, nil, fmt.Errorf("failed to find company: %w", err)
	}

	active := models.PostStatusActive
	posts, err := s.postRepo.ListByCompany(companyID, &active)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list posts: %w", err)
	}

	// Responses are owner-only; never expose applicants on the public view.
	for i := range posts {
		posts[i].Responses = nil
	}

	return company, posts, nil
}

// ReconcileSubscribers recomputes the subscriber counter from the
// subscription rows, for tests and periodic repair.
func (s *CompanyService) ReconcileSubscribers(companyID uint64) (int64, error) {
	count, err := s.companyRepo.RecountSubscribers(companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to recount subscribers: %w", err)
	}
	return count, nil
}
