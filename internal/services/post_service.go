package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hiremeo/job-board-api/internal/models"
	"github.com/hiremeo/job-board-api/internal/repository"
)

var (
	ErrPostNotFound            = errors.New("post not found")
	ErrNotPostOwner            = errors.New("post belongs to another company")
	ErrAlreadyApplied          = errors.New("user has already applied to this post")
	ErrPostNotAcceptingEntries = errors.New("post is no longer accepting responses")
	ErrInvalidStatusTransition = errors.New("invalid post status transition")
	ErrInvalidEmploymentType   = errors.New("invalid employment type")
	ErrResponseNotFound        = errors.New("response not found")
	ErrInvalidResponseStatus   = errors.New("invalid response status")
)

// PostService owns post lifecycle, applications and the read-side listings.
type PostService struct {
	postRepo     repository.PostRepository
	companyRepo  repository.CompanyRepository
	userRepo     repository.UserRepository
	taxonomyRepo repository.TaxonomyRepository
}

// NewPostService creates a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	taxonomyRepo repository.TaxonomyRepository,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		companyRepo:  companyRepo,
		userRepo:     userRepo,
		taxonomyRepo: taxonomyRepo,
	}
}

// CreatePostInput holds the fields of a new post.
type CreatePostInput struct {
	Title             string
	Description       string
	EmploymentType    models.EmploymentType
	Requirements      []string
	Salary            int64
	StreetAddress     string
	StateID           *uint64
	Tags              []string
	Skills            []string
	YearsOfExperience int
}

// CreatePost creates a post owned by the company.
func (s *PostService) CreatePost(companyID uint64, input CreatePostInput) (*models.Post, error) {
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

	switch input.EmploymentType {
	case models.EmploymentFullTime, models.EmploymentPartTime, models.EmploymentContract:
	default:
		return nil, ErrInvalidEmploymentType
	}

	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("title and description are required")
	}

	if err := checkState(s.taxonomyRepo, input.StateID); err != nil {
		return nil, err
	}

	tags, err := s.taxonomyRepo.FindTagsByNames(input.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}

	post := &models.Post{
		Title:             title,
		Description:       input.Description,
		EmploymentType:    input.EmploymentType,
		Requirements:      input.Requirements,
		Salary:            input.Salary,
		StreetAddress:     input.StreetAddress,
		StateID:           input.StateID,
		CompanyID:         companyID,
		Status:            models.PostStatusActive,
		Skills:            input.Skills,
		YearsOfExperience: input.YearsOfExperience,
		Tags:              tags,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// GetPost returns a post with its company for public viewing. Deleted posts
// stay readable for historical response integrity.
func (s *PostService) GetPost(postID uint64) (*models.Post, error) {
	post, err := s.postRepo.FindByID(postID, "Company", "State", "Tags")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	post.Responses = nil
	return post, nil
}

// ownedPost loads a post and verifies the company owns it.
func (s *PostService) ownedPost(companyID, postID uint64) (*models.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	if post.CompanyID != companyID {
		return nil, ErrNotPostOwner
	}
	return post, nil
}

// ChangeStatus moves a post through its state machine: Active and Suspended
// toggle freely, Deleted is terminal.
func (s *PostService) ChangeStatus(companyID, postID uint64, status models.PostStatus) (*models.Post, error) {
	switch status {
	case models.PostStatusActive, models.PostStatusSuspended, models.PostStatusDeleted:
	default:
		return nil, ErrInvalidStatusTransition
	}

	post, err := s.ownedPost(companyID, postID)
	if err != nil {
		return nil, err
	}

	if post.Status == models.PostStatusDeleted {
		return nil, ErrInvalidStatusTransition
	}

	post.Status = status
	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// RespondInput holds a user's application payload; resume and skills are
// snapshots, detached from the live profile.
type RespondInput struct {
	ResumeName string
	ResumeURL  string
	Skills     []string
}

// Respond creates the user's response to a post.
func (s *PostService) Respond(userID, postID uint64, input RespondInput) (*models.Response, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.Status == models.AccountStatusDisabled {
		return nil, ErrAccountDisabled
	}

	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	if !post.AcceptsResponses() {
		return nil, ErrPostNotAcceptingEntries
	}

	if _, err := s.postRepo.FindResponse(userID, postID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check response: %w", err)
	}

	resumeName, resumeURL := input.ResumeName, input.ResumeURL
	if resumeURL == "" {
		// Default to the profile resume at application time.
		resumeName, resumeURL = user.ResumeName, user.ResumeURL
	}

	response := &models.Response{
		UserID:     userID,
		PostID:     postID,
		ResumeName: resumeName,
		ResumeURL:  resumeURL,
		Skills:     input.Skills,
		Status:     models.ResponseStatusUnderReview,
	}

	if err := s.postRepo.CreateResponse(response); err != nil {
		return nil, fmt.Errorf("failed to create response: %w", err)
	}
	return response, nil
}

// ListResponses lists the applications to a post, owner only.
func (s *PostService) ListResponses(companyID, postID uint64) ([]models.Response, error) {
	if _, err := s.ownedPost(companyID, postID); err != nil {
		return nil, err
	}

	responses, err := s.postRepo.ListResponses(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	return responses, nil
}

// SetResponseStatus moves a response through review, owner only.
func (s *PostService) SetResponseStatus(companyID, responseID uint64, status models.ResponseStatus) (*models.Response, error) {
	switch status {
	case models.ResponseStatusUnderReview, models.ResponseStatusRejected, models.ResponseStatusShortlisted:
	default:
		return nil, ErrInvalidResponseStatus
	}

	response, err := s.postRepo.FindResponseByID(responseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResponseNotFound
		}
		return nil, fmt.Errorf("failed to find response: %w", err)
	}

	if _, err := s.ownedPost(companyID, response.PostID); err != nil {
		return nil, err
	}

	if err := s.postRepo.UpdateResponseStatus(responseID, status); err != nil {
		return nil, fmt.Errorf("failed to update response: %w", err)
	}
	response.Status = status
	return response, nil
}

// ListCompanyPosts lists a company's own posts, optionally by status.
func (s *PostService) ListCompanyPosts(companyID uint64, status *models.PostStatus) ([]models.Post, error) {
	posts, err := s.postRepo.ListByCompany(companyID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// ListUserApplications lists the posts the user applied to, in application order.
func (s *PostService) ListUserApplications(userID uint64) ([]models.Response, error) {
	responses, err := s.postRepo.ListApplications(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return responses, nil
}

// TopPosts lists active posts by descending response count.
func (s *PostService) TopPosts(page, pageSize int) ([]models.Post, int64, error) {
	return s.postRepo.List(repository.PostFilter{
		OnlyListable:     true,
		OrderByResponses: true,
		Page:             page,
		PageSize:         pageSize,
	})
}

// RecommendedForUser lists active posts sharing at least one tag with the
// user, by descending response count.
func (s *PostService) RecommendedForUser(userID uint64) ([]models.Post, error) {
	user, err := s.userRepo.FindByID(userID, "Tags")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if len(user.Tags) == 0 {
		return []models.Post{}, nil
	}

	tagIDs := make([]uint64, len(user.Tags))
	for i, tag := range user.Tags {
		tagIDs[i] = tag.ID
	}

	posts, _, err := s.postRepo.List(repository.PostFilter{
		TagIDs:           tagIDs,
		OnlyListable:     true,
		OrderByResponses: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recommended posts: %w", err)
	}
	return posts, nil
}

// SearchInput holds the public search filters.
type SearchInput struct {
	NameQuery string
	TagNames  []string
	StateID   *uint64
}

// Search runs the public search over active posts and companies.
func (s *PostService) Search(input SearchInput) ([]models.Post, []models.Company, error) {
	posts, _, err := s.postRepo.List(repository.PostFilter{
		NameQuery:    input.NameQuery,
		TagNames:     input.TagNames,
		StateID:      input.StateID,
		OnlyListable: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to search posts: %w", err)
	}

	companies, err := s.companyRepo.List(repository.CompanyFilter{
		NameQuery: input.NameQuery,
		TagNames:  input.TagNames,
		StateID:   input.StateID,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to search companies: %w", err)
	}

	return posts, companies, nil
}

// ReconcileResponses recomputes the response counter from the response rows,
// for tests and periodic repair.
func (s *PostService) ReconcileResponses(postID uint64) (int64, error) {
	count, err := s.postRepo.RecountResponses(postID)
	if err != nil {
		return 0, fmt.Errorf("failed to recount responses: %w", err)
	}
	return count, nil
}
