package repository

import (
	"github.com/hiremeo/job-board-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user together with its skills and tag links
	Create(user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update updates a user record
	Update(user *models.User) error

	// ReplaceSkills replaces the user's full skill set
	ReplaceSkills(userID uint64, skills []models.UserSkill) error

	// ReplaceTags replaces the user's tag links
	ReplaceTags(user *models.User, tags []models.Tag) error

	// SavePost bookmarks a post for the user
	SavePost(userID, postID uint64) error

	// UnsavePost removes a bookmark
	UnsavePost(userID, postID uint64) error

	// FindSavedPost finds a specific bookmark
	FindSavedPost(userID, postID uint64) (*models.SavedPost, error)

	// ListSavedPosts lists the user's bookmarked posts, newest bookmark first
	ListSavedPosts(userID uint64) ([]models.Post, error)
}

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	// Create creates a new company
	Create(company *models.Company) error

	// FindByID finds a company by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Company, error)

	// FindByEmail finds a company by email
	FindByEmail(email string) (*models.Company, error)

	// FindByName finds a company by its unique name
	FindByName(name string) (*models.Company, error)

	// Update updates a company record
	Update(company *models.Company) error

	// ReplaceTags replaces the company's tag links
	ReplaceTags(company *models.Company, tags []models.Tag) error

	// List retrieves companies matching the filter
	List(filter CompanyFilter) ([]models.Company, error)

	// Subscribe records a user subscription and bumps the counter in one
	// transaction
	Subscribe(userID, companyID uint64) error

	// Unsubscribe removes a subscription and drops the counter in one
	// transaction
	Unsubscribe(userID, companyID uint64) error

	// FindSubscription finds a specific subscription
	FindSubscription(userID, companyID uint64) (*models.Subscription, error)

	// ListSubscribed lists the companies a user is subscribed to
	ListSubscribed(userID uint64) ([]models.Company, error)

	// RecountSubscribers recomputes the denormalized subscriber counter from
	// the subscription rows and returns the authoritative value
	RecountSubscribers(companyID uint64) (int64, error)
}

// CompanyFilter holds filtering options for listing companies
type CompanyFilter struct {
	NameQuery string
	TagNames  []string
	StateID   *uint64
}

// PostRepository defines the interface for post and response data access
type PostRepository interface {
	// Create creates a new post
	Create(post *models.Post) error

	// FindByID finds a post by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Post, error)

	// List retrieves posts with filtering and pagination
	List(filter PostFilter) ([]models.Post, int64, error)

	// ListByCompany lists a company's posts, optionally restricted to a status
	ListByCompany(companyID uint64, status *models.PostStatus) ([]models.Post, error)

	// Update updates a post
	Update(post *models.Post) error

	// CreateResponse stores a response and bumps the post counter in one
	// transaction
	CreateResponse(response *models.Response) error

	// FindResponse finds the response of a user to a post
	FindResponse(userID, postID uint64) (*models.Response, error)

	// FindResponseByID finds a response by ID
	FindResponseByID(id uint64) (*models.Response, error)

	// ListResponses lists a post's responses with applicant profiles, oldest
	// first
	ListResponses(postID uint64) ([]models.Response, error)

	// UpdateResponseStatus sets the review status of a response
	UpdateResponseStatus(responseID uint64, status models.ResponseStatus) error

	// ListApplications lists the posts a user has applied to, in application
	// order
	ListApplications(userID uint64) ([]models.Response, error)

	// RecountResponses recomputes the denormalized response counter from the
	// response rows and returns the authoritative value
	RecountResponses(postID uint64) (int64, error)
}

// PostFilter holds filtering options for listing posts
type PostFilter struct {
	NameQuery        string
	TagNames         []string
	TagIDs           []uint64
	StateID          *uint64
	CompanyID        *uint64
	OnlyListable     bool
	OrderByResponses bool
	Page             int
	PageSize         int
}

// TaxonomyRepository defines the interface for tag and state data access
type TaxonomyRepository interface {
	// CreateTag creates a tag
	CreateTag(tag *models.Tag) error

	// ListTags lists all tags sorted by name
	ListTags() ([]models.Tag, error)

	// FindTagsByNames finds the tags matching the given names
	FindTagsByNames(names []string) ([]models.Tag, error)

	// CreateState creates a state
	CreateState(state *models.State) error

	// ListStates lists all states sorted by name
	ListStates() ([]models.State, error)

	// FindStateByID finds a state by ID
	FindStateByID(id uint64) (*models.State, error)
}
