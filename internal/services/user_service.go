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

var (
	ErrAlreadySubscribed = errors.New("already subscribed to this company")
	ErrNotSubscribed     = errors.New("not subscribed to this company")
	ErrPostAlreadySaved  = errors.New("post already saved")
	ErrPostNotSaved      = errors.New("post is not saved")
	ErrCompanyNotFound   = errors.New("company not found")
)

// UserService owns user profile mutations and the user-side set operations
// (subscriptions, saved posts). Every mutation applies the disabled-status
// gate before any write.
type UserService struct {
	userRepo     repository.UserRepository
	companyRepo  repository.CompanyRepository
	postRepo     repository.PostRepository
	taxonomyRepo repository.TaxonomyRepository
	blobs        storage.Store
}

// NewUserService creates a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	postRepo repository.PostRepository,
	taxonomyRepo repository.TaxonomyRepository,
	blobs storage.Store,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		companyRepo:  companyRepo,
		postRepo:     postRepo,
		taxonomyRepo: taxonomyRepo,
		blobs:        blobs,
	}
}

// mutableUser loads a user and applies the disabled-status gate.
func (s *UserService) mutableUser(userID uint64) (*models.User, error) {
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
	return user, nil
}

// UserSettingsInput holds the editable profile fields.
type UserSettingsInput struct {
	Firstname     string
	Lastname      string
	Email         string
	Bio           string
	StreetAddress string
	StateID       *uint64
	Tags          []string
}

// UpdateSettings edits the user's profile fields. A non-nil Tags slice
// replaces the interest tags feeding the recommended feed.
func (s *UserService) UpdateSettings(userID uint64, input UserSettingsInput) (*models.User, error) {
	user, err := s.mutableUser(userID)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email != user.Email {
		if _, err := s.userRepo.FindByEmail(email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
	}

	if err := checkState(s.taxonomyRepo, input.StateID); err != nil {
		return nil, err
	}

	user.Firstname = strings.TrimSpace(input.Firstname)
	user.Lastname = strings.TrimSpace(input.Lastname)
	user.Email = email
	user.Bio = input.Bio
	user.StreetAddress = input.StreetAddress
	user.StateID = input.StateID

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if input.Tags != nil {
		tags, err := s.taxonomyRepo.FindTagsByNames(input.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tags: %w", err)
		}
		if err := s.userRepo.ReplaceTags(user, tags); err != nil {
			return nil, fmt.Errorf("failed to replace tags: %w", err)
		}
		user.Tags = tags
	}

	return user, nil
}

// SkillInput is one entry of the replacement skill set.
type SkillInput struct {
	Name  string
	Years int
}

// UpdateSkills replaces the user's skill set and experience.
func (s *UserService) UpdateSkills(userID uint64, yearsOfExperience int, skills []SkillInput) (*models.User, error) {
	user, err := s.mutableUser(userID)
	if err != nil {
		return nil, err
	}

	rows := make([]models.UserSkill, 0, len(skills))
	for _, skill := range skills {
		name := strings.TrimSpace(skill.Name)
		if name == "" || skill.Years < 0 {
			return nil, fmt.Errorf("invalid skill entry: %q", skill.Name)
		}
		rows = append(rows, models.UserSkill{Name: name, Years: skill.Years})
	}

	user.YearsOfExperience = yearsOfExperience
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if err := s.userRepo.ReplaceSkills(userID, rows); err != nil {
		return nil, fmt.Errorf("failed to replace skills: %w", err)
	}

	user.Skills = rows
	return user, nil
}

// UpdateProfilePicture stores the uploaded picture, persists the new
// reference, then deletes the previous blob.
func (s *UserService) UpdateProfilePicture(userID uint64, filename string, r io.Reader) (*models.User, error) {
	user, err := s.mutableUser(userID)
	if err != nil {
		return nil, err
	}

	ref, err := s.blobs.Save("avatar", filename, r)
	if err != nil {
		return nil, fmt.Errorf("failed to store picture: %w", err)
	}

	old := user.ProfilePicture
	user.ProfilePicture = ref
	if err := s.userRepo.Update(user); err != nil {
		s.blobs.Delete(ref)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	// Old blob goes away only after the new reference is durable.
	if old != "" {
		s.blobs.Delete(old)
	}
	return user, nil
}

// UpdateResume stores the uploaded resume with the same replace ordering as
// UpdateProfilePicture.
func (s *UserService) UpdateResume(userID uint64, filename string, r io.Reader) (*models.User, error) {
	user, err := s.mutableUser(userID)
	if err != nil {
		return nil, err
	}

	ref, err := s.blobs.Save("resume", filename, r)
	if err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	old := user.ResumeURL
	user.ResumeName = filename
	user.ResumeURL = ref
	if err := s.userRepo.Update(user); err != nil {
		s.blobs.Delete(ref)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if old != "" {
		s.blobs.Delete(old)
	}
	return user, nil
}

// SetStatus toggles the account between Active and Disabled. Unlike the
// other mutations it must work on a disabled account, re-enabling is the
// whole point.
func (s *UserService) SetStatus(userID uint64, status models.AccountStatus) (*models.User, error) {
	if status != models.AccountStatusActive && status != models.AccountStatusDisabled {
		return nil, fmt.Errorf("invalid account status: %q", status)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.Status = status
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Subscribe adds the company to the user's subscribed set.
func (s *UserService) Subscribe(userID, companyID uint64) error {
	if _, err := s.mutableUser(userID); err != nil {
		return err
	}

	if _, err := s.companyRepo.FindByID(companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		return fmt.Errorf("failed to find company: %w", err)
	}

	if _, err := s.companyRepo.FindSubscription(userID, companyID); err == nil {
		return ErrAlreadySubscribed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check subscription: %w", err)
	}

	if err := s.companyRepo.Subscribe(userID, companyID); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	return nil
}

// Unsubscribe removes the company from the user's subscribed set.
func (s *UserService) Unsubscribe(userID, companyID uint64) error {
	if _, err := s.mutableUser(userID); err != nil {
		return err
	}

	if err := s.companyRepo.Unsubscribe(userID, companyID); err != nil {
		if errors.Is(err, repository.ErrNotSubscribed) {
			return ErrNotSubscribed
		}
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	return nil
}

// ListSubscriptions lists the companies the user is subscribed to.
func (s *UserService) ListSubscriptions(userID uint64) ([]models.Company, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	companies, err := s.companyRepo.ListSubscribed(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return companies, nil
}

// SavePost bookmarks a post for the user.
func (s *UserService) SavePost(userID, postID uint64) error {
	if _, err := s.mutableUser(userID); err != nil {
		return err
	}

	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to find post: %w", err)
	}
	if post.Status == models.PostStatusDeleted {
		return ErrPostNotFound
	}

	if _, err := s.userRepo.FindSavedPost(userID, postID); err == nil {
		return ErrPostAlreadySaved
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check saved post: %w", err)
	}

	if err := s.userRepo.SavePost(userID, postID); err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	return nil
}

// UnsavePost removes a bookmark.
func (s *UserService) UnsavePost(userID, postID uint64) error {
	if _, err := s.mutableUser(userID); err != nil {
		return err
	}

	if _, err := s.userRepo.FindSavedPost(userID, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotSaved
		}
		return fmt.Errorf("failed to check saved post: %w", err)
	}

	if err := s.userRepo.UnsavePost(userID, postID); err != nil {
		return fmt.Errorf("failed to unsave post: %w", err)
	}
	return nil
}

// ListSavedPosts lists the user's bookmarked posts.
func (s *UserService) ListSavedPosts(userID uint64) ([]models.Post, error) {
	posts, err := s.userRepo.ListSavedPosts(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved posts: %w", err)
	}
	return posts, nil
}
