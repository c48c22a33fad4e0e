package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hiremeo/job-board-api/internal/constants"
	"github.com/hiremeo/job-board-api/internal/models"
	"github.com/hiremeo/job-board-api/internal/repository"
)

var (
	ErrEmailTaken           = errors.New("email address has already been used")
	ErrCompanyNameTaken     = errors.New("company name has already been used")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountDisabled      = errors.New("account is disabled")
	ErrStateNotFound        = errors.New("state not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// checkState verifies a referenced state exists. A nil ID clears the field
// and is always fine.
func checkState(repo repository.TaxonomyRepository, stateID *uint64) error {
	if stateID == nil {
		return nil
	}
	if _, err := repo.FindStateByID(*stateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStateNotFound
		}
		return fmt.Errorf("failed to find state: %w", err)
	}
	return nil
}

// AuthService handles signup, login and credential management for both
// account kinds.
type AuthService struct {
	userRepo     repository.UserRepository
	companyRepo  repository.CompanyRepository
	taxonomyRepo repository.TaxonomyRepository
	tokens       *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	taxonomyRepo repository.TaxonomyRepository,
	tokens *TokenService,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		companyRepo:  companyRepo,
		taxonomyRepo: taxonomyRepo,
		tokens:       tokens,
	}
}

// UserSignupInput represents the required information to register a user.
type UserSignupInput struct {
	Firstname     string
	Lastname      string
	Email         string
	Password      string
	Bio           string
	StreetAddress string
	StateID       *uint64
	Tags          []string
}

// SignupUser registers a user account and returns it with a session token.
func (s *AuthService) SignupUser(input UserSignupInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, "", fmt.Errorf("email is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", ErrFailedToHashPassword
	}

	if err := checkState(s.taxonomyRepo, input.StateID); err != nil {
		return nil, "", err
	}

	tags, err := s.taxonomyRepo.FindTagsByNames(input.Tags)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve tags: %w", err)
	}

	user := &models.User{
		Firstname:     strings.TrimSpace(input.Firstname),
		Lastname:      strings.TrimSpace(input.Lastname),
		Email:         email,
		PasswordHash:  string(hashedPassword),
		Bio:           input.Bio,
		StreetAddress: input.StreetAddress,
		StateID:       input.StateID,
		Status:        models.AccountStatusActive,
		Tags:          tags,
	}

	if err := s.userRepo.Create(user); err != nil {
		// The pre-check races with concurrent signups; the unique index
		// settles the winner.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(Principal{Kind: PrincipalUser, ID: user.ID})
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// CompanySignupInput represents the required information to register a company.
type CompanySignupInput struct {
	Name     string
	Email    string
	Password string
	Tags     []string
}

// SignupCompany registers a company account and returns it with a session token.
func (s *AuthService) SignupCompany(input CompanySignupInput) (*models.Company, string, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, "", fmt.Errorf("name and email are required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	if _, err := s.companyRepo.FindByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.companyRepo.FindByName(name); err == nil {
		return nil, "", ErrCompanyNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check name: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", ErrFailedToHashPassword
	}

	tags, err := s.taxonomyRepo.FindTagsByNames(input.Tags)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve tags: %w", err)
	}

	company := &models.Company{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Status:       models.AccountStatusActive,
		Tags:         tags,
	}

	if err := s.companyRepo.Create(company); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Either unique index may have won the race.
			if _, nameErr := s.companyRepo.FindByName(name); nameErr == nil {
				return nil, "", ErrCompanyNameTaken
			}
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create company: %w", err)
	}

	token, err := s.tokens.Issue(Principal{Kind: PrincipalCompany, ID: company.ID})
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return company, token, nil
}

// LoginUser verifies user credentials and returns the account with a token.
func (s *AuthService) LoginUser(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(Principal{Kind: PrincipalUser, ID: user.ID})
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// LoginCompany verifies company credentials and returns the account with a token.
func (s *AuthService) LoginCompany(email, password string) (*models.Company, string, error) {
	company, err := s.companyRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find company: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(company.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(Principal{Kind: PrincipalCompany, ID: company.ID})
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return company, token, nil
}

// GetUser retrieves a user by ID with profile relations.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, "State", "Skills", "Tags")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetCompany retrieves a company by ID with profile relations.
func (s *AuthService) GetCompany(id uint64) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(id, "State", "Tags")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return company, nil
}

// ChangePassword verifies the old password of the principal's account and
// stores a hash of the new one.
func (s *AuthService) ChangePassword(principal Principal, oldPassword, newPassword string) error {
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	hash := func(pw string) (string, error) {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			return "", ErrFailedToHashPassword
		}
		return string(h), nil
	}

	switch principal.Kind {
	case PrincipalUser:
		user, err := s.userRepo.FindByID(principal.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("failed to find user: %w", err)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
			return ErrInvalidCredentials
		}
		hashed, err := hash(newPassword)
		if err != nil {
			return err
		}
		user.PasswordHash = hashed
		return s.userRepo.Update(user)

	case PrincipalCompany:
		company, err := s.companyRepo.FindByID(principal.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("failed to find company: %w", err)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(company.PasswordHash), []byte(oldPassword)); err != nil {
			return ErrInvalidCredentials
		}
		hashed, err := hash(newPassword)
		if err != nil {
			return err
		}
		company.PasswordHash = hashed
		return s.companyRepo.Update(company)

	default:
		return fmt.Errorf("unknown principal kind: %q", principal.Kind)
	}
}
