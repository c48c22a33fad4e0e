package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hiremeo/job-board-api/internal/models"
	"github.com/hiremeo/job-board-api/internal/repository"
)

// racingUserRepo simulates losing a concurrent duplicate signup: the email
// pre-check sees no row, then the insert hits the unique index.
type racingUserRepo struct {
	repository.UserRepository
}

func (racingUserRepo) FindByEmail(string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (racingUserRepo) Create(*models.User) error {
	return gorm.ErrDuplicatedKey
}

type racingCompanyRepo struct {
	repository.CompanyRepository
}

func (racingCompanyRepo) FindByEmail(string) (*models.Company, error) {
	return nil, gorm.ErrRecordNotFound
}

func (racingCompanyRepo) FindByName(string) (*models.Company, error) {
	return nil, gorm.ErrRecordNotFound
}

func (racingCompanyRepo) Create(*models.Company) error {
	return gorm.ErrDuplicatedKey
}

func newRacingAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.State{}, &models.Tag{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	tokens := NewTokenService("test-secret", time.Hour)
	taxonomyRepo := repository.NewTaxonomyRepository(db)
	userRepo := racingUserRepo{repository.NewUserRepository(db)}
	companyRepo := racingCompanyRepo{repository.NewCompanyRepository(db)}
	return NewAuthService(userRepo, companyRepo, taxonomyRepo, tokens)
}

func TestSignupUser_DuplicateInsertIsEmailTaken(t *testing.T) {
	svc := newRacingAuthService(t)

	_, _, err := svc.SignupUser(UserSignupInput{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "supersecret",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupCompany_DuplicateInsertIsEmailTaken(t *testing.T) {
	svc := newRacingAuthService(t)

	_, _, err := svc.SignupCompany(CompanySignupInput{
		Name:     "Acme",
		Email:    "jobs@acme.com",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}
