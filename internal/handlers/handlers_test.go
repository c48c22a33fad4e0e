package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hiremeo/job-board-api/internal/database"
	"github.com/hiremeo/job-board-api/internal/models"
	"github.com/hiremeo/job-board-api/internal/repository"
	"github.com/hiremeo/job-board-api/internal/services"
	"github.com/hiremeo/job-board-api/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	db             *gorm.DB
	tokens         *services.TokenService
	authService    *services.AuthService
	userService    *services.UserService
	companyService *services.CompanyService
	postService    *services.PostService
	taxonomyRepo   repository.TaxonomyRepository
	authHandler    *AuthHandler
	userHandler    *UserHandler
	companyHandler *CompanyHandler
	postHandler    *PostHandler
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.State{},
		&models.Tag{},
		&models.User{},
		&models.UserSkill{},
		&models.Company{},
		&models.Post{},
		&models.Response{},
		&models.Subscription{},
		&models.SavedPost{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	blobs, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	tokens := services.NewTokenService("test-secret", time.Hour)

	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	postRepo := repository.NewPostRepository(db)
	taxonomyRepo := repository.NewTaxonomyRepository(db)

	authService := services.NewAuthService(userRepo, companyRepo, taxonomyRepo, tokens)
	userService := services.NewUserService(userRepo, companyRepo, postRepo, taxonomyRepo, blobs)
	companyService := services.NewCompanyService(companyRepo, postRepo, taxonomyRepo, blobs)
	postService := services.NewPostService(postRepo, companyRepo, userRepo, taxonomyRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:             db,
		tokens:         tokens,
		authService:    authService,
		userService:    userService,
		companyService: companyService,
		postService:    postService,
		taxonomyRepo:   taxonomyRepo,
		authHandler:    NewAuthHandler(authService),
		userHandler:    NewUserHandler(authService, userService),
		companyHandler: NewCompanyHandler(authService, companyService),
		postHandler:    NewPostHandler(postService, nil),
	}
}

// seedTags makes sure the named tags exist in the shared vocabulary.
func (env testEnv) seedTags(t *testing.T, names ...string) {
	t.Helper()

	for _, name := range names {
		var tag models.Tag
		require.NoError(t, env.db.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error)
	}
}

func (env testEnv) createUser(t *testing.T, email string, tags ...string) (*models.User, string) {
	t.Helper()

	if len(tags) == 0 {
		tags = []string{"go"}
	}
	env.seedTags(t, tags...)
	user, token, err := env.authService.SignupUser(services.UserSignupInput{
		Firstname: "Test",
		Lastname:  "User",
		Email:     email,
		Password:  "supersecret",
		Tags:      tags,
	})
	require.NoError(t, err)
	return user, token
}

func (env testEnv) createCompany(t *testing.T, name, email string, tags ...string) (*models.Company, string) {
	t.Helper()

	if len(tags) == 0 {
		tags = []string{"go"}
	}
	env.seedTags(t, tags...)
	company, token, err := env.authService.SignupCompany(services.CompanySignupInput{
		Name:     name,
		Email:    email,
		Password: "supersecret",
		Tags:     tags,
	})
	require.NoError(t, err)
	return company, token
}

func (env testEnv) createPost(t *testing.T, companyID uint64, title string) *models.Post {
	t.Helper()

	env.seedTags(t, "go")
	post, err := env.postService.CreatePost(companyID, services.CreatePostInput{
		Title:          title,
		Description:    "Build things",
		EmploymentType: models.EmploymentFullTime,
		Requirements:   []string{"experience"},
		Salary:         100000,
		StreetAddress:  "1 Main St",
		Tags:           []string{"go"},
	})
	require.NoError(t, err)
	return post
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
