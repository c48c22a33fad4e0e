package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/hiremeo/job-board-api/internal/dto"
	"github.com/hiremeo/job-board-api/internal/middleware"
)

func authRouter(env testEnv) *gin.Engine {
	r := gin.New()
	r.POST("/api/user/signup", env.userHandler.Signup)
	r.POST("/api/company/signup", env.companyHandler.Signup)
	r.POST("/api/auth/login", env.authHandler.Login)
	r.POST("/api/auth/company/login", env.authHandler.CompanyLogin)
	r.GET("/api/auth/me", middleware.RequireAuth(env.tokens), env.authHandler.GetCurrentAccount)
	r.PUT("/api/auth/password", middleware.RequireAuth(env.tokens), env.authHandler.ChangePassword)
	return r
}

func TestUserSignup(t *testing.T) {
	env := setupTestEnv(t)
	r := authRouter(env)
	env.seedTags(t, "go", "sql")

	w := doJSON(t, r, http.MethodPost, "/api/user/signup", "", map[string]interface{}{
		"firstname": "Ada",
		"lastname":  "Lovelace",
		"email":     "ada@example.com",
		"password":  "supersecret",
		"tags":      []string{"go", "sql"},
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.AuthUserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token)
	require.Equal(t, "ada@example.com", response.User.Email)
	require.Len(t, response.User.Tags, 2)

	// The password must never appear in any payload.
	require.NotContains(t, strings.ToLower(w.Body.String()), "password")
}

func TestUserSignup_DuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	r := authRouter(env)
	env.createUser(t, "ada@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/user/signup", "", map[string]interface{}{
		"firstname": "Ada",
		"lastname":  "Lovelace",
		"email":     "ada@example.com",
		"password":  "supersecret",
		"tags":      []string{"go"},
	})

	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "ALREADY_EXISTS")
}

func TestUserSignup_ShortPassword(t *testing.T) {
	env := setupTestEnv(t)
	r := authRouter(env)

	w := doJSON(t, r, http.MethodPost, "/api/user/signup", "", map[string]interface{}{
		"firstname": "Ada",
		"lastname":  "Lovelace",
		"email":     "ada@example.com",
		"password":  "abc",
		"tags":      []string{"go"},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserLogin(t *testing.T) {
	env := setupTestEnv(t)
	r := authRouter(env)
	env.createUser(t, "ada@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AuthUserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token)

	principal, err := env.tokens.Verify(response.Token)
	require.NoError(t, err)
	require.True(t, principal.IsUser())
	require.Equal(t, response.User.ID, principal.ID)
}

func TestUserLogin_WrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	r := authRouter(env)
	env.createUser(t, "ada@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
}

func TestCompanySignupAndLogin(t *testing.T) {
	env := setupTestEnv(t)
	r := authRouter(env)
	env.seedTags(t, "go")

	w := doJSON(t, r, http.MethodPost, "/api/company/signup", "", map[string]interface{}{
		"name":     "Acme",
		"email":    "jobs@acme.com",
		"password": "supersecret",
		"tags":     []string{"go"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var signup dto.AuthCompanyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signup))
	require.NotEmpty(t, signup.Token)

	principal, err := env.tokens.Verify(signup.Token)
	require.NoError(t, err)
	require.True(t, principal.IsCompany())

	w = doJSON(t, r, http.MethodPost, "/api/auth/company/login", "", map[string]string{
		"email":    "jobs@acme.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGetCurrentAccount(t *testing.T) {
	env := setupTestEnv(t)
	r := authRouter(env)

	user, userToken := env.createUser(t, "ada@example.com")
	company, companyToken := env.createCompany(t, "Acme", "jobs@acme.com")

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	var userDTO dto.UserDTO
	require.NoError(t, json.Unmarshal(body["user"], &userDTO))
	require.Equal(t, user.ID, userDTO.ID)

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", companyToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body = decodeBody(t, w)
	var companyDTO dto.CompanyDTO
	require.NoError(t, json.Unmarshal(body["company"], &companyDTO))
	require.Equal(t, company.ID, companyDTO.ID)
}

func TestAuthGate_TokenErrors(t *testing.T) {
	env := setupTestEnv(t)
	r := authRouter(env)

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "No token, authorization denied")

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Token is not valid")
}

func TestChangePassword(t *testing.T) {
	env := setupTestEnv(t)
	r := authRouter(env)
	_, token := env.createUser(t, "ada@example.com")

	w := doJSON(t, r, http.MethodPut, "/api/auth/password", token, map[string]string{
		"old_password": "supersecret",
		"new_password": "evenmoresecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// The old password no longer works, the new one does.
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "evenmoresecret",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	env := setupTestEnv(t)
	r := authRouter(env)
	_, token := env.createUser(t, "ada@example.com")

	w := doJSON(t, r, http.MethodPut, "/api/auth/password", token, map[string]string{
		"old_password": "not-the-password",
		"new_password": "evenmoresecret",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserSignup_UnknownState(t *testing.T) {
	env := setupTestEnv(t)
	r := authRouter(env)
	env.seedTags(t, "go")

	w := doJSON(t, r, http.MethodPost, "/api/user/signup", "", map[string]interface{}{
		"firstname": "Ada",
		"lastname":  "Lovelace",
		"email":     "ada@example.com",
		"password":  "supersecret",
		"state_id":  999,
		"tags":      []string{"go"},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "state not found")
}
