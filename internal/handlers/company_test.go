package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/hiremeo/job-board-api/internal/dto"
	"github.com/hiremeo/job-board-api/internal/middleware"
	"github.com/hiremeo/job-board-api/internal/models"
	"github.com/hiremeo/job-board-api/internal/services"
)

func companyRouter(env testEnv) *gin.Engine {
	r := gin.New()
	company := r.Group("/api/company")
	{
		company.GET("/:id", env.companyHandler.GetPublicProfile)

		authed := company.Group("")
		authed.Use(middleware.RequireAuth(env.tokens), middleware.RequireCompany())
		{
			authed.PUT("/settings", env.companyHandler.UpdateSettings)
			authed.PUT("/status", env.companyHandler.SetStatus)
		}
	}
	return r
}

func TestCompanyPublicProfile(t *testing.T) {
	env := setupTestEnv(t)
	r := companyRouter(env)

	user, _ := env.createUser(t, "ada@example.com")
	company, _ := env.createCompany(t, "Acme", "jobs@acme.com")

	active := env.createPost(t, company.ID, "Go Engineer")
	suspended := env.createPost(t, company.ID, "Hidden Role")
	_, err := env.postService.ChangeStatus(company.ID, suspended.ID, models.PostStatusSuspended)
	require.NoError(t, err)

	_, err = env.postService.Respond(user.ID, active.ID, services.RespondInput{})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, idPath("/api/company", company.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	var profile dto.CompanyPublicDTO
	require.NoError(t, json.Unmarshal(body["company"], &profile))
	require.Equal(t, company.ID, profile.ID)

	// Only active posts appear, and applicants never leak through them.
	require.Len(t, profile.Posts, 1)
	require.Equal(t, active.ID, profile.Posts[0].ID)
	require.Empty(t, profile.Posts[0].Responses)
}

func TestCompanyPublicProfile_NotFound(t *testing.T) {
	env := setupTestEnv(t)
	r := companyRouter(env)

	w := doJSON(t, r, http.MethodGet, "/api/company/9999", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompanyUpdateSettings(t *testing.T) {
	env := setupTestEnv(t)
	r := companyRouter(env)

	_, token := env.createCompany(t, "Acme", "jobs@acme.com")
	env.seedTags(t, "robotics")

	w := doJSON(t, r, http.MethodPut, "/api/company/settings", token, map[string]interface{}{
		"name":        "Acme Robotics",
		"description": "We build robots",
		"tags":        []string{"robotics"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	var companyDTO dto.CompanyDTO
	require.NoError(t, json.Unmarshal(body["company"], &companyDTO))
	require.Equal(t, "Acme Robotics", companyDTO.Name)
	require.Len(t, companyDTO.Tags, 1)
}

func TestCompanyUpdateSettings_NameTaken(t *testing.T) {
	env := setupTestEnv(t)
	r := companyRouter(env)

	env.createCompany(t, "Globex", "jobs@globex.com")
	_, token := env.createCompany(t, "Acme", "jobs@acme.com")

	w := doJSON(t, r, http.MethodPut, "/api/company/settings", token, map[string]interface{}{
		"name": "Globex",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestDisabledCompanyCannotPost(t *testing.T) {
	env := setupTestEnv(t)
	r := companyRouter(env)

	company, token := env.createCompany(t, "Acme", "jobs@acme.com")

	w := doJSON(t, r, http.MethodPut, "/api/company/status", token, map[string]string{
		"status": "Disabled",
	})
	require.Equal(t, http.StatusOK, w.Code)

	_, err := env.postService.CreatePost(company.ID, services.CreatePostInput{
		Title:          "Go Engineer",
		Description:    "Build things",
		EmploymentType: models.EmploymentFullTime,
		Requirements:   []string{"experience"},
		StreetAddress:  "1 Main St",
		Tags:           []string{"go"},
	})
	require.ErrorIs(t, err, services.ErrAccountDisabled)

	// Re-enabling lifts the gate.
	w = doJSON(t, r, http.MethodPut, "/api/company/status", token, map[string]string{
		"status": "Active",
	})
	require.Equal(t, http.StatusOK, w.Code)

	env.seedTags(t, "go")
	_, err = env.postService.CreatePost(company.ID, services.CreatePostInput{
		Title:          "Go Engineer",
		Description:    "Build things",
		EmploymentType: models.EmploymentFullTime,
		Requirements:   []string{"experience"},
		StreetAddress:  "1 Main St",
		Tags:           []string{"go"},
	})
	require.NoError(t, err)
}

func TestReconcileSubscribers(t *testing.T) {
	env := setupTestEnv(t)

	company, _ := env.createCompany(t, "Acme", "jobs@acme.com")
	for _, email := range []string{"a@example.com", "b@example.com"} {
		user, _ := env.createUser(t, email)
		require.NoError(t, env.userService.Subscribe(user.ID, company.ID))
	}

	// Drift the counter, then reconcile it from the subscription rows.
	require.NoError(t, env.db.Model(&models.Company{}).Where("id = ?", company.ID).
		UpdateColumn("subscribers", 99).Error)

	count, err := env.companyService.ReconcileSubscribers(company.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	var refreshed models.Company
	require.NoError(t, env.db.First(&refreshed, company.ID).Error)
	require.Equal(t, int64(2), refreshed.Subscribers)
}
