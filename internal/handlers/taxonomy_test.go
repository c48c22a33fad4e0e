package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/hiremeo/job-board-api/internal/models"
)

func taxonomyRouter(env testEnv) *gin.Engine {
	handler := NewTaxonomyHandler(env.taxonomyRepo)

	r := gin.New()
	r.GET("/api/tags", handler.ListTags)
	r.POST("/api/tags", handler.CreateTag)
	r.GET("/api/states", handler.ListStates)
	r.POST("/api/states", handler.CreateState)
	return r
}

func TestTags(t *testing.T) {
	env := setupTestEnv(t)
	r := taxonomyRouter(env)

	// The vocabulary endpoints are public, no token needed.
	w := doJSON(t, r, http.MethodPost, "/api/tags", "", map[string]string{"name": "backend"})
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate names conflict, the vocabulary is a set.
	w = doJSON(t, r, http.MethodPost, "/api/tags", "", map[string]string{"name": "backend"})
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/tags", "", map[string]string{"name": "go"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/tags", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	var tags []models.Tag
	require.NoError(t, json.Unmarshal(body["tags"], &tags))

	// Sorted by name.
	require.Len(t, tags, 2)
	require.Equal(t, "backend", tags[0].Name)
	require.Equal(t, "go", tags[1].Name)
}

func TestStates(t *testing.T) {
	env := setupTestEnv(t)
	r := taxonomyRouter(env)

	w := doJSON(t, r, http.MethodPost, "/api/states", "", map[string]string{"name": "California"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/states", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	var states []models.State
	require.NoError(t, json.Unmarshal(body["states"], &states))
	require.Len(t, states, 1)
	require.Equal(t, "California", states[0].Name)
}
