package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/hiremeo/job-board-api/internal/errors"
	"github.com/hiremeo/job-board-api/internal/models"
	"github.com/hiremeo/job-board-api/internal/repository"
)

// TaxonomyHandler serves the shared tag and state vocabularies.
type TaxonomyHandler struct {
	taxonomyRepo repository.TaxonomyRepository
}

// NewTaxonomyHandler creates a new TaxonomyHandler
func NewTaxonomyHandler(taxonomyRepo repository.TaxonomyRepository) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyRepo: taxonomyRepo}
}

// ListTags returns every tag, sorted by name.
func (h *TaxonomyHandler) ListTags(c *gin.Context) {
	tags, err := h.taxonomyRepo.ListTags()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tags")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// CreateTag adds a tag to the vocabulary.
func (h *TaxonomyHandler) CreateTag(c *gin.Context) {
	type CreateRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		apierrors.BadRequest(c, "Tag name is required")
		return
	}

	tag := models.Tag{Name: name}
	if err := h.taxonomyRepo.CreateTag(&tag); err != nil {
		apierrors.Conflict(c, "", "Tag already exists")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"tag":     tag,
		"message": "Tag created successfully",
	})
}

// ListStates returns every state, sorted by name.
func (h *TaxonomyHandler) ListStates(c *gin.Context) {
	states, err := h.taxonomyRepo.ListStates()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch states")
		return
	}

	c.JSON(http.StatusOK, gin.H{"states": states})
}

// CreateState adds a state to the vocabulary.
func (h *TaxonomyHandler) CreateState(c *gin.Context) {
	type CreateRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		apierrors.BadRequest(c, "State name is required")
		return
	}

	state := models.State{Name: name}
	if err := h.taxonomyRepo.CreateState(&state); err != nil {
		apierrors.Conflict(c, "", "State already exists")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"state":   state,
		"message": "State created successfully",
	})
}
