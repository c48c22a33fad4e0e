package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hiremeo/job-board-api/internal/constants"
	"github.com/hiremeo/job-board-api/internal/dto"
	apierrors "github.com/hiremeo/job-board-api/internal/errors"
	"github.com/hiremeo/job-board-api/internal/middleware"
	"github.com/hiremeo/job-board-api/internal/models"
	"github.com/hiremeo/job-board-api/internal/services"
)

// CompanyHandler coordinates company-side HTTP handlers.
type CompanyHandler struct {
	authService    *services.AuthService
	companyService *services.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(authService *services.AuthService, companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		authService:    authService,
		companyService: companyService,
	}
}

// Signup registers a new company account.
func (h *CompanyHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Name     string   `json:"name" binding:"required"`
		Email    string   `json:"email" binding:"required,email"`
		Password string   `json:"password" binding:"required"`
		Tags     []string `json:"tags"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	company, token, err := h.authService.SignupCompany(services.CompanySignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Tags:     req.Tags,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthCompanyResponse{
		Token:   token,
		Company: dto.ToCompanyDTO(*company),
	})
}

// UpdateSettings edits the authenticated company's profile.
func (h *CompanyHandler) UpdateSettings(c *gin.Context) {
	type SettingsRequest struct {
		Name          string   `json:"name" binding:"required"`
		Description   string   `json:"description"`
		StreetAddress string   `json:"street_address"`
		StateID       *uint64  `json:"state_id"`
		Tags          []string `json:"tags"`
	}

	companyID, exists := middleware.GetCompanyID(c)
	if !exists {
		apierrors.Forbidden(c, "Only companies may perform this action")
		return
	}

	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	company, err := h.companyService.UpdateSettings(companyID, services.CompanySettingsInput{
		Name:          req.Name,
		Description:   req.Description,
		StreetAddress: req.StreetAddress,
		StateID:       req.StateID,
		Tags:          req.Tags,
	})
	if err != nil {
		respondCompanyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"company": dto.ToCompanyDTO(*company),
		"message": "Company updated successfully",
	})
}

// UploadProfilePicture replaces the company's profile picture blob.
func (h *CompanyHandler) UploadProfilePicture(c *gin.Context) {
	companyID, exists := middleware.GetCompanyID(c)
	if !exists {
		apierrors.Forbidden(c, "Only companies may perform this action")
		return
	}

	file, header, err := c.Request.FormFile("profile_picture")
	if err != nil {
		apierrors.BadRequest(c, "Image was not passed")
		return
	}
	defer file.Close()

	if header.Size > constants.MaxUploadSizeBytes {
		apierrors.BadRequest(c, "File too large")
		return
	}

	company, err := h.companyService.UpdateProfilePicture(companyID, header.Filename, file)
	if err != nil {
		respondCompanyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"company": gin.H{"profile_picture": company.ProfilePicture},
		"message": "Company profile picture updated successfully",
	})
}

// SetStatus toggles the account between Active and Disabled.
func (h *CompanyHandler) SetStatus(c *gin.Context) {
	type StatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	companyID, exists := middleware.GetCompanyID(c)
	if !exists {
		apierrors.Forbidden(c, "Only companies may perform this action")
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	status := models.AccountStatus(req.Status)
	if status != models.AccountStatusActive && status != models.AccountStatusDisabled {
		apierrors.BadRequest(c, "Status must be Active or Disabled")
		return
	}

	company, err := h.companyService.SetStatus(companyID, status)
	if err != nil {
		respondCompanyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": dto.ToCompanyDTO(*company)})
}

// GetPublicProfile returns a company and its active posts, no auth required.
func (h *CompanyHandler) GetPublicProfile(c *gin.Context) {
	companyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid company ID")
		return
	}

	company, posts, err := h.companyService.GetPublicProfile(companyID)
	if err != nil {
		respondCompanyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": dto.CompanyPublicDTO{
		CompanyDTO: dto.ToCompanyDTO(*company),
		Posts:      posts,
	}})
}

func respondCompanyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrCompanyNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAccountDisabled):
		apierrors.AccountDisabled(c)
	case errors.Is(err, services.ErrCompanyNameTaken):
		apierrors.Conflict(c, apierrors.ErrCodeAlreadyExists, err.Error())
	case errors.Is(err, services.ErrStateNotFound):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
