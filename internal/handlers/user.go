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

// UserHandler coordinates user-side HTTP handlers: signup, profile,
// subscriptions and saved posts.
type UserHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, userService *services.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

// Signup registers a new user account.
func (h *UserHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Firstname     string   `json:"firstname" binding:"required"`
		Lastname      string   `json:"lastname" binding:"required"`
		Email         string   `json:"email" binding:"required,email"`
		Password      string   `json:"password" binding:"required"`
		Bio           string   `json:"bio"`
		StreetAddress string   `json:"street_address"`
		StateID       *uint64  `json:"state_id"`
		Tags          []string `json:"tags" binding:"required,min=1"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, token, err := h.authService.SignupUser(services.UserSignupInput{
		Firstname:     req.Firstname,
		Lastname:      req.Lastname,
		Email:         req.Email,
		Password:      req.Password,
		Bio:           req.Bio,
		StreetAddress: req.StreetAddress,
		StateID:       req.StateID,
		Tags:          req.Tags,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthUserResponse{
		Token: token,
		User:  dto.ToUserDTO(*user),
	})
}

// UpdateSettings edits the authenticated user's profile.
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	type SettingsRequest struct {
		Firstname     string   `json:"firstname" binding:"required"`
		Lastname      string   `json:"lastname" binding:"required"`
		Email         string   `json:"email" binding:"required,email"`
		Bio           string   `json:"bio"`
		StreetAddress string   `json:"street_address"`
		StateID       *uint64  `json:"state_id"`
		Tags          []string `json:"tags"`
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Forbidden(c, "Only users may perform this action")
		return
	}

	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateSettings(userID, services.UserSettingsInput{
		Firstname:     req.Firstname,
		Lastname:      req.Lastname,
		Email:         req.Email,
		Bio:           req.Bio,
		StreetAddress: req.StreetAddress,
		StateID:       req.StateID,
		Tags:          req.Tags,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    dto.ToUserDTO(*user),
		"message": "User profile edited successfully",
	})
}

// UpdateSkills replaces the authenticated user's skill set and experience.
func (h *UserHandler) UpdateSkills(c *gin.Context) {
	type SkillEntry struct {
		Name  string `json:"name" binding:"required"`
		Years int    `json:"years" binding:"min=0"`
	}
	type SkillsRequest struct {
		YearsOfExperience int          `json:"years_of_experience" binding:"min=0"`
		Skills            []SkillEntry `json:"skills" binding:"required"`
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Forbidden(c, "Only users may perform this action")
		return
	}

	var req SkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	skills := make([]services.SkillInput, len(req.Skills))
	for i, s := range req.Skills {
		skills[i] = services.SkillInput{Name: s.Name, Years: s.Years}
	}

	user, err := h.userService.UpdateSkills(userID, req.YearsOfExperience, skills)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    dto.ToUserDTO(*user),
		"message": "User skills and experience edited successfully",
	})
}

// UploadProfilePicture replaces the user's profile picture blob.
func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Forbidden(c, "Only users may perform this action")
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

	user, err := h.userService.UpdateProfilePicture(userID, header.Filename, file)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    gin.H{"profile_picture": user.ProfilePicture},
		"message": "User profile picture updated successfully",
	})
}

// UploadResume replaces the user's resume blob.
func (h *UserHandler) UploadResume(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Forbidden(c, "Only users may perform this action")
		return
	}

	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		apierrors.BadRequest(c, "Resume was not passed")
		return
	}
	defer file.Close()

	if header.Size > constants.MaxUploadSizeBytes {
		apierrors.BadRequest(c, "File too large")
		return
	}

	user, err := h.userService.UpdateResume(userID, header.Filename, file)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    gin.H{"resume_name": user.ResumeName, "resume_url": user.ResumeURL},
		"message": "User resume updated successfully",
	})
}

// SetStatus toggles the account between Active and Disabled.
func (h *UserHandler) SetStatus(c *gin.Context) {
	type StatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Forbidden(c, "Only users may perform this action")
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

	user, err := h.userService.SetStatus(userID, status)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserDTO(*user)})
}

// ListSubscriptions lists the companies the user follows.
func (h *UserHandler) ListSubscriptions(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Forbidden(c, "Only users may perform this action")
		return
	}

	companies, err := h.userService.ListSubscriptions(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	dtos := make([]dto.CompanyDTO, len(companies))
	for i, company := range companies {
		dtos[i] = dto.ToCompanyDTO(company)
	}
	c.JSON(http.StatusOK, gin.H{"companies": dtos})
}

// Subscribe adds a company to the user's subscribed set.
func (h *UserHandler) Subscribe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Forbidden(c, "Only users may perform this action")
		return
	}

	companyID, err := strconv.ParseUint(c.Param("companyId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid company ID")
		return
	}

	if err := h.userService.Subscribe(userID, companyID); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscribed successfully"})
}

// Unsubscribe removes a company from the user's subscribed set.
func (h *UserHandler) Unsubscribe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Forbidden(c, "Only users may perform this action")
		return
	}

	companyID, err := strconv.ParseUint(c.Param("companyId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid company ID")
		return
	}

	if err := h.userService.Unsubscribe(userID, companyID); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed successfully"})
}

// ListSavedPosts lists the user's bookmarks.
func (h *UserHandler) ListSavedPosts(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Forbidden(c, "Only users may perform this action")
		return
	}

	posts, err := h.userService.ListSavedPosts(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// SavePost bookmarks a post.
func (h *UserHandler) SavePost(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Forbidden(c, "Only users may perform this action")
		return
	}

	postID, err := strconv.ParseUint(c.Param("postId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid post ID")
		return
	}

	if err := h.userService.SavePost(userID, postID); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post saved successfully"})
}

// UnsavePost removes a bookmark.
func (h *UserHandler) UnsavePost(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Forbidden(c, "Only users may perform this action")
		return
	}

	postID, err := strconv.ParseUint(c.Param("postId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid post ID")
		return
	}

	if err := h.userService.UnsavePost(userID, postID); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post removed from saved posts"})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAccountNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAccountDisabled):
		apierrors.AccountDisabled(c)
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, apierrors.ErrCodeAlreadyExists, err.Error())
	case errors.Is(err, services.ErrCompanyNotFound),
		errors.Is(err, services.ErrPostNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadySubscribed),
		errors.Is(err, services.ErrPostAlreadySaved):
		apierrors.Conflict(c, apierrors.ErrCodeAlreadyExists, err.Error())
	case errors.Is(err, services.ErrNotSubscribed),
		errors.Is(err, services.ErrPostNotSaved),
		errors.Is(err, services.ErrStateNotFound):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
