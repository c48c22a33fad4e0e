package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/hiremeo/job-board-api/internal/errors"
	"github.com/hiremeo/job-board-api/internal/middleware"
	"github.com/hiremeo/job-board-api/internal/models"
	"github.com/hiremeo/job-board-api/internal/services"
	"github.com/hiremeo/job-board-api/internal/utils"
)

// PostHandler coordinates post lifecycle, applications and listings.
type PostHandler struct {
	postService *services.PostService
	aiService   *services.AIService
}

// NewPostHandler creates a new PostHandler. The AI service may be nil.
func NewPostHandler(postService *services.PostService, aiService *services.AIService) *PostHandler {
	return &PostHandler{
		postService: postService,
		aiService:   aiService,
	}
}

// GetPost returns a single post publicly.
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid post ID")
		return
	}

	post, err := h.postService.GetPost(postID)
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// Search runs the public search over posts and companies. Filters: name,
// comma-separated tags, state_id.
func (h *PostHandler) Search(c *gin.Context) {
	input := services.SearchInput{
		NameQuery: c.Query("name"),
	}
	if tags := c.Query("tags"); tags != "" {
		input.TagNames = strings.Split(tags, ",")
	}
	if stateStr := c.Query("state_id"); stateStr != "" {
		stateID, err := strconv.ParseUint(stateStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid state_id")
			return
		}
		input.StateID = &stateID
	}

	posts, companies, err := h.postService.Search(input)
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":     posts,
		"companies": companies,
	})
}

// TopPosts lists active posts by popularity.
func (h *PostHandler) TopPosts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	posts, total, err := h.postService.TopPosts(params.Page, params.Limit)
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// RecommendedPosts lists active posts matching the user's tags.
func (h *PostHandler) RecommendedPosts(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Forbidden(c, "Only users may perform this action")
		return
	}

	posts, err := h.postService.RecommendedForUser(userID)
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// ListMine lists the caller's posts: the owned ones for a company, the
// applied-to ones for a user.
func (h *PostHandler) ListMine(c *gin.Context) {
	principal, exists := middleware.GetPrincipal(c)
	if !exists {
		apierrors.MissingToken(c)
		return
	}

	switch principal.Kind {
	case services.PrincipalCompany:
		var status *models.PostStatus
		if statusStr := c.Query("status"); statusStr != "" {
			s := models.PostStatus(statusStr)
			switch s {
			case models.PostStatusActive, models.PostStatusSuspended, models.PostStatusDeleted:
				status = &s
			default:
				apierrors.BadRequest(c, "Invalid status filter")
				return
			}
		}

		posts, err := h.postService.ListCompanyPosts(principal.ID, status)
		if err != nil {
			respondPostError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"posts": posts})

	case services.PrincipalUser:
		responses, err := h.postService.ListUserApplications(principal.ID)
		if err != nil {
			respondPostError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"applications": responses})

	default:
		apierrors.InvalidToken(c)
	}
}

// CreatePost creates a post owned by the authenticated company.
func (h *PostHandler) CreatePost(c *gin.Context) {
	type CreateRequest struct {
		Title             string   `json:"title" binding:"required"`
		Description       string   `json:"description" binding:"required"`
		EmploymentType    string   `json:"employment_type" binding:"required"`
		Requirements      []string `json:"requirements" binding:"required"`
		Salary            int64    `json:"salary"`
		StreetAddress     string   `json:"street_address" binding:"required"`
		StateID           *uint64  `json:"state_id"`
		Tags              []string `json:"tags" binding:"required"`
		Skills            []string `json:"skills"`
		YearsOfExperience int      `json:"years_of_experience"`
	}

	companyID, exists := middleware.GetCompanyID(c)
	if !exists {
		apierrors.Forbidden(c, "Only companies may perform this action")
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	post, err := h.postService.CreatePost(companyID, services.CreatePostInput{
		Title:             req.Title,
		Description:       req.Description,
		EmploymentType:    models.EmploymentType(req.EmploymentType),
		Requirements:      req.Requirements,
		Salary:            req.Salary,
		StreetAddress:     req.StreetAddress,
		StateID:           req.StateID,
		Tags:              req.Tags,
		Skills:            req.Skills,
		YearsOfExperience: req.YearsOfExperience,
	})
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"post":    post,
		"message": "Post created successfully",
	})
}

// ChangeStatus moves the post through its state machine, owner only. The
// ownership middleware has already loaded and checked the post.
func (h *PostHandler) ChangeStatus(c *gin.Context) {
	type StatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	companyID, _ := middleware.GetCompanyID(c)
	post, exists := middleware.GetPost(c)
	if !exists {
		apierrors.InternalError(c, "")
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.postService.ChangeStatus(companyID, post.ID, models.PostStatus(req.Status))
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":    updated,
		"message": "Post status changed successfully",
	})
}

// Respond applies the authenticated user to a post.
func (h *PostHandler) Respond(c *gin.Context) {
	type RespondRequest struct {
		ResumeName string   `json:"resume_name"`
		ResumeURL  string   `json:"resume_url"`
		Skills     []string `json:"skills"`
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Forbidden(c, "Only users may perform this action")
		return
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid post ID")
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	response, err := h.postService.Respond(userID, postID, services.RespondInput{
		ResumeName: req.ResumeName,
		ResumeURL:  req.ResumeURL,
		Skills:     req.Skills,
	})
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"response": response,
		"message":  "Response submitted successfully",
	})
}

// ListResponses lists a post's applications, owner only.
func (h *PostHandler) ListResponses(c *gin.Context) {
	companyID, _ := middleware.GetCompanyID(c)
	post, exists := middleware.GetPost(c)
	if !exists {
		apierrors.InternalError(c, "")
		return
	}

	responses, err := h.postService.ListResponses(companyID, post.ID)
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"responses": responses})
}

// SetResponseStatus moves an application through review, owner only.
func (h *PostHandler) SetResponseStatus(c *gin.Context) {
	type StatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	companyID, exists := middleware.GetCompanyID(c)
	if !exists {
		apierrors.Forbidden(c, "Only companies may perform this action")
		return
	}

	responseID, err := strconv.ParseUint(c.Param("responseId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid response ID")
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	response, err := h.postService.SetResponseStatus(companyID, responseID, models.ResponseStatus(req.Status))
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response": response,
		"message":  "Response status updated successfully",
	})
}

// SuggestMetadata extracts tags and skills from a draft description.
func (h *PostHandler) SuggestMetadata(c *gin.Context) {
	type SuggestRequest struct {
		Description string   `json:"description" binding:"required"`
		KnownTags   []string `json:"known_tags"`
	}

	if h.aiService == nil {
		apierrors.RespondWithError(c, http.StatusServiceUnavailable,
			apierrors.NewAPIError(apierrors.ErrCodeInternalError, "Suggestions are not configured"))
		return
	}

	if _, exists := middleware.GetCompanyID(c); !exists {
		apierrors.Forbidden(c, "Only companies may perform this action")
		return
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	suggestion, err := h.aiService.SuggestPostMetadata(c.Request.Context(), req.KnownTags, req.Description)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate suggestions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}

func respondPostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrResponseNotFound),
		errors.Is(err, services.ErrAccountNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotPostOwner):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrAccountDisabled):
		apierrors.AccountDisabled(c)
	case errors.Is(err, services.ErrAlreadyApplied):
		apierrors.Conflict(c, apierrors.ErrCodeAlreadyApplied, err.Error())
	case errors.Is(err, services.ErrPostNotAcceptingEntries),
		errors.Is(err, services.ErrInvalidStatusTransition),
		errors.Is(err, services.ErrInvalidEmploymentType),
		errors.Is(err, services.ErrInvalidResponseStatus),
		errors.Is(err, services.ErrStateNotFound):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
