package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hiremeo/job-board-api/internal/constants"
	"github.com/hiremeo/job-board-api/internal/dto"
	apierrors "github.com/hiremeo/job-board-api/internal/errors"
	"github.com/hiremeo/job-board-api/internal/middleware"
	"github.com/hiremeo/job-board-api/internal/services"
)

// AuthHandler coordinates login and account-level HTTP handlers shared by
// both principal kinds.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates a user account and returns a token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, token, err := h.authService.LoginUser(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthUserResponse{
		Token: token,
		User:  dto.ToUserDTO(*user),
	})
}

// CompanyLogin authenticates a company account and returns a token.
func (h *AuthHandler) CompanyLogin(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	company, token, err := h.authService.LoginCompany(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthCompanyResponse{
		Token:   token,
		Company: dto.ToCompanyDTO(*company),
	})
}

// GetCurrentAccount returns the authenticated account, branching on the
// principal kind.
func (h *AuthHandler) GetCurrentAccount(c *gin.Context) {
	principal, exists := middleware.GetPrincipal(c)
	if !exists {
		apierrors.MissingToken(c)
		return
	}

	switch principal.Kind {
	case services.PrincipalUser:
		user, err := h.authService.GetUser(principal.ID)
		if err != nil {
			respondAuthError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": dto.ToUserDTO(*user)})

	case services.PrincipalCompany:
		company, err := h.authService.GetCompany(principal.ID)
		if err != nil {
			respondAuthError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"company": dto.ToCompanyDTO(*company)})

	default:
		apierrors.InvalidToken(c)
	}
}

// ChangePassword verifies the old password and replaces it, for either kind.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	type ChangePasswordRequest struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}

	principal, exists := middleware.GetPrincipal(c)
	if !exists {
		apierrors.MissingToken(c)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.ChangePassword(principal, req.OldPassword, req.NewPassword); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrCompanyNameTaken):
		apierrors.Conflict(c, apierrors.ErrCodeAlreadyExists, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, services.ErrAccountNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrStateNotFound):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAccountDisabled):
		apierrors.AccountDisabled(c)
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, "")
	default:
		apierrors.InternalError(c, "")
	}
}
