package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hiremeo/job-board-api/internal/constants"
	"github.com/hiremeo/job-board-api/internal/database"
	apierrors "github.com/hiremeo/job-board-api/internal/errors"
	"github.com/hiremeo/job-board-api/internal/models"
)

// RequirePostOwnership checks that the authenticated company owns the post
// named in the URL. Absence is 404, another company's post is 403; the two
// cases are deliberately distinguishable.
func RequirePostOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		postIDStr := c.Param("id")
		postID, err := strconv.ParseUint(postIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid post ID")
			c.Abort()
			return
		}

		companyID, exists := GetCompanyID(c)
		if !exists {
			apierrors.Forbidden(c, "Only companies may perform this action")
			c.Abort()
			return
		}

		var post models.Post
		if err := database.GetDB().First(&post, postID).Error; err != nil {
			apierrors.NotFound(c, "Post not found")
			c.Abort()
			return
		}

		if post.CompanyID != companyID {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPost, post)
		c.Next()
	}
}

// GetPost retrieves the post loaded by RequirePostOwnership from context
func GetPost(c *gin.Context) (models.Post, bool) {
	value, exists := c.Get(constants.ContextKeyPost)
	if !exists {
		return models.Post{}, false
	}

	post, ok := value.(models.Post)
	if !ok {
		return models.Post{}, false
	}
	return post, true
}
