package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/club-portal-api/internal/archive"
	"github.com/club-portal-api/internal/service"
	"github.com/gin-gonic/gin"
)

const contextUserKey = "auth_user_id"

// authMiddleware resolves the bearer token to a user identity and
// stores it on the request context. Requests without a valid token are
// rejected with 401.
func authMiddleware(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(contextUserKey, user.ID)
		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// currentUserID returns the authenticated user set by authMiddleware
func currentUserID(c *gin.Context) string {
	return c.GetString(contextUserKey)
}

// respondError maps service and archive errors to HTTP responses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to perform this action"})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, archive.ErrInvalidArchive):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, archive.ErrNotText):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
