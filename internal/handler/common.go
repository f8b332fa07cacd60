package handler

import (
	"errors"
	"net/http"

	"github.com/Vlad1805/blogmates-backend/internal/domain"
	"github.com/Vlad1805/blogmates-backend/internal/policy"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// currentViewer resolves the acting identity set by the auth middleware.
// Requests that went through OptionalAuthMiddleware without a valid token
// resolve to an anonymous viewer.
func currentViewer(c *gin.Context) policy.Viewer {
	userID, exists := c.Get("userID")
	if !exists {
		return policy.Anonymous()
	}
	return policy.User(userID.(uint))
}

// mustUserID returns the authenticated user's ID. Only valid behind
// AuthMiddleware.
func mustUserID(c *gin.Context) uint {
	userID, _ := c.Get("userID")
	return userID.(uint)
}

// respondError maps a domain error kind to its HTTP status.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
