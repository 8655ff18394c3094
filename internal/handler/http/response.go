package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shubhashmahato/kurakani/internal/service"
)

// respondError maps business errors to HTTP status codes with a uniform
// JSON body. Unknown errors become a 500 without leaking detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	case errors.Is(err, service.ErrAuthenticationFailed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, service.ErrRegistrationFailed):
		c.JSON(http.StatusConflict, gin.H{"error": "username is already taken"})
	case errors.Is(err, service.ErrNotParticipant), errors.Is(err, service.ErrNotSender):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrChatNotFound),
		errors.Is(err, service.ErrMessageNotFound),
		errors.Is(err, service.ErrCallNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// authedUserID reads the user identity set by the auth middleware.
func authedUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return 0, false
	}
	userID, ok := value.(uint)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return 0, false
	}
	return userID, true
}
