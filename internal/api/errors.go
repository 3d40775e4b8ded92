package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sentitube/sentitube/internal/youtube"
)

// Error is an API error with the HTTP status it maps onto
type Error struct {
	Status  int
	Message string
}

// NewError creates a new API error
func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// respondError maps an error onto the response status for the comment
// endpoints: invalid ids are client errors, a missing video is 404, and
// everything else (upstream or provider failure) is a generic server error.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var apiErr *Error
	switch {
	case errors.As(err, &apiErr):
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
	case errors.Is(err, youtube.ErrInvalidVideoID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid video id"})
	case errors.Is(err, youtube.ErrVideoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
	default:
		logger.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
