package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unicatalog/internal/pkg/apperrors"
	"github.com/yigit/unicatalog/internal/pkg/logger"
)

// HandleAPIError maps service errors onto status codes. Only validation
// failures carry a body: the field map itself.
func HandleAPIError(c *gin.Context, err error) {
	if v, ok := apperrors.AsValidation(err); ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, v.Fields)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.AbortWithStatus(http.StatusNotFound)
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		c.AbortWithStatus(http.StatusConflict)
	case apperrors.Is(err, apperrors.ErrPermissionDenied, apperrors.ErrTokenInvalid, apperrors.ErrTokenExpired):
		c.AbortWithStatus(http.StatusForbidden)
	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
