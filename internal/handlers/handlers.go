package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caribelotto/results-backend/internal/apperrors"
)

// respondError maps an application error kind to an HTTP status. The
// message is safe for end users; underlying causes stay in the logs.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	if appErr, ok := err.(*apperrors.Error); ok {
		message = appErr.Message
		switch appErr.Kind {
		case apperrors.KindAuthenticationFailed:
			status = http.StatusUnauthorized
		case apperrors.KindUnauthenticated:
			status = http.StatusUnauthorized
		case apperrors.KindForbidden:
			status = http.StatusForbidden
		case apperrors.KindInvalidTransition:
			status = http.StatusConflict
		case apperrors.KindMalformedPayload:
			status = http.StatusBadRequest
		case apperrors.KindNotFound:
			status = http.StatusNotFound
		}
	}

	c.JSON(status, gin.H{"error": message})
}
