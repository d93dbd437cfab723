package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/classpulse/wordcloud-backend/internal/service"
)

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// failDomain maps orchestrator errors onto HTTP statuses. Anything not in
// the taxonomy is an internal fault: logged, but never leaked to the client.
func failDomain(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyWord),
		errors.Is(err, service.ErrMalformedSession):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrClassNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSessionInactive),
		errors.Is(err, service.ErrQuotaExceeded):
		fail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrCodeExhausted):
		fail(c, http.StatusInternalServerError, err.Error())
	default:
		if logger != nil {
			logger.Error("unexpected error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		}
		fail(c, http.StatusInternalServerError, "internal error")
	}
}
