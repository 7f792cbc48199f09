package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/perenos/yamdb-final/internal/http-api/repository"
	"github.com/perenos/yamdb-final/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service/repository errors onto HTTP statuses. The
// mapping mirrors the error taxonomy: validation 400, authentication 401,
// permission 403, not found 404, conflict 409.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrReservedUsername),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidSlug),
		errors.Is(err, service.ErrFutureYear),
		errors.Is(err, service.ErrScoreOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotAuthenticated),
		errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrConflict),
		errors.Is(err, service.ErrCredentialsTaken),
		errors.Is(err, service.ErrReviewExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parsePagination reads limit/offset query params with sane defaults.
func parsePagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// parseIDParam parses a numeric path parameter; ok is false after a 400
// has been written.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
