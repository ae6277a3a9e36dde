package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/kairos-ev/ordertrack/internal/domain/errors"
	"github.com/kairos-ev/ordertrack/internal/domain/model"
	"github.com/kairos-ev/ordertrack/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// CurrentActor builds the acting identity from request context.
func CurrentActor(c *gin.Context) model.Actor {
	actor := model.Actor{UserID: CurrentUserID(c), Role: model.RoleCustomer}
	if val, ok := c.Get(middleware.UserRoleContextKey); ok {
		if role, ok := val.(model.Role); ok {
			actor.Role = role
		}
	}
	return actor
}

// writeDomainError maps domain sentinels to HTTP status codes.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domainErrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, domainErrors.ErrStaleWrite):
		c.JSON(http.StatusConflict, gin.H{"error": "order was modified concurrently"})
	case errors.Is(err, domainErrors.ErrInvalidStage):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown status"})
	case errors.Is(err, domainErrors.ErrStageRegression):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "status would move backwards"})
	case errors.Is(err, domainErrors.ErrInvalidAmount):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid amount"})
	case errors.Is(err, domainErrors.ErrEmptyMessage):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "empty message"})
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	default:
		c.Status(http.StatusInternalServerError)
	}
}
