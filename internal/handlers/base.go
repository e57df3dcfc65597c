package handlers

import (
	"errors"
	"net/http"

	"feed/internal/middleware"
	"feed/internal/models"
	"feed/internal/services"
	"feed/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgMalformedBody = "Malformed request body."
	msgInternal      = "Internal server error."
)

// base carries what every handler needs.
type base struct {
	feed *services.FeedService
	log  *zap.Logger
}

// fail writes the error body. Caller errors keep their message, anything
// else is logged and hidden behind a 500.
func (b base) fail(c *gin.Context, err error) {
	var se *services.Error
	if errors.As(err, &se) {
		c.JSON(statusOf(se), gin.H{"errors": se.Message()})
		return
	}
	middleware.RequestLog(c, b.log).Error("Request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"errors": msgInternal})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// bindJSON decodes the body into obj, answering 400 when it is not valid JSON.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": msgMalformedBody})
		return false
	}
	return true
}

// pathID reads a numeric path parameter. Anything that cannot be an id is
// reported as a missing entity of the given kind.
func (b base) pathID(c *gin.Context, param, kind string) (uint, bool) {
	id, ok := utils.ParseID(c.Param(param))
	if !ok {
		b.fail(c, services.NotFound(kind))
		return 0, false
	}
	return id, true
}

// actor returns the authenticated author or answers 401.
func (b base) actor(c *gin.Context) (*models.Author, bool) {
	author, ok := middleware.Actor(c)
	if !ok {
		b.fail(c, services.Unauthenticated())
		return nil, false
	}
	return author, true
}

func nameOf(names map[uint]string, id uint) *string {
	if name, ok := names[id]; ok {
		return &name
	}
	return nil
}
