package handlers

import (
	"net/http"

	"feed/internal/dto"
	"feed/internal/middleware"
	"feed/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	base
}

func NewAuthHandler(feed *services.FeedService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{base{feed: feed, log: log}}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	author, err := h.feed.Authenticate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := middleware.SignIn(c, author); err != nil {
		h.fail(c, err)
		return
	}

	h.log.Info("Author signed in", zap.Uint("author_id", author.ID))
	c.JSON(http.StatusOK, dto.NewAuthorResponse(author))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.SignOut(c); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
