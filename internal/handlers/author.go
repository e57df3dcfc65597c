package handlers

import (
	"net/http"

	"feed/internal/dto"
	"feed/internal/middleware"
	"feed/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthorHandler struct {
	base
}

func NewAuthorHandler(feed *services.FeedService, log *zap.Logger) *AuthorHandler {
	return &AuthorHandler{base{feed: feed, log: log}}
}

func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.feed.ListAuthors(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]dto.AuthorResponse, 0, len(authors))
	for i := range authors {
		out = append(out, dto.NewAuthorResponse(&authors[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Create registers a new author. It is open to anonymous callers.
func (h *AuthorHandler) Create(c *gin.Context) {
	var req dto.AuthorRequest
	if !bindJSON(c, &req) {
		return
	}
	author, err := h.feed.RegisterAuthor(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAuthorResponse(author))
}

func (h *AuthorHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", "author")
	if !ok {
		return
	}
	author, err := h.feed.GetAuthor(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAuthorResponse(author))
}

func (h *AuthorHandler) Replace(c *gin.Context) { h.update(c, false) }

func (h *AuthorHandler) Patch(c *gin.Context) { h.update(c, true) }

func (h *AuthorHandler) update(c *gin.Context, partial bool) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "author")
	if !ok {
		return
	}
	var req dto.AuthorRequest
	if !bindJSON(c, &req) {
		return
	}

	author, err := h.feed.UpdateAuthor(c.Request.Context(), actor.ID, id, req, partial)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAuthorResponse(author))
}

// Delete removes the author with all articles, comments and reactions, and ends the session.
func (h *AuthorHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "author")
	if !ok {
		return
	}
	if err := h.feed.DeleteAuthor(c.Request.Context(), actor.ID, id); err != nil {
		h.fail(c, err)
		return
	}
	if err := middleware.SignOut(c); err != nil {
		h.log.Warn("Failed to clear session of deleted author", zap.Uint("author_id", id), zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}
