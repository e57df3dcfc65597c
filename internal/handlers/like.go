package handlers

import (
	"net/http"

	"feed/internal/dto"
	"feed/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LikeHandler struct {
	base
}

func NewLikeHandler(feed *services.FeedService, log *zap.Logger) *LikeHandler {
	return &LikeHandler{base{feed: feed, log: log}}
}

func (h *LikeHandler) List(c *gin.Context) {
	commentID, ok := h.pathID(c, "comment_id", "comment")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	likes, err := h.feed.ListLikes(ctx, commentID)
	if err != nil {
		h.fail(c, err)
		return
	}

	ids := make([]uint, 0, len(likes))
	for _, l := range likes {
		ids = append(ids, l.AuthorID)
	}
	names, err := h.feed.AuthorNames(ctx, ids...)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]dto.LikeResponse, 0, len(likes))
	for i := range likes {
		out = append(out, dto.NewLikeResponse(&likes[i], nameOf(names, likes[i].AuthorID)))
	}
	c.JSON(http.StatusOK, out)
}

// GetByAuthor returns the reaction a given author left on the comment.
func (h *LikeHandler) GetByAuthor(c *gin.Context) {
	commentID, ok := h.pathID(c, "comment_id", "comment")
	if !ok {
		return
	}
	authorID, ok := h.pathID(c, "author_id", "author")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	like, err := h.feed.GetLike(ctx, authorID, commentID)
	if err != nil {
		h.fail(c, err)
		return
	}
	names, err := h.feed.AuthorNames(ctx, like.AuthorID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewLikeResponse(like, nameOf(names, like.AuthorID)))
}

// Create records the actor's reaction and bumps the comment's like counter.
func (h *LikeHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	commentID, ok := h.pathID(c, "comment_id", "comment")
	if !ok {
		return
	}
	var req dto.LikeRequest
	if !bindJSON(c, &req) {
		return
	}

	like, err := h.feed.CreateLike(c.Request.Context(), actor.ID, commentID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewLikeResponse(like, &actor.FullName))
}

// Update changes the kind of the actor's reaction. Serves PUT and PATCH.
func (h *LikeHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	commentID, ok := h.pathID(c, "comment_id", "comment")
	if !ok {
		return
	}
	var req dto.LikeRequest
	if !bindJSON(c, &req) {
		return
	}

	like, err := h.feed.UpdateLike(c.Request.Context(), actor.ID, commentID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewLikeResponse(like, &actor.FullName))
}

func (h *LikeHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	commentID, ok := h.pathID(c, "comment_id", "comment")
	if !ok {
		return
	}
	if err := h.feed.DeleteLike(c.Request.Context(), actor.ID, commentID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
