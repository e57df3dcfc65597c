package handlers

import (
	"fmt"
	"net/http"

	"feed/internal/dto"
	"feed/internal/models"
	"feed/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommentHandler struct {
	base
}

func NewCommentHandler(feed *services.FeedService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{base{feed: feed, log: log}}
}

// List returns the top-level comments of an article, replies nested to any depth.
func (h *CommentHandler) List(c *gin.Context) {
	articleID, ok := h.pathID(c, "article_id", "article")
	if !ok {
		return
	}
	tree, err := h.tree(c, articleID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tree.Roots())
}

// Create posts a comment on the article in the path, a reply when parent_comment_id is set.
func (h *CommentHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	articleID, ok := h.pathID(c, "article_id", "article")
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	req.ArticleID = articleID

	comment, err := h.feed.CreateComment(c.Request.Context(), actor.ID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, http.StatusCreated, comment)
}

func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", "comment")
	if !ok {
		return
	}
	comment, err := h.feed.GetComment(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, comment)
}

func (h *CommentHandler) Replace(c *gin.Context) { h.update(c, false) }

func (h *CommentHandler) Patch(c *gin.Context) { h.update(c, true) }

func (h *CommentHandler) update(c *gin.Context, partial bool) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "comment")
	if !ok {
		return
	}
	var req dto.UpdateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.feed.UpdateComment(c.Request.Context(), actor.ID, id, req, partial)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, comment)
}

// Delete removes the comment together with its replies and reactions.
func (h *CommentHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "comment")
	if !ok {
		return
	}
	if err := h.feed.DeleteComment(c.Request.Context(), actor.ID, id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) tree(c *gin.Context, articleID uint) (*commentTree, error) {
	ctx := c.Request.Context()
	comments, err := h.feed.ArticleComments(ctx, articleID)
	if err != nil {
		return nil, err
	}
	names, err := h.feed.AuthorNames(ctx, authorIDs(comments)...)
	if err != nil {
		return nil, err
	}
	return newCommentTree(comments, names), nil
}

// respond serializes one comment with its replies.
func (h *CommentHandler) respond(c *gin.Context, status int, comment *models.Comment) {
	tree, err := h.tree(c, comment.ArticleID)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp, ok := tree.Find(comment.ID)
	if !ok {
		h.fail(c, fmt.Errorf("comment %d missing from article %d", comment.ID, comment.ArticleID))
		return
	}
	c.JSON(status, resp)
}
