package handlers

import (
	"net/http"

	"feed/internal/dto"
	"feed/internal/models"
	"feed/internal/services"
	"feed/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ArticleHandler struct {
	base
	markdown *utils.MarkdownRenderer
}

func NewArticleHandler(feed *services.FeedService, markdown *utils.MarkdownRenderer, log *zap.Logger) *ArticleHandler {
	return &ArticleHandler{base: base{feed: feed, log: log}, markdown: markdown}
}

// List returns every article, newest first, in the short form.
func (h *ArticleHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	articles, err := h.feed.ListArticles(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	ids := make([]uint, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.AuthorID)
	}
	names, err := h.feed.AuthorNames(ctx, ids...)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]dto.ArticleListItem, 0, len(articles))
	for _, a := range articles {
		out = append(out, dto.ArticleListItem{
			ID:         a.ID,
			Title:      a.Title,
			Author:     nameOf(names, a.AuthorID),
			CreateDate: a.CreateDate,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Create publishes an article for the author_id in the body.
func (h *ArticleHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req dto.ArticleRequest
	if !bindJSON(c, &req) {
		return
	}
	h.create(c, actor, req)
}

// CreateForAuthor publishes an article for the author in the path.
func (h *ArticleHandler) CreateForAuthor(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	authorID, ok := h.pathID(c, "id", "author")
	if !ok {
		return
	}
	var req dto.ArticleRequest
	if !bindJSON(c, &req) {
		return
	}
	req.AuthorID = &authorID
	h.create(c, actor, req)
}

func (h *ArticleHandler) create(c *gin.Context, actor *models.Author, req dto.ArticleRequest) {
	article, err := h.feed.CreateArticle(c.Request.Context(), actor.ID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, http.StatusCreated, article)
}

func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", "article")
	if !ok {
		return
	}
	article, err := h.feed.GetArticle(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, article)
}

func (h *ArticleHandler) Replace(c *gin.Context) { h.update(c, false) }

func (h *ArticleHandler) Patch(c *gin.Context) { h.update(c, true) }

func (h *ArticleHandler) update(c *gin.Context, partial bool) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "article")
	if !ok {
		return
	}
	var req dto.ArticleRequest
	if !bindJSON(c, &req) {
		return
	}

	article, err := h.feed.UpdateArticle(c.Request.Context(), actor.ID, id, req, partial)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, article)
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "article")
	if !ok {
		return
	}
	if err := h.feed.DeleteArticle(c.Request.Context(), actor.ID, id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ArticleHandler) respond(c *gin.Context, status int, a *models.Article) {
	names, err := h.feed.AuthorNames(c.Request.Context(), a.AuthorID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(status, dto.ArticleResponse{
		ID:             a.ID,
		Title:          a.Title,
		Content:        a.Content,
		ContentHTML:    h.markdown.Render(a.Content),
		Author:         a.AuthorID,
		AuthorFullName: nameOf(names, a.AuthorID),
		CreateDate:     a.CreateDate,
		UpdateDate:     a.UpdateDate,
		IsUpdated:      a.IsUpdated(),
	})
}
