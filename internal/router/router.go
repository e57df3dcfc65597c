package router

import (
	"context"

	"feed/internal/handlers"
	"feed/internal/middleware"
	"feed/internal/services"
	"feed/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the collaborators the handlers are built from.
type Deps struct {
	Feed     *services.FeedService
	Markdown *utils.MarkdownRenderer
	Log      *zap.Logger
	// Ping checks the backing store for /healthz. Optional.
	Ping func(context.Context) error

	SessionName  string
	SessionStore sessions.Store
}

// New builds the engine with the middleware chain and all routes.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(sessions.Sessions(d.SessionName, d.SessionStore))
	r.Use(middleware.LoadActor(d.Feed))

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Handlers
	authHandler := handlers.NewAuthHandler(d.Feed, d.Log)
	authorHandler := handlers.NewAuthorHandler(d.Feed, d.Log)
	articleHandler := handlers.NewArticleHandler(d.Feed, d.Markdown, d.Log)
	commentHandler := handlers.NewCommentHandler(d.Feed, d.Log)
	likeHandler := handlers.NewLikeHandler(d.Feed, d.Log)
	healthHandler := handlers.NewHealthHandler(d.Ping, d.Log)

	// 公共路由 (Public Routes)
	r.GET("/healthz", healthHandler.Check)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	r.GET("/author", authorHandler.List)
	r.POST("/author", authorHandler.Create) // registration
	r.GET("/author/:id", authorHandler.Get)

	r.GET("/article", articleHandler.List)
	r.GET("/article/:id", articleHandler.Get)

	r.GET("/articles/:article_id/comments", commentHandler.List) // top-level comments with replies
	r.GET("/comments/:id", commentHandler.Get)

	r.GET("/comment/:comment_id/like", likeHandler.List)
	r.GET("/comment/:comment_id/like/:author_id", likeHandler.GetByAuthor)

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.PUT("/author/:id", authorHandler.Replace)
		authorized.PATCH("/author/:id", authorHandler.Patch)
		authorized.DELETE("/author/:id", authorHandler.Delete)

		authorized.POST("/article", articleHandler.Create)
		authorized.POST("/author/:id/article", articleHandler.CreateForAuthor)
		authorized.PUT("/article/:id", articleHandler.Replace)
		authorized.PATCH("/article/:id", articleHandler.Patch)
		authorized.DELETE("/article/:id", articleHandler.Delete)

		authorized.POST("/articles/:article_id/comments", commentHandler.Create)
		authorized.PUT("/comments/:id", commentHandler.Replace)
		authorized.PATCH("/comments/:id", commentHandler.Patch)
		authorized.DELETE("/comments/:id", commentHandler.Delete)

		// Reactions of the current author
		authorized.POST("/comment/:comment_id/like", likeHandler.Create)
		authorized.PUT("/comment/:comment_id/like", likeHandler.Update)
		authorized.PATCH("/comment/:comment_id/like", likeHandler.Update)
		authorized.DELETE("/comment/:comment_id/like", likeHandler.Delete)
	}
}
