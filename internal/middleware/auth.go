package middleware

import (
	"context"
	"net/http"

	"feed/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const ActorKey = "actor"

const sessionAuthorKey = "author_id"

// AuthorLookup resolves the author stored in the session.
type AuthorLookup interface {
	GetAuthor(ctx context.Context, id uint) (*models.Author, error)
}

// LoadActor retrieves the author from the session and sets it on the context
func LoadActor(authors AuthorLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if id, ok := session.Get(sessionAuthorKey).(uint); ok {
			// A deleted author simply stays anonymous.
			if author, err := authors.GetAuthor(c.Request.Context(), id); err == nil {
				c.Set(ActorKey, author)
			}
		}
		c.Next()
	}
}

// AuthRequired rejects requests without an authenticated author
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Actor(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "Authentication credentials were not provided."})
			return
		}
		c.Next()
	}
}

// Actor returns the authenticated author, if any.
func Actor(c *gin.Context) (*models.Author, bool) {
	v, exists := c.Get(ActorKey)
	if !exists {
		return nil, false
	}
	author, ok := v.(*models.Author)
	return author, ok && author != nil
}

// SignIn binds the session to the author.
func SignIn(c *gin.Context, author *models.Author) error {
	session := sessions.Default(c)
	session.Set(sessionAuthorKey, author.ID)
	c.Set(ActorKey, author)
	return session.Save()
}

func SignOut(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}
