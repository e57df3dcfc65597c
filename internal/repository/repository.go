package repository

import (
	"context"
	"errors"

	"feed/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// CommentFilter narrows ListComments. Zero values mean "any".
type CommentFilter struct {
	ArticleID uint
	ParentID  *uint
	TopLevel  bool
}

// Repository is the persistence surface the services depend on.
//
// CreateLike and DeleteLike change the like row and the comment's
// count_of_likes together; callers never see one without the other.
type Repository interface {
	CreateAuthor(ctx context.Context, author *models.Author) error
	GetAuthor(ctx context.Context, id uint) (*models.Author, error)
	GetAuthorByUsername(ctx context.Context, username string) (*models.Author, error)
	ListAuthors(ctx context.Context, ids ...uint) ([]models.Author, error)
	UpdateAuthor(ctx context.Context, author *models.Author) error
	DeleteAuthor(ctx context.Context, id uint) error

	CreateArticle(ctx context.Context, article *models.Article) error
	GetArticle(ctx context.Context, id uint) (*models.Article, error)
	ListArticles(ctx context.Context) ([]models.Article, error)
	UpdateArticle(ctx context.Context, article *models.Article) error
	DeleteArticle(ctx context.Context, id uint) error

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id uint) (*models.Comment, error)
	ListComments(ctx context.Context, filter CommentFilter) ([]models.Comment, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id uint) error

	CreateLike(ctx context.Context, like *models.LikeOnComment) error
	GetLike(ctx context.Context, authorID, commentID uint) (*models.LikeOnComment, error)
	ListLikes(ctx context.Context, commentID uint) ([]models.LikeOnComment, error)
	UpdateLike(ctx context.Context, like *models.LikeOnComment) error
	DeleteLike(ctx context.Context, authorID, commentID uint) error
}
