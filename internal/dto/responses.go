package dto

import (
	"html/template"
	"time"

	"feed/internal/models"
)

type AuthorResponse struct {
	ID               uint      `json:"id"`
	Username         string    `json:"username"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	FullName         string    `json:"full_name"`
	RegistrationDate time.Time `json:"registration_date"`
}

func NewAuthorResponse(a *models.Author) AuthorResponse {
	return AuthorResponse{
		ID:               a.ID,
		Username:         a.Username,
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		FullName:         a.FullName,
		RegistrationDate: a.RegistrationDate,
	}
}

// ArticleListItem is the short form used by the article list.
type ArticleListItem struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Author     *string   `json:"author"`
	CreateDate time.Time `json:"create_date"`
}

type ArticleResponse struct {
	ID             uint          `json:"id"`
	Title          string        `json:"title"`
	Content        string        `json:"content"`
	ContentHTML    template.HTML `json:"content_html"`
	Author         uint          `json:"author"`
	AuthorFullName *string       `json:"author_fullname"`
	CreateDate     time.Time     `json:"create_date"`
	UpdateDate     time.Time     `json:"update_date"`
	IsUpdated      bool          `json:"is_updated"`
}

type CommentResponse struct {
	ID            uint              `json:"id"`
	CommentText   string            `json:"comment_text"`
	Author        *string           `json:"author"`
	AuthorID      uint              `json:"author_id"`
	Article       uint              `json:"article"`
	ParentComment *uint             `json:"parent_comment"`
	CountOfLikes  uint              `json:"count_of_likes"`
	CreateDate    time.Time         `json:"create_date"`
	UpdateDate    time.Time         `json:"update_date"`
	IsUpdated     bool              `json:"is_updated"`
	ChildComments []CommentResponse `json:"child_comments"`
}

func NewCommentResponse(c *models.Comment, authorName *string) CommentResponse {
	return CommentResponse{
		ID:            c.ID,
		CommentText:   c.CommentText,
		Author:        authorName,
		AuthorID:      c.AuthorID,
		Article:       c.ArticleID,
		ParentComment: c.ParentCommentID,
		CountOfLikes:  c.CountOfLikes,
		CreateDate:    c.CreateDate,
		UpdateDate:    c.UpdateDate,
		IsUpdated:     c.IsUpdated(),
	}
}

type LikeResponse struct {
	ID         uint            `json:"id"`
	Author     *string         `json:"author"`
	AuthorID   uint            `json:"author_id"`
	Comment    uint            `json:"comment"`
	Reaction   models.Reaction `json:"reaction"`
	Emoji      string          `json:"emoji"`
	CreateDate time.Time       `json:"create_date"`
}

func NewLikeResponse(l *models.LikeOnComment, authorName *string) LikeResponse {
	return LikeResponse{
		ID:         l.ID,
		Author:     authorName,
		AuthorID:   l.AuthorID,
		Comment:    l.CommentID,
		Reaction:   l.Reaction,
		Emoji:      l.Reaction.Emoji(),
		CreateDate: l.CreateDate,
	}
}
