package dto

import (
	"bytes"
	"encoding/json"

	"feed/internal/models"
)

// NullableID distinguishes an absent JSON field from an explicit null.
type NullableID struct {
	Set   bool
	Value *uint
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v uint
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == 0 {
		n.Value = nil
		return nil
	}
	n.Value = &v
	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() []FieldError {
	return Required("login", Text("username", r.Username), Text("password", r.Password))
}

// AuthorRequest is used for registration and both update verbs. Nil pointers
// are fields the caller did not send.
type AuthorRequest struct {
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	FullName  *string `json:"full_name"`
}

// composedFullName is the full name the author will end up with when full
// names are derived from first and last name.
func (r AuthorRequest) composedFullName() *string {
	a := models.Author{FirstName: deref(r.FirstName), LastName: deref(r.LastName), FullName: deref(r.FullName)}
	a.ComposeFullName()
	return &a.FullName
}

func (r AuthorRequest) ValidateCreate() []FieldError {
	errs := Required("author",
		TextPtr("username", r.Username),
		TextPtr("password", r.Password),
		TextPtr("full_name", r.composedFullName()),
	)
	return append(errs, r.limits()...)
}

func (r AuthorRequest) ValidateReplace() []FieldError {
	errs := Required("author",
		TextPtr("username", r.Username),
		TextPtr("full_name", r.composedFullName()),
	)
	return append(errs, r.limits()...)
}

func (r AuthorRequest) ValidatePatch() []FieldError {
	var errs []FieldError
	if r.Username != nil {
		errs = append(errs, Required("author", TextPtr("username", r.Username))...)
	}
	if r.Password != nil {
		errs = append(errs, Required("author", TextPtr("password", r.Password))...)
	}
	return append(errs, r.limits()...)
}

func (r AuthorRequest) limits() []FieldError {
	var errs []FieldError
	errs = append(errs, MaxLen("author", "username", r.Username, 150)...)
	errs = append(errs, MaxLen("author", "first_name", r.FirstName, 150)...)
	errs = append(errs, MaxLen("author", "last_name", r.LastName, 150)...)
	errs = append(errs, MaxLen("author", "full_name", r.FullName, 255)...)
	return errs
}

type ArticleRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	AuthorID *uint   `json:"author_id"`
}

func (r ArticleRequest) ValidateCreate() []FieldError {
	errs := Required("article",
		IDPtr("author", r.AuthorID),
		TextPtr("title", r.Title),
		TextPtr("content", r.Content),
	)
	return append(errs, MaxLen("article", "title", r.Title, models.ArticleTitleMaxLen)...)
}

func (r ArticleRequest) ValidateReplace() []FieldError {
	errs := Required("article",
		TextPtr("title", r.Title),
		TextPtr("content", r.Content),
	)
	return append(errs, MaxLen("article", "title", r.Title, models.ArticleTitleMaxLen)...)
}

func (r ArticleRequest) ValidatePatch() []FieldError {
	var errs []FieldError
	if r.Title != nil {
		errs = append(errs, Required("article", TextPtr("title", r.Title))...)
	}
	if r.Content != nil {
		errs = append(errs, Required("article", TextPtr("content", r.Content))...)
	}
	return append(errs, MaxLen("article", "title", r.Title, models.ArticleTitleMaxLen)...)
}

type CreateCommentRequest struct {
	CommentText     string `json:"comment_text"`
	ArticleID       uint   `json:"-"`
	ParentCommentID *uint  `json:"parent_comment_id"`
}

func (r CreateCommentRequest) Validate() []FieldError {
	errs := Required("comment",
		Text("comment_text", r.CommentText),
		ID("article_id", r.ArticleID),
	)
	return append(errs, MaxLen("comment", "comment_text", &r.CommentText, models.CommentTextMaxLen)...)
}

// UpdateCommentRequest serves PUT and PATCH. For PUT an absent parent means
// the comment becomes top-level.
type UpdateCommentRequest struct {
	CommentText     *string    `json:"comment_text"`
	ArticleID       *uint      `json:"article"`
	ParentCommentID NullableID `json:"parent_comment"`
}

func (r UpdateCommentRequest) ValidateReplace() []FieldError {
	errs := Required("comment",
		TextPtr("comment_text", r.CommentText),
		IDPtr("article", r.ArticleID),
	)
	return append(errs, MaxLen("comment", "comment_text", r.CommentText, models.CommentTextMaxLen)...)
}

func (r UpdateCommentRequest) ValidatePatch() []FieldError {
	var errs []FieldError
	if r.CommentText != nil {
		errs = append(errs, Required("comment", TextPtr("comment_text", r.CommentText))...)
	}
	if r.ArticleID != nil {
		errs = append(errs, Required("comment", IDPtr("article", r.ArticleID))...)
	}
	return append(errs, MaxLen("comment", "comment_text", r.CommentText, models.CommentTextMaxLen)...)
}

type LikeRequest struct {
	Reaction string `json:"reaction"`
}

// Validate checks presence and membership of the closed reaction set.
func (r LikeRequest) Validate() []FieldError {
	if errs := Required("like", Text("reaction", r.Reaction)); len(errs) > 0 {
		return errs
	}
	if _, ok := models.ParseReaction(r.Reaction); !ok {
		return []FieldError{invalid("like", "reaction")}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
