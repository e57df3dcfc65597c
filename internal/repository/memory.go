package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"feed/internal/models"
)

// MemoryRepository keeps every table in process memory. It mirrors the schema
// rules of the relational store (cascades, unique pairs, counter updates) and
// is used as the fake in tests.
type MemoryRepository struct {
	mu sync.Mutex

	nextID   uint
	authors  map[uint]models.Author
	articles map[uint]models.Article
	comments map[uint]models.Comment
	likes    map[uint]models.LikeOnComment

	now func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		authors:  make(map[uint]models.Author),
		articles: make(map[uint]models.Article),
		comments: make(map[uint]models.Comment),
		likes:    make(map[uint]models.LikeOnComment),
		now:      time.Now,
	}
}

func (r *MemoryRepository) id() uint {
	r.nextID++
	return r.nextID
}

func (r *MemoryRepository) CreateAuthor(_ context.Context, author *models.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.authors {
		if a.Username == author.Username {
			return ErrDuplicate
		}
	}
	author.ID = r.id()
	author.RegistrationDate = r.now()
	r.authors[author.ID] = *author
	return nil
}

func (r *MemoryRepository) GetAuthor(_ context.Context, id uint) (*models.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.authors[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) GetAuthorByUsername(_ context.Context, username string) (*models.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.authors {
		if a.Username == username {
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) ListAuthors(_ context.Context, ids ...uint) ([]models.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := make(map[uint]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	authors := make([]models.Author, 0, len(r.authors))
	for id, a := range r.authors {
		if len(ids) == 0 || want[id] {
			authors = append(authors, a)
		}
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i].ID < authors[j].ID })
	return authors, nil
}

func (r *MemoryRepository) UpdateAuthor(_ context.Context, author *models.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.authors[author.ID]
	if !ok {
		return ErrNotFound
	}
	for id, a := range r.authors {
		if id != author.ID && a.Username == author.Username {
			return ErrDuplicate
		}
	}
	author.RegistrationDate = stored.RegistrationDate
	r.authors[author.ID] = *author
	return nil
}

func (r *MemoryRepository) DeleteAuthor(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.authors[id]; !ok {
		return ErrNotFound
	}
	for likeID, l := range r.likes {
		if l.AuthorID == id {
			r.deleteLikeLocked(likeID)
		}
	}
	for commentID, c := range r.comments {
		if c.AuthorID == id {
			r.deleteCommentLocked(commentID)
		}
	}
	for articleID, a := range r.articles {
		if a.AuthorID == id {
			r.deleteArticleLocked(articleID)
		}
	}
	delete(r.authors, id)
	return nil
}

func (r *MemoryRepository) CreateArticle(_ context.Context, article *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.authors[article.AuthorID]; !ok {
		return ErrNotFound
	}
	article.ID = r.id()
	article.CreateDate = r.now()
	article.UpdateDate = article.CreateDate
	r.articles[article.ID] = *article
	return nil
}

func (r *MemoryRepository) GetArticle(_ context.Context, id uint) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.articles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) ListArticles(_ context.Context) ([]models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	articles := make([]models.Article, 0, len(r.articles))
	for _, a := range r.articles {
		articles = append(articles, a)
	}
	sort.Slice(articles, func(i, j int) bool { return articles[i].ID > articles[j].ID })
	return articles, nil
}

func (r *MemoryRepository) UpdateArticle(_ context.Context, article *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.articles[article.ID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := r.authors[article.AuthorID]; !ok {
		return ErrNotFound
	}
	article.CreateDate = stored.CreateDate
	article.UpdateDate = r.now()
	r.articles[article.ID] = *article
	return nil
}

func (r *MemoryRepository) DeleteArticle(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[id]; !ok {
		return ErrNotFound
	}
	r.deleteArticleLocked(id)
	return nil
}

func (r *MemoryRepository) deleteArticleLocked(id uint) {
	for commentID, c := range r.comments {
		if c.ArticleID == id {
			r.deleteCommentLocked(commentID)
		}
	}
	delete(r.articles, id)
}

func (r *MemoryRepository) CreateComment(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.authors[comment.AuthorID]; !ok {
		return ErrNotFound
	}
	if _, ok := r.articles[comment.ArticleID]; !ok {
		return ErrNotFound
	}
	if comment.ParentCommentID != nil {
		if _, ok := r.comments[*comment.ParentCommentID]; !ok {
			return ErrNotFound
		}
	}
	comment.ID = r.id()
	comment.CountOfLikes = 0
	comment.CreateDate = r.now()
	comment.UpdateDate = comment.CreateDate
	r.comments[comment.ID] = *comment
	return nil
}

func (r *MemoryRepository) GetComment(_ context.Context, id uint) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *MemoryRepository) ListComments(_ context.Context, filter CommentFilter) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	comments := make([]models.Comment, 0)
	for _, c := range r.comments {
		if filter.ArticleID != 0 && c.ArticleID != filter.ArticleID {
			continue
		}
		if filter.TopLevel && c.ParentCommentID != nil {
			continue
		}
		if !filter.TopLevel && filter.ParentID != nil &&
			(c.ParentCommentID == nil || *c.ParentCommentID != *filter.ParentID) {
			continue
		}
		comments = append(comments, c)
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (r *MemoryRepository) UpdateComment(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.comments[comment.ID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := r.articles[comment.ArticleID]; !ok {
		return ErrNotFound
	}
	if comment.ParentCommentID != nil {
		if _, ok := r.comments[*comment.ParentCommentID]; !ok {
			return ErrNotFound
		}
	}
	stored.CommentText = comment.CommentText
	stored.ArticleID = comment.ArticleID
	stored.ParentCommentID = comment.ParentCommentID
	stored.UpdateDate = r.now()
	r.comments[stored.ID] = stored
	*comment = stored
	return nil
}

func (r *MemoryRepository) DeleteComment(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return ErrNotFound
	}
	r.deleteCommentLocked(id)
	return nil
}

// deleteCommentLocked removes a comment, its replies to any depth and their reactions.
func (r *MemoryRepository) deleteCommentLocked(id uint) {
	if _, ok := r.comments[id]; !ok {
		return
	}
	delete(r.comments, id)
	for likeID, l := range r.likes {
		if l.CommentID == id {
			delete(r.likes, likeID)
		}
	}
	for childID, c := range r.comments {
		if c.ParentCommentID != nil && *c.ParentCommentID == id {
			r.deleteCommentLocked(childID)
		}
	}
}

func (r *MemoryRepository) CreateLike(_ context.Context, like *models.LikeOnComment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.authors[like.AuthorID]; !ok {
		return ErrNotFound
	}
	comment, ok := r.comments[like.CommentID]
	if !ok {
		return ErrNotFound
	}
	for _, l := range r.likes {
		if l.AuthorID == like.AuthorID && l.CommentID == like.CommentID {
			return ErrDuplicate
		}
	}
	like.ID = r.id()
	like.CreateDate = r.now()
	r.likes[like.ID] = *like
	comment.CountOfLikes++
	r.comments[comment.ID] = comment
	return nil
}

func (r *MemoryRepository) GetLike(_ context.Context, authorID, commentID uint) (*models.LikeOnComment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.likes {
		if l.AuthorID == authorID && l.CommentID == commentID {
			return &l, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) ListLikes(_ context.Context, commentID uint) ([]models.LikeOnComment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	likes := make([]models.LikeOnComment, 0)
	for _, l := range r.likes {
		if l.CommentID == commentID {
			likes = append(likes, l)
		}
	}
	sort.Slice(likes, func(i, j int) bool { return likes[i].ID < likes[j].ID })
	return likes, nil
}

func (r *MemoryRepository) UpdateLike(_ context.Context, like *models.LikeOnComment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, l := range r.likes {
		if l.AuthorID == like.AuthorID && l.CommentID == like.CommentID {
			l.Reaction = like.Reaction
			r.likes[id] = l
			*like = l
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepository) DeleteLike(_ context.Context, authorID, commentID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, l := range r.likes {
		if l.AuthorID == authorID && l.CommentID == commentID {
			r.deleteLikeLocked(id)
			return nil
		}
	}
	return ErrNotFound
}

// deleteLikeLocked removes one reaction and releases it from the comment counter.
func (r *MemoryRepository) deleteLikeLocked(id uint) {
	l, ok := r.likes[id]
	if !ok {
		return
	}
	delete(r.likes, id)
	if c, ok := r.comments[l.CommentID]; ok && c.CountOfLikes > 0 {
		c.CountOfLikes--
		r.comments[c.ID] = c
	}
}
