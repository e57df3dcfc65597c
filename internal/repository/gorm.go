package repository

import (
	"context"
	"errors"
	"fmt"

	"feed/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRepository stores everything in the relational database. Cascades and
// the (author, comment) uniqueness are enforced by the schema.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

func (r *GormRepository) CreateAuthor(ctx context.Context, author *models.Author) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(author).Error)
}

func (r *GormRepository) GetAuthor(ctx context.Context, id uint) (*models.Author, error) {
	var author models.Author
	if err := r.db.WithContext(ctx).First(&author, id).Error; err != nil {
		return nil, translate(err)
	}
	return &author, nil
}

func (r *GormRepository) GetAuthorByUsername(ctx context.Context, username string) (*models.Author, error) {
	var author models.Author
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&author).Error; err != nil {
		return nil, translate(err)
	}
	return &author, nil
}

func (r *GormRepository) ListAuthors(ctx context.Context, ids ...uint) ([]models.Author, error) {
	var authors []models.Author
	q := r.db.WithContext(ctx).Order("id ASC")
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	if err := q.Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}

func (r *GormRepository) UpdateAuthor(ctx context.Context, author *models.Author) error {
	res := r.db.WithContext(ctx).Model(author).Omit(clause.Associations).
		Select("username", "first_name", "last_name", "full_name", "password").
		Updates(author)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAuthor removes the author and, through the schema cascades, everything
// the author owns. Comments of other authors lose this author's reactions, so
// their counters are decremented in the same transaction first.
func (r *GormRepository) DeleteAuthor(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		liked := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.LikeOnComment{}).
			Select("comment_id").
			Where("author_id = ?", id)
		if err := tx.Model(&models.Comment{}).
			Where("id IN (?) AND count_of_likes > 0", liked).
			UpdateColumn("count_of_likes", gorm.Expr("count_of_likes - ?", 1)).Error; err != nil {
			return fmt.Errorf("release reactions of author %d: %w", id, err)
		}

		res := tx.Delete(&models.Author{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *GormRepository) CreateArticle(ctx context.Context, article *models.Article) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(article).Error)
}

func (r *GormRepository) GetArticle(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, translate(err)
	}
	return &article, nil
}

func (r *GormRepository) ListArticles(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	if err := r.db.WithContext(ctx).Order("create_date DESC, id DESC").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *GormRepository) UpdateArticle(ctx context.Context, article *models.Article) error {
	res := r.db.WithContext(ctx).Model(article).Omit(clause.Associations).
		Select("title", "content", "author_id", "update_date").
		Updates(article)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) DeleteArticle(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Article{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.CountOfLikes = 0
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error)
}

func (r *GormRepository) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (r *GormRepository) ListComments(ctx context.Context, filter CommentFilter) ([]models.Comment, error) {
	q := r.db.WithContext(ctx).Order("create_date ASC, id ASC")
	if filter.ArticleID != 0 {
		q = q.Where("article_id = ?", filter.ArticleID)
	}
	if filter.TopLevel {
		q = q.Where("parent_comment_id IS NULL")
	} else if filter.ParentID != nil {
		q = q.Where("parent_comment_id = ?", *filter.ParentID)
	}

	var comments []models.Comment
	if err := q.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateComment never writes count_of_likes; only the like operations own it.
func (r *GormRepository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	res := r.db.WithContext(ctx).Model(comment).Omit(clause.Associations).
		Select("comment_text", "article_id", "parent_comment_id", "update_date").
		Updates(comment)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) DeleteComment(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) CreateLike(ctx context.Context, like *models.LikeOnComment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Check if already reacted
		var existing int64
		if err := tx.Model(&models.LikeOnComment{}).
			Where("author_id = ? AND comment_id = ?", like.AuthorID, like.CommentID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicate
		}

		if err := tx.Omit(clause.Associations).Create(like).Error; err != nil {
			return translate(err)
		}

		res := tx.Model(&models.Comment{}).Where("id = ?", like.CommentID).
			UpdateColumn("count_of_likes", gorm.Expr("count_of_likes + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *GormRepository) GetLike(ctx context.Context, authorID, commentID uint) (*models.LikeOnComment, error) {
	var like models.LikeOnComment
	if err := r.db.WithContext(ctx).
		Where("author_id = ? AND comment_id = ?", authorID, commentID).
		First(&like).Error; err != nil {
		return nil, translate(err)
	}
	return &like, nil
}

func (r *GormRepository) ListLikes(ctx context.Context, commentID uint) ([]models.LikeOnComment, error) {
	var likes []models.LikeOnComment
	if err := r.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Order("id ASC").
		Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

func (r *GormRepository) UpdateLike(ctx context.Context, like *models.LikeOnComment) error {
	res := r.db.WithContext(ctx).Model(&models.LikeOnComment{}).
		Where("author_id = ? AND comment_id = ?", like.AuthorID, like.CommentID).
		Update("reaction", like.Reaction)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) DeleteLike(ctx context.Context, authorID, commentID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("author_id = ? AND comment_id = ?", authorID, commentID).
			Delete(&models.LikeOnComment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		return tx.Model(&models.Comment{}).
			Where("id = ? AND count_of_likes > 0", commentID).
			UpdateColumn("count_of_likes", gorm.Expr("count_of_likes - ?", 1)).Error
	})
}
