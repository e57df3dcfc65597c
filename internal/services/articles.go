package services

import (
	"context"
	"errors"
	"fmt"

	"feed/internal/dto"
	"feed/internal/models"
	"feed/internal/repository"
)

func (s *FeedService) ListArticles(ctx context.Context) ([]models.Article, error) {
	articles, err := s.repo.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

func (s *FeedService) GetArticle(ctx context.Context, id uint) (*models.Article, error) {
	return s.resolveArticle(ctx, id)
}

// CreateArticle publishes an article for the author named in the request,
// which has to be the actor.
func (s *FeedService) CreateArticle(ctx context.Context, actorID uint, req dto.ArticleRequest) (*models.Article, error) {
	if err := firstInvalid(req.ValidateCreate()); err != nil {
		return nil, err
	}
	author, err := s.resolveAuthor(ctx, *req.AuthorID)
	if err != nil {
		return nil, err
	}
	if author.ID != actorID {
		return nil, forbidden()
	}

	article := &models.Article{
		Title:    *req.Title,
		Content:  *req.Content,
		AuthorID: author.ID,
	}
	if err := s.repo.CreateArticle(ctx, article); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("author")
		}
		return nil, fmt.Errorf("create article: %w", err)
	}
	return article, nil
}

// UpdateArticle replaces (partial=false) or patches an article owned by the actor.
func (s *FeedService) UpdateArticle(ctx context.Context, actorID, id uint, req dto.ArticleRequest, partial bool) (*models.Article, error) {
	article, err := s.resolveArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != actorID {
		return nil, forbidden()
	}

	if partial {
		err = firstInvalid(req.ValidatePatch())
	} else {
		err = firstInvalid(req.ValidateReplace())
	}
	if err != nil {
		return nil, err
	}

	if req.AuthorID != nil {
		author, err := s.resolveAuthor(ctx, *req.AuthorID)
		if err != nil {
			return nil, err
		}
		// Articles cannot be handed over to another author.
		if author.ID != actorID {
			return nil, forbidden()
		}
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	article.UpdateDate = s.now()

	if err := s.repo.UpdateArticle(ctx, article); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("article")
		}
		return nil, fmt.Errorf("update article %d: %w", id, err)
	}
	return article, nil
}

func (s *FeedService) DeleteArticle(ctx context.Context, actorID, id uint) error {
	article, err := s.resolveArticle(ctx, id)
	if err != nil {
		return err
	}
	if article.AuthorID != actorID {
		return forbidden()
	}
	if err := s.repo.DeleteArticle(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("article")
		}
		return fmt.Errorf("delete article %d: %w", id, err)
	}
	return nil
}
