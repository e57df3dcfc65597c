package services

import (
	"context"
	"errors"
	"fmt"

	"feed/internal/dto"
	"feed/internal/models"
	"feed/internal/repository"
)

func (s *FeedService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.resolveComment(ctx, id, "comment")
}

// ArticleComments returns every comment of the article, replies included,
// oldest first.
func (s *FeedService) ArticleComments(ctx context.Context, articleID uint) ([]models.Comment, error) {
	if _, err := s.resolveArticle(ctx, articleID); err != nil {
		return nil, err
	}
	comments, err := s.repo.ListComments(ctx, repository.CommentFilter{ArticleID: articleID})
	if err != nil {
		return nil, fmt.Errorf("list comments of article %d: %w", articleID, err)
	}
	return comments, nil
}

// CreateComment posts a comment by the actor, optionally as a reply.
func (s *FeedService) CreateComment(ctx context.Context, actorID uint, req dto.CreateCommentRequest) (*models.Comment, error) {
	if err := firstInvalid(req.Validate()); err != nil {
		return nil, err
	}

	author, err := s.resolveAuthor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	article, err := s.resolveArticle(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}
	var parent *models.Comment
	if req.ParentCommentID != nil && *req.ParentCommentID != 0 {
		if parent, err = s.resolveComment(ctx, *req.ParentCommentID, "parent comment"); err != nil {
			return nil, err
		}
		if err := CheckParentComment(article.ID, parent); err != nil {
			return nil, err
		}
	}

	comment := &models.Comment{
		CommentText: req.CommentText,
		AuthorID:    author.ID,
		ArticleID:   article.ID,
	}
	if parent != nil {
		comment.ParentCommentID = &parent.ID
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("article")
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// UpdateComment replaces (partial=false) or patches a comment. Only its author may do so.
func (s *FeedService) UpdateComment(ctx context.Context, actorID, id uint, req dto.UpdateCommentRequest, partial bool) (*models.Comment, error) {
	comment, err := s.resolveComment(ctx, id, "comment")
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actorID {
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

	articleID := comment.ArticleID
	if req.ArticleID != nil {
		articleID = *req.ArticleID
	}
	if _, err := s.resolveArticle(ctx, articleID); err != nil {
		return nil, err
	}

	parentID := comment.ParentCommentID
	if !partial || req.ParentCommentID.Set {
		parentID = req.ParentCommentID.Value
	}
	if parentID != nil {
		parent, err := s.resolveComment(ctx, *parentID, "parent comment")
		if err != nil {
			return nil, err
		}
		if err := s.checkNotAncestor(ctx, comment.ID, parent); err != nil {
			return nil, err
		}
		if err := CheckParentComment(articleID, parent); err != nil {
			return nil, err
		}
	}

	if articleID != comment.ArticleID {
		replies, err := s.repo.ListComments(ctx, repository.CommentFilter{ParentID: &comment.ID})
		if err != nil {
			return nil, fmt.Errorf("list replies of comment %d: %w", id, err)
		}
		if len(replies) > 0 {
			return nil, invalid(msgMoveWithReplies)
		}
	}

	if req.CommentText != nil {
		comment.CommentText = *req.CommentText
	}
	comment.ArticleID = articleID
	comment.ParentCommentID = parentID
	comment.UpdateDate = s.now()

	if err := s.repo.UpdateComment(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("comment")
		}
		return nil, fmt.Errorf("update comment %d: %w", id, err)
	}
	return comment, nil
}

// DeleteComment removes a comment with its replies and reactions. Only its author may do so.
func (s *FeedService) DeleteComment(ctx context.Context, actorID, id uint) error {
	comment, err := s.resolveComment(ctx, id, "comment")
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID {
		return forbidden()
	}
	if err := s.repo.DeleteComment(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("comment")
		}
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	return nil
}
