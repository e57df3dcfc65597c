package services

import (
	"context"
	"errors"
	"fmt"

	"feed/internal/models"
	"feed/internal/repository"
)

const (
	msgParentOtherArticle = "The parent comment does not belong to the article"
	msgParentCycle        = "The parent comment cannot be the comment itself or one of its replies"
	msgMoveWithReplies    = "A comment with replies cannot be moved to another article"
	msgDuplicateReaction  = "Unique constraint failed."
)

// CheckParentComment enforces that a reply lives on the same article as its parent.
func CheckParentComment(articleID uint, parent *models.Comment) error {
	if parent == nil {
		return nil
	}
	if parent.ArticleID != articleID {
		return invalid(msgParentOtherArticle)
	}
	return nil
}

func (s *FeedService) resolveAuthor(ctx context.Context, id uint) (*models.Author, error) {
	author, err := s.repo.GetAuthor(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("author")
	}
	if err != nil {
		return nil, fmt.Errorf("load author %d: %w", id, err)
	}
	return author, nil
}

func (s *FeedService) resolveArticle(ctx context.Context, id uint) (*models.Article, error) {
	article, err := s.repo.GetArticle(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("article")
	}
	if err != nil {
		return nil, fmt.Errorf("load article %d: %w", id, err)
	}
	return article, nil
}

func (s *FeedService) resolveComment(ctx context.Context, id uint, kind string) (*models.Comment, error) {
	comment, err := s.repo.GetComment(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound(kind)
	}
	if err != nil {
		return nil, fmt.Errorf("load comment %d: %w", id, err)
	}
	return comment, nil
}

// checkNotAncestor rejects a parent that is the comment itself or sits below it.
func (s *FeedService) checkNotAncestor(ctx context.Context, commentID uint, parent *models.Comment) error {
	seen := map[uint]bool{}
	for cur := parent; cur != nil; {
		if cur.ID == commentID {
			return invalid(msgParentCycle)
		}
		if cur.ParentCommentID == nil || seen[cur.ID] {
			return nil
		}
		seen[cur.ID] = true

		next, err := s.repo.GetComment(ctx, *cur.ParentCommentID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("walk parents of comment %d: %w", commentID, err)
		}
		cur = next
	}
	return nil
}

// ApplyLike stores the reaction and bumps the comment's like counter as one unit.
// A second reaction from the same author is a ConflictError and leaves the counter alone.
func (s *FeedService) ApplyLike(ctx context.Context, author *models.Author, comment *models.Comment, reaction models.Reaction) (*models.LikeOnComment, error) {
	like := &models.LikeOnComment{
		AuthorID:  author.ID,
		CommentID: comment.ID,
		Reaction:  reaction,
	}
	err := s.repo.CreateLike(ctx, like)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, conflict(msgDuplicateReaction)
	case errors.Is(err, repository.ErrNotFound):
		return nil, notFound("comment")
	case err != nil:
		return nil, fmt.Errorf("apply like of author %d on comment %d: %w", author.ID, comment.ID, err)
	}
	comment.CountOfLikes++
	return like, nil
}

// RetractLike removes the author's reaction and releases it from the counter as one unit.
func (s *FeedService) RetractLike(ctx context.Context, author *models.Author, comment *models.Comment) error {
	err := s.repo.DeleteLike(ctx, author.ID, comment.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("like")
	}
	if err != nil {
		return fmt.Errorf("retract like of author %d on comment %d: %w", author.ID, comment.ID, err)
	}
	if comment.CountOfLikes > 0 {
		comment.CountOfLikes--
	}
	return nil
}
