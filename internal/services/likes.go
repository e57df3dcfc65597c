package services

import (
	"context"
	"errors"
	"fmt"

	"feed/internal/dto"
	"feed/internal/models"
	"feed/internal/repository"
)

func (s *FeedService) ListLikes(ctx context.Context, commentID uint) ([]models.LikeOnComment, error) {
	if _, err := s.resolveComment(ctx, commentID, "comment"); err != nil {
		return nil, err
	}
	likes, err := s.repo.ListLikes(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("list likes of comment %d: %w", commentID, err)
	}
	return likes, nil
}

func (s *FeedService) GetLike(ctx context.Context, authorID, commentID uint) (*models.LikeOnComment, error) {
	if _, err := s.resolveAuthor(ctx, authorID); err != nil {
		return nil, err
	}
	if _, err := s.resolveComment(ctx, commentID, "comment"); err != nil {
		return nil, err
	}
	like, err := s.repo.GetLike(ctx, authorID, commentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("like")
	}
	if err != nil {
		return nil, fmt.Errorf("load like of author %d on comment %d: %w", authorID, commentID, err)
	}
	return like, nil
}

// CreateLike records the actor's reaction on a comment.
func (s *FeedService) CreateLike(ctx context.Context, actorID, commentID uint, req dto.LikeRequest) (*models.LikeOnComment, error) {
	if err := firstInvalid(req.Validate()); err != nil {
		return nil, err
	}
	reaction, _ := models.ParseReaction(req.Reaction)

	author, err := s.resolveAuthor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	comment, err := s.resolveComment(ctx, commentID, "comment")
	if err != nil {
		return nil, err
	}
	return s.ApplyLike(ctx, author, comment, reaction)
}

// UpdateLike changes the kind of the actor's existing reaction. The counter is unaffected.
func (s *FeedService) UpdateLike(ctx context.Context, actorID, commentID uint, req dto.LikeRequest) (*models.LikeOnComment, error) {
	if err := firstInvalid(req.Validate()); err != nil {
		return nil, err
	}
	reaction, _ := models.ParseReaction(req.Reaction)

	if _, err := s.resolveComment(ctx, commentID, "comment"); err != nil {
		return nil, err
	}
	like, err := s.repo.GetLike(ctx, actorID, commentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("like")
	}
	if err != nil {
		return nil, fmt.Errorf("load like of author %d on comment %d: %w", actorID, commentID, err)
	}

	like.Reaction = reaction
	if err := s.repo.UpdateLike(ctx, like); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("like")
		}
		return nil, fmt.Errorf("update like of author %d on comment %d: %w", actorID, commentID, err)
	}
	return like, nil
}

// DeleteLike withdraws the actor's reaction from a comment.
func (s *FeedService) DeleteLike(ctx context.Context, actorID, commentID uint) error {
	author, err := s.resolveAuthor(ctx, actorID)
	if err != nil {
		return err
	}
	comment, err := s.resolveComment(ctx, commentID, "comment")
	if err != nil {
		return err
	}
	return s.RetractLike(ctx, author, comment)
}
