package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"feed/internal/dto"
	"feed/internal/models"
	"feed/internal/repository"
	"feed/internal/utils"
)

// FeedService applies the consistency rules on top of a Repository.
// It holds no per-request state.
type FeedService struct {
	repo repository.Repository
	now  func() time.Time
}

func NewFeedService(repo repository.Repository) *FeedService {
	return &FeedService{repo: repo, now: time.Now}
}

func (s *FeedService) ListAuthors(ctx context.Context) ([]models.Author, error) {
	authors, err := s.repo.ListAuthors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

func (s *FeedService) GetAuthor(ctx context.Context, id uint) (*models.Author, error) {
	return s.resolveAuthor(ctx, id)
}

// AuthorNames maps author ids to full names for serialization.
func (s *FeedService) AuthorNames(ctx context.Context, ids ...uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	authors, err := s.repo.ListAuthors(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("load author names: %w", err)
	}
	for _, a := range authors {
		names[a.ID] = a.FullName
	}
	return names, nil
}

// RegisterAuthor creates a new author account.
func (s *FeedService) RegisterAuthor(ctx context.Context, req dto.AuthorRequest) (*models.Author, error) {
	if err := firstInvalid(req.ValidateCreate()); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(*req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	author := &models.Author{
		Username:  strings.TrimSpace(*req.Username),
		FirstName: deref(req.FirstName),
		LastName:  deref(req.LastName),
		FullName:  deref(req.FullName),
		Password:  hash,
	}
	author.ComposeFullName()

	if err := s.repo.CreateAuthor(ctx, author); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("An author with that username already exists.")
		}
		return nil, fmt.Errorf("create author: %w", err)
	}
	return author, nil
}

// Authenticate checks credentials and returns the matching author.
func (s *FeedService) Authenticate(ctx context.Context, req dto.LoginRequest) (*models.Author, error) {
	if err := firstInvalid(req.Validate()); err != nil {
		return nil, err
	}
	author, err := s.repo.GetAuthorByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("load author %q: %w", req.Username, err)
	}
	if author == nil || !utils.CheckPasswordHash(req.Password, author.Password) {
		return nil, &Error{Kind: ErrUnauthorized, Msg: "Invalid username or password."}
	}
	return author, nil
}

// UpdateAuthor replaces (partial=false) or patches an author. Only the author may change itself.
// The registration date never changes.
func (s *FeedService) UpdateAuthor(ctx context.Context, actorID, id uint, req dto.AuthorRequest, partial bool) (*models.Author, error) {
	author, err := s.resolveAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	if author.ID != actorID {
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

	if partial {
		if req.Username != nil {
			author.Username = strings.TrimSpace(*req.Username)
		}
		namesChanged := req.FirstName != nil || req.LastName != nil
		if req.FirstName != nil {
			author.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			author.LastName = *req.LastName
		}
		if req.FullName != nil {
			author.FullName = *req.FullName
		} else if namesChanged {
			author.FullName = ""
		}
	} else {
		author.Username = strings.TrimSpace(*req.Username)
		author.FirstName = deref(req.FirstName)
		author.LastName = deref(req.LastName)
		author.FullName = deref(req.FullName)
	}
	author.ComposeFullName()
	if strings.TrimSpace(author.FullName) == "" {
		return nil, invalid("The full_name of author is missing.")
	}

	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		author.Password = hash
	}

	if err := s.repo.UpdateAuthor(ctx, author); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, conflict("An author with that username already exists.")
		case errors.Is(err, repository.ErrNotFound):
			return nil, notFound("author")
		}
		return nil, fmt.Errorf("update author %d: %w", id, err)
	}
	return author, nil
}

// DeleteAuthor removes the author together with everything the author owns.
func (s *FeedService) DeleteAuthor(ctx context.Context, actorID, id uint) error {
	author, err := s.resolveAuthor(ctx, id)
	if err != nil {
		return err
	}
	if author.ID != actorID {
		return forbidden()
	}
	if err := s.repo.DeleteAuthor(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("author")
		}
		return fmt.Errorf("delete author %d: %w", id, err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
