package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/listenupapp/bookshelf-server/internal/domain"
	domainerrors "github.com/listenupapp/bookshelf-server/internal/errors"
	"github.com/listenupapp/bookshelf-server/internal/id"
	"github.com/listenupapp/bookshelf-server/internal/store"
)

const maxListNameLen = 200

// ListService orchestrates user list operations.
type ListService struct {
	store  store.Store
	logger *slog.Logger
}

// NewListService creates a new list service.
func NewListService(store store.Store, logger *slog.Logger) *ListService {
	return &ListService{
		store:  store,
		logger: logger,
	}
}

// CreateList creates a list, optionally seeded with books in the given order.
func (s *ListService) CreateList(ctx context.Context, name, description string, bookIDs []string) (*domain.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name, err := validateListName(name)
	if err != nil {
		return nil, err
	}

	listID, err := id.NewList()
	if err != nil {
		return nil, fmt.Errorf("generate list ID: %w", err)
	}

	now := time.Now()
	list := &domain.List{
		ID:          listID,
		Name:        name,
		Description: description,
		BookIDs:     []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// Prepending in reverse keeps the caller's order and drops repeats.
	for i := len(bookIDs) - 1; i >= 0; i-- {
		list.AddBook(bookIDs[i])
	}
	list.UpdatedAt = now

	if err := s.store.CreateList(ctx, list); err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}

	s.logger.Info("list created",
		"list_id", listID,
		"name", name,
		"books", len(list.BookIDs),
	)

	return list, nil
}

// GetList retrieves a list by ID.
func (s *ListService) GetList(ctx context.Context, id string) (*domain.List, error) {
	return s.store.GetList(ctx, id)
}

// ListLists returns all lists ordered by name.
func (s *ListService) ListLists(ctx context.Context) ([]*domain.List, error) {
	return s.store.ListLists(ctx)
}

// UpdateList renames a list and replaces its description.
func (s *ListService) UpdateList(ctx context.Context, id, name, description string) (*domain.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name, err := validateListName(name)
	if err != nil {
		return nil, err
	}

	list, err := s.store.GetList(ctx, id)
	if err != nil {
		return nil, err
	}

	list.Name = name
	list.Description = description
	list.UpdatedAt = time.Now()

	if err := s.store.UpdateList(ctx, list); err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}

	s.logger.Info("list updated", "list_id", id)
	return list, nil
}

// DeleteList removes a list. Its books stay in the library.
func (s *ListService) DeleteList(ctx context.Context, id string) error {
	if err := s.store.DeleteList(ctx, id); err != nil {
		return err
	}
	s.logger.Info("list deleted", "list_id", id)
	return nil
}

// AddBook puts a book at the front of a list. Adding a member again is a no-op.
func (s *ListService) AddBook(ctx context.Context, listID, bookID string) (*domain.List, error) {
	if !id.Valid(bookID, id.PrefixBook) {
		return nil, domainerrors.Validationf("invalid book id %q", bookID)
	}
	if err := s.store.AddBookToList(ctx, listID, bookID); err != nil {
		return nil, err
	}
	s.logger.Debug("book added to list", "list_id", listID, "book_id", bookID)
	return s.store.GetList(ctx, listID)
}

// RemoveBook takes a book off a list.
func (s *ListService) RemoveBook(ctx context.Context, listID, bookID string) (*domain.List, error) {
	if err := s.store.RemoveBookFromList(ctx, listID, bookID); err != nil {
		return nil, err
	}
	s.logger.Debug("book removed from list", "list_id", listID, "book_id", bookID)
	return s.store.GetList(ctx, listID)
}

func validateListName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerrors.Validation("list name cannot be empty")
	}
	if len(name) > maxListNameLen {
		return "", domainerrors.Validationf("list name must not exceed %d characters", maxListNameLen)
	}
	return name, nil
}
