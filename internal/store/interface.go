// Package store defines the persistence contracts for the bookshelf server.
package store

import (
	"context"

	"github.com/listenupapp/bookshelf-server/internal/domain"
)

// BookStore persists book records keyed by ID.
type BookStore interface {
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	UpdateBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, id string) error
	// ListAllBooks returns every book with its Lists field populated,
	// ordered by creation time.
	ListAllBooks(ctx context.Context) ([]*domain.Book, error)
}

// ListStore persists named lists and their book membership.
type ListStore interface {
	CreateList(ctx context.Context, list *domain.List) error
	GetList(ctx context.Context, id string) (*domain.List, error)
	ListLists(ctx context.Context) ([]*domain.List, error)
	UpdateList(ctx context.Context, list *domain.List) error
	DeleteList(ctx context.Context, id string) error
	AddBookToList(ctx context.Context, listID, bookID string) error
	RemoveBookFromList(ctx context.Context, listID, bookID string) error
}

// Store is the full persistence surface used by services.
type Store interface {
	BookStore
	ListStore

	Ping(ctx context.Context) error
	Close() error
	SetSearchIndexer(indexer SearchIndexer)
}

// SearchIndexer keeps the search index in sync with store writes.
type SearchIndexer interface {
	IndexBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, bookID string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexBook is a no-op.
func (NoopSearchIndexer) IndexBook(context.Context, *domain.Book) error { return nil }

// DeleteBook is a no-op.
func (NoopSearchIndexer) DeleteBook(context.Context, string) error { return nil }

// NewNoopSearchIndexer creates a new no-op search indexer for testing.
func NewNoopSearchIndexer() SearchIndexer {
	return NoopSearchIndexer{}
}
