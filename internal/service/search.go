package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/listenupapp/bookshelf-server/internal/domain"
	domainerrors "github.com/listenupapp/bookshelf-server/internal/errors"
	"github.com/listenupapp/bookshelf-server/internal/metrics"
	"github.com/listenupapp/bookshelf-server/internal/search"
	"github.com/listenupapp/bookshelf-server/internal/store"
)

// SearchService bridges the search index with the data store.
// It implements store.SearchIndexer so store writes keep the index current.
type SearchService struct {
	index  *search.BookIndex
	store  store.Store
	logger *slog.Logger
}

var _ store.SearchIndexer = (*SearchService)(nil)

// NewSearchService creates a new search service.
func NewSearchService(index *search.BookIndex, store store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  store,
		logger: logger,
	}
}

// Search runs a query against the index.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	result, err := s.index.Search(ctx, params)
	metrics.RecordSearch(err)
	return result, err
}

// IndexBook indexes a single book. Called by the store after writes.
func (s *SearchService) IndexBook(ctx context.Context, book *domain.Book) error {
	if err := s.index.IndexBook(ctx, book); err != nil {
		metrics.SearchIndexErrors.Inc()
		return fmt.Errorf("index book: %w", err)
	}
	s.logger.Debug("indexed book", "id", book.ID, "title", book.Title)
	return nil
}

// DeleteBook removes a book from the index.
func (s *SearchService) DeleteBook(ctx context.Context, bookID string) error {
	if err := s.index.DeleteBook(ctx, bookID); err != nil {
		metrics.SearchIndexErrors.Inc()
		return fmt.Errorf("delete book from index: %w", err)
	}
	s.logger.Debug("removed book from index", "id", bookID)
	return nil
}

// Reindex rebuilds the index from the store.
func (s *SearchService) Reindex(ctx context.Context) (int, error) {
	books, err := s.store.ListAllBooks(ctx)
	if err != nil {
		return 0, fmt.Errorf("load books: %w", err)
	}

	if err := s.index.Rebuild(); err != nil {
		return 0, domainerrors.Wrap(err, domainerrors.CodeInternal, "rebuild search index")
	}

	if err := s.index.IndexBooks(ctx, books); err != nil {
		return 0, fmt.Errorf("index books: %w", err)
	}

	s.logger.Info("search index rebuilt", "books", len(books))
	return len(books), nil
}

// EnsureIndexed reindexes when the index is empty but the store is not,
// which happens after a mapping change or a lost index directory.
func (s *SearchService) EnsureIndexed(ctx context.Context) error {
	count, err := s.index.DocumentCount()
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	if count > 0 {
		return nil
	}

	books, err := s.store.ListAllBooks(ctx)
	if err != nil {
		return fmt.Errorf("load books: %w", err)
	}
	if len(books) == 0 {
		return nil
	}

	if err := s.index.IndexBooks(ctx, books); err != nil {
		return fmt.Errorf("index books: %w", err)
	}
	s.logger.Info("search index populated from store", "books", len(books))
	return nil
}

// DocumentCount returns the number of indexed books.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}
