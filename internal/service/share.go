package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/listenupapp/bookshelf-server/internal/domain"
	"github.com/listenupapp/bookshelf-server/internal/metrics"
	"github.com/listenupapp/bookshelf-server/internal/shareid"
	"github.com/listenupapp/bookshelf-server/internal/store"
)

// ShareService issues and resolves public share identifiers.
type ShareService struct {
	store  store.Store
	logger *slog.Logger
}

// NewShareService creates a new share service.
func NewShareService(store store.Store, logger *slog.Logger) *ShareService {
	return &ShareService{
		store:  store,
		logger: logger,
	}
}

// ShareID returns the share identifier of a stored book.
func (s *ShareService) ShareID(ctx context.Context, bookID string) (string, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return "", err
	}
	return shareid.ForBook(book), nil
}

// Resolve finds the first book, in library order, whose share identifier matches.
// Share IDs are not stored, so this scans the library.
func (s *ShareService) Resolve(ctx context.Context, shareID string) (*domain.Book, error) {
	books, err := s.store.ListAllBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}

	for _, b := range books {
		if shareid.ForBook(b) == shareID {
			metrics.RecordShareResolve(true)
			return b, nil
		}
	}

	metrics.RecordShareResolve(false)
	s.logger.Debug("share id not found", "share_id", shareID, "scanned", len(books))
	return nil, store.ErrBookNotFound.WithMessage("no book matches share id")
}
