package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/listenupapp/bookshelf-server/internal/domain"
	"github.com/listenupapp/bookshelf-server/internal/metrics"
	"github.com/listenupapp/bookshelf-server/internal/recommend"
	"github.com/listenupapp/bookshelf-server/internal/store"
)

// RecommendationService ranks the current library snapshot.
// It holds no cache; every call reads the library fresh.
type RecommendationService struct {
	store      store.Store
	defaultMax int
	logger     *slog.Logger
}

// NewRecommendationService creates a new recommendation service.
// defaultMax replaces a non-positive Options.Max; zero or less falls back to recommend.DefaultMax.
func NewRecommendationService(store store.Store, defaultMax int, logger *slog.Logger) *RecommendationService {
	if defaultMax <= 0 {
		defaultMax = recommend.DefaultMax
	}
	return &RecommendationService{
		store:      store,
		defaultMax: defaultMax,
		logger:     logger,
	}
}

// Recommend returns the best-scoring books for the library's taste profile.
func (s *RecommendationService) Recommend(ctx context.Context, opts recommend.Options) ([]recommend.Scored, error) {
	start := time.Now()

	books, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if opts.Max <= 0 {
		opts.Max = s.defaultMax
	}
	ranked := recommend.Ranked(books, opts)

	metrics.RecordRecommendation("recommend", len(books), len(ranked), time.Since(start))
	s.logger.Debug("recommendations ranked",
		"library_size", len(books),
		"results", len(ranked),
		"excluded", len(opts.ExcludeIDs),
		"lists", len(opts.UserLists),
	)

	return ranked, nil
}

// Similar returns recommendations for the "similar to" surface of a book.
// The anchor must exist; it is penalized rather than filtered.
func (s *RecommendationService) Similar(ctx context.Context, bookID string, maxResults int) ([]recommend.Scored, error) {
	start := time.Now()

	if _, err := s.store.GetBook(ctx, bookID); err != nil {
		return nil, err
	}

	books, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if maxResults <= 0 {
		maxResults = s.defaultMax
	}
	ranked := recommend.Ranked(books, recommend.Options{
		Max:        maxResults,
		ExcludeIDs: []string{bookID},
	})

	metrics.RecordRecommendation("similar", len(books), len(ranked), time.Since(start))
	return ranked, nil
}

// snapshot loads every book with list membership as plain values.
func (s *RecommendationService) snapshot(ctx context.Context) ([]domain.Book, error) {
	all, err := s.store.ListAllBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	books := make([]domain.Book, len(all))
	for i, b := range all {
		books[i] = *b
	}
	return books, nil
}
