package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookshelf-server/internal/autotag"
	"github.com/listenupapp/bookshelf-server/internal/domain"
	"github.com/listenupapp/bookshelf-server/internal/store/sqlite"
)

type testEnv struct {
	store *sqlite.Store
	books *BookService
	lists *ListService
	recs  *RecommendationService
	tags  *TaggingService
	share *ShareService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	tagger := autotag.Default()
	return &testEnv{
		store: s,
		books: NewBookService(s, tagger, logger),
		lists: NewListService(s, logger),
		recs:  NewRecommendationService(s, 0, logger),
		tags:  NewTaggingService(tagger, logger),
		share: NewShareService(s, logger),
	}
}

func (e *testEnv) mustCreateBook(t *testing.T, in BookInput) *domain.Book {
	t.Helper()
	b, err := e.books.CreateBook(context.Background(), in)
	require.NoError(t, err)
	return b
}
