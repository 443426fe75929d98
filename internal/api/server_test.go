package api

import (
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookshelf-server/internal/autotag"
	"github.com/listenupapp/bookshelf-server/internal/search"
	"github.com/listenupapp/bookshelf-server/internal/service"
	"github.com/listenupapp/bookshelf-server/internal/store/sqlite"
)

// setupTestServer creates a server backed by a temporary database and search index.
func setupTestServer(t *testing.T, opts Options) (*Server, humatest.TestAPI) {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	dir := t.TempDir()

	st, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	index, err := search.NewBookIndex(search.Options{DataPath: dir, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	searchService := service.NewSearchService(index, st, logger)
	st.SetSearchIndexer(searchService)

	tagger := autotag.Default()
	services := &Services{
		Book:           service.NewBookService(st, tagger, logger),
		List:           service.NewListService(st, logger),
		Recommendation: service.NewRecommendationService(st, 0, logger),
		Tagging:        service.NewTaggingService(tagger, logger),
		Share:          service.NewShareService(st, logger),
		Search:         searchService,
	}

	s := NewServer(st, services, opts, logger)
	return s, humatest.Wrap(t, s.API())
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &v), resp.Body.String())
	return v
}

type errorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}
