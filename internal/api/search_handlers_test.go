package api

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookshelf-server/internal/autotag"
	"github.com/listenupapp/bookshelf-server/internal/search"
	"github.com/listenupapp/bookshelf-server/internal/service"
	"github.com/listenupapp/bookshelf-server/internal/store/sqlite"
)

func hitIDs(result search.SearchResult) []string {
	ids := make([]string, len(result.Hits))
	for i, h := range result.Hits {
		ids[i] = h.ID
	}
	return ids
}

func TestSearchHandlers(t *testing.T) {
	_, api := setupTestServer(t, Options{})

	hobbit := createBook(t, api, map[string]any{
		"title": "The Hobbit", "author": "J.R.R. Tolkien", "genre": "Fantasy",
		"moods": []string{"Adventurous", "Cozy"},
	})
	wing := createBook(t, api, map[string]any{
		"title": "Fourth Wing", "author": "Rebecca Yarros", "genre": "Fantasy",
		"moods": []string{"Adventurous"}, "content_warnings": []string{"Violence"}, "spice": 4,
	})
	beach := createBook(t, api, map[string]any{
		"title": "Beach Read", "author": "Emily Henry", "genre": "Romance", "spice": 3,
	})

	tests := []struct {
		name    string
		query   string
		want    []string
		ordered bool
	}{
		{name: "title", query: "?q=hobbit", want: []string{hobbit.ID}},
		{name: "author", query: "?q=yarros", want: []string{wing.ID}},
		{name: "genre filter", query: "?genre=Romance", want: []string{beach.ID}},
		{name: "mood filter", query: "?moods=Cozy", want: []string{hobbit.ID}},
		{name: "exclude warnings", query: "?genre=Fantasy&exclude_warnings=Violence", want: []string{hobbit.ID}},
		{name: "max spice", query: "?max_spice=3&sort=title&order=asc", want: []string{beach.ID, hobbit.ID}, ordered: true},
		{name: "sorted by title", query: "?sort=title&order=asc", want: []string{beach.ID, wing.ID, hobbit.ID}, ordered: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.Get("/api/v1/search" + tt.query)
			require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
			result := decode[search.SearchResult](t, resp)
			if tt.ordered {
				assert.Equal(t, tt.want, hitIDs(result))
			} else {
				assert.ElementsMatch(t, tt.want, hitIDs(result))
			}
		})
	}

	t.Run("facets", func(t *testing.T) {
		resp := api.Get("/api/v1/search?facets=true")
		require.Equal(t, http.StatusOK, resp.Code)
		result := decode[search.SearchResult](t, resp)
		assert.Equal(t, uint64(3), result.Total)
		require.NotEmpty(t, result.Facets.Genres)
		assert.Equal(t, search.FacetCount{Value: "fantasy", Count: 2}, result.Facets.Genres[0])
	})

	t.Run("invalid sort", func(t *testing.T) {
		resp := api.Get("/api/v1/search?sort=bogus")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("reindex", func(t *testing.T) {
		resp := api.Post("/api/v1/search/reindex")
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		assert.Equal(t, 3, decode[ReindexResponse](t, resp).Indexed)

		resp = api.Get("/api/v1/search?q=beach")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, []string{beach.ID}, hitIDs(decode[search.SearchResult](t, resp)))
	})

	t.Run("deleted books leave the index", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, api.Delete("/api/v1/books/"+hobbit.ID).Code)

		resp := api.Get("/api/v1/search?q=hobbit")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Empty(t, decode[search.SearchResult](t, resp).Hits)
	})
}

func TestSearchHandlers_Unavailable(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	services := &Services{
		Book:           service.NewBookService(st, autotag.Default(), logger),
		List:           service.NewListService(st, logger),
		Recommendation: service.NewRecommendationService(st, 0, logger),
		Tagging:        service.NewTaggingService(autotag.Default(), logger),
		Share:          service.NewShareService(st, logger),
	}
	api := humatest.Wrap(t, NewServer(st, services, Options{}, logger).API())

	resp := api.Get("/api/v1/search?q=anything")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)

	resp = api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)
	health := decode[HealthResponse](t, resp)
	assert.Equal(t, "degraded", health.Status)
	assert.Equal(t, "degraded", health.Components["search"].Status)
}
