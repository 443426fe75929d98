package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookshelf-server/internal/domain"
)

// setupTestIndex creates a temporary search index for testing.
func setupTestIndex(t *testing.T) *BookIndex {
	t.Helper()

	index, err := NewBookIndex(Options{DataPath: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	return index
}

func testBooks() []*domain.Book {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []*domain.Book{
		{
			ID: "book-1", Title: "The Hobbit", Author: "J.R.R. Tolkien",
			Genre: "Fantasy", Moods: []string{"Adventurous", "Cozy"}, Spice: 0,
			Description: "A hobbit goes on an unexpected journey with dwarves.",
			CreatedAt:   now,
		},
		{
			ID: "book-2", Title: "Fourth Wing", Author: "Rebecca Yarros", Series: "The Empyrean",
			Genre: "Fantasy", Moods: []string{"Adventurous", "Romantic"}, Spice: 4,
			ContentWarnings: []string{"Violence", "Death"},
			CreatedAt:       now.Add(time.Hour),
		},
		{
			ID: "book-3", Title: "Beach Read", Author: "Emily Henry",
			Genre: "Romance", Moods: []string{"Funny", "Romantic"}, Spice: 3,
			CreatedAt: now.Add(2 * time.Hour),
		},
	}
}

func seedIndex(t *testing.T, index *BookIndex) {
	t.Helper()
	require.NoError(t, index.IndexBooks(context.Background(), testBooks()))
}

func hitIDs(result *SearchResult) []string {
	ids := make([]string, len(result.Hits))
	for i, h := range result.Hits {
		ids[i] = h.ID
	}
	return ids
}

func TestNewBookIndex(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestNewBookIndex_Reopen(t *testing.T) {
	dir := t.TempDir()

	index, err := NewBookIndex(Options{DataPath: dir})
	require.NoError(t, err)
	require.NoError(t, index.IndexBooks(context.Background(), testBooks()))
	require.NoError(t, index.Close())

	reopened, err := NewBookIndex(Options{DataPath: dir})
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestBookIndex_IndexBook(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	book := testBooks()[0]
	require.NoError(t, index.IndexBook(ctx, book))

	// Re-indexing the same id replaces the document
	book.Title = "The Hobbit Illustrated Edition"
	require.NoError(t, index.IndexBook(ctx, book))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	result, err := index.Search(ctx, SearchParams{Query: "illustrated"})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "The Hobbit Illustrated Edition", result.Hits[0].Title)
}

func TestBookIndex_DeleteBook(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()
	seedIndex(t, index)

	require.NoError(t, index.DeleteBook(ctx, "book-2"))
	require.NoError(t, index.DeleteBook(ctx, "book-missing"))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}

func TestBookIndex_IndexBooks_Cancelled(t *testing.T) {
	index := setupTestIndex(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := index.IndexBooks(ctx, testBooks())
	require.ErrorIs(t, err, context.Canceled)
}

func TestBookIndex_Search(t *testing.T) {
	index := setupTestIndex(t)
	seedIndex(t, index)

	tests := []struct {
		name   string
		params SearchParams
		want   []string
	}{
		{name: "title", params: SearchParams{Query: "hobbit"}, want: []string{"book-1"}},
		{name: "author", params: SearchParams{Query: "yarros"}, want: []string{"book-2"}},
		{name: "series", params: SearchParams{Query: "empyrean"}, want: []string{"book-2"}},
		{name: "description", params: SearchParams{Query: "dwarves"}, want: []string{"book-1"}},
		{name: "fuzzy title", params: SearchParams{Query: "hobbitt"}, want: []string{"book-1"}},
		{name: "no match", params: SearchParams{Query: "zzzzqqq"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := index.Search(context.Background(), tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hitIDs(result))
		})
	}
}

func TestBookIndex_SearchFilters(t *testing.T) {
	index := setupTestIndex(t)
	seedIndex(t, index)

	tests := []struct {
		name   string
		params SearchParams
		want   []string
	}{
		{name: "genre case-insensitive", params: SearchParams{Genre: "fantasy", SortBy: "recent", SortOrder: "asc"}, want: []string{"book-1", "book-2"}},
		{name: "all moods required", params: SearchParams{Moods: []string{"adventurous", "ROMANTIC"}}, want: []string{"book-2"}},
		{name: "exclude warnings", params: SearchParams{ExcludeWarnings: []string{"violence"}, SortBy: "recent", SortOrder: "asc"}, want: []string{"book-1", "book-3"}},
		{name: "max spice", params: SearchParams{MaxSpice: 3, SortBy: "recent", SortOrder: "asc"}, want: []string{"book-1", "book-3"}},
		{name: "query and genre", params: SearchParams{Query: "read", Genre: "Romance"}, want: []string{"book-3"}},
		{name: "match all", params: SearchParams{SortBy: "recent"}, want: []string{"book-3", "book-2", "book-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := index.Search(context.Background(), tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hitIDs(result))
		})
	}
}

func TestBookIndex_SearchStoredFields(t *testing.T) {
	index := setupTestIndex(t)
	seedIndex(t, index)

	result, err := index.Search(context.Background(), SearchParams{Query: "fourth wing"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)

	hit := result.Hits[0]
	assert.Equal(t, "book-2", hit.ID)
	assert.Equal(t, "Fourth Wing", hit.Title)
	assert.Equal(t, "Rebecca Yarros", hit.Author)
	assert.Equal(t, "The Empyrean", hit.Series)
	assert.Equal(t, "Fantasy", hit.Genre)
	assert.ElementsMatch(t, []string{"Adventurous", "Romantic"}, hit.Moods)
	assert.Equal(t, 4, hit.Spice)
}

func TestBookIndex_SearchPagination(t *testing.T) {
	index := setupTestIndex(t)
	seedIndex(t, index)

	result, err := index.Search(context.Background(), SearchParams{SortBy: "recent", Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), result.Total)
	assert.Equal(t, []string{"book-2", "book-1"}, hitIDs(result))
}

func TestBookIndex_SearchFacets(t *testing.T) {
	index := setupTestIndex(t)
	seedIndex(t, index)

	result, err := index.Search(context.Background(), SearchParams{IncludeFacets: true})
	require.NoError(t, err)

	genres := map[string]int{}
	for _, f := range result.Facets.Genres {
		genres[f.Value] = f.Count
	}
	assert.Equal(t, map[string]int{"fantasy": 2, "romance": 1}, genres)
}

func TestBookIndex_Rebuild(t *testing.T) {
	index := setupTestIndex(t)
	seedIndex(t, index)

	require.NoError(t, index.Rebuild())

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)

	require.NoError(t, index.IndexBook(context.Background(), testBooks()[0]))
	count, err = index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestStoredStrings(t *testing.T) {
	assert.Equal(t, []string{"Cozy"}, storedStrings("Cozy"))
	assert.Equal(t, []string{"a", "b"}, storedStrings([]any{"a", "b"}))
	assert.Nil(t, storedStrings(nil))
}
