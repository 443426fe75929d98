package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookshelf-server/internal/autotag"
)

func TestAutotagHandlers_Suggest(t *testing.T) {
	_, api := setupTestServer(t, Options{})

	tests := []struct {
		name string
		body map[string]any
		want autotag.Suggestions
	}{
		{
			name: "title and description",
			body: map[string]any{
				"title":       "Hearth and Home",
				"description": "A cozy, steamy romance with a war in the background.",
			},
			want: autotag.Suggestions{
				Moods:           []string{"Cozy", "Romantic"},
				ContentWarnings: []string{"War"},
				Spice:           4,
				Genre:           "Romance",
			},
		},
		{
			name: "empty body",
			body: map[string]any{},
			want: autotag.Suggestions{Moods: []string{}, ContentWarnings: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.Post("/api/v1/autotag", tt.body)
			require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
			got := decode[autotag.Suggestions](t, resp)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAutotagHandlers_Vocabulary(t *testing.T) {
	_, api := setupTestServer(t, Options{})

	resp := api.Get("/api/v1/autotag/vocabulary")
	require.Equal(t, http.StatusOK, resp.Code)

	vocab := decode[TagVocabulary](t, resp)
	tables := autotag.DefaultTables()
	assert.Len(t, vocab.Moods, len(tables.Moods))
	assert.Len(t, vocab.ContentWarnings, len(tables.Warnings))
	assert.Equal(t, []int{5, 4, 3, 2, 1}, vocab.SpiceLevels)
	assert.Contains(t, vocab.Genres, "Romance")
	assert.Less(t, indexOf(vocab.Genres, "Romance"), indexOf(vocab.Genres, "Sci-Fi"))
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
