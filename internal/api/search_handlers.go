package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/bookshelf-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search books",
		Description: "Full-text search over titles, authors, series, and descriptions with tag filters",
		Tags:        []string{"Search"},
	}, s.handleSearchBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "reindexSearch",
		Method:      http.MethodPost,
		Path:        "/api/v1/search/reindex",
		Summary:     "Rebuild search index",
		Description: "Drops the search index and rebuilds it from the database",
		Tags:        []string{"Search"},
	}, s.handleReindexSearch)
}

// === DTOs ===

// SearchBooksInput contains query parameters for search.
type SearchBooksInput struct {
	Query           string   `query:"q" maxLength:"500" doc:"Search text; empty matches every book"`
	Genre           string   `query:"genre" doc:"Exact genre filter"`
	Moods           []string `query:"moods" doc:"Books must carry every mood"`
	ExcludeWarnings []string `query:"exclude_warnings" doc:"Books must carry none of these warnings"`
	MaxSpice        int      `query:"max_spice" minimum:"0" maximum:"5" doc:"Maximum spice level, 0 = any"`
	Limit           int      `query:"limit" minimum:"0" maximum:"100" doc:"Results per page, 0 = 20"`
	Offset          int      `query:"offset" minimum:"0" doc:"Results to skip"`
	Sort            string   `query:"sort" enum:"relevance,title,author,recent" default:"relevance" doc:"Sort field"`
	Order           string   `query:"order" enum:"asc,desc" default:"desc" doc:"Sort order"`
	Facets          bool     `query:"facets" doc:"Include genre and mood facet counts"`
}

// SearchBooksOutput wraps search results.
type SearchBooksOutput struct {
	Body *search.SearchResult
}

// ReindexResponse reports a rebuild.
type ReindexResponse struct {
	Indexed int `json:"indexed" doc:"Number of books indexed"`
}

// ReindexOutput wraps the rebuild report.
type ReindexOutput struct {
	Body ReindexResponse
}

// === Handlers ===

func (s *Server) handleSearchBooks(ctx context.Context, input *SearchBooksInput) (*SearchBooksOutput, error) {
	if s.services.Search == nil {
		return nil, huma.Error503ServiceUnavailable("search is not available")
	}

	result, err := s.services.Search.Search(ctx, search.SearchParams{
		Query:           input.Query,
		Genre:           input.Genre,
		Moods:           input.Moods,
		ExcludeWarnings: input.ExcludeWarnings,
		MaxSpice:        input.MaxSpice,
		Limit:           input.Limit,
		Offset:          input.Offset,
		SortBy:          input.Sort,
		SortOrder:       input.Order,
		IncludeFacets:   input.Facets,
	})
	if err != nil {
		return nil, err
	}
	return &SearchBooksOutput{Body: result}, nil
}

func (s *Server) handleReindexSearch(ctx context.Context, _ *struct{}) (*ReindexOutput, error) {
	if s.services.Search == nil {
		return nil, huma.Error503ServiceUnavailable("search is not available")
	}

	n, err := s.services.Search.Reindex(ctx)
	if err != nil {
		return nil, err
	}
	return &ReindexOutput{Body: ReindexResponse{Indexed: n}}, nil
}
