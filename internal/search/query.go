package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams configures a search query.
type SearchParams struct {
	Query string // User's search query; empty matches everything

	// Filters. Tag filters are case-insensitive.
	Genre           string   // Exact genre
	Moods           []string // Book must carry every mood
	ExcludeWarnings []string // Book must carry none of these warnings
	MaxSpice        int      // 0 = no limit

	// Pagination
	Limit  int
	Offset int

	// Sorting
	SortBy    string // "relevance", "title", "author", "recent"
	SortOrder string // "asc", "desc"

	IncludeFacets bool
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:     20,
		SortBy:    "relevance",
		SortOrder: "desc",
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string       `json:"query"`
	Total  uint64       `json:"total"`
	TookMs int64        `json:"took_ms"`
	Hits   []SearchHit  `json:"hits"`
	Facets SearchFacets `json:"facets,omitzero"`
}

// SearchHit represents a single matching book.
type SearchHit struct {
	ID     string   `json:"id"`
	Score  float64  `json:"score"`
	Title  string   `json:"title"`
	Author string   `json:"author,omitempty"`
	Series string   `json:"series,omitempty"`
	Genre  string   `json:"genre,omitempty"`
	Moods  []string `json:"moods,omitempty"`
	Spice  int      `json:"spice"`
}

// SearchFacets contains facet counts.
type SearchFacets struct {
	Genres []FacetCount `json:"genres,omitempty"`
	Moods  []FacetCount `json:"moods,omitempty"`
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search executes a search query.
func (s *BookIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = DefaultSearchParams().Limit
	}

	searchRequest := bleve.NewSearchRequestOptions(buildSearchQuery(params), params.Limit, params.Offset, false)
	addSorting(searchRequest, params)

	if params.IncludeFacets {
		searchRequest.AddFacet("genre", bleve.NewFacetRequest("genre", 20))
		searchRequest.AddFacet("moods", bleve.NewFacetRequest("moods", 20))
	}

	searchRequest.Fields = []string{"title", "author", "series", "genre", "moods", "spice"}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{
			ID:    hit.ID,
			Score: hit.Score,
		}
		if t, ok := hit.Fields["title"].(string); ok {
			searchHit.Title = t
		}
		if a, ok := hit.Fields["author"].(string); ok {
			searchHit.Author = a
		}
		if sr, ok := hit.Fields["series"].(string); ok {
			searchHit.Series = sr
		}
		if g, ok := hit.Fields["genre"].(string); ok {
			searchHit.Genre = g
		}
		searchHit.Moods = storedStrings(hit.Fields["moods"])
		if sp, ok := hit.Fields["spice"].(float64); ok {
			searchHit.Spice = int(sp)
		}
		result.Hits = append(result.Hits, searchHit)
	}

	if params.IncludeFacets {
		result.Facets = extractFacets(searchResult)
	}

	return result, nil
}

// storedStrings reads a stored multi-value field. Bleve returns a bare string
// for single values and []interface{} for several.
func storedStrings(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params SearchParams) query.Query {
	var must []query.Query

	if params.Query != "" {
		titleMatch := bleve.NewMatchQuery(params.Query)
		titleMatch.SetField("title")
		titleMatch.SetBoost(3.0)

		authorMatch := bleve.NewMatchQuery(params.Query)
		authorMatch.SetField("author")
		authorMatch.SetBoost(2.0)

		seriesMatch := bleve.NewMatchQuery(params.Query)
		seriesMatch.SetField("series")
		seriesMatch.SetBoost(1.5)

		descMatch := bleve.NewMatchQuery(params.Query)
		descMatch.SetField("description")
		descMatch.SetBoost(0.5)

		// Typo tolerance on titles
		fuzzyQuery := bleve.NewFuzzyQuery(strings.ToLower(params.Query))
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("title")
		fuzzyQuery.SetBoost(0.8)

		textQueries := []query.Query{titleMatch, authorMatch, seriesMatch, descMatch, fuzzyQuery}

		// Prefix for autocomplete, minimum 2 chars
		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("title")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		must = append(must, bleve.NewDisjunctionQuery(textQueries...))
	}

	if params.Genre != "" {
		gq := bleve.NewTermQuery(strings.ToLower(params.Genre))
		gq.SetField("genre")
		must = append(must, gq)
	}

	for _, mood := range params.Moods {
		mq := bleve.NewTermQuery(strings.ToLower(mood))
		mq.SetField("moods")
		must = append(must, mq)
	}

	if params.MaxSpice > 0 {
		lo, hi := 0.0, float64(params.MaxSpice)
		inclusive := true
		rq := bleve.NewNumericRangeInclusiveQuery(&lo, &hi, &inclusive, &inclusive)
		rq.SetField("spice")
		must = append(must, rq)
	}

	var mustNot []query.Query
	for _, w := range params.ExcludeWarnings {
		wq := bleve.NewTermQuery(strings.ToLower(w))
		wq.SetField("content_warnings")
		mustNot = append(mustNot, wq)
	}

	if len(mustNot) == 0 {
		switch len(must) {
		case 0:
			return bleve.NewMatchAllQuery()
		case 1:
			return must[0]
		default:
			return bleve.NewConjunctionQuery(must...)
		}
	}

	// A boolean query with only must-not clauses matches nothing.
	if len(must) == 0 {
		must = append(must, bleve.NewMatchAllQuery())
	}
	bq := bleve.NewBooleanQuery()
	bq.AddMust(must...)
	bq.AddMustNot(mustNot...)
	return bq
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params SearchParams) {
	desc := params.SortOrder == "desc"
	switch params.SortBy {
	case "title":
		if desc {
			req.SortBy([]string{"-title"})
		} else {
			req.SortBy([]string{"title"})
		}
	case "author":
		if desc {
			req.SortBy([]string{"-author", "-title"})
		} else {
			req.SortBy([]string{"author", "title"})
		}
	case "recent":
		if params.SortOrder == "asc" {
			req.SortBy([]string{"created_at"})
		} else {
			req.SortBy([]string{"-created_at"})
		}
	default:
		req.SortBy([]string{"-_score"})
	}
}

// extractFacets converts Bleve facets to our format.
func extractFacets(result *bleve.SearchResult) SearchFacets {
	facets := SearchFacets{}

	if genreFacet, ok := result.Facets["genre"]; ok && genreFacet.Terms != nil {
		for _, term := range genreFacet.Terms.Terms() {
			facets.Genres = append(facets.Genres, FacetCount{Value: term.Term, Count: term.Count})
		}
	}

	if moodFacet, ok := result.Facets["moods"]; ok && moodFacet.Terms != nil {
		for _, term := range moodFacet.Terms.Terms() {
			facets.Moods = append(facets.Moods, FacetCount{Value: term.Term, Count: term.Count})
		}
	}

	return facets
}
