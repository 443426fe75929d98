package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/bookshelf-server/internal/recommend"
)

func (s *Server) registerRecommendationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getRecommendations",
		Method:      http.MethodGet,
		Path:        "/api/v1/recommendations",
		Summary:     "Get recommendations",
		Description: "Ranks the library against the taste profile built from books rated 4 or higher",
		Tags:        []string{"Recommendations"},
	}, s.handleGetRecommendations)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSimilarBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/similar",
		Summary:     "Get similar books",
		Description: "Recommendations for the \"similar to\" surface of a book. The book itself is heavily penalized.",
		Tags:        []string{"Recommendations"},
	}, s.handleGetSimilarBooks)
}

// === DTOs ===

// RecommendationsInput contains query parameters for recommendations.
type RecommendationsInput struct {
	Max     int      `query:"max" minimum:"0" maximum:"100" doc:"Maximum results, 0 = server default"`
	Exclude []string `query:"exclude" doc:"Book IDs to penalize"`
	Lists   []string `query:"lists" doc:"List IDs whose members are deprioritized"`
	Recent  bool     `query:"recent" doc:"Accepted for client compatibility; no effect"`
}

// SimilarBooksInput contains parameters for similar books.
type SimilarBooksInput struct {
	ID  string `path:"id" doc:"Anchor book ID"`
	Max int    `query:"max" minimum:"0" maximum:"100" doc:"Maximum results, 0 = server default"`
}

// RecommendationsResponse is the ranked result.
type RecommendationsResponse struct {
	Books []recommend.Scored `json:"books" doc:"Books with their scores, best first"`
}

// RecommendationsOutput wraps the ranked result.
type RecommendationsOutput struct {
	Body RecommendationsResponse
}

// === Handlers ===

func (s *Server) handleGetRecommendations(ctx context.Context, input *RecommendationsInput) (*RecommendationsOutput, error) {
	ranked, err := s.services.Recommendation.Recommend(ctx, recommend.Options{
		Max:        input.Max,
		ExcludeIDs: input.Exclude,
		UserLists:  input.Lists,
		RecentOnly: input.Recent,
	})
	if err != nil {
		return nil, err
	}
	return &RecommendationsOutput{Body: RecommendationsResponse{Books: ranked}}, nil
}

func (s *Server) handleGetSimilarBooks(ctx context.Context, input *SimilarBooksInput) (*RecommendationsOutput, error) {
	ranked, err := s.services.Recommendation.Similar(ctx, input.ID, input.Max)
	if err != nil {
		return nil, err
	}
	return &RecommendationsOutput{Body: RecommendationsResponse{Books: ranked}}, nil
}
