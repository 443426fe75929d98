package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/bookshelf-server/internal/autotag"
)

func (s *Server) registerAutotagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "suggestTags",
		Method:      http.MethodPost,
		Path:        "/api/v1/autotag",
		Summary:     "Suggest tags",
		Description: "Suggests moods, content warnings, spice level, and genre from free text. Matching is keyword based.",
		Tags:        []string{"Auto-tagging"},
	}, s.handleSuggestTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTagVocabulary",
		Method:      http.MethodGet,
		Path:        "/api/v1/autotag/vocabulary",
		Summary:     "Get tag vocabulary",
		Description: "Lists the moods, content warnings, and genres the auto-tagger can suggest",
		Tags:        []string{"Auto-tagging"},
	}, s.handleGetTagVocabulary)
}

// === DTOs ===

// SuggestTagsRequest carries the text to classify. All fields are joined.
type SuggestTagsRequest struct {
	Title       string `json:"title,omitempty" maxLength:"500" doc:"Book title"`
	Description string `json:"description,omitempty" maxLength:"20000" doc:"Book description"`
	Text        string `json:"text,omitempty" maxLength:"20000" doc:"Any other text, e.g. a pasted blurb"`
}

// SuggestTagsInput wraps the suggestion request.
type SuggestTagsInput struct {
	Body SuggestTagsRequest
}

// SuggestTagsOutput wraps the suggestions.
type SuggestTagsOutput struct {
	Body autotag.Suggestions
}

// TagVocabulary lists the labels the auto-tagger knows.
type TagVocabulary struct {
	Moods           []string `json:"moods" doc:"Mood labels in suggestion order"`
	ContentWarnings []string `json:"content_warnings" doc:"Content warning labels in suggestion order"`
	Genres          []string `json:"genres" doc:"Genres in priority order"`
	SpiceLevels     []int    `json:"spice_levels" doc:"Spice levels, most explicit first"`
}

// TagVocabularyOutput wraps the vocabulary.
type TagVocabularyOutput struct {
	Body TagVocabulary
}

// === Handlers ===

func (s *Server) handleSuggestTags(_ context.Context, input *SuggestTagsInput) (*SuggestTagsOutput, error) {
	sugg := s.services.Tagging.Suggest(input.Body.Title, input.Body.Description, input.Body.Text)
	return &SuggestTagsOutput{Body: sugg}, nil
}

func (s *Server) handleGetTagVocabulary(_ context.Context, _ *struct{}) (*TagVocabularyOutput, error) {
	tables := s.services.Tagging.Tables()

	vocab := TagVocabulary{
		Moods:           entryNames(tables.Moods),
		ContentWarnings: entryNames(tables.Warnings),
		Genres:          entryNames(tables.Genres),
		SpiceLevels:     make([]int, len(tables.Spice)),
	}
	for i, sp := range tables.Spice {
		vocab.SpiceLevels[i] = sp.Level
	}
	return &TagVocabularyOutput{Body: vocab}, nil
}

func entryNames(entries []autotag.Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
