package service

import (
	"log/slog"
	"strings"

	"github.com/listenupapp/bookshelf-server/internal/autotag"
	"github.com/listenupapp/bookshelf-server/internal/metrics"
)

// TaggingService exposes the auto-tagger to the API.
type TaggingService struct {
	tagger *autotag.Tagger
	logger *slog.Logger
}

// NewTaggingService creates a new tagging service.
func NewTaggingService(tagger *autotag.Tagger, logger *slog.Logger) *TaggingService {
	return &TaggingService{
		tagger: tagger,
		logger: logger,
	}
}

// Suggest returns tag suggestions for free text such as a blurb or a title plus description.
func (s *TaggingService) Suggest(texts ...string) autotag.Suggestions {
	sugg := s.tagger.Suggest(strings.Join(texts, " "))
	metrics.RecordAutotag("api", len(sugg.Moods), len(sugg.ContentWarnings), sugg.Spice > 0, sugg.Genre != "")
	return sugg
}

// Tables returns the active keyword tables.
func (s *TaggingService) Tables() autotag.Tables {
	return s.tagger.Tables()
}
