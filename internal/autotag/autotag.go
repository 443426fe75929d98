// Package autotag suggests moods, content warnings, spice level, and genre for a book
// from free text such as a title, description, or pasted blurb.
//
// Matching is case-insensitive substring membership: a label is suggested when any of
// its keywords appears anywhere in the text. Short keywords can match inside unrelated
// words ("hot" in "shot"); suggestions are pre-fill hints and keep this behavior.
package autotag

import (
	"slices"
	"strings"
)

// Suggestions bundles every suggestion derived from a single text.
type Suggestions struct {
	Moods           []string `json:"moods"`
	ContentWarnings []string `json:"content_warnings"`
	Spice           int      `json:"spice"`
	Genre           string   `json:"genre,omitempty"`
}

// Tagger classifies text against a fixed set of keyword tables.
// A Tagger is immutable after construction and safe for concurrent use.
type Tagger struct {
	tables Tables
}

// New creates a Tagger over a copy of the given tables.
// Keywords are lower-cased and spice entries ordered from most to least explicit.
func New(tables Tables) *Tagger {
	t := Tables{
		Moods:    normalizeEntries(tables.Moods),
		Warnings: normalizeEntries(tables.Warnings),
		Genres:   normalizeEntries(tables.Genres),
		Spice:    make([]SpiceEntry, 0, len(tables.Spice)),
	}
	for _, e := range tables.Spice {
		t.Spice = append(t.Spice, SpiceEntry{Level: e.Level, Keywords: lowerAll(e.Keywords)})
	}
	slices.SortStableFunc(t.Spice, func(a, b SpiceEntry) int { return b.Level - a.Level })

	return &Tagger{tables: t}
}

// Tables returns a copy of the tables this Tagger matches against.
func (t *Tagger) Tables() Tables {
	out := Tables{
		Moods:    normalizeEntries(t.tables.Moods),
		Warnings: normalizeEntries(t.tables.Warnings),
		Genres:   normalizeEntries(t.tables.Genres),
	}
	for _, e := range t.tables.Spice {
		out.Spice = append(out.Spice, SpiceEntry{Level: e.Level, Keywords: slices.Clone(e.Keywords)})
	}
	return out
}

// SuggestMoods returns every mood with at least one keyword in text, in table order.
func (t *Tagger) SuggestMoods(text string) []string {
	return matchAll(t.tables.Moods, text)
}

// SuggestContentWarnings returns every content warning with at least one keyword in text.
func (t *Tagger) SuggestContentWarnings(text string) []string {
	return matchAll(t.tables.Warnings, text)
}

// SuggestSpice returns the highest spice level with a keyword in text, or 0.
func (t *Tagger) SuggestSpice(text string) int {
	lower := strings.ToLower(text)
	if lower == "" {
		return 0
	}
	for _, e := range t.tables.Spice {
		if containsAny(lower, e.Keywords) {
			return e.Level
		}
	}
	return 0
}

// SuggestGenre returns the first genre in table order with a keyword in text.
// An empty string means no genre matched.
func (t *Tagger) SuggestGenre(text string) string {
	lower := strings.ToLower(text)
	if lower == "" {
		return ""
	}
	for _, e := range t.tables.Genres {
		if containsAny(lower, e.Keywords) {
			return e.Name
		}
	}
	return ""
}

// Suggest runs every classifier over text.
func (t *Tagger) Suggest(text string) Suggestions {
	return Suggestions{
		Moods:           t.SuggestMoods(text),
		ContentWarnings: t.SuggestContentWarnings(text),
		Spice:           t.SuggestSpice(text),
		Genre:           t.SuggestGenre(text),
	}
}

var defaultTagger = New(DefaultTables())

// Default returns the Tagger built from DefaultTables.
func Default() *Tagger { return defaultTagger }

// SuggestMoods classifies text with the default tables.
func SuggestMoods(text string) []string { return defaultTagger.SuggestMoods(text) }

// SuggestContentWarnings classifies text with the default tables.
func SuggestContentWarnings(text string) []string {
	return defaultTagger.SuggestContentWarnings(text)
}

// SuggestSpice classifies text with the default tables.
func SuggestSpice(text string) int { return defaultTagger.SuggestSpice(text) }

// SuggestGenre classifies text with the default tables.
func SuggestGenre(text string) string { return defaultTagger.SuggestGenre(text) }

func matchAll(entries []Entry, text string) []string {
	out := []string{}
	lower := strings.ToLower(text)
	if lower == "" {
		return out
	}
	for _, e := range entries {
		if containsAny(lower, e.Keywords) && !slices.Contains(out, e.Name) {
			out = append(out, e.Name)
		}
	}
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		// An empty keyword would match everything.
		if k != "" && strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func normalizeEntries(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, Entry{Name: e.Name, Keywords: lowerAll(e.Keywords)})
	}
	return out
}

func lowerAll(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, k := range keywords {
		out[i] = strings.ToLower(k)
	}
	return out
}
