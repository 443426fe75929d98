// Package domain contains the core entities for the bookshelf library.
package domain

import (
	"slices"
	"strings"
	"time"
)

// Spice and rating bounds.
const (
	MaxSpice    = 5
	MaxRating   = 5
	FinishedPct = 100
)

// Book is a single title in a user's library.
type Book struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Genre           string    `json:"genre,omitempty"`
	SubGenre        string    `json:"sub_genre,omitempty"`
	Moods           []string  `json:"moods,omitempty"`
	ContentWarnings []string  `json:"content_warnings,omitempty"`
	Spice           int       `json:"spice"`            // 0 = unset, 1-5 explicitness
	Rating          int       `json:"rating"`           // 0 = unrated, 1-5
	ReadingProgress int       `json:"reading_progress"` // percent, 100 = finished
	Lists           []string  `json:"lists,omitempty"`  // denormalized list membership
	ISBN            string    `json:"isbn,omitempty"`
	Series          string    `json:"series,omitempty"`
	SeriesOrder     string    `json:"series_order,omitempty"` // "1", "2.5", "Novella"
	Format          string    `json:"format,omitempty"`
	Description     string    `json:"description,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Review          string    `json:"review,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Finished reports whether the book has been read to completion.
func (b *Book) Finished() bool {
	return b.ReadingProgress == FinishedPct
}

// InAnyList reports whether the book belongs to at least one of the given lists.
func (b *Book) InAnyList(listIDs []string) bool {
	for _, id := range b.Lists {
		if slices.Contains(listIDs, id) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the book so callers can hand out snapshots
// without sharing tag slices.
func (b *Book) Clone() Book {
	c := *b
	c.Moods = slices.Clone(b.Moods)
	c.ContentWarnings = slices.Clone(b.ContentWarnings)
	c.Lists = slices.Clone(b.Lists)
	return c
}

// Touch updates the UpdatedAt timestamp.
func (b *Book) Touch() {
	b.UpdatedAt = time.Now()
}

// NormalizeTags trims each tag, drops empties, and removes case-insensitive
// duplicates while keeping the first spelling and the original order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ClampSpice limits a spice value to 0..MaxSpice.
func ClampSpice(v int) int {
	return min(max(v, 0), MaxSpice)
}
