// Package search provides full-text search over the book library using Bleve.
// Titles, authors, series, and descriptions are searchable; genre, moods,
// content warnings, and spice are exact-match filters.
package search

import "github.com/listenupapp/bookshelf-server/internal/domain"

// BookDocument is the indexed form of a book.
type BookDocument struct {
	ID              string
	Title           string
	Author          string
	Series          string
	Description     string
	Genre           string
	Moods           []string
	ContentWarnings []string
	Spice           int
	Rating          int
	CreatedAt       int64 // Unix millis
}

// NewBookDocument builds the index document for a book.
func NewBookDocument(b *domain.Book) *BookDocument {
	return &BookDocument{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Series:          b.Series,
		Description:     b.Description,
		Genre:           b.Genre,
		Moods:           b.Moods,
		ContentWarnings: b.ContentWarnings,
		Spice:           b.Spice,
		Rating:          b.Rating,
		CreatedAt:       b.CreatedAt.UnixMilli(),
	}
}

// ToMap converts the document to a map with lowercase field names that match the mapping.
func (d *BookDocument) ToMap() map[string]any {
	m := map[string]any{
		"id":         d.ID,
		"title":      d.Title,
		"author":     d.Author,
		"spice":      float64(d.Spice),
		"rating":     float64(d.Rating),
		"created_at": float64(d.CreatedAt),
	}
	if d.Series != "" {
		m["series"] = d.Series
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.Genre != "" {
		m["genre"] = d.Genre
	}
	if len(d.Moods) > 0 {
		m["moods"] = d.Moods
	}
	if len(d.ContentWarnings) > 0 {
		m["content_warnings"] = d.ContentWarnings
	}
	return m
}

