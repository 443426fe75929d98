package domain

import (
	"slices"
	"time"
)

// List is a user-named collection of books ("TBR", "Favorites", "Beach reads").
// A book may belong to any number of lists.
type List struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	BookIDs     []string  `json:"book_ids"` // newest first
}

// AddBook prepends a book ID. Returns false if the book was already present.
func (l *List) AddBook(bookID string) bool {
	if slices.Contains(l.BookIDs, bookID) {
		return false
	}
	l.BookIDs = append([]string{bookID}, l.BookIDs...)
	l.UpdatedAt = time.Now()
	return true
}

// RemoveBook removes a book ID. Returns false if the book was not present.
func (l *List) RemoveBook(bookID string) bool {
	i := slices.Index(l.BookIDs, bookID)
	if i < 0 {
		return false
	}
	l.BookIDs = slices.Delete(l.BookIDs, i, i+1)
	l.UpdatedAt = time.Now()
	return true
}

// ContainsBook checks if a book ID is in this list.
func (l *List) ContainsBook(bookID string) bool {
	return slices.Contains(l.BookIDs, bookID)
}
