// Package service provides the business logic layer for the bookshelf: book and
// list management, recommendations, auto-tagging, share identifiers, and search.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/listenupapp/bookshelf-server/internal/autotag"
	"github.com/listenupapp/bookshelf-server/internal/domain"
	"github.com/listenupapp/bookshelf-server/internal/id"
	"github.com/listenupapp/bookshelf-server/internal/metrics"
	"github.com/listenupapp/bookshelf-server/internal/store"
	"github.com/listenupapp/bookshelf-server/internal/validation"
)

// BookInput carries the user-editable fields of a book.
type BookInput struct {
	Title           string   `json:"title" validate:"required,max=500"`
	Author          string   `json:"author" validate:"max=500"`
	Genre           string   `json:"genre" validate:"max=100"`
	SubGenre        string   `json:"sub_genre" validate:"max=100"`
	Moods           []string `json:"moods" validate:"max=50"`
	ContentWarnings []string `json:"content_warnings" validate:"max=50"`
	Spice           int      `json:"spice" validate:"min=0,max=5"`
	Rating          int      `json:"rating" validate:"min=0,max=5"`
	ReadingProgress int      `json:"reading_progress" validate:"min=0,max=100"`
	ISBN            string   `json:"isbn" validate:"max=20"`
	Series          string   `json:"series" validate:"max=500"`
	SeriesOrder     string   `json:"series_order" validate:"max=20"`
	Format          string   `json:"format" validate:"max=50"`
	Description     string   `json:"description" validate:"max=20000"`
	Notes           string   `json:"notes" validate:"max=20000"`
	Review          string   `json:"review" validate:"max=20000"`

	// AutoTag fills empty moods, warnings, spice, and genre from the title
	// and description.
	AutoTag bool `json:"auto_tag"`
}

// BookService orchestrates book operations.
type BookService struct {
	store     store.Store
	tagger    *autotag.Tagger
	validator *validation.Validator
	logger    *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store store.Store, tagger *autotag.Tagger, logger *slog.Logger) *BookService {
	return &BookService{
		store:     store,
		tagger:    tagger,
		validator: validation.New(),
		logger:    logger,
	}
}

// CreateBook validates the input and stores a new book.
func (s *BookService) CreateBook(ctx context.Context, in BookInput) (*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	bookID, err := id.NewBook()
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	now := time.Now()
	book := &domain.Book{
		ID:        bookID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.apply(book, in)

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.logger.Info("book created",
		"book_id", book.ID,
		"title", book.Title,
		"auto_tag", in.AutoTag,
	)

	return book, nil
}

// GetBook retrieves a book by ID.
func (s *BookService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return s.store.GetBook(ctx, id)
}

// ListBooks returns every book in the library, oldest first.
func (s *BookService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.store.ListAllBooks(ctx)
}

// UpdateBook replaces the editable fields of an existing book.
func (s *BookService) UpdateBook(ctx context.Context, id string, in BookInput) (*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	book, err := s.store.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	s.apply(book, in)
	book.Touch()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.logger.Info("book updated", "book_id", id)
	return book, nil
}

// DeleteBook removes a book and its list memberships.
func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	if err := s.store.DeleteBook(ctx, id); err != nil {
		return err
	}
	s.logger.Info("book deleted", "book_id", id)
	return nil
}

// apply copies input fields onto the book, normalizing tags and running the
// auto-tagger when requested.
func (s *BookService) apply(book *domain.Book, in BookInput) {
	book.Title = strings.TrimSpace(in.Title)
	book.Author = strings.TrimSpace(in.Author)
	book.Genre = strings.TrimSpace(in.Genre)
	book.SubGenre = strings.TrimSpace(in.SubGenre)
	book.Moods = domain.NormalizeTags(in.Moods)
	book.ContentWarnings = domain.NormalizeTags(in.ContentWarnings)
	book.Spice = in.Spice
	book.Rating = in.Rating
	book.ReadingProgress = in.ReadingProgress
	book.ISBN = strings.TrimSpace(in.ISBN)
	book.Series = strings.TrimSpace(in.Series)
	book.SeriesOrder = strings.TrimSpace(in.SeriesOrder)
	book.Format = strings.TrimSpace(in.Format)
	book.Description = in.Description
	book.Notes = in.Notes
	book.Review = in.Review

	if in.AutoTag {
		s.autoTag(book)
	}
}

// autoTag fills only the fields the user left empty.
func (s *BookService) autoTag(book *domain.Book) {
	sugg := s.tagger.Suggest(book.Title + " " + book.Description)
	metrics.RecordAutotag("create", len(sugg.Moods), len(sugg.ContentWarnings), sugg.Spice > 0, sugg.Genre != "")

	if len(book.Moods) == 0 {
		book.Moods = sugg.Moods
	}
	if len(book.ContentWarnings) == 0 {
		book.ContentWarnings = sugg.ContentWarnings
	}
	if book.Spice == 0 {
		book.Spice = domain.ClampSpice(sugg.Spice)
	}
	if book.Genre == "" {
		book.Genre = sugg.Genre
	}
}
