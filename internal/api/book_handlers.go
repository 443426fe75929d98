package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/bookshelf-server/internal/domain"
	"github.com/listenupapp/bookshelf-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns every book in the library, oldest first",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/api/v1/books",
		Summary:       "Create book",
		Description:   "Adds a book. With auto_tag set, empty moods, warnings, spice, and genre are suggested from the title and description.",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns a book by ID",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/api/v1/books/{id}",
		Summary:     "Update book",
		Description: "Replaces the editable fields of a book",
		Tags:        []string{"Books"},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteBook",
		Method:        http.MethodDelete,
		Path:          "/api/v1/books/{id}",
		Summary:       "Delete book",
		Description:   "Deletes a book and removes it from every list",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteBook)
}

// === DTOs ===

// BookRequest is the request body for creating or updating a book.
type BookRequest struct {
	Title           string   `json:"title" minLength:"1" maxLength:"500" doc:"Book title"`
	Author          string   `json:"author,omitempty" maxLength:"500" doc:"Author name"`
	Genre           string   `json:"genre,omitempty" maxLength:"100" doc:"Primary genre"`
	SubGenre        string   `json:"sub_genre,omitempty" maxLength:"100" doc:"Sub-genre"`
	Moods           []string `json:"moods,omitempty" maxItems:"50" doc:"Mood tags"`
	ContentWarnings []string `json:"content_warnings,omitempty" maxItems:"50" doc:"Content warning tags"`
	Spice           int      `json:"spice,omitempty" minimum:"0" maximum:"5" doc:"Spice level, 0 = unset"`
	Rating          int      `json:"rating,omitempty" minimum:"0" maximum:"5" doc:"Star rating, 0 = unrated"`
	ReadingProgress int      `json:"reading_progress,omitempty" minimum:"0" maximum:"100" doc:"Percent read, 100 = finished"`
	ISBN            string   `json:"isbn,omitempty" maxLength:"20" doc:"ISBN-10 or ISBN-13"`
	Series          string   `json:"series,omitempty" maxLength:"500" doc:"Series name"`
	SeriesOrder     string   `json:"series_order,omitempty" maxLength:"20" doc:"Position in series, e.g. 1, 2.5, Novella"`
	Format          string   `json:"format,omitempty" maxLength:"50" doc:"Format, e.g. hardcover, ebook, audiobook"`
	Description     string   `json:"description,omitempty" maxLength:"20000" doc:"Publisher description"`
	Notes           string   `json:"notes,omitempty" maxLength:"20000" doc:"Private notes"`
	Review          string   `json:"review,omitempty" maxLength:"20000" doc:"Private review"`
	AutoTag         bool     `json:"auto_tag,omitempty" doc:"Fill empty tag fields from the title and description"`
}

func (r BookRequest) toInput() service.BookInput {
	return service.BookInput{
		Title:           r.Title,
		Author:          r.Author,
		Genre:           r.Genre,
		SubGenre:        r.SubGenre,
		Moods:           r.Moods,
		ContentWarnings: r.ContentWarnings,
		Spice:           r.Spice,
		Rating:          r.Rating,
		ReadingProgress: r.ReadingProgress,
		ISBN:            r.ISBN,
		Series:          r.Series,
		SeriesOrder:     r.SeriesOrder,
		Format:          r.Format,
		Description:     r.Description,
		Notes:           r.Notes,
		Review:          r.Review,
		AutoTag:         r.AutoTag,
	}
}

// BookIDInput is the path parameter for single-book operations.
type BookIDInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// CreateBookInput wraps the create request.
type CreateBookInput struct {
	Body BookRequest
}

// UpdateBookInput wraps the update request.
type UpdateBookInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body BookRequest
}

// BookOutput wraps a single book.
type BookOutput struct {
	Body *domain.Book
}

// BookListResponse is the body of the list endpoint.
type BookListResponse struct {
	Books []*domain.Book `json:"books" doc:"Books in the library"`
	Total int            `json:"total" doc:"Number of books"`
}

// BookListOutput wraps the book list.
type BookListOutput struct {
	Body BookListResponse
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, _ *struct{}) (*BookListOutput, error) {
	books, err := s.services.Book.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	return &BookListOutput{Body: BookListResponse{Books: books, Total: len(books)}}, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	book, err := s.services.Book.CreateBook(ctx, input.Body.toInput())
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: book}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *BookIDInput) (*BookOutput, error) {
	book, err := s.services.Book.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: book}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	book, err := s.services.Book.UpdateBook(ctx, input.ID, input.Body.toInput())
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: book}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *BookIDInput) (*struct{}, error) {
	if err := s.services.Book.DeleteBook(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}
