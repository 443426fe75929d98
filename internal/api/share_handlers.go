package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/bookshelf-server/internal/domain"
)

func (s *Server) registerShareRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getBookShareID",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/share",
		Summary:     "Get share ID",
		Description: "Returns the public share identifier of a book. It is derived from catalog fields only.",
		Tags:        []string{"Sharing"},
	}, s.handleGetBookShareID)

	huma.Register(s.api, huma.Operation{
		OperationID: "resolveShareID",
		Method:      http.MethodGet,
		Path:        "/api/v1/share/{shareId}",
		Summary:     "Resolve share ID",
		Description: "Returns the public fields of the book a share identifier points to",
		Tags:        []string{"Sharing"},
	}, s.handleResolveShareID)
}

// === DTOs ===

// ShareIDResponse carries a book's share identifier.
type ShareIDResponse struct {
	BookID  string `json:"book_id" doc:"Book ID"`
	ShareID string `json:"share_id" doc:"Public share identifier"`
}

// ShareIDOutput wraps the share identifier.
type ShareIDOutput struct {
	Body ShareIDResponse
}

// ResolveShareInput is the path parameter for share resolution.
type ResolveShareInput struct {
	ShareID string `path:"shareId" doc:"Share identifier"`
}

// SharedBook is the public view of a shared book. Personal fields are never included.
type SharedBook struct {
	ShareID         string   `json:"share_id"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Genre           string   `json:"genre,omitempty"`
	Moods           []string `json:"moods,omitempty"`
	ContentWarnings []string `json:"content_warnings,omitempty"`
	Spice           int      `json:"spice"`
	ISBN            string   `json:"isbn,omitempty"`
	Series          string   `json:"series,omitempty"`
	SeriesOrder     string   `json:"series_order,omitempty"`
	Format          string   `json:"format,omitempty"`
	Description     string   `json:"description,omitempty"`
}

// SharedBookOutput wraps the shared book.
type SharedBookOutput struct {
	Body SharedBook
}

func newSharedBook(shareID string, b *domain.Book) SharedBook {
	return SharedBook{
		ShareID:         shareID,
		Title:           b.Title,
		Author:          b.Author,
		Genre:           b.Genre,
		Moods:           b.Moods,
		ContentWarnings: b.ContentWarnings,
		Spice:           b.Spice,
		ISBN:            b.ISBN,
		Series:          b.Series,
		SeriesOrder:     b.SeriesOrder,
		Format:          b.Format,
		Description:     b.Description,
	}
}

// === Handlers ===

func (s *Server) handleGetBookShareID(ctx context.Context, input *BookIDInput) (*ShareIDOutput, error) {
	shareID, err := s.services.Share.ShareID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ShareIDOutput{Body: ShareIDResponse{BookID: input.ID, ShareID: shareID}}, nil
}

func (s *Server) handleResolveShareID(ctx context.Context, input *ResolveShareInput) (*SharedBookOutput, error) {
	book, err := s.services.Share.Resolve(ctx, input.ShareID)
	if err != nil {
		return nil, err
	}
	return &SharedBookOutput{Body: newSharedBook(input.ShareID, book)}, nil
}
