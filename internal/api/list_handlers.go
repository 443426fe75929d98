package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/bookshelf-server/internal/domain"
)

func (s *Server) registerListRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listLists",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists",
		Summary:     "List lists",
		Description: "Returns every list ordered by name",
		Tags:        []string{"Lists"},
	}, s.handleListLists)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createList",
		Method:        http.MethodPost,
		Path:          "/api/v1/lists",
		Summary:       "Create list",
		Description:   "Creates a list, optionally with initial books in order",
		Tags:          []string{"Lists"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateList)

	huma.Register(s.api, huma.Operation{
		OperationID: "getList",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists/{id}",
		Summary:     "Get list",
		Description: "Returns a list and its book IDs, newest first",
		Tags:        []string{"Lists"},
	}, s.handleGetList)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateList",
		Method:      http.MethodPut,
		Path:        "/api/v1/lists/{id}",
		Summary:     "Update list",
		Description: "Renames a list and replaces its description",
		Tags:        []string{"Lists"},
	}, s.handleUpdateList)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteList",
		Method:        http.MethodDelete,
		Path:          "/api/v1/lists/{id}",
		Summary:       "Delete list",
		Description:   "Deletes a list. Its books stay in the library.",
		Tags:          []string{"Lists"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteList)

	huma.Register(s.api, huma.Operation{
		OperationID: "addBookToList",
		Method:      http.MethodPost,
		Path:        "/api/v1/lists/{id}/books",
		Summary:     "Add book to list",
		Description: "Puts a book at the front of a list. Adding a member again has no effect.",
		Tags:        []string{"Lists"},
	}, s.handleAddBookToList)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeBookFromList",
		Method:      http.MethodDelete,
		Path:        "/api/v1/lists/{id}/books/{bookId}",
		Summary:     "Remove book from list",
		Description: "Takes a book off a list",
		Tags:        []string{"Lists"},
	}, s.handleRemoveBookFromList)
}

// === DTOs ===

// CreateListRequest is the request body for creating a list.
type CreateListRequest struct {
	Name        string   `json:"name" minLength:"1" maxLength:"200" doc:"List name"`
	Description string   `json:"description,omitempty" maxLength:"2000" doc:"List description"`
	BookIDs     []string `json:"book_ids,omitempty" doc:"Initial books, first is front of the list"`
}

// CreateListInput wraps the create request.
type CreateListInput struct {
	Body CreateListRequest
}

// UpdateListRequest is the request body for updating a list.
type UpdateListRequest struct {
	Name        string `json:"name" minLength:"1" maxLength:"200" doc:"List name"`
	Description string `json:"description,omitempty" maxLength:"2000" doc:"List description"`
}

// UpdateListInput wraps the update request.
type UpdateListInput struct {
	ID   string `path:"id" doc:"List ID"`
	Body UpdateListRequest
}

// ListIDInput is the path parameter for single-list operations.
type ListIDInput struct {
	ID string `path:"id" doc:"List ID"`
}

// AddBookToListRequest is the request body for adding a book to a list.
type AddBookToListRequest struct {
	BookID string `json:"book_id" minLength:"1" doc:"Book ID"`
}

// AddBookToListInput wraps the add request.
type AddBookToListInput struct {
	ID   string `path:"id" doc:"List ID"`
	Body AddBookToListRequest
}

// RemoveBookFromListInput identifies the membership to remove.
type RemoveBookFromListInput struct {
	ID     string `path:"id" doc:"List ID"`
	BookID string `path:"bookId" doc:"Book ID"`
}

// ListOutput wraps a single list.
type ListOutput struct {
	Body *domain.List
}

// ListsResponse is the body of the list index endpoint.
type ListsResponse struct {
	Lists []*domain.List `json:"lists" doc:"All lists"`
}

// ListsOutput wraps all lists.
type ListsOutput struct {
	Body ListsResponse
}

// === Handlers ===

func (s *Server) handleListLists(ctx context.Context, _ *struct{}) (*ListsOutput, error) {
	lists, err := s.services.List.ListLists(ctx)
	if err != nil {
		return nil, err
	}
	return &ListsOutput{Body: ListsResponse{Lists: lists}}, nil
}

func (s *Server) handleCreateList(ctx context.Context, input *CreateListInput) (*ListOutput, error) {
	list, err := s.services.List.CreateList(ctx, input.Body.Name, input.Body.Description, input.Body.BookIDs)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Body: list}, nil
}

func (s *Server) handleGetList(ctx context.Context, input *ListIDInput) (*ListOutput, error) {
	list, err := s.services.List.GetList(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Body: list}, nil
}

func (s *Server) handleUpdateList(ctx context.Context, input *UpdateListInput) (*ListOutput, error) {
	list, err := s.services.List.UpdateList(ctx, input.ID, input.Body.Name, input.Body.Description)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Body: list}, nil
}

func (s *Server) handleDeleteList(ctx context.Context, input *ListIDInput) (*struct{}, error) {
	if err := s.services.List.DeleteList(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleAddBookToList(ctx context.Context, input *AddBookToListInput) (*ListOutput, error) {
	list, err := s.services.List.AddBook(ctx, input.ID, input.Body.BookID)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Body: list}, nil
}

func (s *Server) handleRemoveBookFromList(ctx context.Context, input *RemoveBookFromListInput) (*ListOutput, error) {
	list, err := s.services.List.RemoveBook(ctx, input.ID, input.BookID)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Body: list}, nil
}
