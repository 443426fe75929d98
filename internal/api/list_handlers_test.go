package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookshelf-server/internal/domain"
)

func TestListHandlers_Lifecycle(t *testing.T) {
	_, api := setupTestServer(t, Options{})

	a := createBook(t, api, map[string]any{"title": "A"})
	b := createBook(t, api, map[string]any{"title": "B"})

	resp := api.Post("/api/v1/lists", map[string]any{
		"name":     "To Read",
		"book_ids": []string{a.ID},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	list := decode[*domain.List](t, resp)
	assert.Equal(t, "To Read", list.Name)
	assert.Equal(t, []string{a.ID}, list.BookIDs)

	resp = api.Post("/api/v1/lists/"+list.ID+"/books", map[string]any{"book_id": b.ID})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	list = decode[*domain.List](t, resp)
	assert.Equal(t, []string{b.ID, a.ID}, list.BookIDs)

	// Membership is denormalized onto the book.
	resp = api.Get("/api/v1/books/" + b.ID)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []string{list.ID}, decode[*domain.Book](t, resp).Lists)

	resp = api.Delete("/api/v1/lists/" + list.ID + "/books/" + a.ID)
	require.Equal(t, http.StatusOK, resp.Code)
	list = decode[*domain.List](t, resp)
	assert.Equal(t, []string{b.ID}, list.BookIDs)

	resp = api.Put("/api/v1/lists/"+list.ID, map[string]any{"name": "Up Next"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "Up Next", decode[*domain.List](t, resp).Name)

	resp = api.Get("/api/v1/lists")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, decode[ListsResponse](t, resp).Lists, 1)

	resp = api.Delete("/api/v1/lists/" + list.ID)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = api.Get("/api/v1/lists/" + list.ID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListHandlers_AddUnknownBook(t *testing.T) {
	_, api := setupTestServer(t, Options{})

	resp := api.Post("/api/v1/lists", map[string]any{"name": "Shelf"})
	require.Equal(t, http.StatusCreated, resp.Code)
	list := decode[*domain.List](t, resp)

	resp = api.Post("/api/v1/lists/"+list.ID+"/books", map[string]any{"book_id": "book-nope"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
