package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookshelf-server/internal/shareid"
	"github.com/listenupapp/bookshelf-server/internal/store"
)

func TestShareService_ShareID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	book := env.mustCreateBook(t, BookInput{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593"})

	got, err := env.share.ShareID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, shareid.ForBook(book), got)
	assert.NotEmpty(t, got)

	// Personal fields do not change the identifier.
	_, err = env.books.UpdateBook(ctx, book.ID, BookInput{
		Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593",
		Notes: "reread in winter", Review: "classic", Rating: 5,
	})
	require.NoError(t, err)

	again, err := env.share.ShareID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	_, err = env.share.ShareID(ctx, "book-missing")
	assert.ErrorIs(t, err, store.ErrBookNotFound)
}

func TestShareService_Resolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.mustCreateBook(t, BookInput{Title: "Twin", Author: "Same"})
	second := env.mustCreateBook(t, BookInput{Title: "Twin", Author: "Same", Notes: "my copy"})
	other := env.mustCreateBook(t, BookInput{Title: "Other"})

	id, err := env.share.ShareID(ctx, second.ID)
	require.NoError(t, err)

	// Identical catalog fields collide; the first book in library order wins.
	got, err := env.share.Resolve(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	otherID, err := env.share.ShareID(ctx, other.ID)
	require.NoError(t, err)
	got, err = env.share.Resolve(ctx, otherID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, got.ID)

	_, err = env.share.Resolve(ctx, "zzzzzz")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
