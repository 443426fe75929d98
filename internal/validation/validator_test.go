package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/listenupapp/bookshelf-server/internal/errors"
	"github.com/listenupapp/bookshelf-server/internal/validation"
)

type testBook struct {
	Title  string   `json:"title" validate:"required,max=20"`
	Author string   `json:"author,omitempty" validate:"max=10"`
	Spice  int      `json:"spice" validate:"min=0,max=5"`
	Format string   `json:"format" validate:"omitempty,oneof=hardcover paperback ebook"`
	ISBN   string   `json:"isbn" validate:"omitempty,isbn"`
	Moods  []string `json:"moods" validate:"max=2"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(testBook{Title: "Dune", Spice: 2, Format: "ebook", ISBN: "9780441013593"})
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		book      testBook
		wantField string
		wantMsg   string
	}{
		{name: "missing title", book: testBook{}, wantField: "title", wantMsg: "is required"},
		{name: "title too long", book: testBook{Title: "This title is far too long to fit"}, wantField: "title", wantMsg: "must not exceed 20 characters"},
		{name: "json tag options stripped", book: testBook{Title: "Dune", Author: "Frank Herbert Jr."}, wantField: "author", wantMsg: "must not exceed 10 characters"},
		{name: "numeric max", book: testBook{Title: "Dune", Spice: 6}, wantField: "spice", wantMsg: "must not exceed 5"},
		{name: "numeric min", book: testBook{Title: "Dune", Spice: -1}, wantField: "spice", wantMsg: "must be at least 0"},
		{name: "oneof", book: testBook{Title: "Dune", Format: "scroll"}, wantField: "format", wantMsg: "must be one of: hardcover paperback ebook"},
		{name: "isbn", book: testBook{Title: "Dune", ISBN: "123"}, wantField: "isbn", wantMsg: "must be a valid ISBN-10 or ISBN-13"},
		{name: "too many items", book: testBook{Title: "Dune", Moods: []string{"a", "b", "c"}}, wantField: "moods", wantMsg: "must not have more than 2 items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.book)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, details[tt.wantField])
		})
	}
}

func TestValidator_NonStructInput(t *testing.T) {
	v := validation.New()

	err := v.Validate("not a struct")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domainerrors.ErrValidation)
}
