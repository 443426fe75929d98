package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	count := 1000

	for range count {
		id, err := NewBook()
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}

	assert.Len(t, ids, count)
}

func TestGenerate_Format(t *testing.T) {
	tests := []struct {
		name string
		gen  func() (string, error)
		want Prefix
	}{
		{"book", NewBook, PrefixBook},
		{"list", NewList, PrefixList},
		{"custom", func() (string, error) { return Generate("shelf") }, "shelf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.gen()
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(id, string(tt.want)+"-"))
			// NanoID default length is 21.
			assert.Len(t, id, len(tt.want)+1+21)
			assert.True(t, Valid(id, tt.want))
		})
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		id     string
		prefix Prefix
		want   bool
	}{
		{"book-V1StGXR8_Z5jdHi6B-myT", PrefixBook, true},
		{"book-missing", PrefixBook, true},
		{"list-abc", PrefixBook, false},
		{"book-", PrefixBook, false},
		{"book", PrefixBook, false},
		{"", PrefixList, false},
		{"bookish-1", PrefixBook, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.id, tt.prefix))
		})
	}
}

