// Package id generates and checks prefixed record identifiers.
package id

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefix names the record type an ID belongs to.
type Prefix string

// Record prefixes.
const (
	PrefixBook Prefix = "book"
	PrefixList Prefix = "list"
)

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "book-V1StGXR8_Z5jdHi6B-myT").
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix Prefix) (string, error) {
	n, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return string(prefix) + "-" + n, nil
}

// NewBook returns a fresh book ID.
func NewBook() (string, error) { return Generate(PrefixBook) }

// NewList returns a fresh list ID.
func NewList() (string, error) { return Generate(PrefixList) }

// Valid reports whether s has the given prefix followed by a non-empty suffix.
func Valid(s string, prefix Prefix) bool {
	rest, ok := strings.CutPrefix(s, string(prefix)+"-")
	return ok && rest != ""
}
