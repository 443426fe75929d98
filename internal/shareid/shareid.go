// Package shareid derives public share identifiers for books.
//
// A share ID is a content fingerprint: a 32-bit FNV-1a hash of the book's
// non-personal catalog fields, rendered in base 36. It never includes the
// database key, owner, notes, or review, so it is safe to put in a link.
// Books with identical catalog fields share an ID.
package shareid

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/listenupapp/bookshelf-server/internal/domain"
)

const (
	fnvOffset32 uint32 = 2166136261
	fnvPrime32  uint32 = 16777619
)

// ForBook returns the share ID for a book, or "" for nil.
func ForBook(b *domain.Book) string {
	if b == nil {
		return ""
	}
	return Hash(Fingerprint(b))
}

// Fingerprint joins the hashed fields in their fixed order:
// title|author|isbn|series|seriesOrder|genre|format.
func Fingerprint(b *domain.Book) string {
	return strings.Join([]string{
		b.Title,
		b.Author,
		b.ISBN,
		b.Series,
		b.SeriesOrder,
		b.Genre,
		b.Format,
	}, "|")
}

// Hash applies FNV-1a over the UTF-16 code units of s and formats the
// unsigned result in base 36.
//
// hash/fnv consumes bytes; share IDs are defined over UTF-16 code units so
// that links minted by the web client resolve here.
func Hash(s string) string {
	h := fnvOffset32
	for _, unit := range utf16.Encode([]rune(s)) {
		h ^= uint32(unit)
		h *= fnvPrime32
	}
	return strconv.FormatUint(uint64(h), 36)
}
