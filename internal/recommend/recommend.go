// Package recommend ranks a library snapshot into "recommended for you" and
// "similar to this book" suggestions.
//
// Scoring is content based. A taste profile is built from the books the user
// rated 4 or higher, then every book is scored by how much of its metadata
// overlaps that profile, with adjustments that favor unread and unjudged books.
package recommend

import (
	"slices"
	"sort"
	"strconv"

	"github.com/listenupapp/bookshelf-server/internal/domain"
)

// DefaultMax is the result limit used when Options.Max is not positive.
const DefaultMax = 10

// Profile weights.
const (
	likedRating   = 4
	moodWeight    = 1.0
	genreWeight   = 2.0
	warningWeight = 0.5
	spiceWeight   = 1.0
)

// Score adjustments.
const (
	lowRatingThreshold = 3
	exploreBonus       = 1.0
	finishedPenalty    = 5.0
	excludedPenalty    = 100.0
	listedPenalty      = 2.0
)

// Options tunes a recommendation call. The zero value is valid.
type Options struct {
	// Max caps the number of results. Zero or negative means DefaultMax.
	Max int
	// ExcludeIDs are penalized heavily. A book whose overlap score exceeds the
	// penalty can still surface.
	ExcludeIDs []string
	// UserLists are list IDs whose members are deprioritized.
	UserLists []string
	// RecentOnly is accepted for client compatibility and currently has no effect.
	RecentOnly bool
}

func (o Options) limit() int {
	if o.Max <= 0 {
		return DefaultMax
	}
	return o.Max
}

// Profile maps tag tokens to accumulated preference weight.
type Profile map[string]float64

// Scored pairs a book with its ranking score.
type Scored struct {
	Book  domain.Book `json:"book"`
	Score float64     `json:"score"`
}

// SpiceToken returns the synthetic profile token for a spice level.
func SpiceToken(spice int) string {
	return "spice:" + strconv.Itoa(spice)
}

// BuildProfile accumulates tag weights across every liked book (rating >= 4).
func BuildProfile(books []domain.Book) Profile {
	p := Profile{}
	for i := range books {
		b := &books[i]
		if b.Rating < likedRating {
			continue
		}
		for _, m := range b.Moods {
			p[m] += moodWeight
		}
		if b.Genre != "" {
			p[b.Genre] += genreWeight
		}
		for _, w := range b.ContentWarnings {
			p[w] += warningWeight
		}
		p[SpiceToken(b.Spice)] += spiceWeight
	}
	return p
}

// Overlap sums the profile weight of each of the book's own tokens.
func (p Profile) Overlap(b *domain.Book) float64 {
	var score float64
	for _, m := range b.Moods {
		score += p[m]
	}
	if b.Genre != "" {
		score += p[b.Genre]
	}
	for _, w := range b.ContentWarnings {
		score += p[w]
	}
	score += p[SpiceToken(b.Spice)]
	return score
}

// Score computes the final ranking score for one book.
func Score(b *domain.Book, p Profile, opts Options) float64 {
	score := p.Overlap(b)

	if b.Rating < lowRatingThreshold {
		score += exploreBonus
	}
	if b.Finished() {
		score -= finishedPenalty
	}
	if slices.Contains(opts.ExcludeIDs, b.ID) {
		score -= excludedPenalty
	}
	if b.InAnyList(opts.UserLists) {
		score -= listedPenalty
	}
	return score
}

// Ranked scores every book, keeps those above zero, and returns them best first,
// truncated to the option limit. Ties keep their input order.
func Ranked(books []domain.Book, opts Options) []Scored {
	profile := BuildProfile(books)

	ranked := make([]Scored, 0, len(books))
	for i := range books {
		s := Score(&books[i], profile, opts)
		if s > 0 {
			ranked = append(ranked, Scored{Book: books[i].Clone(), Score: s})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if n := opts.limit(); len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Recommend returns the top-ranked books for the library.
func Recommend(books []domain.Book, opts Options) []domain.Book {
	ranked := Ranked(books, opts)
	out := make([]domain.Book, len(ranked))
	for i, r := range ranked {
		out[i] = r.Book
	}
	return out
}

// Similar recommends books for the "similar to" surface of an anchor book.
// The anchor goes through the regular exclusion penalty.
func Similar(books []domain.Book, anchorID string, maxResults int) []domain.Book {
	return Recommend(books, Options{Max: maxResults, ExcludeIDs: []string{anchorID}})
}
