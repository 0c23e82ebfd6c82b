// Package scoring grades free-text flashcard answers against a target word
// with a normalized Levenshtein similarity.
package scoring

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// Result is the outcome of one flashcard attempt.
type Result struct {
	// Percentage is the similarity in [0, 100].
	Percentage int

	// IsPerfectMatch is true exactly when Percentage is 100.
	IsPerfectMatch bool

	// GaveUp marks a reveal rather than a graded attempt.
	GaveUp bool
}

// Score compares a learner answer to the target word. The answer is trimmed,
// both sides are case-folded, and the edit distance is normalized by the
// length of the longer string. Two empty strings score 100.
func Score(answer, target string) Result {
	a := fold(strings.TrimSpace(answer))
	b := fold(target)

	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return Result{Percentage: 100, IsPerfectMatch: true}
	}

	dist := levenshtein.ComputeDistance(a, b)
	sim := float64(longest-dist) / float64(longest)
	sim = min(max(sim, 0), 1)

	pct := int(math.Round(sim * 100))
	return Result{Percentage: pct, IsPerfectMatch: pct == 100}
}

// GiveUp reveals the answer. It never looks at any text and always scores 0.
func GiveUp() Result {
	return Result{Percentage: 0, GaveUp: true}
}

// fold applies Unicode case folding. Casers carry state, so each call gets
// its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Closeness buckets a result for feedback.
type Closeness int

const (
	Miss Closeness = iota
	Partial
	Close
	Exact
)

func (c Closeness) String() string {
	switch c {
	case Exact:
		return "exact"
	case Close:
		return "close"
	case Partial:
		return "partial"
	default:
		return "miss"
	}
}

// ClosenessOf returns the feedback band for r: Exact at 100, Close from 80,
// Partial from 50, Miss below.
func ClosenessOf(r Result) Closeness {
	switch {
	case r.GaveUp:
		return Miss
	case r.Percentage == 100:
		return Exact
	case r.Percentage >= 80:
		return Close
	case r.Percentage >= 50:
		return Partial
	default:
		return Miss
	}
}
