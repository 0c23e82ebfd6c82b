package session

import (
	"math"

	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/scoring"
)

// Tier buckets a quiz percentage for feedback.
type Tier int

const (
	TierLow  Tier = iota // below 50
	TierMid              // 50 to 79
	TierHigh             // 80 to 99
	TierTop              // 100
)

func (t Tier) String() string {
	switch t {
	case TierTop:
		return "top"
	case TierHigh:
		return "high"
	case TierMid:
		return "mid"
	}
	return "low"
}

// Feedback is the line shown with the final score.
func (t Tier) Feedback() string {
	switch t {
	case TierTop:
		return "Perfect Score! You're a master!"
	case TierHigh:
		return "Great job! Keep it up!"
	case TierMid:
		return "Good effort, but room for improvement."
	}
	return "Don't give up! Practice makes perfect."
}

// TierFor maps a percentage in [0, 100] to its tier.
func TierFor(pct int) Tier {
	switch {
	case pct >= 100:
		return TierTop
	case pct >= 80:
		return TierHigh
	case pct >= 50:
		return TierMid
	}
	return TierLow
}

// Score is a finished quiz's result.
type Score struct {
	Correct    int
	Total      int
	Percentage int
	Tier       Tier
}

// QuizScore counts choices (keyed by question index) matching each
// question's correct option. Unanswered questions count as wrong.
func QuizScore(lesson *content.Lesson, choices map[int]int) Score {
	s := Score{}
	if lesson == nil {
		s.Tier = TierFor(0)
		return s
	}

	s.Total = len(lesson.Questions)
	for i, q := range lesson.Questions {
		if c, ok := choices[i]; ok && c == q.CorrectIndex {
			s.Correct++
		}
	}
	s.Percentage = percent(s.Correct, s.Total)
	s.Tier = TierFor(s.Percentage)
	return s
}

// Summary describes a finished vocabulary deck.
type Summary struct {
	Total             int
	Reviewed          int
	Perfect           int
	GaveUp            int
	AveragePercentage int
}

// DeckSummary aggregates flashcard scores keyed by item index.
func DeckSummary(deck *content.Deck, scores map[int]scoring.Result) Summary {
	s := Summary{}
	if deck != nil {
		s.Total = len(deck.Items)
	}

	sum := 0
	for _, r := range scores {
		s.Reviewed++
		sum += r.Percentage
		if r.IsPerfectMatch {
			s.Perfect++
		}
		if r.GaveUp {
			s.GaveUp++
		}
	}
	if s.Reviewed > 0 {
		s.AveragePercentage = int(math.Round(float64(sum) / float64(s.Reviewed)))
	}
	return s
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(n) / float64(total)))
}
