package session

import (
	"maps"

	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/scoring"
)

// View is a read-only snapshot of the session. It shares no memory with
// the controller.
type View struct {
	Stage Stage

	// Config is the last started configuration, nil after a reset.
	Config *content.SessionConfig

	// Content is nil until generation succeeds.
	Content content.Content

	Index   int
	Choices map[int]int
	Scores  map[int]scoring.Result

	// ErrorMessage is set in StageError. Cause is the underlying failure.
	ErrorMessage string
	Cause        error

	Token     uint64
	SessionID string
}

// Lesson returns the content as a lesson.
func (v View) Lesson() (*content.Lesson, bool) {
	l, ok := v.Content.(*content.Lesson)
	return l, ok
}

// Deck returns the content as a vocabulary deck.
func (v View) Deck() (*content.Deck, bool) {
	d, ok := v.Content.(*content.Deck)
	return d, ok
}

// Question is the current multiple-choice question.
func (v View) Question() (content.Question, bool) {
	l, ok := v.Lesson()
	if !ok || v.Index >= len(l.Questions) {
		return content.Question{}, false
	}
	return l.Questions[v.Index], true
}

// Card is the current flashcard.
func (v View) Card() (content.VocabularyItem, bool) {
	d, ok := v.Deck()
	if !ok || v.Index >= len(d.Items) {
		return content.VocabularyItem{}, false
	}
	return d.Items[v.Index], true
}

// CardScore is the latest score for the current flashcard.
func (v View) CardScore() (scoring.Result, bool) {
	r, ok := v.Scores[v.Index]
	return r, ok
}

// QuizScore scores the lesson from the recorded choices.
func (v View) QuizScore() Score {
	l, _ := v.Lesson()
	return QuizScore(l, v.Choices)
}

// DeckSummary summarizes the recorded flashcard scores.
func (v View) DeckSummary() Summary {
	d, _ := v.Deck()
	return DeckSummary(d, v.Scores)
}

func (c *Controller) snapshot() View {
	v := View{
		Stage:        c.stage,
		Index:        c.index,
		Choices:      maps.Clone(c.choices),
		Scores:       maps.Clone(c.scores),
		ErrorMessage: c.errMsg,
		Cause:        c.cause,
		Token:        c.token,
		SessionID:    c.sessionID,
	}
	if v.Choices == nil {
		v.Choices = map[int]int{}
	}
	if v.Scores == nil {
		v.Scores = map[int]scoring.Result{}
	}
	if c.cfg != nil {
		cfg := *c.cfg
		v.Config = &cfg
	}
	if c.content != nil {
		v.Content = c.content.Clone()
	}
	return v
}
