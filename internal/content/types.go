// Package content turns a study-session configuration into validated lesson
// or vocabulary content from a generative provider.
package content

import (
	"fmt"
	"slices"
	"strings"
)

// Level is a CEFR proficiency level.
type Level string

const (
	A1 Level = "A1"
	A2 Level = "A2"
	B1 Level = "B1"
	B2 Level = "B2"
	C1 Level = "C1"
	C2 Level = "C2"
)

var levelLabels = map[Level]string{
	A1: "A1 (Beginner)",
	A2: "A2 (Elementary)",
	B1: "B1 (Intermediate)",
	B2: "B2 (Upper Intermediate)",
	C1: "C1 (Advanced)",
	C2: "C2 (Proficiency)",
}

// Levels returns all levels in ascending order.
func Levels() []Level {
	return []Level{A1, A2, B1, B2, C1, C2}
}

// Label is the human-readable name used in prompts and on screen.
func (l Level) Label() string {
	if s, ok := levelLabels[l]; ok {
		return s
	}
	return string(l)
}

func (l Level) Valid() bool {
	_, ok := levelLabels[l]
	return ok
}

// ParseLevel accepts "b1", "B1" or a full label.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	for _, l := range Levels() {
		if strings.EqualFold(s, string(l)) || strings.EqualFold(s, l.Label()) {
			return l, nil
		}
	}
	return "", &ConfigError{Field: "level", Value: s, Reason: "must be one of A1, A2, B1, B2, C1, C2"}
}

// FocusArea is the language skill a session practices.
type FocusArea string

const (
	Grammar      FocusArea = "Grammar"
	Vocabulary   FocusArea = "Vocabulary"
	Idioms       FocusArea = "Idioms"
	PhrasalVerbs FocusArea = "PhrasalVerbs"
)

// FocusAreas returns all focus areas in menu order.
func FocusAreas() []FocusArea {
	return []FocusArea{Grammar, Vocabulary, Idioms, PhrasalVerbs}
}

func (f FocusArea) Label() string {
	if f == PhrasalVerbs {
		return "Phrasal Verbs"
	}
	return string(f)
}

func (f FocusArea) Valid() bool {
	return slices.Contains(FocusAreas(), f)
}

// ParseFocus accepts "grammar", "phrasal-verbs", "Phrasal Verbs" and similar.
func ParseFocus(s string) (FocusArea, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.TrimSpace(s))
	for _, f := range FocusAreas() {
		if strings.EqualFold(key, string(f)) {
			return f, nil
		}
	}
	return "", &ConfigError{Field: "focus", Value: s, Reason: "must be one of grammar, vocabulary, idioms, phrasal-verbs"}
}

// SessionConfig is what the learner picks on the setup screen. It is a
// value: a retry re-sends the same config verbatim.
type SessionConfig struct {
	Level Level     `json:"level"`
	Focus FocusArea `json:"focus"`
	Topic string    `json:"topic,omitempty"`
}

// Validate reports a *ConfigError when level or focus is missing or unknown.
// The topic is optional.
func (c SessionConfig) Validate() error {
	if c.Level == "" {
		return &ConfigError{Field: "level", Reason: "is required"}
	}
	if !c.Level.Valid() {
		return &ConfigError{Field: "level", Value: string(c.Level), Reason: "is not a known level"}
	}
	if c.Focus == "" {
		return &ConfigError{Field: "focus", Reason: "is required"}
	}
	if !c.Focus.Valid() {
		return &ConfigError{Field: "focus", Value: string(c.Focus), Reason: "is not a known focus area"}
	}
	return nil
}

func (c SessionConfig) String() string {
	s := fmt.Sprintf("%s · %s", c.Level.Label(), c.Focus.Label())
	if t := strings.TrimSpace(c.Topic); t != "" {
		s += " · " + t
	}
	return s
}

// Theory is the study material shown before a quiz.
type Theory struct {
	Title     string   `json:"title"`
	Overview  string   `json:"overview"`
	KeyPoints []string `json:"keyPoints"`
	Examples  []string `json:"examples"`
}

// Question is one multiple-choice quiz item.
type Question struct {
	ID           int      `json:"id"`
	Text         string   `json:"questionText"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctAnswerIndex"`
	Explanation  string   `json:"explanation"`
}

// VocabularyItem is one flashcard. SentenceWithBlank carries BlankToken in
// place of Word.
type VocabularyItem struct {
	Word              string `json:"word"`
	Translation       string `json:"translation"`
	SentenceWithBlank string `json:"sentenceWithBlank"`
}

// Content is generated session material: either a *Lesson or a *Deck.
// Switch on the concrete type; there are no other implementations.
type Content interface {
	// Len is the number of assessable items.
	Len() int
	// Clone returns a deep copy.
	Clone() Content

	isContent()
}

// Lesson is theory plus a multiple-choice quiz.
type Lesson struct {
	Theory    Theory     `json:"theory"`
	Questions []Question `json:"questions"`
}

func (l *Lesson) Len() int { return len(l.Questions) }

func (l *Lesson) Clone() Content {
	out := &Lesson{
		Theory: Theory{
			Title:     l.Theory.Title,
			Overview:  l.Theory.Overview,
			KeyPoints: slices.Clone(l.Theory.KeyPoints),
			Examples:  slices.Clone(l.Theory.Examples),
		},
		Questions: make([]Question, len(l.Questions)),
	}
	for i, q := range l.Questions {
		q.Options = slices.Clone(q.Options)
		out.Questions[i] = q
	}
	return out
}

func (*Lesson) isContent() {}

// Deck is a vocabulary flashcard set. It has no theory and no quiz.
type Deck struct {
	Items []VocabularyItem `json:"vocabulary"`
}

func (d *Deck) Len() int { return len(d.Items) }

func (d *Deck) Clone() Content {
	return &Deck{Items: slices.Clone(d.Items)}
}

func (*Deck) isContent() {}
