package content

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Raw provider output. Pointers distinguish an absent field from a zero.
type lessonOutput struct {
	Theory    *theoryOutput    `json:"theory"`
	Questions []questionOutput `json:"questions"`
}

type theoryOutput struct {
	Title     string   `json:"title"`
	Overview  string   `json:"overview"`
	KeyPoints []string `json:"keyPoints"`
	Examples  []string `json:"examples"`
}

type questionOutput struct {
	ID                 int      `json:"id"`
	QuestionText       string   `json:"questionText"`
	Options            []string `json:"options"`
	CorrectAnswerIndex *int     `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

type deckOutput struct {
	Vocabulary []vocabularyOutput `json:"vocabulary"`
}

type vocabularyOutput struct {
	Word              string `json:"word"`
	Translation       string `json:"translation"`
	SentenceWithBlank string `json:"sentenceWithBlank"`
}

const optionCount = 4

var (
	errNoTheory    = errors.New("theory is missing")
	errNoQuestions = errors.New("questions list is empty")
	errNoItems     = errors.New("vocabulary list is empty")
)

// loosely formed blanks ("___", "________") the model sometimes emits
var blankRun = regexp.MustCompile(`_{3,}`)

func buildLesson(out lessonOutput) (*Lesson, error) {
	if out.Theory == nil {
		return nil, errNoTheory
	}

	theory := Theory{
		Title:     strings.TrimSpace(out.Theory.Title),
		Overview:  strings.TrimSpace(out.Theory.Overview),
		KeyPoints: trimAll(out.Theory.KeyPoints),
		Examples:  trimAll(out.Theory.Examples),
	}
	switch {
	case theory.Title == "":
		return nil, missing("theory.title")
	case theory.Overview == "":
		return nil, missing("theory.overview")
	case len(theory.KeyPoints) == 0:
		return nil, missing("theory.keyPoints")
	case len(theory.Examples) == 0:
		return nil, missing("theory.examples")
	}

	if len(out.Questions) == 0 {
		return nil, errNoQuestions
	}

	questions := make([]Question, len(out.Questions))
	for i, raw := range out.Questions {
		q, err := buildQuestion(raw)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions[i] = q
	}
	renumber(questions)

	return &Lesson{Theory: theory, Questions: questions}, nil
}

func buildQuestion(raw questionOutput) (Question, error) {
	q := Question{
		ID:          raw.ID,
		Text:        strings.TrimSpace(raw.QuestionText),
		Explanation: strings.TrimSpace(raw.Explanation),
	}
	if q.Text == "" {
		return q, missing("questionText")
	}
	if q.Explanation == "" {
		return q, missing("explanation")
	}

	if len(raw.Options) != optionCount {
		return q, fmt.Errorf("options has %d entries, want %d", len(raw.Options), optionCount)
	}
	q.Options = make([]string, optionCount)
	for i, o := range raw.Options {
		o = strings.TrimSpace(o)
		if o == "" {
			return q, missing(fmt.Sprintf("options[%d]", i))
		}
		q.Options[i] = o
	}

	if raw.CorrectAnswerIndex == nil {
		return q, missing("correctAnswerIndex")
	}
	idx := *raw.CorrectAnswerIndex
	if idx < 0 || idx >= optionCount {
		return q, fmt.Errorf("correctAnswerIndex %d outside [0,%d]", idx, optionCount-1)
	}
	q.CorrectIndex = idx

	return q, nil
}

// renumber assigns 1..N when the provider's IDs collide or are unset.
func renumber(qs []Question) {
	seen := make(map[int]bool, len(qs))
	unique := true
	for _, q := range qs {
		if q.ID <= 0 || seen[q.ID] {
			unique = false
			break
		}
		seen[q.ID] = true
	}
	if unique {
		return
	}
	for i := range qs {
		qs[i].ID = i + 1
	}
}

func buildDeck(out deckOutput) (*Deck, error) {
	if len(out.Vocabulary) == 0 {
		return nil, errNoItems
	}

	items := make([]VocabularyItem, len(out.Vocabulary))
	for i, raw := range out.Vocabulary {
		item, err := buildItem(raw)
		if err != nil {
			return nil, fmt.Errorf("vocabulary %d: %w", i+1, err)
		}
		items[i] = item
	}
	return &Deck{Items: items}, nil
}

func buildItem(raw vocabularyOutput) (VocabularyItem, error) {
	item := VocabularyItem{
		Word:              strings.TrimSpace(raw.Word),
		Translation:       strings.TrimSpace(raw.Translation),
		SentenceWithBlank: strings.TrimSpace(raw.SentenceWithBlank),
	}
	switch {
	case item.Word == "":
		return item, missing("word")
	case item.Translation == "":
		return item, missing("translation")
	case item.SentenceWithBlank == "":
		return item, missing("sentenceWithBlank")
	}

	masked, ok := maskSentence(item.SentenceWithBlank, item.Word)
	if !ok {
		return item, fmt.Errorf("sentence for %q has no blank and does not contain the word", item.Word)
	}
	item.SentenceWithBlank = masked
	return item, nil
}

// maskSentence makes sure the sentence carries exactly BlankToken where the
// word goes. Underscore runs are normalized; an unmasked sentence has its
// first case-insensitive occurrence of the word replaced.
func maskSentence(sentence, word string) (string, bool) {
	if blankRun.MatchString(sentence) {
		return blankRun.ReplaceAllString(sentence, BlankToken), true
	}

	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return sentence, false
	}
	loc := re.FindStringIndex(sentence)
	if loc == nil {
		return sentence, false
	}
	return sentence[:loc[0]] + BlankToken + sentence[loc[1]:], true
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func missing(field string) error {
	return fmt.Errorf("required field %s is missing or empty", field)
}
