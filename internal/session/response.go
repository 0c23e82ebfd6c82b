package session

// ResponseKind distinguishes learner responses.
type ResponseKind int

const (
	KindChoice ResponseKind = iota // Multiple-choice option
	KindText                       // Typed flashcard answer
	KindGiveUp                     // Reveal the flashcard word
)

func (k ResponseKind) String() string {
	switch k {
	case KindChoice:
		return "choice"
	case KindText:
		return "text"
	case KindGiveUp:
		return "give-up"
	}
	return "unknown"
}

// Response is a learner's answer to the current item. Build one with
// Choice, Text or GiveUp.
type Response struct {
	kind   ResponseKind
	choice int
	text   string
}

// Choice selects option i of a multiple-choice question.
func Choice(i int) Response { return Response{kind: KindChoice, choice: i} }

// Text is a typed answer to a flashcard.
func Text(s string) Response { return Response{kind: KindText, text: s} }

// GiveUp reveals a flashcard without answering it.
func GiveUp() Response { return Response{kind: KindGiveUp} }

func (r Response) Kind() ResponseKind { return r.kind }
