package session

// Stage is the step of the study flow the session is in.
type Stage int

const (
	StageSetup   Stage = iota // Choosing level, focus and topic
	StageLoading              // Waiting for generated content
	StageTheory               // Reading the lesson theory
	StageQuiz                 // Answering questions or flashcards
	StageResults              // Session finished
	StageError                // Generation failed
)

var stageNames = [...]string{"setup", "loading", "theory", "quiz", "results", "error"}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// canStart reports whether StartSession and Retry may run from s.
func (s Stage) canStart() bool {
	switch s {
	case StageSetup, StageResults, StageError, StageLoading:
		return true
	}
	return false
}
