package session

import "errors"

// Rejected commands leave the session unchanged and return one of these,
// wrapped with the command and stage.
var (
	ErrInvalidTransition = errors.New("command not valid in current stage")
	ErrEmptyAnswer       = errors.New("answer is empty")
	ErrNotScored         = errors.New("current card has no score yet")
	ErrItemMismatch      = errors.New("answer is not for the current item")
	ErrResponseKind      = errors.New("response kind does not match the content")
	ErrOptionRange       = errors.New("option index out of range")
	ErrNoConfig          = errors.New("no session config to retry")
	ErrNoItems           = errors.New("content has no items")
)

// GenerationFailedMessage is what the learner sees when content could not
// be produced. The underlying cause is logged and kept in View.Cause.
const GenerationFailedMessage = "Failed to generate content. Please check your connection or try a different topic."
