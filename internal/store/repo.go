package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // filter on purpose ("" = all)
}

// LLMRequestEventData captures a single provider call.
type LLMRequestEventData struct {
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored provider call.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates provider usage per purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates provider usage per model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// Session event actions.
const (
	ActionStarted   = "started"
	ActionFailed    = "failed"
	ActionCompleted = "completed"
)

// SessionEventData captures one step in a study session's life.
type SessionEventData struct {
	SessionID  string
	Action     string
	Level      string
	Focus      string
	Topic      string
	Correct    int
	Total      int
	Percentage int
	Detail     string
}

// SessionEvent is a stored session event.
type SessionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// LLMEventAppender records provider calls.
type LLMEventAppender interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// SessionEventAppender records session lifecycle events.
type SessionEventAppender interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	LLMEventAppender
	SessionEventAppender

	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
	// GetLLMEvent returns nil, nil when no event has the ID.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// RecentSessions returns the newest session events with the given
	// action ("" = any), newest first.
	RecentSessions(ctx context.Context, action string, limit int) ([]SessionEvent, error)
}
