package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider throttled the request (HTTP 429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the payload was not valid JSON or did not
// match the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid provider response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrEmptyResponse indicates the provider answered without any payload.
type ErrEmptyResponse struct {
	Model string
}

func (e *ErrEmptyResponse) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("empty response from %s", e.Model)
	}
	return "empty response from provider"
}

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider unavailable: %v", e.Err)
	}
	return "provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated at MaxTokens.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "provider response truncated: max tokens exceeded"
}

// IsTransient reports whether err is a transport-level failure that may
// succeed when sent again. Payload problems are never transient.
func IsTransient(err error) bool {
	var rl *ErrRateLimit
	var unavail *ErrProviderUnavailable
	return errors.As(err, &rl) || errors.As(err, &unavail)
}
