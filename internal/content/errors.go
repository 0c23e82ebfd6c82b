package content

import "fmt"

// ConfigError reports an invalid session configuration. No request is sent
// when it is returned.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid session config: %s %q %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid session config: %s %s", e.Field, e.Reason)
}

// Stage names the step of generation that failed.
type Stage string

const (
	StageRequest  Stage = "request"
	StageDecode   Stage = "decode"
	StageValidate Stage = "validate"
)

// GenerationError means no usable content was produced. Err carries the
// provider or validation cause.
type GenerationError struct {
	Stage Stage
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("content generation failed (%s): %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
