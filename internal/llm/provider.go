package llm

import (
	"context"
	"encoding/json"
)

// Provider is the generative-content capability the study session depends on.
// Callers send a Request and receive structured JSON back.
type Provider interface {
	// Generate sends one request to the backing model. When req.Schema is
	// set the provider asks for output matching it and validates the
	// payload before returning. An empty payload is reported as
	// *ErrEmptyResponse, never as a successful Response.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model used when a Request does not name one.
	ModelID() string
}

// Request is a single provider call: model, prompt and output shape.
type Request struct {
	// Model overrides the provider's configured model for this call.
	// Friendly names ("gemini-flash") are resolved by each adapter.
	Model string

	// System sets the model's role and constraints.
	System string

	// Messages holds the prompt. Lesson generation always sends exactly one
	// user message.
	Messages []Message

	// Schema is the strict output shape. When nil the raw text is returned.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is a single prompt message.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema handed to the provider's structured output
// mechanism and used again to validate what comes back.
type Schema struct {
	// Name is kebab-case, e.g. "lesson-content". OpenAI uses it as the
	// schema name and the validator caches compiled schemas by it.
	Name string

	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response holds the provider's output.
type Response struct {
	// Content is the validated JSON document when a Schema was requested,
	// otherwise the raw text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// modelFor picks the request's model override, falling back to the
// provider default, and resolves friendly aliases.
func modelFor(req Request, fallback string, aliases map[string]string) string {
	if req.Model != "" {
		return resolveModel(req.Model, aliases)
	}
	return fallback
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names are passed through so direct model IDs keep working.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
