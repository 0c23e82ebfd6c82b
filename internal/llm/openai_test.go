package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

// wordSchema is a small strict schema shared by the adapter tests.
var wordSchema = &Schema{
	Name:        "word-test",
	Description: "A single word with its translation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"word":        map[string]any{"type": "string"},
			"translation": map[string]any{"type": "string"},
		},
		"required":             []any{"word", "translation"},
		"additionalProperties": false,
	},
}

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return newOpenAICompatible("test-key", server.URL+"/v1", "gpt-4o-mini", openaiModels)
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": finish,
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     40,
			"completion_tokens": 25,
			"total_tokens":      65,
		},
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var got map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"word":"apple","translation":"manzana"}`, "stop"))
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:    "You are an expert English teacher.",
		Messages:  []Message{{Role: RoleUser, Content: "Give me a word."}},
		Schema:    wordSchema,
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Fatalf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}

	if got["model"] != "gpt-4o-mini" {
		t.Errorf("model = %v", got["model"])
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("messages = %v", got["messages"])
	}
	if first, _ := msgs[0].(map[string]any); first["role"] != openai.ChatMessageRoleSystem {
		t.Errorf("first message role = %v", first["role"])
	}
	format, _ := got["response_format"].(map[string]any)
	schema, _ := format["json_schema"].(map[string]any)
	if schema["name"] != "word-test" || schema["strict"] != true {
		t.Fatalf("response format = %v", format)
	}
}

func TestOpenAIProvider_ModelOverride(t *testing.T) {
	var got map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"word":"a","translation":"b"}`, "stop"))
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Model:    "gpt-4.1-mini",
		Messages: []Message{{Role: RoleUser, Content: "x"}},
		Schema:   wordSchema,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["model"] != "gpt-4.1-mini" {
		t.Errorf("model = %v, want gpt-4.1-mini", got["model"])
	}
}

func TestOpenAIProvider_PayloadFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		finish  string
		check   func(error) bool
	}{
		{"empty content", "", "stop", func(err error) bool {
			var e *ErrEmptyResponse
			return errors.As(err, &e)
		}},
		{"schema mismatch", `{"word":"apple"}`, "stop", func(err error) bool {
			var e *ErrInvalidResponse
			return errors.As(err, &e)
		}},
		{"not json", `apple`, "stop", func(err error) bool {
			var e *ErrInvalidResponse
			return errors.As(err, &e)
		}},
		{"truncated", `{"word":"ap`, "length", func(err error) bool {
			var e *ErrMaxTokensExceeded
			return errors.As(err, &e)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(chatCompletion(tt.content, tt.finish))
			}
			p := newTestOpenAIProvider(t, handler)
			_, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "x"}},
				Schema:   wordSchema,
			})
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Fatalf("unexpected error type %T (%v)", err, err)
			}
			if IsTransient(err) {
				t.Error("payload failures must not be transient")
			}
		})
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{},
		})
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	var empty *ErrEmptyResponse
	if !errors.As(err, &empty) {
		t.Fatalf("expected ErrEmptyResponse, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "tokens",
				"message": "Rate limit exceeded",
				"code":    "rate_limit_exceeded",
			},
		})
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 100,
	})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "server_error",
				"message": "Internal server error",
			},
		})
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 100,
	})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"}); err == nil {
		t.Fatal("expected error for empty API key")
	}

	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o",
		BaseURL: "https://proxy.example/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("expected 'gpt-4o', got %q", p.ModelID())
	}
}
