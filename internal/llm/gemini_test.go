package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiSchemaConversion(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"word":  map[string]any{"type": "string", "description": "The word"},
			"level": map[string]any{"type": "string", "enum": []any{"A1", "B1"}},
			"count": map[string]any{"type": "integer"},
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":             []any{"word", "level", "count", "tags"},
		"additionalProperties": false,
	}

	schema := geminiSchema(def)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["word"].Description != "The word" {
		t.Errorf("description lost: %q", schema.Properties["word"].Description)
	}
	if schema.Properties["count"].Type != genai.TypeInteger {
		t.Errorf("expected INTEGER for count, got %s", schema.Properties["count"].Type)
	}
	if len(schema.Properties["level"].Enum) != 2 {
		t.Errorf("expected 2 enum values, got %d", len(schema.Properties["level"].Enum))
	}
	if schema.Properties["tags"].Items.Type != genai.TypeString {
		t.Errorf("expected STRING items, got %s", schema.Properties["tags"].Items.Type)
	}
	if strings.Join(schema.PropertyOrdering, ",") != "word,level,count,tags" {
		t.Errorf("ordering = %v", schema.PropertyOrdering)
	}
	if len(schema.Required) != 4 {
		t.Errorf("expected 4 required fields, got %d", len(schema.Required))
	}
}

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-flash",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func geminiBody(text, finish string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": finish,
			},
		},
		"usageMetadata": map[string]any{
			"promptTokenCount":     12,
			"candidatesTokenCount": 34,
			"totalTokenCount":      46,
		},
	}
}

func TestGeminiProvider_HappyPath(t *testing.T) {
	var path string
	handler := func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiBody(`{"word":"apple","translation":"manzana"}`, "STOP"))
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:   "You are an expert English teacher.",
		Messages: []Message{{Role: RoleUser, Content: "Give me a word."}},
		Schema:   wordSchema,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 12 || resp.Usage.OutputTokens != 34 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.Model != "gemini-2.5-flash" {
		t.Errorf("model = %q", resp.Model)
	}
	if !strings.Contains(path, "gemini-2.5-flash") {
		t.Errorf("request path %q does not name the model", path)
	}
}

func TestGeminiProvider_MaxTokens(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiBody(`{"word":"ap`, "MAX_TOKENS"))
	}

	p := newTestGeminiProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
		Schema:   wordSchema,
	})
	var mt *ErrMaxTokensExceeded
	if !errors.As(err, &mt) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestGeminiProvider_EmptyText(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiBody("", "STOP"))
	}

	p := newTestGeminiProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
		Schema:   wordSchema,
	})
	var empty *ErrEmptyResponse
	if !errors.As(err, &empty) {
		t.Fatalf("expected ErrEmptyResponse, got %T (%v)", err, err)
	}
}

func TestGeminiProvider_RateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    429,
				"message": "Resource has been exhausted",
				"status":  "RESOURCE_EXHAUSTED",
			},
		})
	}

	p := newTestGeminiProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
	})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(context.Background(), GeminiConfig{Model: "gemini-flash"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}
