package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/lingua/internal/llm"
)

// Generator produces session content. *Client is the production
// implementation; the session controller depends on this interface.
type Generator interface {
	Generate(ctx context.Context, sc SessionConfig) (Content, error)
}

// Client builds one provider request per session and validates the answer.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	provider llm.Provider
	cfg      Config
}

// NewClient creates a content client. Zero counts fall back to defaults.
func NewClient(provider llm.Provider, cfg Config) *Client {
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = DefaultQuestionCount
	}
	if cfg.VocabularyCount <= 0 {
		cfg.VocabularyCount = DefaultVocabularyCount
	}
	return &Client{provider: provider, cfg: cfg}
}

// Generate validates sc, sends exactly one request and returns a *Lesson
// for Grammar, Idioms and Phrasal Verbs or a *Deck for Vocabulary. Invalid
// configs return *ConfigError without contacting the provider; every other
// failure is a *GenerationError.
func (c *Client) Generate(ctx context.Context, sc SessionConfig) (Content, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	req := c.Request(sc)
	purpose := "lesson"
	if sc.Focus == Vocabulary {
		purpose = "vocabulary"
	}

	resp, err := c.provider.Generate(llm.WithPurpose(ctx, purpose), req)
	if err != nil {
		return nil, &GenerationError{Stage: StageRequest, Err: err}
	}
	if len(resp.Content) == 0 {
		return nil, &GenerationError{Stage: StageRequest, Err: &llm.ErrEmptyResponse{Model: resp.Model}}
	}

	if sc.Focus == Vocabulary {
		var out deckOutput
		if err := json.Unmarshal(resp.Content, &out); err != nil {
			return nil, &GenerationError{Stage: StageDecode, Err: fmt.Errorf("parse vocabulary response: %w", err)}
		}
		deck, err := buildDeck(out)
		if err != nil {
			return nil, &GenerationError{Stage: StageValidate, Err: err}
		}
		return deck, nil
	}

	var out lessonOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &GenerationError{Stage: StageDecode, Err: fmt.Errorf("parse lesson response: %w", err)}
	}
	lesson, err := buildLesson(out)
	if err != nil {
		return nil, &GenerationError{Stage: StageValidate, Err: err}
	}
	return lesson, nil
}

// Request builds the provider request for sc without sending it.
func (c *Client) Request(sc SessionConfig) llm.Request {
	req := llm.Request{
		Model:       c.cfg.Model,
		System:      systemPrompt,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	if sc.Focus == Vocabulary {
		req.Schema = DeckSchema
		req.Messages = []llm.Message{{Role: llm.RoleUser, Content: buildDeckUserMessage(sc, c.cfg.VocabularyCount)}}
	} else {
		req.Schema = LessonSchema
		req.Messages = []llm.Message{{Role: llm.RoleUser, Content: buildLessonUserMessage(sc, c.cfg.QuestionCount)}}
	}
	return req
}
