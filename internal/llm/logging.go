package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/lingua/internal/logger"
	"github.com/abhisek/lingua/internal/store"
)

// LoggingProvider is a decorator that records every request as an event
// and mirrors failures into the diagnostics log.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.LLMEventAppender
	log      *logger.Logger
}

// WithLogging wraps a Provider with event logging. events may be nil, in
// which case only the diagnostics log is written.
func WithLogging(p Provider, providerName string, events store.LLMEventAppender, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, provider: providerName, events: events, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		SessionID:   SessionIDFrom(ctx),
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if req.Model != "" {
		data.Model = req.Model
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warn("provider request failed",
			"provider", l.provider,
			"model", data.Model,
			"purpose", purpose,
			"latency_ms", data.LatencyMs,
			"error", err,
		)
	} else {
		l.log.Debug("provider request",
			"provider", l.provider,
			"model", data.Model,
			"purpose", purpose,
			"input_tokens", data.InputTokens,
			"output_tokens", data.OutputTokens,
			"latency_ms", data.LatencyMs,
		)
	}

	// Never fail the request because the event log is unavailable.
	if l.events != nil {
		if logErr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			l.log.Warn("failed to record provider request", "error", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(schemaDef)
			b.WriteString("\n")
		}
	}

	return b.String()
}
