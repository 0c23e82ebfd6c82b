package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"llm_request_events", "session_events", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s1", Action: ActionStarted, Level: "B1", Focus: "Grammar",
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	events, err := s.EventRepo().RecentSessions(ctx, "", 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 1 || events[0].SessionID != "s1" {
		t.Fatalf("events = %+v, want one event for s1", events)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "content", Success: true}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s", Action: ActionCompleted, Level: "A1", Focus: "Vocabulary"}); err != nil {
		t.Fatal(err)
	}

	llmEvents, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	sessions, err := repo.RecentSessions(ctx, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if llmEvents[0].Sequence != 1 || sessions[0].Sequence != 2 {
		t.Errorf("sequences = %d, %d; want 1, 2", llmEvents[0].Sequence, sessions[0].Sequence)
	}
}

func TestLLMEventsQueryAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	inputs := []LLMRequestEventData{
		{SessionID: "a", Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "content", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true, RequestBody: "[user]\nhi", ResponseBody: `{"ok":true}`},
		{SessionID: "b", Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "content", InputTokens: 120, OutputTokens: 0, LatencyMs: 300, Success: false, ErrorMessage: "rate limited"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "generate", InputTokens: 50, OutputTokens: 200, LatencyMs: 600, Success: true},
	}
	for _, in := range inputs {
		if err := repo.AppendLLMRequest(ctx, in); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	if all[0].Purpose != "generate" {
		t.Errorf("newest first: got purpose %q", all[0].Purpose)
	}

	content, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "content", Limit: 1})
	if err != nil {
		t.Fatalf("query content: %v", err)
	}
	if len(content) != 1 || content[0].SessionID != "b" {
		t.Fatalf("content query = %+v, want newest content event", content)
	}
	if content[0].Success {
		t.Error("failed event reported success")
	}
	if content[0].ErrorMessage != "rate limited" {
		t.Errorf("error message = %q", content[0].ErrorMessage)
	}

	first, err := repo.GetLLMEvent(ctx, all[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first == nil || first.ResponseBody != `{"ok":true}` || first.RequestBody != "[user]\nhi" {
		t.Fatalf("get returned %+v", first)
	}
	if first.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing event, got %+v", missing)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, in := range []LLMRequestEventData{
		{Provider: "gemini", Model: "m1", Purpose: "content", InputTokens: 10, OutputTokens: 20, LatencyMs: 100},
		{Provider: "gemini", Model: "m1", Purpose: "content", InputTokens: 30, OutputTokens: 40, LatencyMs: 300},
		{Provider: "openai", Model: "m2", Purpose: "generate", InputTokens: 5, OutputTokens: 5, LatencyMs: 50},
	} {
		if err := repo.AppendLLMRequest(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("got %d purpose rows, want 2", len(byPurpose))
	}
	p := byPurpose[0]
	if p.Purpose != "content" || p.Calls != 2 || p.InputTokens != 40 || p.OutputTokens != 60 || p.AvgLatencyMs != 200 {
		t.Errorf("content usage = %+v", p)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "m1" || byModel[1].Calls != 1 {
		t.Errorf("model usage = %+v", byModel)
	}
}

func TestRecentSessionsFilterAndLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []SessionEventData{
		{SessionID: "1", Action: ActionStarted, Level: "B1", Focus: "Grammar", Topic: "Phrasal Verbs"},
		{SessionID: "1", Action: ActionCompleted, Level: "B1", Focus: "Grammar", Topic: "Phrasal Verbs", Correct: 4, Total: 5, Percentage: 80},
		{SessionID: "2", Action: ActionStarted, Level: "A2", Focus: "Vocabulary", Topic: "Travel"},
		{SessionID: "2", Action: ActionFailed, Level: "A2", Focus: "Vocabulary", Topic: "Travel", Detail: "empty response"},
	}
	for _, e := range events {
		if err := repo.AppendSessionEvent(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	completed, err := repo.RecentSessions(ctx, ActionCompleted, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(completed) != 1 {
		t.Fatalf("completed = %d, want 1", len(completed))
	}
	c := completed[0]
	if c.Correct != 4 || c.Total != 5 || c.Percentage != 80 || c.Topic != "Phrasal Verbs" {
		t.Errorf("completed event = %+v", c)
	}

	latest, err := repo.RecentSessions(ctx, "", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(latest) != 2 || latest[0].Action != ActionFailed || latest[1].Action != ActionStarted {
		t.Errorf("latest = %+v", latest)
	}
}
