package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/store"
)

type fakeLister struct {
	events []store.SessionEvent
	err    error
	action string
}

func (f *fakeLister) RecentSessions(_ context.Context, action string, _ int) ([]store.SessionEvent, error) {
	f.action = action
	return f.events, f.err
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func load(t *testing.T, l Lister) *HistoryScreen {
	t.Helper()
	s := New(context.Background(), l)
	s.Update(s.Init()())
	return s
}

func sampleEvents() []store.SessionEvent {
	ts := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	return []store.SessionEvent{
		{Timestamp: ts, SessionEventData: store.SessionEventData{
			SessionID: "s2", Action: store.ActionCompleted, Level: "A2", Focus: "Vocabulary", Topic: "Travel",
			Correct: 18, Total: 20, Percentage: 93, Detail: "gave_up=1",
		}},
		{Timestamp: ts.Add(-time.Hour), SessionEventData: store.SessionEventData{
			SessionID: "s1", Action: store.ActionCompleted, Level: "B1", Focus: "Grammar",
			Correct: 3, Total: 5, Percentage: 60, Detail: "mid",
		}},
	}
}

func TestHistoryScreen_Title(t *testing.T) {
	s := New(context.Background(), &fakeLister{})
	if s.Title() != "History" {
		t.Errorf("Title = %q, want %q", s.Title(), "History")
	}
}

func TestHistoryScreen_LoadsCompletedSessions(t *testing.T) {
	l := &fakeLister{events: sampleEvents()}
	s := load(t, l)

	if l.action != store.ActionCompleted {
		t.Errorf("expected completed sessions to be requested, got %q", l.action)
	}
	view := s.View(100, 24)
	for _, want := range []string{"Travel", "18/20", "General", "3/5"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestHistoryScreen_Expand(t *testing.T) {
	s := load(t, &fakeLister{events: sampleEvents()})

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyEnter))
	view := s.View(100, 24)
	if !strings.Contains(view, "3 of 5 correct") || !strings.Contains(view, "Session s1") {
		t.Errorf("expected details for the second session:\n%s", view)
	}

	s.Update(specialKey(tea.KeyUp))
	s.Update(specialKey(tea.KeyEnter))
	if view := s.View(120, 24); !strings.Contains(view, "1 give-ups") {
		t.Errorf("expected deck details:\n%s", view)
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := load(t, &fakeLister{})
	if view := s.View(80, 24); !strings.Contains(view, "No sessions yet") {
		t.Errorf("unexpected empty view:\n%s", view)
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := load(t, &fakeLister{err: errors.New("disk on fire")})
	if view := s.View(80, 24); !strings.Contains(view, "disk on fire") {
		t.Errorf("expected error in view:\n%s", view)
	}
}

func TestHistoryScreen_EscPops(t *testing.T) {
	s := load(t, &fakeLister{})
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc should pop the screen")
	}
}
