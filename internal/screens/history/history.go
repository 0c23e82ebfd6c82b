// Package history lists past study sessions from the event store.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

// Limit is the number of sessions loaded.
const Limit = 50

// Lister reads recorded session events. store.EventRepo satisfies it.
type Lister interface {
	RecentSessions(ctx context.Context, action string, limit int) ([]store.SessionEvent, error)
}

type historyLoadedMsg struct {
	Sessions []store.SessionEvent
	Err      error
}

// HistoryScreen displays completed sessions.
type HistoryScreen struct {
	ctx      context.Context
	lister   Lister
	sessions []store.SessionEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(ctx context.Context, lister Lister) *HistoryScreen {
	return &HistoryScreen{
		ctx:      ctx,
		lister:   lister,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sessions, err := s.lister.RecentSessions(s.ctx, store.ActionCompleted, Limit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, e := range s.sessions {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+summaryLine(e))))
		b.WriteString("\n")

		if s.expanded[i] {
			dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
			for _, line := range detailLines(e) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render(line)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func summaryLine(e store.SessionEvent) string {
	topic := e.Topic
	if topic == "" {
		topic = "General"
	}
	return fmt.Sprintf("%s  %-3s %-13s %-18s %d/%d  %3d%%",
		e.Timestamp.Local().Format("Jan 02 15:04"), e.Level, e.Focus, truncate(topic, 18),
		e.Correct, e.Total, e.Percentage)
}

// detailLines explains a completed event. Lessons carry the score tier in
// Detail; vocabulary decks carry the give-up count.
func detailLines(e store.SessionEvent) []string {
	lines := []string{"Session " + e.SessionID}
	if strings.HasPrefix(e.Detail, "gave_up=") {
		lines = append(lines, fmt.Sprintf("%d perfect of %d cards, %s give-ups, average match %d%%",
			e.Correct, e.Total, strings.TrimPrefix(e.Detail, "gave_up="), e.Percentage))
		return lines
	}
	lines = append(lines, fmt.Sprintf("%d of %d correct", e.Correct, e.Total),
		session.TierFor(e.Percentage).Feedback())
	return lines
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
