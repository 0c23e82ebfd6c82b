// Package setup is the first screen: the learner picks a level, a focus
// area and an optional topic, then starts a session.
package setup

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens/history"
	"github.com/abhisek/lingua/internal/screens/study"
	"github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

type step int

const (
	stepLevel step = iota
	stepFocus
	stepTopic
)

// topicLimit bounds the free-text topic.
const topicLimit = 80

type levelChosenMsg struct{ level content.Level }

type focusChosenMsg struct{ focus content.FocusArea }

// SetupScreen collects a session config.
type SetupScreen struct {
	ctx      context.Context
	ctrl     *session.Controller
	sessions history.Lister

	step   step
	levels components.Menu
	focus  components.Menu
	topic  components.TextInput

	cfg    content.SessionConfig
	errMsg string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

var focusDetails = map[content.FocusArea]string{
	content.Grammar:      "theory + quiz",
	content.Vocabulary:   "flashcards",
	content.Idioms:       "theory + quiz",
	content.PhrasalVerbs: "theory + quiz",
}

// New creates the setup screen. Fields set in preset become the initial
// menu selections. sessions may be nil, which hides the history shortcut.
func New(ctx context.Context, ctrl *session.Controller, preset content.SessionConfig, sessions history.Lister) *SetupScreen {
	levelItems := make([]components.MenuItem, 0, len(content.Levels()))
	for _, l := range content.Levels() {
		levelItems = append(levelItems, components.MenuItem{
			Label:  l.Label(),
			Action: func() tea.Cmd { return func() tea.Msg { return levelChosenMsg{l} } },
		})
	}

	focusItems := make([]components.MenuItem, 0, len(content.FocusAreas()))
	for _, f := range content.FocusAreas() {
		focusItems = append(focusItems, components.MenuItem{
			Label:  f.Label(),
			Detail: focusDetails[f],
			Action: func() tea.Cmd { return func() tea.Msg { return focusChosenMsg{f} } },
		})
	}

	s := &SetupScreen{
		ctx:      ctx,
		ctrl:     ctrl,
		sessions: sessions,
		levels:   components.NewMenu(levelItems),
		focus:    components.NewMenu(focusItems),
		topic:    components.NewTextInput("e.g. Present Perfect, Travel, Business English", topicLimit, 50),
		cfg:      preset,
	}
	if preset.Level.Valid() {
		s.levels.Select(preset.Level.Label())
	}
	if preset.Focus.Valid() {
		s.focus.Select(preset.Focus.Label())
	}
	s.topic.Model.SetValue(preset.Topic)
	s.topic.Blur()
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return "New Session"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	switch s.step {
	case stepTopic:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case stepFocus:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Back"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if s.sessions != nil {
		hints = append(hints, layout.KeyHint{Key: "H", Description: "History"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case levelChosenMsg:
		s.cfg.Level = msg.level
		s.step = stepFocus
		return s, nil

	case focusChosenMsg:
		s.cfg.Focus = msg.focus
		s.step = stepTopic
		return s, s.topic.Model.Focus()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.step == stepTopic {
		var cmd tea.Cmd
		s.topic, cmd = s.topic.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	s.errMsg = ""

	if msg.String() == "esc" {
		switch s.step {
		case stepFocus:
			s.step = stepLevel
		case stepTopic:
			s.topic.Blur()
			s.step = stepFocus
		}
		return s, nil
	}

	if msg.String() == "h" && s.step != stepTopic && s.sessions != nil {
		next := history.New(s.ctx, s.sessions)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}

	var cmd tea.Cmd
	switch s.step {
	case stepLevel:
		s.levels, cmd = s.levels.Update(msg)
	case stepFocus:
		s.focus, cmd = s.focus.Update(msg)
	case stepTopic:
		if msg.String() == "enter" {
			return s.start()
		}
		s.topic, cmd = s.topic.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	s.cfg.Topic = strings.TrimSpace(s.topic.Value())

	task, err := s.ctrl.StartSession(s.ctx, s.cfg)
	if err != nil {
		var ce *content.ConfigError
		if errors.As(err, &ce) {
			s.errMsg = ce.Error()
		} else {
			s.errMsg = "A session is already running."
		}
		return s, nil
	}

	s.topic.Blur()
	s.step = stepLevel
	next := study.New(s.ctx, s.ctrl, task)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("What would you like to practice?"))
	b.WriteString("\n\n")

	section := func(name, value string, active bool) {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if active {
			style = theme.Label
		}
		line := style.Render(name)
		if value != "" && !active {
			line += "  " + theme.Body.Render(value)
		}
		b.WriteString("  " + line + "\n")
	}

	section("1. Level", s.cfg.Level.Label(), s.step == stepLevel)
	if s.step == stepLevel {
		b.WriteString(s.levels.View())
	}
	b.WriteString("\n")

	section("2. Focus", s.cfg.Focus.Label(), s.step == stepFocus)
	if s.step == stepFocus {
		b.WriteString(s.focus.View())
	}
	b.WriteString("\n")

	section("3. Topic (optional)", "", s.step == stepTopic)
	if s.step == stepTopic {
		b.WriteString("    " + s.topic.View() + "\n")
		b.WriteString(theme.Hint.Render("    Leave empty for a general session."))
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n  " + theme.Incorrect.Render(s.errMsg) + "\n")
	}

	return lipgloss.NewStyle().Width(width).Height(height).Padding(1, 2).Render(b.String())
}

// Config is the selection made so far.
func (s *SetupScreen) Config() content.SessionConfig {
	return s.cfg
}
