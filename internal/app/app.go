// Package app wires the root Bubble Tea model: a screen router with the
// setup screen at its root and redraws driven by the session controller.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens/history"
	"github.com/abhisek/lingua/internal/screens/setup"
	"github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/ui/layout"
)

// Deps are the collaborators the TUI needs.
type Deps struct {
	Controller *session.Controller

	// Sessions, when set, backs the history screen.
	Sessions history.Lister

	// Preset preselects level, focus and topic on the setup screen.
	Preset content.SessionConfig
}

// sessionChangedMsg is sent after the controller state changes.
type sessionChangedMsg struct{}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	changes <-chan struct{}
	width   int
	height  int
}

func newAppModel(ctx context.Context, deps Deps) AppModel {
	return AppModel{
		router:  router.New(setup.New(ctx, deps.Controller, deps.Preset, deps.Sessions)),
		changes: deps.Controller.Subscribe(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.listen()
}

// listen waits for the next controller change.
func (m AppModel) listen() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return sessionChangedMsg{}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionChangedMsg:
		cmd := m.router.Update(screen.RefreshMsg{})
		return m, tea.Batch(cmd, m.listen())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the header, active screen and footer for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	body := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, body, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(newAppModel(ctx, deps), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
