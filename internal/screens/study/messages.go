package study

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/session"
)

// generationDoneMsg is sent when the generation behind a task completes.
type generationDoneMsg struct {
	token uint64
}

// Button actions.
type (
	retryMsg    struct{}
	homeMsg     struct{}
	nextCardMsg struct{}
	tryAgainMsg struct{}
	giveUpMsg   struct{}
)

// waitFor blocks until task finishes. It yields nothing if ctx ends first.
func waitFor(ctx context.Context, task *session.Task) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-task.Done():
			return generationDoneMsg{token: task.Token()}
		case <-ctx.Done():
			return nil
		}
	}
}

func send(msg tea.Msg) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return msg }
	}
}
