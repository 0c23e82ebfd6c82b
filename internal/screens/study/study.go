// Package study renders a running session: loading, theory, quiz or
// flashcards, results and errors. It only reads the controller view and
// issues controller commands.
package study

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/scoring"
	"github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
)

const answerLimit = 40

// StudyScreen shows the session owned by a controller.
type StudyScreen struct {
	ctx  context.Context
	ctrl *session.Controller
	task *session.Task

	view    session.View
	spinner spinner.Model
	theory  viewport.Model

	quiz      components.MultiChoice
	reviewing bool

	input   components.TextInput
	buttons components.ButtonRow
	notice  string
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)
var _ screen.StatusProvider = (*StudyScreen)(nil)
var _ screen.Closer = (*StudyScreen)(nil)

// New creates a study screen for the generation behind task.
func New(ctx context.Context, ctrl *session.Controller, task *session.Task) *StudyScreen {
	s := &StudyScreen{
		ctx:     ctx,
		ctrl:    ctrl,
		task:    task,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		theory:  viewport.New(),
		input:   components.NewTextInput("Type the missing word...", answerLimit, answerLimit),
	}
	s.sync()
	return s
}

func (s *StudyScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.wait())
}

func (s *StudyScreen) wait() tea.Cmd {
	if s.task == nil {
		return nil
	}
	return waitFor(s.ctx, s.task)
}

func (s *StudyScreen) Title() string {
	return "Study"
}

func (s *StudyScreen) Status() string {
	if s.view.Config == nil {
		return ""
	}
	return s.view.Config.String()
}

// Close abandons the session when the screen is popped.
func (s *StudyScreen) Close() {
	s.ctrl.ResetToSetup()
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	switch s.view.Stage {
	case session.StageLoading:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case session.StageTheory:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "Enter", Description: "Start practice"},
			{Key: "Esc", Description: "Back"},
		}
	case session.StageQuiz:
		if _, ok := s.view.Lesson(); ok {
			if s.reviewing {
				return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
			}
			return []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "A-D", Description: "Answer"},
				{Key: "Esc", Description: "Quit"},
			}
		}
		if s.scored() {
			return []layout.KeyHint{
				{Key: "←→", Description: "Choose"},
				{Key: "Enter", Description: "Select"},
				{Key: "Esc", Description: "Quit"},
			}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Check"},
			{Key: "Tab", Description: "Give up"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generationDoneMsg:
		if s.task == nil || msg.token != s.task.Token() {
			return s, nil
		}
		return s, s.sync()

	case screen.RefreshMsg:
		if s.reviewing {
			return s, nil
		}
		return s, s.sync()

	case spinner.TickMsg:
		if s.view.Stage != session.StageLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case retryMsg:
		return s.retry()

	case homeMsg:
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case nextCardMsg:
		if err := s.ctrl.AdvanceCard(); err != nil {
			s.notice = err.Error()
			return s, nil
		}
		return s, s.sync()

	case tryAgainMsg:
		s.buttons = components.ButtonRow{}
		s.notice = ""
		return s, s.input.Reset()

	case giveUpMsg:
		return s.submitCard(session.GiveUp())

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if _, ok := s.view.Deck(); ok && s.view.Stage == session.StageQuiz && !s.scored() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *StudyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.view.Stage {
	case session.StageTheory:
		if msg.String() == "enter" {
			if err := s.ctrl.BeginPractice(); err != nil {
				s.notice = err.Error()
				return s, nil
			}
			return s, s.sync()
		}
		var cmd tea.Cmd
		s.theory, cmd = s.theory.Update(msg)
		return s, cmd

	case session.StageQuiz:
		if _, ok := s.view.Lesson(); ok {
			return s.handleQuizKey(msg)
		}
		return s.handleCardKey(msg)

	case session.StageResults, session.StageError:
		var cmd tea.Cmd
		s.buttons, cmd = s.buttons.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *StudyScreen) handleQuizKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.reviewing {
		if msg.String() == "enter" {
			s.reviewing = false
			return s, s.sync()
		}
		return s, nil
	}

	s.quiz, _ = s.quiz.Update(msg)
	if !s.quiz.Submitted {
		return s, nil
	}

	if _, err := s.ctrl.SubmitAnswer(s.view.Index, session.Choice(s.quiz.ChosenIndex)); err != nil {
		s.notice = err.Error()
		s.quiz.Submitted = false
		return s, nil
	}
	s.notice = ""
	s.reviewing = true
	return s, nil
}

func (s *StudyScreen) handleCardKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.scored() {
		var cmd tea.Cmd
		s.buttons, cmd = s.buttons.Update(msg)
		return s, cmd
	}

	switch msg.String() {
	case "enter":
		return s.submitCard(session.Text(s.input.Value()))
	case "tab":
		return s.submitCard(session.GiveUp())
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *StudyScreen) submitCard(r session.Response) (screen.Screen, tea.Cmd) {
	res, err := s.ctrl.SubmitAnswer(s.view.Index, r)
	if errors.Is(err, session.ErrEmptyAnswer) {
		s.notice = "Type an answer, or press Tab to give up."
		return s, nil
	}
	if err != nil {
		s.notice = err.Error()
		return s, nil
	}

	s.notice = ""
	s.view = s.ctrl.View()
	s.input.Blur()
	s.buttons = cardButtons(*res)
	return s, nil
}

func cardButtons(res scoring.Result) components.ButtonRow {
	next := components.Button{Label: "Next", OnPress: send(nextCardMsg{})}
	if res.IsPerfectMatch || res.GaveUp {
		return components.NewButtonRow(next)
	}
	return components.NewButtonRow(
		components.Button{Label: "Try again", OnPress: send(tryAgainMsg{})},
		components.Button{Label: "Give up", OnPress: send(giveUpMsg{})},
		next,
	)
}

func (s *StudyScreen) scored() bool {
	return len(s.buttons.Buttons) > 0
}

func (s *StudyScreen) retry() (screen.Screen, tea.Cmd) {
	task, err := s.ctrl.Retry(s.ctx)
	if errors.Is(err, session.ErrNoConfig) {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if err != nil {
		s.notice = err.Error()
		return s, nil
	}
	s.task = task
	s.sync()
	return s, tea.Batch(s.spinner.Tick, s.wait())
}

// sync re-reads the controller view and rebuilds the widgets for the
// current item when the stage or item changed.
func (s *StudyScreen) sync() tea.Cmd {
	prev := s.view
	s.view = s.ctrl.View()
	v := s.view

	if prev.Stage == v.Stage && prev.Index == v.Index && prev.Token == v.Token {
		return nil
	}

	s.notice = ""
	s.reviewing = false
	s.buttons = components.ButtonRow{}

	switch v.Stage {
	case session.StageTheory:
		s.theory.GotoTop()

	case session.StageQuiz:
		if q, ok := v.Question(); ok {
			s.quiz = components.NewMultiChoice(q.Text, q.Options, q.CorrectIndex, q.Explanation)
			return nil
		}
		if _, ok := v.Card(); ok {
			return s.input.Reset()
		}

	case session.StageResults:
		s.input.Blur()
		s.buttons = components.NewButtonRow(
			components.Button{Label: "Try again", OnPress: send(retryMsg{})},
			components.Button{Label: "New session", OnPress: send(homeMsg{})},
		)

	case session.StageError:
		s.buttons = components.NewButtonRow(
			components.Button{Label: "Retry", OnPress: send(retryMsg{})},
			components.Button{Label: "Home", OnPress: send(homeMsg{})},
		)
	}
	return nil
}
