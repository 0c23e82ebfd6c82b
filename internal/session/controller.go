// Package session drives one study session: it requests content, walks the
// learner through theory and practice, records answers and reports scores.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/logger"
	"github.com/abhisek/lingua/internal/scoring"
	"github.com/abhisek/lingua/internal/store"
)

// Recorder receives session lifecycle events. *store.Store's event repo
// satisfies it.
type Recorder = store.SessionEventAppender

// Options configures a Controller. The zero value is usable.
type Options struct {
	// Recorder, when set, receives started/failed/completed events.
	Recorder Recorder

	Logger *logger.Logger

	// Timeout bounds each generation. Zero means no limit beyond the
	// caller's context.
	Timeout time.Duration
}

// Controller owns the state of a single study session. All commands are
// safe for concurrent use; the only background work is the generation
// goroutine started by StartSession and Retry.
type Controller struct {
	gen     content.Generator
	rec     Recorder
	log     *logger.Logger
	timeout time.Duration

	mu        sync.Mutex
	stage     Stage
	cfg       *content.SessionConfig
	content   content.Content
	index     int
	choices   map[int]int
	scores    map[int]scoring.Result
	errMsg    string
	cause     error
	token     uint64
	sessionID string
	subs      []chan struct{}
}

// New creates a controller in StageSetup.
func New(gen content.Generator, opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		gen:     gen,
		rec:     opts.Recorder,
		log:     log,
		timeout: opts.Timeout,
		stage:   StageSetup,
	}
}

// StartSession stores cfg and begins generating content for it. It is valid
// in Setup, Results and Error, and in Loading where it supersedes the
// pending request. An invalid cfg returns *content.ConfigError and leaves
// the session untouched.
func (c *Controller) StartSession(ctx context.Context, cfg content.SessionConfig) (*Task, error) {
	c.mu.Lock()
	if !c.stage.canStart() {
		stage := c.stage
		c.mu.Unlock()
		return nil, fmt.Errorf("start session in %s: %w", stage, ErrInvalidTransition)
	}
	if err := cfg.Validate(); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	task := c.beginLocked(ctx, cfg)
	c.mu.Unlock()
	return task, nil
}

// Retry re-issues the stored config. It is valid in Results, Error and
// Loading. Without a stored config the session returns to Setup.
func (c *Controller) Retry(ctx context.Context) (*Task, error) {
	c.mu.Lock()
	switch c.stage {
	case StageResults, StageError, StageLoading:
	default:
		stage := c.stage
		c.mu.Unlock()
		return nil, fmt.Errorf("retry in %s: %w", stage, ErrInvalidTransition)
	}
	if c.cfg == nil {
		c.resetLocked()
		c.mu.Unlock()
		return nil, fmt.Errorf("retry: %w", ErrNoConfig)
	}
	task := c.beginLocked(ctx, *c.cfg)
	c.mu.Unlock()
	return task, nil
}

// beginLocked moves to Loading under a fresh token and launches the
// generation goroutine.
func (c *Controller) beginLocked(ctx context.Context, cfg content.SessionConfig) *Task {
	c.cfg = &cfg
	c.content = nil
	c.index = 0
	c.choices = nil
	c.scores = nil
	c.errMsg = ""
	c.cause = nil
	c.stage = StageLoading
	c.token++
	c.sessionID = uuid.NewString()

	task := newTask(c.token)
	c.notifyLocked()

	c.log.Info("generating content", "session_id", c.sessionID, "token", task.token,
		"level", cfg.Level, "focus", cfg.Focus, "topic", cfg.Topic)

	go c.generate(ctx, task, cfg, c.sessionID)
	return task
}

func (c *Controller) generate(ctx context.Context, task *Task, cfg content.SessionConfig, sessionID string) {
	c.record(eventFor(store.ActionStarted, sessionID, cfg))

	ctx = llm.WithSessionID(ctx, sessionID)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.gen.Generate(ctx, cfg)
	c.apply(task, cfg, sessionID, result, err)
}

// apply installs a generation result if task still holds the latest token.
func (c *Controller) apply(task *Task, cfg content.SessionConfig, sessionID string, result content.Content, err error) {
	c.mu.Lock()
	if task.token != c.token {
		current := c.token
		c.mu.Unlock()
		c.log.Debug("discarding stale generation", "token", task.token, "current", current, "error", err)
		task.finish(false, err)
		return
	}

	var ev *store.SessionEventData
	if err != nil || result == nil || result.Len() == 0 {
		if err == nil {
			err = fmt.Errorf("generation: %w", ErrNoItems)
		}
		c.stage = StageError
		c.errMsg = GenerationFailedMessage
		c.cause = err
		c.content = nil
		e := eventFor(store.ActionFailed, sessionID, cfg)
		e.Detail = err.Error()
		ev = &e
		c.log.Error("content generation failed", "session_id", sessionID, "error", err)
	} else {
		c.content = result
		c.index = 0
		c.choices = map[int]int{}
		c.scores = map[int]scoring.Result{}
		if _, ok := result.(*content.Lesson); ok {
			c.stage = StageTheory
		} else {
			c.stage = StageQuiz
		}
		c.log.Info("content ready", "session_id", sessionID, "items", result.Len(), "stage", c.stage)
	}
	c.notifyLocked()
	c.mu.Unlock()

	if ev != nil {
		c.record(*ev)
	}
	task.finish(true, err)
}

// BeginPractice moves from the theory card to the quiz.
func (c *Controller) BeginPractice() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stage != StageTheory {
		return fmt.Errorf("begin practice in %s: %w", c.stage, ErrInvalidTransition)
	}
	if c.content == nil || c.content.Len() == 0 {
		return fmt.Errorf("begin practice: %w", ErrNoItems)
	}
	c.stage = StageQuiz
	c.index = 0
	c.notifyLocked()
	return nil
}

// SubmitAnswer records r for item itemIndex, which must be the current
// item. A lesson takes Choice responses and advances automatically; a deck
// takes Text or GiveUp, returns the score and waits for AdvanceCard.
func (c *Controller) SubmitAnswer(itemIndex int, r Response) (*scoring.Result, error) {
	c.mu.Lock()

	if c.stage != StageQuiz {
		stage := c.stage
		c.mu.Unlock()
		return nil, fmt.Errorf("submit answer in %s: %w", stage, ErrInvalidTransition)
	}
	if itemIndex != c.index {
		current := c.index
		c.mu.Unlock()
		return nil, fmt.Errorf("submit answer for item %d, current is %d: %w", itemIndex, current, ErrItemMismatch)
	}

	switch ct := c.content.(type) {
	case *content.Lesson:
		ev, err := c.chooseLocked(ct, r)
		c.mu.Unlock()
		if ev != nil {
			c.record(*ev)
		}
		return nil, err

	case *content.Deck:
		res, err := c.scoreCardLocked(ct, r)
		c.mu.Unlock()
		return res, err
	}

	c.mu.Unlock()
	return nil, fmt.Errorf("submit answer: %w", ErrNoItems)
}

func (c *Controller) chooseLocked(l *content.Lesson, r Response) (*store.SessionEventData, error) {
	if r.kind != KindChoice {
		return nil, fmt.Errorf("submit %s to a lesson: %w", r.kind, ErrResponseKind)
	}
	q := l.Questions[c.index]
	if r.choice < 0 || r.choice >= len(q.Options) {
		return nil, fmt.Errorf("choice %d of %d options: %w", r.choice, len(q.Options), ErrOptionRange)
	}

	c.choices[c.index] = r.choice
	if c.index == len(l.Questions)-1 {
		return c.finishLocked(), nil
	}
	c.index++
	c.notifyLocked()
	return nil, nil
}

func (c *Controller) scoreCardLocked(d *content.Deck, r Response) (*scoring.Result, error) {
	var res scoring.Result
	switch r.kind {
	case KindText:
		if strings.TrimSpace(r.text) == "" {
			return nil, fmt.Errorf("submit answer: %w", ErrEmptyAnswer)
		}
		res = scoring.Score(r.text, d.Items[c.index].Word)
	case KindGiveUp:
		res = scoring.GiveUp()
	default:
		return nil, fmt.Errorf("submit %s to a deck: %w", r.kind, ErrResponseKind)
	}

	c.scores[c.index] = res
	c.notifyLocked()
	return &res, nil
}

// AdvanceCard moves past a scored flashcard; past the last card the session
// ends.
func (c *Controller) AdvanceCard() error {
	c.mu.Lock()

	d, ok := c.content.(*content.Deck)
	if c.stage != StageQuiz || !ok {
		stage := c.stage
		c.mu.Unlock()
		return fmt.Errorf("advance card in %s: %w", stage, ErrInvalidTransition)
	}
	if _, scored := c.scores[c.index]; !scored {
		c.mu.Unlock()
		return fmt.Errorf("advance card %d: %w", c.index, ErrNotScored)
	}

	var ev *store.SessionEventData
	if c.index == len(d.Items)-1 {
		ev = c.finishLocked()
	} else {
		c.index++
		c.notifyLocked()
	}
	c.mu.Unlock()

	if ev != nil {
		c.record(*ev)
	}
	return nil
}

// finishLocked enters Results. The index stays on the last item.
func (c *Controller) finishLocked() *store.SessionEventData {
	c.stage = StageResults
	c.notifyLocked()

	ev := eventFor(store.ActionCompleted, c.sessionID, *c.cfg)
	switch ct := c.content.(type) {
	case *content.Lesson:
		s := QuizScore(ct, c.choices)
		ev.Correct, ev.Total, ev.Percentage = s.Correct, s.Total, s.Percentage
		ev.Detail = s.Tier.String()
	case *content.Deck:
		s := DeckSummary(ct, c.scores)
		ev.Correct, ev.Total, ev.Percentage = s.Perfect, s.Total, s.AveragePercentage
		ev.Detail = fmt.Sprintf("gave_up=%d", s.GaveUp)
	}
	c.log.Info("session completed", "session_id", c.sessionID,
		"correct", ev.Correct, "total", ev.Total, "percentage", ev.Percentage)
	return &ev
}

// ResetToSetup clears the session and returns to Setup. A pending
// generation is discarded when it completes.
func (c *Controller) ResetToSetup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.token++
	c.stage = StageSetup
	c.cfg = nil
	c.content = nil
	c.index = 0
	c.choices = nil
	c.scores = nil
	c.errMsg = ""
	c.cause = nil
	c.sessionID = ""
	c.notifyLocked()
}

// View returns a deep copy of the session state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Subscribe returns a channel that receives a value after state changes.
// Notifications coalesce: a slow reader sees at least one signal after the
// latest change, not one per change.
func (c *Controller) Subscribe() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan struct{}, 1)
	c.subs = append(c.subs, ch)
	return ch
}

func (c *Controller) notifyLocked() {
	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (c *Controller) record(ev store.SessionEventData) {
	if c.rec == nil {
		return
	}
	if err := c.rec.AppendSessionEvent(context.Background(), ev); err != nil {
		c.log.Warn("failed to record session event", "action", ev.Action, "session_id", ev.SessionID, "error", err)
	}
}

func eventFor(action, sessionID string, cfg content.SessionConfig) store.SessionEventData {
	return store.SessionEventData{
		SessionID: sessionID,
		Action:    action,
		Level:     string(cfg.Level),
		Focus:     string(cfg.Focus),
		Topic:     strings.TrimSpace(cfg.Topic),
	}
}
