// Package session owns the dictation state machine and sequences capture,
// preparation, transcription, and insertion under a single lock.
package session

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/nlefevre/murmur/internal/config"
	"github.com/nlefevre/murmur/internal/fsm"
	"github.com/nlefevre/murmur/internal/notify"
	"github.com/nlefevre/murmur/internal/prepare"
)

// Recorder is the session-facing surface of audio capture.
type Recorder interface {
	Start() error
	Stop() ([]byte, error)
	Pause()
	Resume()
	Cancel()
	Duration() time.Duration
}

// Preparer turns a raw capture into upload payloads.
type Preparer interface {
	Prepare(ctx context.Context, wavData []byte) ([]prepare.Payload, error)
}

// Transcriber is the session-facing surface of the transcription client.
type Transcriber interface {
	Transcribe(ctx context.Context, payload prepare.Payload) (string, error)
	PostProcess(ctx context.Context, text string) string
}

// Inserter commits the final transcript to the focused application.
type Inserter interface {
	Insert(ctx context.Context, text string) error
}

// StateListener observes every state transition.
type StateListener func(fsm.State)

// Controller serializes all trigger sources (hotkey, IPC) onto one state
// machine. Triggers that arrive while transcribing are dropped, not queued.
type Controller struct {
	logger      *slog.Logger
	cfg         config.Config
	recorder    Recorder
	preparer    Preparer
	transcriber Transcriber
	inserter    Inserter
	notifier    notify.Notifier

	mu        sync.Mutex
	state     fsm.State
	listeners []StateListener

	pipeline chan pipelineJob
}

// NewController wires the pipeline stages together. A nil notifier is
// replaced with a no-op.
func NewController(
	cfg config.Config,
	recorder Recorder,
	preparer Preparer,
	transcriber Transcriber,
	inserter Inserter,
	notifier notify.Notifier,
	logger *slog.Logger,
) *Controller {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	c := &Controller{
		logger:      logger,
		cfg:         cfg,
		recorder:    recorder,
		preparer:    preparer,
		transcriber: transcriber,
		inserter:    inserter,
		notifier:    notifier,
		state:       fsm.StateIdle,
		pipeline:    make(chan pipelineJob, 1),
	}
	go c.pipelineWorker()
	return c
}

// Close stops the pipeline worker once queued work drains. The controller
// must not be triggered after Close.
func (c *Controller) Close() {
	close(c.pipeline)
}

// State returns the current state snapshot.
func (c *Controller) State() fsm.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnStateChange registers a transition observer.
func (c *Controller) OnStateChange(fn StateListener) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// apply attempts one FSM event. Invalid transitions are explicit no-ops;
// observers run outside the lock.
func (c *Controller) apply(ctx context.Context, event fsm.Event) bool {
	c.mu.Lock()
	next, err := fsm.Transition(c.state, event)
	if err != nil {
		c.mu.Unlock()
		c.logDebug("trigger ignored", "event", string(event), "error", err.Error())
		return false
	}
	c.state = next
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	c.notifier.StateChanged(ctx, next)
	return true
}

// Start begins recording. Calling it while already recording or paused is an
// idempotent no-op, which also reconciles dangling hold-mode starts.
func (c *Controller) Start(ctx context.Context) {
	if !c.apply(ctx, fsm.EventStart) {
		return
	}

	if err := c.recorder.Start(); err != nil {
		c.logError("audio capture failed to start", "error", err.Error())
		c.notifier.Error(ctx, "Unable to start recording")
		c.apply(ctx, fsm.EventCancel)
	}
}

// Stop ends recording and hands the capture to the async pipeline. The
// Transcribing state gates single flight: further triggers are dropped until
// the pipeline finishes.
func (c *Controller) Stop(ctx context.Context) {
	if !c.apply(ctx, fsm.EventStop) {
		return
	}

	wavData, err := c.recorder.Stop()
	if err != nil {
		c.logError("audio capture failed to stop", "error", err.Error())
		c.notifier.Error(ctx, "Recording failed")
		c.apply(ctx, fsm.EventFinish)
		return
	}
	if len(wavData) == 0 {
		c.logInfo("nothing captured; skipping transcription")
		c.apply(ctx, fsm.EventFinish)
		return
	}

	// The pipeline outlives the triggering request; once transcribing
	// starts it runs to completion or failure.
	c.pipeline <- pipelineJob{ctx: context.WithoutCancel(ctx), wavData: wavData}
}

// Toggle starts when idle and stops when recording or paused.
func (c *Controller) Toggle(ctx context.Context) {
	switch c.State() {
	case fsm.StateIdle:
		c.Start(ctx)
	case fsm.StateRecording, fsm.StatePaused:
		c.Stop(ctx)
	default:
		c.logDebug("toggle ignored while transcribing")
	}
}

// Pause freezes capture without discarding the buffer.
func (c *Controller) Pause(ctx context.Context) {
	if c.apply(ctx, fsm.EventPause) {
		c.recorder.Pause()
	}
}

// Resume continues a paused capture.
func (c *Controller) Resume(ctx context.Context) {
	if c.apply(ctx, fsm.EventResume) {
		c.recorder.Resume()
	}
}

// Cancel discards the capture with no transcription. It does not interrupt
// an in-flight pipeline.
func (c *Controller) Cancel(ctx context.Context) {
	if c.apply(ctx, fsm.EventCancel) {
		c.recorder.Cancel()
	}
}

func (c *Controller) logDebug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c *Controller) logInfo(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Info(msg, args...)
	}
}

func (c *Controller) logError(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Error(msg, args...)
	}
}
