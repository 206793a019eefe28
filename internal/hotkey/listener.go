package hotkey

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.design/x/hotkey"

	"github.com/nlefevre/murmur/internal/config"
)

// MinHoldDuration is the shortest hold that counts as a deliberate
// hold-to-record gesture; shorter holds produce no stop trigger.
const MinHoldDuration = 300 * time.Millisecond

// Triggers are the callbacks a listener fires. Toggle mode uses Toggle only;
// hold mode uses Start on press and Stop on a sufficiently long release.
// Callbacks run on the dispatch function, never on the event loop.
type Triggers struct {
	Toggle func()
	Start  func()
	Stop   func()
}

// binding is a registered global hotkey. *hotkey.Hotkey satisfies it.
type binding interface {
	Unregister() error
	Keydown() <-chan hotkey.Event
	Keyup() <-chan hotkey.Event
}

func systemBind(c Combo) (binding, error) {
	hk := hotkey.New(c.Modifiers, c.Key)
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("register hotkey %s: %w", c, err)
	}
	return hk, nil
}

// Listener owns one bound combination and translates its key events into
// triggers. Pause suspends trigger delivery without unbinding; Rebind swaps
// the combination at runtime.
type Listener struct {
	triggers Triggers
	logger   *slog.Logger

	bind     func(Combo) (binding, error)
	dispatch func(func())
	now      func() time.Time
	minHold  time.Duration

	mu       sync.Mutex
	mode     string
	combo    Combo
	bound    binding
	loopStop chan struct{}
	paused   bool

	// gesture state, guarded by mu
	downSeen bool
	heldAt   time.Time
	held     bool
}

// NewListener builds an unstarted listener. dispatch must hand callbacks to a
// worker; pass nil to run each callback on its own goroutine.
func NewListener(triggers Triggers, dispatch func(func()), logger *slog.Logger) *Listener {
	if dispatch == nil {
		dispatch = func(fn func()) { go fn() }
	}
	return &Listener{
		triggers: triggers,
		logger:   logger,
		bind:     systemBind,
		dispatch: dispatch,
		now:      time.Now,
		minHold:  MinHoldDuration,
	}
}

// Start binds the configured combination and begins listening. A combination
// that fails to parse or register falls back to the platform default so the
// application is never left without a hotkey.
func (l *Listener) Start(spec, mode string) error {
	combo, err := l.resolveCombo(spec)
	if err != nil {
		return err
	}

	bound, err := l.bind(combo)
	if err != nil {
		l.logWarn("hotkey bind failed; falling back to default",
			"spec", combo.String(), "error", err.Error())

		combo, bindErr := ParseCombo(config.DefaultHotkey())
		if bindErr != nil {
			return bindErr
		}
		bound, bindErr = l.bind(combo)
		if bindErr != nil {
			return fmt.Errorf("bind default hotkey: %w", bindErr)
		}
		return l.adopt(combo, mode, bound)
	}
	return l.adopt(combo, mode, bound)
}

func (l *Listener) resolveCombo(spec string) (Combo, error) {
	combo, err := ParseCombo(spec)
	if err != nil {
		l.logWarn("hotkey spec invalid; falling back to default",
			"spec", spec, "error", err.Error())
		return ParseCombo(config.DefaultHotkey())
	}
	return combo, nil
}

func (l *Listener) adopt(combo Combo, mode string, bound binding) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopLoopLocked()
	l.combo = combo
	l.mode = mode
	l.bound = bound
	l.downSeen = false
	l.held = false

	stop := make(chan struct{})
	l.loopStop = stop
	go l.run(bound, stop)

	l.logInfo("hotkey bound", "spec", combo.String(), "mode", mode)
	return nil
}

// Rebind swaps the active combination and mode, used on config reload.
func (l *Listener) Rebind(spec, mode string) error {
	return l.Start(spec, mode)
}

// Pause suppresses trigger delivery while keeping the binding registered.
func (l *Listener) Pause() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paused = true
	l.downSeen = false
	l.held = false
}

// Resume re-enables trigger delivery after Pause.
func (l *Listener) Resume() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paused = false
}

// Close unregisters the binding and stops the event loop.
func (l *Listener) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLoopLocked()
}

func (l *Listener) stopLoopLocked() {
	if l.loopStop != nil {
		close(l.loopStop)
		l.loopStop = nil
	}
	if l.bound != nil {
		if err := l.bound.Unregister(); err != nil {
			l.logWarn("hotkey unregister failed", "error", err.Error())
		}
		l.bound = nil
	}
}

func (l *Listener) run(bound binding, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-bound.Keydown():
			l.handleDown()
		case <-bound.Keyup():
			l.handleUp()
		}
	}
}

// handleDown processes one key-down event. OS key repeat delivers additional
// downs while the combination stays pressed; downSeen/held collapse them into
// a single gesture.
func (l *Listener) handleDown() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.paused {
		return
	}

	switch l.mode {
	case config.ModeHold:
		if l.held {
			return
		}
		l.held = true
		l.heldAt = l.now()
		l.fireLocked(l.triggers.Start)
	default:
		if l.downSeen {
			return
		}
		l.downSeen = true
		l.fireLocked(l.triggers.Toggle)
	}
}

// handleUp processes one key-up event. In hold mode a release below the
// minimum hold produces no stop trigger; the caller reconciles the dangling
// start by treating start as idempotent.
func (l *Listener) handleUp() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.paused {
		return
	}

	switch l.mode {
	case config.ModeHold:
		if !l.held {
			return
		}
		l.held = false
		held := l.now().Sub(l.heldAt)
		if held < l.minHold {
			l.logInfo("hold below minimum; ignoring release", "held", held.String())
			return
		}
		l.fireLocked(l.triggers.Stop)
	default:
		l.downSeen = false
	}
}

func (l *Listener) fireLocked(fn func()) {
	if fn == nil {
		return
	}
	l.dispatch(fn)
}

func (l *Listener) logInfo(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Info(msg, args...)
	}
}

func (l *Listener) logWarn(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Warn(msg, args...)
	}
}
