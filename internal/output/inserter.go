// Package output commits transcripts to the focused application via the
// clipboard and a synthetic paste keystroke.
package output

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/nlefevre/murmur/internal/config"
)

const (
	// clipboardSettle gives the window system time to observe the new
	// clipboard contents before the paste keystroke fires.
	clipboardSettle = 50 * time.Millisecond

	pasteTimeout = 2 * time.Second
)

// Clipboard abstracts the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(s string) error  { return clipboard.WriteAll(s) }

// Inserter places transcript text into the focused application. The paste
// keystroke is best-effort: on failure the text stays on the clipboard for a
// manual paste.
type Inserter struct {
	config config.Config
	logger *slog.Logger

	clip     Clipboard
	run      func(ctx context.Context, argv []string, input string) error
	sleep    func(time.Duration)
	schedule func(time.Duration, func())
}

// NewInserter constructs an inserter bound to the system clipboard.
func NewInserter(cfg config.Config, logger *slog.Logger) *Inserter {
	return &Inserter{
		config:   cfg,
		logger:   logger,
		clip:     systemClipboard{},
		run:      runCommandWithInput,
		sleep:    time.Sleep,
		schedule: func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}
}

// Insert copies text to the clipboard, dispatches the paste keystroke, and
// schedules restoration of the previous clipboard contents when enabled.
// Empty text is a no-op.
func (i *Inserter) Insert(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}

	restore := i.config.RestoreClipboard
	previous := ""
	if restore {
		prev, err := i.clip.ReadAll()
		switch {
		case err != nil:
			restore = false
			i.logWarn("clipboard read failed; skipping restore", "error", err.Error())
		case prev == "":
			// Nothing to put back; restoring would blank the pasted text.
			restore = false
		default:
			previous = prev
		}
	}

	if err := i.clip.WriteAll(text); err != nil {
		return fmt.Errorf("set clipboard: %w", err)
	}

	i.sleep(clipboardSettle)

	if err := i.dispatchPaste(ctx); err != nil {
		i.logWarn("paste dispatch failed; text remains on clipboard", "error", err.Error())
	}

	if restore {
		i.schedule(i.config.RestoreDelay(), func() {
			if err := i.clip.WriteAll(previous); err != nil {
				i.logWarn("clipboard restore failed", "error", err.Error())
			}
		})
	}
	return nil
}

func (i *Inserter) dispatchPaste(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pasteTimeout)
	defer cancel()
	return i.run(ctx, pasteArgv(i.config.PasteCmd), "")
}

// pasteArgv resolves the paste command: the configured override split on
// whitespace, else the platform default keystroke injector.
func pasteArgv(override string) []string {
	if fields := strings.Fields(override); len(fields) > 0 {
		return fields
	}
	if runtime.GOOS == "darwin" {
		return []string{"osascript", "-e", `tell application "System Events" to keystroke "v" using command down`}
	}
	return []string{"xdotool", "key", "--clearmodifiers", "ctrl+v"}
}

func (i *Inserter) logWarn(msg string, args ...any) {
	if i.logger != nil {
		i.logger.Warn(msg, args...)
	}
}
