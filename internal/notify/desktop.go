package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nlefevre/murmur/internal/fsm"
)

const (
	appName = "murmur"

	// stateTimeoutMS keeps the recording/transcribing notification on
	// screen until it is replaced or dismissed.
	stateTimeoutMS  = 300000
	doneTimeoutMS   = 2000
	errorTimeoutMS  = 4000
	dispatchTimeout = 400 * time.Millisecond

	previewRunes = 80
)

// Desktop delivers replaceable notifications over DBus via busctl. One
// notification ID is reused across state changes so the indicator updates in
// place instead of stacking.
type Desktop struct {
	logger *slog.Logger
	call   func(ctx context.Context, args ...string) (string, error)

	mu     sync.Mutex
	lastID uint32
}

// NewDesktop constructs a busctl-backed notifier.
func NewDesktop(logger *slog.Logger) *Desktop {
	return &Desktop{logger: logger, call: busctl}
}

// StateChanged updates the persistent indicator notification; returning to
// idle dismisses it.
func (d *Desktop) StateChanged(ctx context.Context, state fsm.State) {
	switch state {
	case fsm.StateRecording:
		d.notify(ctx, "Recording", stateTimeoutMS)
	case fsm.StatePaused:
		d.notify(ctx, "Recording paused", stateTimeoutMS)
	case fsm.StateTranscribing:
		d.notify(ctx, "Transcribing...", stateTimeoutMS)
	case fsm.StateIdle:
		d.dismiss(ctx)
	}
}

// TranscriptionDone shows a short preview of the inserted text.
func (d *Desktop) TranscriptionDone(ctx context.Context, text string) {
	d.notify(ctx, preview(text), doneTimeoutMS)
}

// Error shows the failure message.
func (d *Desktop) Error(ctx context.Context, message string) {
	if message == "" {
		message = "Transcription failed"
	}
	d.notify(ctx, message, errorTimeoutMS)
}

func (d *Desktop) notify(ctx context.Context, summary string, timeoutMS int) {
	ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	d.mu.Lock()
	replaceID := d.lastID
	d.mu.Unlock()

	out, err := d.call(ctx,
		"--user",
		"call",
		"org.freedesktop.Notifications",
		"/org/freedesktop/Notifications",
		"org.freedesktop.Notifications",
		"Notify",
		"susssasa{sv}i",
		appName,
		fmt.Sprintf("%d", replaceID),
		"",
		summary,
		"",
		"0", // actions array length
		"0", // hints map length
		fmt.Sprintf("%d", timeoutMS),
	)
	if err != nil {
		d.logDebug("desktop notify failed", "error", err.Error())
		return
	}

	id, err := parseNotifyID(out)
	if err != nil {
		d.logDebug("desktop notify response invalid", "error", err.Error())
		return
	}

	d.mu.Lock()
	d.lastID = id
	d.mu.Unlock()
}

func (d *Desktop) dismiss(ctx context.Context) {
	d.mu.Lock()
	id := d.lastID
	d.lastID = 0
	d.mu.Unlock()

	if id == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	_, err := d.call(ctx,
		"--user",
		"call",
		"org.freedesktop.Notifications",
		"/org/freedesktop/Notifications",
		"org.freedesktop.Notifications",
		"CloseNotification",
		"u",
		fmt.Sprintf("%d", id),
	)
	if err != nil {
		d.logDebug("desktop dismiss failed", "error", err.Error())
	}
}

// parseNotifyID extracts the server-assigned ID from a "u <id>" reply.
func parseNotifyID(out string) (uint32, error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) < 2 || fields[0] != "u" {
		return 0, fmt.Errorf("unexpected notify reply %q", strings.TrimSpace(out))
	}
	value, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse notify id %q: %w", fields[1], err)
	}
	return uint32(value), nil
}

func preview(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= previewRunes {
		return string(runes)
	}
	return string(runes[:previewRunes]) + "..."
}

func busctl(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "busctl", args...).CombinedOutput()
	if err != nil {
		trimmed := strings.TrimSpace(string(out))
		if trimmed == "" {
			return "", fmt.Errorf("busctl: %w", err)
		}
		return "", fmt.Errorf("busctl: %w (%s)", err, trimmed)
	}
	return string(out), nil
}

func (d *Desktop) logDebug(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}
