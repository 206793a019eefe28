// Package notify surfaces session state on the desktop via freedesktop
// notifications. All delivery is best-effort; failures are logged, never
// returned to the session.
package notify

import (
	"context"

	"github.com/nlefevre/murmur/internal/fsm"
)

// Notifier receives session lifecycle events.
type Notifier interface {
	StateChanged(ctx context.Context, state fsm.State)
	TranscriptionDone(ctx context.Context, text string)
	Error(ctx context.Context, message string)
}

// Noop discards all events, used when notifications are disabled.
type Noop struct{}

func (Noop) StateChanged(context.Context, fsm.State)   {}
func (Noop) TranscriptionDone(context.Context, string) {}
func (Noop) Error(context.Context, string)             {}
