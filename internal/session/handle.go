package session

import (
	"context"
	"fmt"

	"github.com/nlefevre/murmur/internal/ipc"
)

// Handle services one control command from the unix socket. Every command
// responds with the post-command state so the CLI can print it.
func (c *Controller) Handle(ctx context.Context, req ipc.Request) ipc.Response {
	switch req.Command {
	case ipc.CommandStatus:
		// No side effects; report state and elapsed capture time.
	case ipc.CommandToggle:
		c.Toggle(ctx)
	case ipc.CommandStop:
		c.Stop(ctx)
	case ipc.CommandCancel:
		c.Cancel(ctx)
	case ipc.CommandPause:
		c.Pause(ctx)
	case ipc.CommandResume:
		c.Resume(ctx)
	default:
		return ipc.Response{OK: false, Error: fmt.Sprintf("unknown command %q", req.Command)}
	}

	return ipc.Response{
		OK:              true,
		State:           string(c.State()),
		DurationSeconds: c.recorder.Duration().Seconds(),
	}
}
