// Package ipc provides the unix-socket control protocol between the murmur
// daemon and its CLI subcommands. Requests and responses are single JSON
// lines.
package ipc

// Commands accepted by a running daemon.
const (
	CommandStatus = "status"
	CommandToggle = "toggle"
	CommandStop   = "stop"
	CommandCancel = "cancel"
	CommandPause  = "pause"
	CommandResume = "resume"
)

// Request is one control command.
type Request struct {
	Command string `json:"command"`
}

// Response reports the outcome plus the session state after the command ran.
type Response struct {
	OK              bool    `json:"ok"`
	State           string  `json:"state,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	Message         string  `json:"message,omitempty"`
	Error           string  `json:"error,omitempty"`
}

// KnownCommand reports whether cmd is part of the protocol.
func KnownCommand(cmd string) bool {
	switch cmd {
	case CommandStatus, CommandToggle, CommandStop, CommandCancel, CommandPause, CommandResume:
		return true
	}
	return false
}
