// Package app wires the murmur CLI commands to the daemon runtime.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/nlefevre/murmur/internal/asr"
	"github.com/nlefevre/murmur/internal/audio"
	"github.com/nlefevre/murmur/internal/cli"
	"github.com/nlefevre/murmur/internal/config"
	"github.com/nlefevre/murmur/internal/doctor"
	"github.com/nlefevre/murmur/internal/hotkey"
	"github.com/nlefevre/murmur/internal/ipc"
	"github.com/nlefevre/murmur/internal/logging"
	"github.com/nlefevre/murmur/internal/notify"
	"github.com/nlefevre/murmur/internal/output"
	"github.com/nlefevre/murmur/internal/prepare"
	"github.com/nlefevre/murmur/internal/session"
	"github.com/nlefevre/murmur/internal/version"
)

const (
	forwardTimeout = 220 * time.Millisecond
	probeTimeout   = 180 * time.Millisecond
	acquireRetries = 8
)

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("murmur"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("murmur"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	logRuntime, err := logging.New()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	loaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load config failed", "error", err.Error())
		return 1
	}
	for _, w := range loaded.Warnings {
		fmt.Fprintf(r.Stderr, "warning: %s\n", w.Message)
		logger.Warn("config warning", "message", w.Message)
	}
	loaded.Config = config.MergeEnv(loaded.Config)

	logger.Info("command start",
		"command", parsed.Command,
		"config", loaded.Path,
		"log", logRuntime.Path,
	)

	switch parsed.Command {
	case cli.CommandRun:
		return r.runDaemon(ctx, loaded, logger)
	case cli.CommandDoctor:
		report := doctor.Run(loaded)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandDevices:
		return r.commandDevices()
	case cli.CommandStatus:
		return r.commandStatus(ctx)
	case cli.CommandToggle, cli.CommandStop, cli.CommandCancel, cli.CommandPause, cli.CommandResume:
		return r.forwardOrFail(ctx, string(parsed.Command))
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

// runDaemon owns the control socket, the hotkey listener, and the session
// until the context is cancelled.
func (r Runner) runDaemon(ctx context.Context, loaded config.Loaded, logger *slog.Logger) int {
	cfg := loaded.Config
	if !cfg.Configured() {
		fmt.Fprintln(r.Stderr, "error: "+asr.ErrNotConfigured.Error())
		return 1
	}

	socketPath := ipc.SocketPath()
	listener, err := ipc.Acquire(ctx, socketPath, probeTimeout, acquireRetries)
	if err != nil {
		if errors.Is(err, ipc.ErrAlreadyRunning) {
			fmt.Fprintln(r.Stderr, "error: "+err.Error())
		} else {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
		}
		return 1
	}
	defer func() {
		_ = listener.Close()
		_ = os.Remove(socketPath)
	}()

	var notifier notify.Notifier = notify.Noop{}
	if cfg.ShowNotifications {
		notifier = notify.NewDesktop(logger)
	}

	recorder := audio.NewRecorder(cfg.SampleRate, cfg.Channels, cfg.InputDevice)
	client := asr.NewClient(cfg, logger)
	controller := session.NewController(
		cfg,
		recorder,
		prepare.NewPreparer(logger),
		client,
		output.NewInserter(cfg, logger),
		notifier,
		logger,
	)
	defer controller.Close()

	pool := session.NewPool(2, 8, logger)
	defer pool.Close()

	keys := hotkey.NewListener(hotkey.Triggers{
		Toggle: func() { controller.Toggle(ctx) },
		Start:  func() { controller.Start(ctx) },
		Stop:   func() { controller.Stop(ctx) },
	}, func(fn func()) { pool.Submit(fn) }, logger)
	if err := keys.Start(cfg.Hotkey, cfg.RecordMode); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer keys.Close()

	serverCtx, serverCancel := context.WithCancel(ctx)
	defer serverCancel()

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- ipc.Serve(serverCtx, listener, ipc.HandlerFunc(controller.Handle))
	}()

	// Hotkey, record mode, and provider settings apply live; capture and
	// output settings are bound into constructed components and need a
	// daemon restart.
	go func() {
		prev := cfg
		err := config.Watch(ctx, loaded.Path, logger, func(next config.Config) {
			if err := keys.Rebind(next.Hotkey, next.RecordMode); err != nil {
				logger.Warn("hotkey rebind failed", "error", err.Error())
			}
			client.Reconfigure(next)
			if fields := restartOnlyChanges(prev, next); len(fields) > 0 {
				logger.Info("config changes take effect after restart",
					"fields", strings.Join(fields, ", "))
			}
			prev = next
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("config watch stopped", "error", err.Error())
		}
	}()

	logger.Info("daemon ready",
		"socket", socketPath,
		"hotkey", cfg.Hotkey,
		"mode", cfg.RecordMode,
	)
	fmt.Fprintf(r.Stdout, "murmur listening on %s (%s mode)\n", cfg.Hotkey, cfg.RecordMode)

	<-ctx.Done()
	serverCancel()
	if serverErr := <-serverErrCh; serverErr != nil {
		fmt.Fprintf(r.Stderr, "error: control server failed: %v\n", serverErr)
		return 1
	}

	logger.Info("daemon stopped")
	return 0
}

// restartOnlyChanges lists reloaded settings that only take effect on the
// next daemon start.
func restartOnlyChanges(prev, next config.Config) []string {
	var fields []string
	if prev.SampleRate != next.SampleRate {
		fields = append(fields, "sample_rate")
	}
	if prev.Channels != next.Channels {
		fields = append(fields, "channels")
	}
	if prev.InputDevice != next.InputDevice {
		fields = append(fields, "input_device")
	}
	if prev.PostProcess != next.PostProcess {
		fields = append(fields, "post_process")
	}
	if prev.ShowNotifications != next.ShowNotifications {
		fields = append(fields, "show_notifications")
	}
	if prev.RestoreClipboard != next.RestoreClipboard {
		fields = append(fields, "restore_clipboard")
	}
	if prev.RestoreDelayMS != next.RestoreDelayMS {
		fields = append(fields, "restore_delay_ms")
	}
	if prev.PasteCmd != next.PasteCmd {
		fields = append(fields, "paste_cmd")
	}
	return fields
}

func (r Runner) commandDevices() int {
	devices, err := audio.ListDevices()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if len(devices) == 0 {
		fmt.Fprintln(r.Stdout, "no input-capable audio devices found")
		return 1
	}

	for _, device := range devices {
		defaultMark := " "
		if device.Default {
			defaultMark = "*"
		}
		fmt.Fprintf(
			r.Stdout,
			"%s index=%d | name=%q | channels=%d | sample_rate=%.0f\n",
			defaultMark,
			device.Index,
			device.Name,
			device.Channels,
			device.SampleRate,
		)
	}
	return 0
}

func (r Runner) commandStatus(ctx context.Context) int {
	resp, handled, err := tryForward(ctx, ipc.SocketPath(), ipc.CommandStatus)
	if !handled {
		fmt.Fprintln(r.Stdout, "idle (no daemon running)")
		return 0
	}
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	state := resp.State
	if state == "" {
		state = "idle"
	}
	if resp.DurationSeconds > 0 && state != "idle" {
		fmt.Fprintf(r.Stdout, "%s (%.1fs)\n", state, resp.DurationSeconds)
	} else {
		fmt.Fprintln(r.Stdout, state)
	}
	return 0
}

func (r Runner) forwardOrFail(ctx context.Context, command string) int {
	resp, handled, err := tryForward(ctx, ipc.SocketPath(), command)
	if !handled {
		fmt.Fprintln(r.Stderr, "error: no murmur daemon running; start one with `murmur run`")
		return 1
	}
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if resp.State != "" {
		fmt.Fprintln(r.Stdout, resp.State)
	}
	return 0
}

// tryForward sends one command to a running daemon. handled=false means no
// daemon owns the socket.
func tryForward(ctx context.Context, socketPath string, command string) (ipc.Response, bool, error) {
	resp, err := ipc.Send(ctx, socketPath, ipc.Request{Command: command}, forwardTimeout)
	if err == nil {
		if resp.OK {
			return resp, true, nil
		}
		return resp, true, errors.New(resp.Error)
	}

	if isSocketMissing(err) || isConnectionRefused(err) {
		return ipc.Response{}, false, nil
	}
	return ipc.Response{}, true, fmt.Errorf("forward command %q: %w", command, err)
}

func isSocketMissing(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, os.ErrNotExist) ||
		strings.Contains(err.Error(), "no such file or directory")
}

func isConnectionRefused(err error) bool {
	return err != nil && errors.Is(err, syscall.ECONNREFUSED)
}
