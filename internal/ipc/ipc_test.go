package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, handler Handler) (string, context.CancelFunc, chan error) {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "murmur.sock")
	listener, err := net.Listen("unix", socketPath)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, listener, handler)
	}()
	return socketPath, cancel, done
}

func TestSendRoundTrip(t *testing.T) {
	socketPath, cancel, done := startServer(t, HandlerFunc(func(_ context.Context, req Request) Response {
		require.Equal(t, CommandToggle, req.Command)
		return Response{OK: true, State: "recording", DurationSeconds: 1.5}
	}))
	defer cancel()

	resp, err := Send(context.Background(), socketPath, Request{Command: CommandToggle}, 200*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, "recording", resp.State)
	assert.Equal(t, 1.5, resp.DurationSeconds)

	cancel()
	require.NoError(t, <-done)
}

func TestServeRejectsUnknownCommand(t *testing.T) {
	socketPath, cancel, done := startServer(t, HandlerFunc(func(context.Context, Request) Response {
		t.Fatal("handler must not run for unknown commands")
		return Response{}
	}))
	defer cancel()

	resp, err := Send(context.Background(), socketPath, Request{Command: "reboot"}, 200*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "unknown command")

	cancel()
	require.NoError(t, <-done)
}

func TestServeRejectsMalformedRequest(t *testing.T) {
	socketPath, cancel, done := startServer(t, HandlerFunc(func(context.Context, Request) Response {
		return Response{OK: true}
	}))
	defer cancel()

	conn, err := net.Dial("unix", socketPath)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("not-json\n"))
	require.NoError(t, err)

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal(line, &resp))
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "decode request")

	cancel()
	require.NoError(t, <-done)
}

func TestSendErrorsWhenServerClosesEarly(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "murmur.sock")
	listener, err := net.Listen("unix", socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	go func() {
		conn, acceptErr := listener.Accept()
		if acceptErr != nil {
			return
		}
		_ = conn.Close()
	}()

	_, err = Send(context.Background(), socketPath, Request{Command: CommandStatus}, 200*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read response")
}

func TestProbeDistinguishesLiveAndDeadSockets(t *testing.T) {
	socketPath, cancel, done := startServer(t, HandlerFunc(func(context.Context, Request) Response {
		return Response{OK: true, State: "idle"}
	}))

	alive, err := Probe(context.Background(), socketPath, 200*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, alive)

	cancel()
	require.NoError(t, <-done)

	alive, err = Probe(context.Background(), socketPath, 100*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, alive)
}

func TestAcquireRemovesStaleSocket(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "murmur.sock")
	require.NoError(t, os.WriteFile(socketPath, []byte("stale"), 0o600))

	listener, err := Acquire(context.Background(), socketPath, 50*time.Millisecond, 2)
	require.NoError(t, err)
	defer listener.Close()
}

func TestAcquireDetectsRunningDaemon(t *testing.T) {
	socketPath, cancel, done := startServer(t, HandlerFunc(func(context.Context, Request) Response {
		return Response{OK: true, State: "recording"}
	}))
	defer cancel()

	_, err := Acquire(context.Background(), socketPath, 100*time.Millisecond, 1)
	require.True(t, errors.Is(err, ErrAlreadyRunning))

	cancel()
	require.NoError(t, <-done)
}

func TestKnownCommand(t *testing.T) {
	for _, cmd := range []string{CommandStatus, CommandToggle, CommandStop, CommandCancel, CommandPause, CommandResume} {
		assert.True(t, KnownCommand(cmd), cmd)
	}
	assert.False(t, KnownCommand("restart"))
	assert.False(t, KnownCommand(""))
}

func TestSocketPathPrefersRuntimeDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	assert.Equal(t, filepath.Join(dir, "murmur.sock"), SocketPath())

	t.Setenv("XDG_RUNTIME_DIR", "")
	assert.Contains(t, SocketPath(), "murmur.sock")
}
