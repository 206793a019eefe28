package output

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlefevre/murmur/internal/config"
)

type fakeClipboard struct {
	contents string
	readErr  error
	writeErr error
	writes   []string
	reads    int
}

func (f *fakeClipboard) ReadAll() (string, error) {
	f.reads++
	if f.readErr != nil {
		return "", f.readErr
	}
	return f.contents, nil
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes = append(f.writes, text)
	f.contents = text
	return nil
}

type insertHarness struct {
	inserter *Inserter
	clip     *fakeClipboard
	runs     [][]string
	runErr   error
	slept    []time.Duration
	pending  []func()
	delays   []time.Duration
}

func newHarness(cfg config.Config) *insertHarness {
	h := &insertHarness{clip: &fakeClipboard{contents: "previous contents"}}
	h.inserter = &Inserter{
		config: cfg,
		clip:   h.clip,
		run: func(_ context.Context, argv []string, _ string) error {
			h.runs = append(h.runs, argv)
			return h.runErr
		},
		sleep: func(d time.Duration) { h.slept = append(h.slept, d) },
		schedule: func(d time.Duration, fn func()) {
			h.delays = append(h.delays, d)
			h.pending = append(h.pending, fn)
		},
	}
	return h
}

func (h *insertHarness) firePending(t *testing.T) {
	t.Helper()
	require.NotEmpty(t, h.pending, "no restore was scheduled")
	for _, fn := range h.pending {
		fn()
	}
	h.pending = nil
}

func TestInsertEmptyTextIsNoOp(t *testing.T) {
	h := newHarness(config.Default())

	require.NoError(t, h.inserter.Insert(context.Background(), ""))
	assert.Zero(t, h.clip.reads)
	assert.Empty(t, h.clip.writes)
	assert.Empty(t, h.runs)
}

func TestInsertCopiesWaitsAndPastes(t *testing.T) {
	cfg := config.Default()
	cfg.RestoreClipboard = false
	h := newHarness(cfg)

	require.NoError(t, h.inserter.Insert(context.Background(), "dictated text"))

	require.Equal(t, []string{"dictated text"}, h.clip.writes)
	assert.Equal(t, []time.Duration{clipboardSettle}, h.slept)
	require.Len(t, h.runs, 1)
	assert.Equal(t, pasteArgv(""), h.runs[0])
	assert.Empty(t, h.delays, "restore must not be scheduled when disabled")
}

func TestInsertUsesConfiguredPasteCommand(t *testing.T) {
	cfg := config.Default()
	cfg.RestoreClipboard = false
	cfg.PasteCmd = "wtype -M ctrl v"
	h := newHarness(cfg)

	require.NoError(t, h.inserter.Insert(context.Background(), "text"))
	require.Len(t, h.runs, 1)
	assert.Equal(t, []string{"wtype", "-M", "ctrl", "v"}, h.runs[0])
}

func TestInsertSchedulesClipboardRestore(t *testing.T) {
	cfg := config.Default()
	cfg.RestoreDelayMS = 750
	h := newHarness(cfg)

	require.NoError(t, h.inserter.Insert(context.Background(), "new text"))

	assert.Equal(t, []time.Duration{750 * time.Millisecond}, h.delays)
	assert.Equal(t, "new text", h.clip.contents)

	h.firePending(t)
	assert.Equal(t, "previous contents", h.clip.contents)
}

func TestInsertEmptyOriginalClipboardSkipsRestore(t *testing.T) {
	h := newHarness(config.Default())
	h.clip.contents = ""

	require.NoError(t, h.inserter.Insert(context.Background(), "dictated text"))

	assert.Equal(t, 1, h.clip.reads)
	assert.Empty(t, h.delays, "empty original clipboard must not schedule a restore")
	assert.Equal(t, "dictated text", h.clip.contents, "pasted text must stay on the clipboard")
}

func TestInsertClipboardReadFailureSkipsRestore(t *testing.T) {
	h := newHarness(config.Default())
	h.clip.readErr = errors.New("clipboard unavailable")

	require.NoError(t, h.inserter.Insert(context.Background(), "text"))
	assert.Equal(t, []string{"text"}, h.clip.writes)
	assert.Len(t, h.runs, 1)
	assert.Empty(t, h.delays)
}

func TestInsertClipboardWriteFailureReturnsError(t *testing.T) {
	h := newHarness(config.Default())
	h.clip.writeErr = errors.New("no display")

	err := h.inserter.Insert(context.Background(), "text")
	require.Error(t, err)
	assert.Empty(t, h.runs, "paste must not run without clipboard contents")
}

func TestInsertPasteFailureIsSwallowed(t *testing.T) {
	h := newHarness(config.Default())
	h.runErr = errors.New("xdotool: command not found")

	require.NoError(t, h.inserter.Insert(context.Background(), "text"))
	assert.Equal(t, "text", h.clip.contents)

	// Restore still fires so the user's clipboard comes back.
	h.firePending(t)
	assert.Equal(t, "previous contents", h.clip.contents)
}

func TestPasteArgvDefaults(t *testing.T) {
	argv := pasteArgv("")
	require.NotEmpty(t, argv)
	assert.Contains(t, []string{"xdotool", "osascript"}, argv[0])

	assert.Equal(t, []string{"custom-paste"}, pasteArgv("  custom-paste  "))
}

func TestRunCommandWithInputRejectsEmptyArgv(t *testing.T) {
	err := runCommandWithInput(context.Background(), nil, "")
	require.Error(t, err)
}
