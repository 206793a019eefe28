package doctor

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlefevre/murmur/internal/audio"
	"github.com/nlefevre/murmur/internal/config"
)

func stubSeams(t *testing.T, devices []audio.Device, devErr error, missing ...string) {
	t.Helper()

	origLook, origList := lookPath, listDevices
	t.Cleanup(func() { lookPath, listDevices = origLook, origList })

	absent := map[string]bool{}
	for _, bin := range missing {
		absent[bin] = true
	}
	lookPath = func(bin string) (string, error) {
		if absent[bin] {
			return "", errors.New("not found")
		}
		return "/usr/bin/" + bin, nil
	}
	listDevices = func() ([]audio.Device, error) {
		return devices, devErr
	}
}

func configuredLoaded() config.Loaded {
	cfg := config.Default()
	cfg.GroqAPIKey = "gk"
	return config.Loaded{Path: "/home/u/.config/murmur/config.json", Config: cfg, Exists: true}
}

func TestRunAllChecksPass(t *testing.T) {
	stubSeams(t, []audio.Device{{Index: 0, Name: "Built-in Mic", Default: true}}, nil)

	report := Run(configuredLoaded())
	require.True(t, report.OK(), report.String())
	assert.NotContains(t, report.String(), "FAIL")
}

func TestRunFlagsMissingKeys(t *testing.T) {
	stubSeams(t, []audio.Device{{Index: 0, Name: "Mic", Default: true}}, nil)

	loaded := configuredLoaded()
	loaded.Config.GroqAPIKey = ""

	report := Run(loaded)
	assert.False(t, report.OK())
	assert.Contains(t, report.String(), config.EnvGroqKey)
}

func TestRunFlagsMissingFfmpeg(t *testing.T) {
	stubSeams(t, []audio.Device{{Index: 0, Name: "Mic", Default: true}}, nil, "ffmpeg")

	report := Run(configuredLoaded())
	assert.False(t, report.OK())
	assert.Contains(t, report.String(), "ffmpeg")
}

func TestRunChecksConfiguredPasteCommand(t *testing.T) {
	stubSeams(t, []audio.Device{{Index: 0, Name: "Mic", Default: true}}, nil, "wtype")

	loaded := configuredLoaded()
	loaded.Config.PasteCmd = "wtype -M ctrl v"

	report := Run(loaded)
	assert.False(t, report.OK())
	assert.Contains(t, report.String(), "wtype")
}

func TestRunFlagsBadHotkey(t *testing.T) {
	stubSeams(t, []audio.Device{{Index: 0, Name: "Mic", Default: true}}, nil)

	loaded := configuredLoaded()
	loaded.Config.Hotkey = "<ctrl>+<bogus>"

	report := Run(loaded)
	assert.False(t, report.OK())
	assert.Contains(t, report.String(), "fall back")
}

func TestRunFlagsMissingAudioDevices(t *testing.T) {
	stubSeams(t, nil, nil)

	report := Run(configuredLoaded())
	assert.False(t, report.OK())
	assert.Contains(t, report.String(), "no input-capable")
}

func TestRunFlagsUnknownConfiguredDevice(t *testing.T) {
	stubSeams(t, []audio.Device{{Index: 0, Name: "Mic", Default: true}}, nil)

	loaded := configuredLoaded()
	loaded.Config.InputDevice = 7

	report := Run(loaded)
	assert.False(t, report.OK())
	assert.Contains(t, report.String(), "input_device 7")
}

func TestRunReportsConfiguredDeviceByIndex(t *testing.T) {
	stubSeams(t, []audio.Device{
		{Index: 0, Name: "Mic", Default: true},
		{Index: 3, Name: "USB Interface"},
	}, nil)

	loaded := configuredLoaded()
	loaded.Config.InputDevice = 3

	report := Run(loaded)
	assert.True(t, report.OK(), report.String())
	assert.Contains(t, report.String(), "USB Interface")
}

func TestReportStringFormat(t *testing.T) {
	report := Report{Checks: []Check{
		{Name: "a", Pass: true, Message: "fine"},
		{Name: "b", Pass: false, Message: "broken"},
	}}
	lines := strings.Split(report.String(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[OK] a: fine", lines[0])
	assert.Equal(t, "[FAIL] b: broken", lines[1])
}

func TestCheckConfigMentionsDefaults(t *testing.T) {
	loaded := configuredLoaded()
	loaded.Exists = false
	loaded.Warnings = []config.Warning{{Message: "x"}}

	check := checkConfig(loaded)
	assert.True(t, check.Pass)
	assert.Contains(t, check.Message, "using defaults")
	assert.Contains(t, check.Message, "1 validation warnings")
}
