// Package doctor runs readiness diagnostics for config, API keys, tools, and
// audio devices.
package doctor

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/nlefevre/murmur/internal/audio"
	"github.com/nlefevre/murmur/internal/config"
	"github.com/nlefevre/murmur/internal/hotkey"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Seams for tests; production code never overrides these.
var (
	lookPath    = exec.LookPath
	listDevices = audio.ListDevices
)

// Run executes environment/config/runtime checks for a loaded config.
func Run(loaded config.Loaded) Report {
	cfg := loaded.Config

	checks := []Check{
		checkConfig(loaded),
		checkProviders(cfg),
		checkHotkey(cfg),
		checkBinary("ffmpeg", "mp3 compression available"),
		checkPasteTool(cfg),
	}

	if cfg.ShowNotifications && runtime.GOOS == "linux" {
		checks = append(checks, checkBinary("busctl", "desktop notifications available"))
	}

	checks = append(checks, checkAudioDevice(cfg))

	return Report{Checks: checks}
}

func checkConfig(loaded config.Loaded) Check {
	message := fmt.Sprintf("loaded %q", loaded.Path)
	if !loaded.Exists {
		message = fmt.Sprintf("no file at %q; using defaults", loaded.Path)
	}
	if n := len(loaded.Warnings); n > 0 {
		message = fmt.Sprintf("%s (%d validation warnings)", message, n)
	}
	return Check{Name: "config", Pass: true, Message: message}
}

func checkProviders(cfg config.Config) Check {
	var names []string
	if cfg.GroqAPIKey != "" {
		names = append(names, config.ProviderGroq)
	}
	if cfg.OpenAIAPIKey != "" {
		names = append(names, config.ProviderOpenAI)
	}
	if len(names) == 0 {
		return Check{
			Name:    "providers",
			Pass:    false,
			Message: "no API keys found; set " + config.EnvGroqKey + " or " + config.EnvOpenAIKey,
		}
	}
	return Check{
		Name:    "providers",
		Pass:    true,
		Message: fmt.Sprintf("configured: %s (primary %s)", strings.Join(names, ", "), cfg.PrimaryProvider),
	}
}

func checkHotkey(cfg config.Config) Check {
	combo, err := hotkey.ParseCombo(cfg.Hotkey)
	if err != nil {
		return Check{
			Name:    "hotkey",
			Pass:    false,
			Message: fmt.Sprintf("%v (will fall back to %s)", err, config.DefaultHotkey()),
		}
	}
	return Check{Name: "hotkey", Pass: true, Message: fmt.Sprintf("%s parses (%s mode)", combo, cfg.RecordMode)}
}

func checkPasteTool(cfg config.Config) Check {
	argv := strings.Fields(cfg.PasteCmd)
	if len(argv) > 0 {
		return checkBinary(argv[0], "configured paste command available")
	}
	if runtime.GOOS == "darwin" {
		return checkBinary("osascript", "default paste path available")
	}
	return checkBinary("xdotool", "default paste path available")
}

func checkBinary(bin string, okMsg string) Check {
	path, err := lookPath(bin)
	if err != nil {
		return Check{Name: bin, Pass: false, Message: fmt.Sprintf("binary not found in PATH: %s", bin)}
	}
	return Check{Name: bin, Pass: true, Message: fmt.Sprintf("found at %s (%s)", path, okMsg)}
}

func checkAudioDevice(cfg config.Config) Check {
	devices, err := listDevices()
	if err != nil {
		return Check{Name: "audio.device", Pass: false, Message: err.Error()}
	}
	if len(devices) == 0 {
		return Check{Name: "audio.device", Pass: false, Message: "no input-capable audio devices found"}
	}

	if cfg.InputDevice >= 0 {
		for _, dev := range devices {
			if dev.Index == cfg.InputDevice {
				return Check{
					Name:    "audio.device",
					Pass:    true,
					Message: fmt.Sprintf("using %q (index %d)", dev.Name, dev.Index),
				}
			}
		}
		return Check{
			Name:    "audio.device",
			Pass:    false,
			Message: fmt.Sprintf("configured input_device %d not found (%d devices present)", cfg.InputDevice, len(devices)),
		}
	}

	for _, dev := range devices {
		if dev.Default {
			return Check{
				Name:    "audio.device",
				Pass:    true,
				Message: fmt.Sprintf("system default %q", dev.Name),
			}
		}
	}
	return Check{
		Name:    "audio.device",
		Pass:    true,
		Message: fmt.Sprintf("%d input devices present", len(devices)),
	}
}
