package config

import "runtime"

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	return Config{
		Language:        "en",
		PrimaryProvider: ProviderGroq,
		Model:           "whisper-large-v3",
		Prompt:          "",
		PostProcess:     false,

		Hotkey:      DefaultHotkey(),
		RecordMode:  ModeToggle,
		SampleRate:  16000,
		Channels:    1,
		InputDevice: -1,

		ShowNotifications: true,
		RestoreClipboard:  true,
		RestoreDelayMS:    500,
	}
}

// DefaultHotkey returns the platform-appropriate default combination.
func DefaultHotkey() string {
	if runtime.GOOS == "darwin" {
		return "<cmd>+<shift>+<space>"
	}
	return "<ctrl>+<shift>+<space>"
}
