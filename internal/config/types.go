// Package config resolves, parses, validates, and defaults murmur configuration.
package config

import "time"

// Config is the fully materialized runtime configuration used by murmur.
//
// API keys are populated from the environment only; the json:"-" tags keep
// them out of the persisted file.
type Config struct {
	Language        string `json:"language"`
	PrimaryProvider string `json:"primary_provider"`
	Model           string `json:"model"`
	Prompt          string `json:"prompt"`
	PostProcess     bool   `json:"post_process"`

	Hotkey      string `json:"hotkey"`
	RecordMode  string `json:"record_mode"`
	SampleRate  int    `json:"sample_rate"`
	Channels    int    `json:"channels"`
	InputDevice int    `json:"input_device"`

	ShowNotifications bool   `json:"show_notifications"`
	RestoreClipboard  bool   `json:"restore_clipboard"`
	RestoreDelayMS    int    `json:"restore_delay_ms"`
	PasteCmd          string `json:"paste_cmd"`

	GroqAPIKey   string `json:"-"`
	OpenAIAPIKey string `json:"-"`
}

// Record modes selectable via record_mode.
const (
	ModeToggle = "toggle"
	ModeHold   = "hold"
)

// Provider names accepted by primary_provider.
const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
)

// Configured reports whether at least one transcription provider has a key.
func (c Config) Configured() bool {
	return c.GroqAPIKey != "" || c.OpenAIAPIKey != ""
}

// RestoreDelay returns the clipboard restore delay as a duration.
func (c Config) RestoreDelay() time.Duration {
	return time.Duration(c.RestoreDelayMS) * time.Millisecond
}

// Warning is a non-fatal load/validation message.
type Warning struct {
	Message string
}
