package config

import (
	"fmt"
	"strings"
)

// Validate normalizes a parsed configuration and reports non-fatal issues.
// Invalid values are replaced by their defaults so a bad file never leaves the
// application without a working configuration.
func Validate(cfg Config) (Config, []Warning) {
	var warnings []Warning
	defaults := Default()

	switch strings.ToLower(strings.TrimSpace(cfg.PrimaryProvider)) {
	case ProviderGroq:
		cfg.PrimaryProvider = ProviderGroq
	case ProviderOpenAI:
		cfg.PrimaryProvider = ProviderOpenAI
	default:
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("unknown primary_provider %q; using %q", cfg.PrimaryProvider, defaults.PrimaryProvider),
		})
		cfg.PrimaryProvider = defaults.PrimaryProvider
	}

	switch strings.ToLower(strings.TrimSpace(cfg.RecordMode)) {
	case ModeToggle:
		cfg.RecordMode = ModeToggle
	case ModeHold:
		cfg.RecordMode = ModeHold
	default:
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("unknown record_mode %q; using %q", cfg.RecordMode, defaults.RecordMode),
		})
		cfg.RecordMode = defaults.RecordMode
	}

	if cfg.SampleRate <= 0 {
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("sample_rate %d is invalid; using %d", cfg.SampleRate, defaults.SampleRate),
		})
		cfg.SampleRate = defaults.SampleRate
	}
	if cfg.Channels <= 0 {
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("channels %d is invalid; using %d", cfg.Channels, defaults.Channels),
		})
		cfg.Channels = defaults.Channels
	}
	if cfg.RestoreDelayMS < 0 {
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("restore_delay_ms %d is negative; using %d", cfg.RestoreDelayMS, defaults.RestoreDelayMS),
		})
		cfg.RestoreDelayMS = defaults.RestoreDelayMS
	}

	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = defaults.Model
	}
	if strings.TrimSpace(cfg.Hotkey) == "" {
		cfg.Hotkey = defaults.Hotkey
	}
	if strings.TrimSpace(cfg.Language) == "" {
		cfg.Language = defaults.Language
	}

	return cfg, warnings
}
