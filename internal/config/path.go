package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath returns the explicit path when given, otherwise the XDG config
// location ($XDG_CONFIG_HOME/murmur/config.json, falling back to
// ~/.config/murmur/config.json).
func ResolvePath(explicitPath string) (string, error) {
	if trimmed := strings.TrimSpace(explicitPath); trimmed != "" {
		return trimmed, nil
	}

	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "murmur", "config.json"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "murmur", "config.json"), nil
}
