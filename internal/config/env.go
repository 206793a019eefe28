package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variable names for provider credentials.
const (
	EnvGroqKey   = "GROQ_API_KEY"
	EnvOpenAIKey = "OPENAI_API_KEY"
)

// MergeEnv loads a .env file when one exists and copies provider API keys
// from the environment into the config. Keys already present in the process
// environment take precedence over .env values.
func MergeEnv(cfg Config) Config {
	loadDotenv()

	if key := os.Getenv(EnvGroqKey); key != "" {
		cfg.GroqAPIKey = key
	}
	if key := os.Getenv(EnvOpenAIKey); key != "" {
		cfg.OpenAIAPIKey = key
	}
	return cfg
}

// loadDotenv searches the working directory and its parent for a .env file.
// Missing files are not an error; godotenv never overrides variables that are
// already set.
func loadDotenv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}
	for _, dir := range []string{cwd, filepath.Dir(cwd)} {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}
