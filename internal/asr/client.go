package asr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nlefevre/murmur/internal/config"
	"github.com/nlefevre/murmur/internal/prepare"
)

const defaultMaxRetries = 3

// ErrNotConfigured indicates no provider has an API key set.
var ErrNotConfigured = errors.New("no transcription provider configured; set GROQ_API_KEY or OPENAI_API_KEY")

// TranscriptionError is returned once every configured provider has been
// exhausted; it carries the last underlying cause.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("all transcription providers failed: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

// Client fans one payload across configured providers in priority order.
type Client struct {
	mu         sync.RWMutex
	backends   []Backend
	maxRetries int
	logger     *slog.Logger
	sleep      func(time.Duration)
}

// buildBackends constructs a backend per provider with a key present, ordered
// primary-first per the user preference.
func buildBackends(cfg config.Config) []Backend {
	var groq, oai Backend
	if cfg.GroqAPIKey != "" {
		groq = newGroqBackend(cfg.GroqAPIKey, cfg.Model, cfg.Language, cfg.Prompt)
	}
	if cfg.OpenAIAPIKey != "" {
		oai = newOpenAIBackend(cfg.OpenAIAPIKey, cfg.Language, cfg.Prompt)
	}

	ordered := []Backend{groq, oai}
	if cfg.PrimaryProvider == config.ProviderOpenAI {
		ordered = []Backend{oai, groq}
	}

	backends := make([]Backend, 0, 2)
	for _, b := range ordered {
		if b != nil {
			backends = append(backends, b)
		}
	}
	return backends
}

// NewClient builds the provider chain for the given settings.
func NewClient(cfg config.Config, logger *slog.Logger) *Client {
	return &Client{
		backends:   buildBackends(cfg),
		maxRetries: defaultMaxRetries,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// Reconfigure swaps the provider chain for updated settings. Requests already
// in flight keep the chain they started with.
func (c *Client) Reconfigure(cfg config.Config) {
	backends := buildBackends(cfg)
	c.mu.Lock()
	c.backends = backends
	c.mu.Unlock()
}

func (c *Client) chain() []Backend {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.backends
}

// Configured reports whether at least one provider is usable.
func (c *Client) Configured() bool {
	return len(c.chain()) > 0
}

// Transcribe submits one payload, retrying each provider to exhaustion before
// falling back to the next. It performs zero network calls when unconfigured.
func (c *Client) Transcribe(ctx context.Context, payload prepare.Payload) (string, error) {
	backends := c.chain()
	if len(backends) == 0 {
		return "", &TranscriptionError{Err: ErrNotConfigured}
	}

	var lastErr error
	for _, backend := range backends {
		text, err := c.tryWithRetries(ctx, backend, payload)
		if err == nil {
			return text, nil
		}
		lastErr = err
		c.logWarn("provider exhausted; trying next", "provider", backend.Name(), "error", err.Error())
	}

	return "", &TranscriptionError{Err: lastErr}
}

// tryWithRetries attempts one provider up to maxRetries times, sleeping
// 2^attempt seconds after each failed attempt.
func (c *Client) tryWithRetries(ctx context.Context, backend Backend, payload prepare.Payload) (string, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := backend.Transcribe(ctx, payload)
		if err == nil {
			return text, nil
		}
		lastErr = err

		wait := time.Duration(1<<attempt) * time.Second
		c.logInfo("transcription attempt failed; backing off",
			"provider", backend.Name(),
			"attempt", attempt+1,
			"max", c.maxRetries,
			"wait", wait.String(),
			"error", err.Error(),
		)
		c.sleep(wait)
	}
	return "", lastErr
}

func (c *Client) logInfo(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Info(msg, args...)
	}
}

func (c *Client) logWarn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
