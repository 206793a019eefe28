// Package asr submits audio payloads to speech-to-text providers with
// per-provider retry and ordered fallback.
package asr

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nlefevre/murmur/internal/prepare"
)

const (
	groqBaseURL   = "https://api.groq.com/openai/v1"
	groqChatModel = "llama-3.3-70b-versatile"

	openaiWhisperModel = "whisper-1"
	openaiChatModel    = "gpt-4o-mini"

	chatTemperature = 0.1
	chatMaxTokens   = 4096
)

// Backend is one configured transcription provider.
type Backend interface {
	Name() string
	Transcribe(ctx context.Context, payload prepare.Payload) (string, error)
	Complete(ctx context.Context, system, user string) (string, error)
}

// apiBackend talks to an OpenAI-compatible endpoint (Groq or OpenAI proper).
type apiBackend struct {
	name            string
	client          *openai.Client
	transcribeModel string
	chatModel       string
	language        string
	prompt          string
}

func newGroqBackend(apiKey, model, language, prompt string) *apiBackend {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	return &apiBackend{
		name:            "groq",
		client:          openai.NewClientWithConfig(cfg),
		transcribeModel: model,
		chatModel:       groqChatModel,
		language:        language,
		prompt:          prompt,
	}
}

func newOpenAIBackend(apiKey, language, prompt string) *apiBackend {
	return &apiBackend{
		name:            "openai",
		client:          openai.NewClient(apiKey),
		transcribeModel: openaiWhisperModel,
		chatModel:       openaiChatModel,
		language:        language,
		prompt:          prompt,
	}
}

func (b *apiBackend) Name() string {
	return b.name
}

// Transcribe uploads one payload. An empty transcript counts as a failure so
// the retry/fallback machinery treats it like any other provider error.
func (b *apiBackend) Transcribe(ctx context.Context, payload prepare.Payload) (string, error) {
	resp, err := b.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    b.transcribeModel,
		Reader:   bytes.NewReader(payload.Data),
		FilePath: payload.Filename,
		Language: b.language,
		Prompt:   b.prompt,
	})
	if err != nil {
		return "", fmt.Errorf("%s transcription: %w", b.name, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("%s returned empty transcription", b.name)
	}
	return text, nil
}

// Complete runs one chat completion for transcript post-processing.
func (b *apiBackend) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", b.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s chat completion returned no choices", b.name)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
