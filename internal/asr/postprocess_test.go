package asr

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostProcessCleansText(t *testing.T) {
	backend := &fakeBackend{name: "groq", completeText: "So I was thinking we should ship it on Friday."}
	c, _ := testClient(backend)

	raw := "so um i was thinking we should uh ship it friday"
	got := c.PostProcess(context.Background(), raw)

	assert.Equal(t, backend.completeText, got)
	assert.Equal(t, 1, backend.completes)
	assert.Contains(t, backend.lastUser, "[TRANSCRIPTION]\n"+raw+"\n[/TRANSCRIPTION]")
	assert.Contains(t, backend.lastSystem, "strict text formatter")
}

func TestPostProcessEmptyInputSkipsNetwork(t *testing.T) {
	backend := &fakeBackend{name: "groq", completeText: "anything"}
	c, _ := testClient(backend)

	assert.Equal(t, "", c.PostProcess(context.Background(), ""))
	assert.Equal(t, "   ", c.PostProcess(context.Background(), "   "))
	assert.Zero(t, backend.completes)
}

func TestPostProcessUnconfiguredReturnsRaw(t *testing.T) {
	c, _ := testClient()
	assert.Equal(t, "keep me", c.PostProcess(context.Background(), "keep me"))
}

func TestPostProcessFailureReturnsRaw(t *testing.T) {
	backend := &fakeBackend{name: "groq", completeErr: errors.New("rate limited")}
	c, _ := testClient(backend)

	raw := "original dictation text"
	assert.Equal(t, raw, c.PostProcess(context.Background(), raw))
	assert.Equal(t, 1, backend.completes)
}

func TestPostProcessRejectsConversationalReply(t *testing.T) {
	raw := "please remind me to call the dentist tomorrow morning"
	backend := &fakeBackend{name: "groq", completeText: "Sure, I'll remind you to call the dentist tomorrow morning!"}
	c, _ := testClient(backend)

	assert.Equal(t, raw, c.PostProcess(context.Background(), raw))
}

func TestPostProcessFallsBackToNextProvider(t *testing.T) {
	primary := &fakeBackend{name: "groq", completeErr: errors.New("down")}
	fallback := &fakeBackend{name: "openai", completeText: "Cleaned up dictation text here."}
	c, _ := testClient(primary, fallback)

	got := c.PostProcess(context.Background(), "cleaned up dictation text here")
	assert.Equal(t, fallback.completeText, got)
	assert.Equal(t, 1, primary.completes)
	assert.Equal(t, 1, fallback.completes)
}

func TestRejectCleanupAcceptsFaithfulEdit(t *testing.T) {
	raw := "so um i think we should probably meet at three pm tomorrow"
	cleaned := "I think we should probably meet at 3pm tomorrow."
	assert.Empty(t, rejectCleanup(raw, cleaned))
}

func TestRejectCleanupLengthRatio(t *testing.T) {
	raw := "short note"

	tooLong := strings.Repeat("padding ", 20) + raw
	reason := rejectCleanup(raw, tooLong)
	require.NotEmpty(t, reason)
	assert.Contains(t, reason, "length ratio")

	reason = rejectCleanup("a reasonably long dictated sentence about the weekly status meeting", "ok")
	require.NotEmpty(t, reason)
	assert.Contains(t, reason, "length ratio")
}

func TestRejectCleanupResponsePrefixes(t *testing.T) {
	raw := "the quarterly report needs another pass before friday"
	for _, candidate := range []string{
		"Here is the cleaned text: the quarterly report needs another pass before Friday.",
		"  Certainly! The quarterly report needs another pass before Friday.",
		"Voici le texte: the quarterly report needs another pass before Friday.",
	} {
		reason := rejectCleanup(raw, candidate)
		require.NotEmpty(t, reason, "candidate %q should be rejected", candidate)
		assert.Contains(t, reason, "response phrase")
	}
}

func TestRejectCleanupWordOverlap(t *testing.T) {
	raw := "remember to water the plants and feed the cat tonight"
	unrelated := "The stock market closed higher today amid renewed optimism."
	reason := rejectCleanup(raw, unrelated)
	require.NotEmpty(t, reason)
	assert.Contains(t, reason, "word overlap")
}

func TestWordSetStripsPunctuationAndCase(t *testing.T) {
	words := wordSet("Hello, WORLD! It's 3pm.")
	assert.Contains(t, words, "hello")
	assert.Contains(t, words, "world")
	assert.Contains(t, words, "3pm")
	assert.NotContains(t, words, "hello,")
}
