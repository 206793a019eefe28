package session

import (
	"context"
	"errors"

	"github.com/nlefevre/murmur/internal/asr"
	"github.com/nlefevre/murmur/internal/fsm"
	"github.com/nlefevre/murmur/internal/transcript"
)

type pipelineJob struct {
	ctx     context.Context
	wavData []byte
}

// pipelineWorker serializes captures on one goroutine. The Transcribing state
// admits at most one job at a time, so the buffered send in Stop never blocks.
func (c *Controller) pipelineWorker() {
	for job := range c.pipeline {
		c.runPipeline(job.ctx, job.wavData)
	}
}

// runPipeline carries one capture through prepare, transcribe, post-process,
// and insert. The deferred finish guarantees the session returns to idle no
// matter which stage fails or panics.
func (c *Controller) runPipeline(ctx context.Context, wavData []byte) {
	defer func() {
		if r := recover(); r != nil {
			c.logError("transcription pipeline panicked", "panic", r)
			c.notifier.Error(ctx, "Transcription failed")
		}
		c.apply(ctx, fsm.EventFinish)
	}()

	payloads, err := c.preparer.Prepare(ctx, wavData)
	if err != nil {
		c.logError("audio preparation failed", "error", err.Error())
		c.notifier.Error(ctx, "Audio preparation failed")
		return
	}
	if len(payloads) == 0 {
		c.logInfo("no payloads produced; nothing to transcribe")
		return
	}

	// Chunks transcribe sequentially so the transcript preserves spoken order.
	texts := make([]string, 0, len(payloads))
	for _, payload := range payloads {
		text, err := c.transcriber.Transcribe(ctx, payload)
		if err != nil {
			c.logError("transcription failed",
				"payload", payload.Filename, "error", err.Error())
			c.notifier.Error(ctx, transcriptionFailureMessage(err))
			return
		}
		texts = append(texts, text)
	}

	final := transcript.Join(texts)
	if final == "" {
		c.logInfo("transcription produced no text")
		c.notifier.Error(ctx, "No speech detected")
		return
	}

	if c.cfg.PostProcess {
		final = c.transcriber.PostProcess(ctx, final)
	}

	if err := c.inserter.Insert(ctx, final); err != nil {
		c.logError("text insertion failed", "error", err.Error())
		c.notifier.Error(ctx, "Could not paste transcript")
		return
	}

	c.logInfo("transcript committed", "chars", len(final), "chunks", len(payloads))
	c.notifier.TranscriptionDone(ctx, final)
}

func transcriptionFailureMessage(err error) string {
	if errors.Is(err, asr.ErrNotConfigured) {
		return "No transcription provider configured"
	}
	return "Transcription failed"
}
