// Package prepare converts raw captures into upload-ready audio payloads.
package prepare

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	// DefaultMaxPayloadBytes is the provider direct-upload limit.
	DefaultMaxPayloadBytes = 25 * 1024 * 1024
	// DefaultChunkDuration is the per-chunk slice length for oversized audio.
	DefaultChunkDuration = 30 * time.Second
	// DefaultOverlap keeps boundary words intact across consecutive chunks.
	DefaultOverlap = 1 * time.Second
	// DefaultBitrateKbps is the MP3 bitrate, tuned for speech.
	DefaultBitrateKbps = 64
)

// Payload is one finalized, upload-ready audio buffer.
type Payload struct {
	Data     []byte
	Filename string
}

// Preparer turns a raw WAV capture into payloads that honor the provider size
// limit: compression first, raw WAV second, time-sliced chunks last.
type Preparer struct {
	MaxPayloadBytes int
	ChunkDuration   time.Duration
	Overlap         time.Duration
	BitrateKbps     int

	logger   *slog.Logger
	compress func(ctx context.Context, wavData []byte, bitrateKbps int) ([]byte, error)
}

// NewPreparer builds a preparer with the standard limits.
func NewPreparer(logger *slog.Logger) *Preparer {
	return &Preparer{
		MaxPayloadBytes: DefaultMaxPayloadBytes,
		ChunkDuration:   DefaultChunkDuration,
		Overlap:         DefaultOverlap,
		BitrateKbps:     DefaultBitrateKbps,
		logger:          logger,
		compress:        encodeMP3,
	}
}

// Prepare produces 1..N payloads for valid non-empty WAV input, or an empty
// list for empty input. Compression failures are recovered locally and never
// surface to the caller.
func (p *Preparer) Prepare(ctx context.Context, wavData []byte) ([]Payload, error) {
	if len(wavData) == 0 {
		return nil, nil
	}

	mp3Data, err := p.compress(ctx, wavData, p.BitrateKbps)
	if err != nil {
		p.logWarn("audio compression failed; falling back to WAV", "error", err.Error())
	} else if len(mp3Data) <= p.MaxPayloadBytes {
		p.logInfo("compressed capture for single upload",
			"wav_kb", len(wavData)/1024, "mp3_kb", len(mp3Data)/1024)
		return []Payload{{Data: mp3Data, Filename: "recording.mp3"}}, nil
	} else {
		p.logWarn("compressed audio still exceeds upload limit; chunking WAV",
			"mp3_kb", len(mp3Data)/1024)
	}

	if len(wavData) <= p.MaxPayloadBytes {
		return []Payload{{Data: wavData, Filename: "recording.wav"}}, nil
	}

	chunks, err := chunkWAV(wavData, p.ChunkDuration, p.Overlap)
	if err != nil {
		return nil, fmt.Errorf("chunk oversized capture: %w", err)
	}

	payloads := make([]Payload, 0, len(chunks))
	for i, chunk := range chunks {
		payloads = append(payloads, Payload{
			Data:     chunk,
			Filename: fmt.Sprintf("chunk-%03d.wav", i+1),
		})
	}
	p.logInfo("split capture into chunks", "chunks", len(payloads))
	return payloads, nil
}

func (p *Preparer) logInfo(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Preparer) logWarn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
