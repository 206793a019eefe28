package prepare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// encodeMP3 pipes WAV bytes through ffmpeg and returns the MP3 stream.
// No temp files: stdin in, stdout out.
func encodeMP3(ctx context.Context, wavData []byte, bitrateKbps int) ([]byte, error) {
	if bitrateKbps <= 0 {
		bitrateKbps = DefaultBitrateKbps
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner",
		"-loglevel", "error",
		"-i", "pipe:0",
		"-f", "mp3",
		"-b:a", fmt.Sprintf("%dk", bitrateKbps),
		"pipe:1",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(wavData)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return nil, fmt.Errorf("ffmpeg mp3 encode: %w", err)
		}
		return nil, fmt.Errorf("ffmpeg mp3 encode: %w (%s)", err, detail)
	}
	if stdout.Len() == 0 {
		return nil, errors.New("ffmpeg mp3 encode produced no output")
	}
	return stdout.Bytes(), nil
}
