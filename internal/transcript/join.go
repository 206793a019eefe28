// Package transcript assembles per-chunk transcription results into final text.
package transcript

import "strings"

// Join concatenates chunk transcripts in capture order with single-space
// separators. Chunks are trimmed first so provider padding never produces
// doubled spaces; empty chunks are dropped.
func Join(chunks []string) string {
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		trimmed := strings.TrimSpace(chunk)
		if trimmed == "" {
			continue
		}
		parts = append(parts, trimmed)
	}
	return strings.Join(parts, " ")
}
