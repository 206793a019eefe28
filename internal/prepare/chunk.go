package prepare

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	wav "github.com/youpy/go-wav"
)

const readBatchSamples = 4096

// chunkWAV splits a WAV buffer into fixed-duration segments with a fixed
// overlap between consecutive segments. The final segment may be shorter than
// the nominal chunk duration; no padding is added.
func chunkWAV(wavData []byte, chunkDuration, overlap time.Duration) ([][]byte, error) {
	if overlap >= chunkDuration {
		return nil, fmt.Errorf("overlap %s must be shorter than chunk duration %s", overlap, chunkDuration)
	}

	reader := wav.NewReader(bytes.NewReader(wavData))
	format, err := reader.Format()
	if err != nil {
		return nil, fmt.Errorf("read wav format: %w", err)
	}
	if format.SampleRate == 0 {
		return nil, errors.New("wav header reports zero sample rate")
	}

	samples, err := readAllSamples(reader)
	if err != nil {
		return nil, fmt.Errorf("read wav samples: %w", err)
	}
	if len(samples) == 0 {
		return nil, errors.New("wav contains no samples")
	}

	chunkFrames := int(chunkDuration.Seconds() * float64(format.SampleRate))
	stepFrames := chunkFrames - int(overlap.Seconds()*float64(format.SampleRate))

	var chunks [][]byte
	for start := 0; start < len(samples); start += stepFrames {
		end := start + chunkFrames
		if end > len(samples) {
			end = len(samples)
		}

		encoded, err := encodeSegment(samples[start:end], format)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, encoded)

		if end == len(samples) {
			break
		}
	}
	return chunks, nil
}

// readAllSamples drains a WAV reader in fixed-size batches.
func readAllSamples(reader *wav.Reader) ([]wav.Sample, error) {
	var samples []wav.Sample
	for {
		batch, err := reader.ReadSamples(readBatchSamples)
		samples = append(samples, batch...)
		if err == io.EOF {
			return samples, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// encodeSegment writes one slice of samples back into a standalone WAV file.
func encodeSegment(samples []wav.Sample, format *wav.WavFormat) ([]byte, error) {
	var buf bytes.Buffer
	writer := wav.NewWriter(&buf, uint32(len(samples)), format.NumChannels, format.SampleRate, format.BitsPerSample)
	if err := writer.WriteSamples(samples); err != nil {
		return nil, fmt.Errorf("encode wav segment: %w", err)
	}
	return buf.Bytes(), nil
}
