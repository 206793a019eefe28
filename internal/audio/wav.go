package audio

import (
	"bytes"
	"encoding/binary"

	wav "github.com/youpy/go-wav"
)

const bitsPerSample = 16

// EncodeWAV wraps interleaved little-endian PCM samples in a WAV container.
func EncodeWAV(samples []int16, sampleRate, channels int) []byte {
	if channels <= 0 {
		channels = 1
	}

	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}

	var buf bytes.Buffer
	writer := wav.NewWriter(&buf, uint32(len(samples)/channels), uint16(channels), uint32(sampleRate), bitsPerSample)
	if _, err := writer.Write(data); err != nil {
		return nil
	}
	return buf.Bytes()
}
