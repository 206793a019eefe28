package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// paStream wraps a PortAudio stream and balances the library init refcount
// when the stream is released.
type paStream struct {
	stream *portaudio.Stream
}

func (s *paStream) Start() error { return s.stream.Start() }
func (s *paStream) Stop() error  { return s.stream.Stop() }

func (s *paStream) Close() error {
	err := s.stream.Close()
	_ = portaudio.Terminate()
	return err
}

// openPortAudioStream opens an input-only int16 stream feeding
// Recorder.processBlock. A negative device index selects the system default.
func openPortAudioStream(r *Recorder) (inputStream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}

	callback := func(in []int16) {
		r.processBlock(in)
	}

	if r.device < 0 {
		stream, err := portaudio.OpenDefaultStream(r.channels, 0, float64(r.sampleRate), framesPerBuffer, callback)
		if err != nil {
			_ = portaudio.Terminate()
			return nil, err
		}
		return &paStream{stream: stream}, nil
	}

	devices, err := portaudio.Devices()
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("enumerate devices: %w", err)
	}
	if r.device >= len(devices) {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("input device index %d out of range (%d devices)", r.device, len(devices))
	}
	info := devices[r.device]
	if info.MaxInputChannels < r.channels {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("device %q supports %d input channels, need %d", info.Name, info.MaxInputChannels, r.channels)
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   info,
			Channels: r.channels,
			Latency:  info.DefaultLowInputLatency,
		},
		SampleRate:      float64(r.sampleRate),
		FramesPerBuffer: framesPerBuffer,
	}
	stream, err := portaudio.OpenStream(params, callback)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, err
	}
	return &paStream{stream: stream}, nil
}
