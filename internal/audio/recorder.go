// Package audio handles input device discovery and PCM capture into memory.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"
)

const (
	// levelHistorySize is the number of recent RMS values kept for metering.
	levelHistorySize = 48
	// levelBoost amplifies normalized RMS so quiet microphones stay visible.
	levelBoost = 12.0

	framesPerBuffer = 1024
)

// State is the recorder lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRecording
	StatePaused
)

// inputStream is the subset of a PortAudio stream the recorder drives.
// Stop keeps the stream openable again; Close releases the device.
type inputStream interface {
	Start() error
	Stop() error
	Close() error
}

// Recorder captures microphone input into an in-memory sample buffer.
//
// The capture callback only appends samples and updates level statistics; it
// never performs I/O or holds the lock for long.
type Recorder struct {
	sampleRate int
	channels   int
	device     int

	openStream func(r *Recorder) (inputStream, error)
	now        func() time.Time

	mu            sync.Mutex
	state         State
	stream        inputStream
	samples       []int16
	currentRMS    float64
	levels        []float64
	segmentStart  time.Time
	elapsedOffset time.Duration
}

// NewRecorder builds a recorder for the given format. device is a PortAudio
// device index; pass a negative value for the system default input.
func NewRecorder(sampleRate, channels, device int) *Recorder {
	r := &Recorder{
		sampleRate: sampleRate,
		channels:   channels,
		device:     device,
		now:        time.Now,
	}
	r.openStream = openPortAudioStream
	return r
}

// State returns the current recorder state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Start opens the input stream and begins capturing. It is a no-op unless the
// recorder is idle, so repeated start triggers cannot double-open the device.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateIdle {
		return nil
	}

	r.samples = nil
	r.currentRMS = 0
	r.levels = nil
	r.elapsedOffset = 0
	r.segmentStart = r.now()

	stream, err := r.openStream(r)
	if err != nil {
		return fmt.Errorf("open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return fmt.Errorf("start input stream: %w", err)
	}

	r.stream = stream
	r.state = StateRecording
	return nil
}

// Stop closes the stream and returns all captured audio as a WAV container.
// When idle (or nothing was captured) it returns empty bytes.
func (r *Recorder) Stop() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateIdle {
		return nil, nil
	}

	r.closeStreamLocked()
	r.state = StateIdle

	if len(r.samples) == 0 {
		return nil, nil
	}
	return EncodeWAV(r.samples, r.sampleRate, r.channels), nil
}

// Pause freezes capture and the elapsed clock. Only valid while recording.
func (r *Recorder) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording || r.stream == nil {
		return
	}
	_ = r.stream.Stop()
	r.elapsedOffset += r.now().Sub(r.segmentStart)
	r.state = StatePaused
}

// Resume continues a paused capture; the elapsed clock picks up from the
// frozen offset rather than restarting.
func (r *Recorder) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StatePaused || r.stream == nil {
		return
	}
	r.segmentStart = r.now()
	_ = r.stream.Start()
	r.state = StateRecording
}

// Cancel discards buffered audio unconditionally and releases the device.
func (r *Recorder) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closeStreamLocked()
	r.samples = nil
	r.state = StateIdle
}

// Duration reports captured audio length, excluding pause gaps. While idle it
// is derived from the buffer; while paused it is the frozen offset; while
// recording it also includes the in-flight segment.
func (r *Recorder) Duration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case StateIdle:
		if r.sampleRate <= 0 || r.channels <= 0 {
			return 0
		}
		frames := len(r.samples) / r.channels
		return time.Duration(float64(frames) / float64(r.sampleRate) * float64(time.Second))
	case StatePaused:
		return r.elapsedOffset
	default:
		return r.elapsedOffset + r.now().Sub(r.segmentStart)
	}
}

// CurrentRMS returns the latest normalized input level in [0, 1].
func (r *Recorder) CurrentRMS() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentRMS
}

// LevelHistory returns a snapshot of recent RMS values, oldest first.
func (r *Recorder) LevelHistory() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, len(r.levels))
	copy(out, r.levels)
	return out
}

// processBlock is the capture callback body: append the block and update
// level statistics. Invoked by PortAudio at block granularity.
func (r *Recorder) processBlock(in []int16) {
	if len(in) == 0 {
		return
	}

	var sum float64
	for _, s := range in {
		v := float64(s)
		sum += v * v
	}
	rms := math.Sqrt(sum / float64(len(in)))
	normalized := math.Min(1.0, rms/32768.0*levelBoost)

	r.mu.Lock()
	r.samples = append(r.samples, in...)
	r.currentRMS = normalized
	r.levels = append(r.levels, normalized)
	if len(r.levels) > levelHistorySize {
		r.levels = r.levels[len(r.levels)-levelHistorySize:]
	}
	r.mu.Unlock()
}

func (r *Recorder) closeStreamLocked() {
	if r.stream == nil {
		return
	}
	_ = r.stream.Stop()
	_ = r.stream.Close()
	r.stream = nil
}
