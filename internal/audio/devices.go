package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Device describes one input-capable audio device.
type Device struct {
	Index      int
	Name       string
	Channels   int
	SampleRate float64
	Default    bool
}

// ListDevices enumerates input-capable devices. Pure query, no side effects
// beyond the PortAudio init/teardown pair.
func ListDevices() ([]Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	defer func() { _ = portaudio.Terminate() }()

	all, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerate devices: %w", err)
	}

	var defaultName string
	if info, err := portaudio.DefaultInputDevice(); err == nil && info != nil {
		defaultName = info.Name
	}

	devices := make([]Device, 0, len(all))
	for i, info := range all {
		if info.MaxInputChannels <= 0 {
			continue
		}
		devices = append(devices, Device{
			Index:      i,
			Name:       info.Name,
			Channels:   info.MaxInputChannels,
			SampleRate: info.DefaultSampleRate,
			Default:    info.Name == defaultName,
		})
	}
	return devices, nil
}
