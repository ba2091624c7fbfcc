//go:build cgo

package cmd

import (
	"io"

	"github.com/patchwire/fmsynth"
	"github.com/patchwire/fmsynth/gomidi"
)

// OpenMIDIInput starts forwarding note events from a MIDI input port.
func OpenMIDIInput(events chan<- fmsynth.InputEvent, namePrefix string) (io.Closer, error) {
	input, err := gomidi.Open(events, namePrefix)
	if err != nil {
		return nil, err
	}
	return input, nil
}
