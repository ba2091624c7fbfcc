//go:build !cgo

package cmd

import (
	"errors"
	"io"

	"github.com/patchwire/fmsynth"
)

// OpenMIDIInput always fails: the MIDI driver needs cgo.
func OpenMIDIInput(events chan<- fmsynth.InputEvent, namePrefix string) (io.Closer, error) {
	return nil, errors.New("MIDI input is not available in builds without cgo")
}
