package fmsynth

import (
	"fmt"
	"math"
)

type (
	// InputEvent is a note event delivered to a patch. Freq is only
	// meaningful for KeyDown.
	InputEvent struct {
		Kind EventKind
		Key  byte
		Freq float64
	}

	EventKind int
)

const (
	KeyDown EventKind = iota
	KeyUp
)

const (
	midiNoteOn  = 0x90
	midiNoteOff = 0x80
)

// KeyDownEvent returns the KeyDown event of a MIDI key, tuned to 12-tone equal
// temperament.
func KeyDownEvent(key byte) InputEvent {
	return InputEvent{Kind: KeyDown, Key: key, Freq: KeyToFreq(key)}
}

func KeyUpEvent(key byte) InputEvent {
	return InputEvent{Kind: KeyUp, Key: key}
}

// KeyToFreq converts a MIDI key number to hertz, A4 = key 69 = 440 Hz.
func KeyToFreq(key byte) float64 {
	return 440 * math.Exp2((float64(key)-69)/12)
}

// ParseMIDI classifies a raw MIDI message by its status nibble. Note on
// becomes KeyDown and note off becomes KeyUp; the velocity byte is ignored.
// Every other message returns ok == false.
//
// A note on with velocity 0 is a KeyDown too. Controllers that send it in
// place of note off will keep voices assigned until the pool is exhausted.
func ParseMIDI(msg []byte) (event InputEvent, ok bool) {
	if len(msg) < 2 {
		return InputEvent{}, false
	}
	switch msg[0] & 0xF0 {
	case midiNoteOn:
		return KeyDownEvent(msg[1]), true
	case midiNoteOff:
		return KeyUpEvent(msg[1]), true
	}
	return InputEvent{}, false
}

func (e InputEvent) String() string {
	switch e.Kind {
	case KeyDown:
		return fmt.Sprintf("KeyDown{key: %d, freq: %.2f}", e.Key, e.Freq)
	case KeyUp:
		return fmt.Sprintf("KeyUp{key: %d}", e.Key)
	}
	return fmt.Sprintf("InputEvent{kind: %d}", int(e.Kind))
}
