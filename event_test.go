package fmsynth_test

import (
	"math"
	"testing"

	"github.com/patchwire/fmsynth"
)

func TestKeyToFreq(t *testing.T) {
	tests := []struct {
		key  byte
		want float64
	}{
		{69, 440},
		{81, 880},
		{57, 220},
		{60, 261.6255653005986},
		{0, 8.175798915643707},
	}
	for _, tt := range tests {
		if got := fmsynth.KeyToFreq(tt.key); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("KeyToFreq(%d) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestParseMIDI(t *testing.T) {
	tests := []struct {
		name   string
		msg    []byte
		want   fmsynth.InputEvent
		wantOk bool
	}{
		{"note on", []byte{0x90, 69, 100}, fmsynth.InputEvent{Kind: fmsynth.KeyDown, Key: 69, Freq: 440}, true},
		{"note on other channel", []byte{0x9F, 60, 1}, fmsynth.KeyDownEvent(60), true},
		{"note on with zero velocity", []byte{0x90, 60, 0}, fmsynth.KeyDownEvent(60), true},
		{"note off", []byte{0x80, 69, 64}, fmsynth.InputEvent{Kind: fmsynth.KeyUp, Key: 69}, true},
		{"note off other channel", []byte{0x83, 12, 0}, fmsynth.KeyUpEvent(12), true},
		{"control change", []byte{0xB0, 7, 100}, fmsynth.InputEvent{}, false},
		{"pitch bend", []byte{0xE0, 0, 64}, fmsynth.InputEvent{}, false},
		{"clock", []byte{0xF8}, fmsynth.InputEvent{}, false},
		{"truncated", []byte{0x90}, fmsynth.InputEvent{}, false},
		{"empty", nil, fmsynth.InputEvent{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fmsynth.ParseMIDI(tt.msg)
			if ok != tt.wantOk || got != tt.want {
				t.Errorf("ParseMIDI(% x) = %v, %v; want %v, %v", tt.msg, got, ok, tt.want, tt.wantOk)
			}
		})
	}
}
