package cmd

import (
	"fmt"

	"github.com/patchwire/fmsynth"
	"github.com/patchwire/fmsynth/oto"
	"github.com/patchwire/fmsynth/portaudio"
)

// Backends lists the values accepted by NewAudioContext; the first one is
// the default.
var Backends = []string{"oto", "portaudio"}

func NewAudioContext(backend string, sampleRate int) (fmsynth.AudioContext, error) {
	var (
		ctx fmsynth.AudioContext
		err error
	)
	switch backend {
	case "oto":
		ctx, err = oto.NewContext(sampleRate)
	case "portaudio":
		ctx, err = portaudio.NewContext(sampleRate)
	default:
		return nil, fmt.Errorf("unknown audio backend %q, use one of %v", backend, Backends)
	}
	if err != nil {
		return nil, err
	}
	return ctx, nil
}
