package scope

import (
	"github.com/patchwire/fmsynth"
)

// Scope captures the most recent stereo frames of the output, for answering
// waveform requests. It is not safe for concurrent use; the controller owns
// it.
type Scope struct {
	waveform RingBuffer[[2]float32]
	frames   [][2]float32
}

// DefaultLength is the capture length in frames: about 93 ms at 44.1 kHz.
const DefaultLength = 4096

func New(length int) *Scope {
	if length <= 0 {
		length = DefaultLength
	}
	return &Scope{waveform: RingBuffer[[2]float32]{Buffer: make([][2]float32, length)}}
}

// Write appends interleaved stereo audio. A trailing odd sample is ignored.
func (s *Scope) Write(interleaved []float32) {
	s.frames = s.frames[:0]
	for i := 0; i+1 < len(interleaved); i += 2 {
		s.frames = append(s.frames, [2]float32{interleaved[i], interleaved[i+1]})
	}
	s.waveform.WriteWrap(s.frames)
}

// Frames returns a copy of the captured frames, oldest first.
func (s *Scope) Frames() [][2]float32 {
	return s.waveform.Ordered(nil)
}

// Waveform splits the captured audio into channels and analyzes it.
func (s *Scope) Waveform(sampleRate int) fmsynth.Waveform {
	frames := s.Frames()
	left := make([]float32, len(frames))
	right := make([]float32, len(frames))
	for i, f := range frames {
		left[i], right[i] = f[0], f[1]
	}
	return Analyze(left, right, sampleRate)
}
