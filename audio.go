package fmsynth

import "io"

type (
	// AudioSource produces interleaved stereo float32 audio. ReadAudio fills
	// buf with L, R, L, R... samples and returns how many were written. A
	// source that never ends always fills the whole buffer.
	AudioSource interface {
		ReadAudio(buf []float32) (int, error)
	}

	// AudioContext is a connection to an audio device. Play starts pulling the
	// source on the device's own goroutine; closing the returned player stops
	// it.
	AudioContext interface {
		Play(source AudioSource) (io.Closer, error)
		Close() error
	}

	// Source is a stream of interleaved stereo samples, one sample per call.
	// ok == false means the stream has ended and will never produce again.
	Source interface {
		Next() (sample float32, ok bool)
	}
)

// ReadSource pulls samples from s into buf until buf is full or s ends. It
// returns the number of samples written.
func ReadSource(s Source, buf []float32) int {
	for i := range buf {
		v, ok := s.Next()
		if !ok {
			return i
		}
		buf[i] = v
	}
	return len(buf)
}
