// Package portaudio plays fmsynth.AudioSources through PortAudio, as an
// alternative to the oto backend.
package portaudio

import (
	"fmt"
	"io"

	"github.com/gordonklaus/portaudio"
	"github.com/patchwire/fmsynth"
)

const framesPerBuffer = 512

type (
	Context struct {
		sampleRate int
	}

	stream struct {
		stream *portaudio.Stream
		source fmsynth.AudioSource
	}
)

func NewContext(sampleRate int) (*Context, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("cannot initialize portaudio: %w", err)
	}
	return &Context{sampleRate: sampleRate}, nil
}

// Play opens a stereo stream on the default output device pulling source.
func (c *Context) Play(source fmsynth.AudioSource) (io.Closer, error) {
	s := &stream{source: source}
	var err error
	s.stream, err = portaudio.OpenDefaultStream(0, 2, float64(c.sampleRate), framesPerBuffer, s.process)
	if err != nil {
		return nil, fmt.Errorf("cannot open portaudio stream: %w", err)
	}
	if err := s.stream.Start(); err != nil {
		s.stream.Close()
		return nil, fmt.Errorf("cannot start portaudio stream: %w", err)
	}
	return s, nil
}

func (c *Context) Close() error {
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("cannot terminate portaudio: %w", err)
	}
	return nil
}

// process is the stream callback; out is interleaved stereo.
func (s *stream) process(out []float32) {
	n, err := s.source.ReadAudio(out)
	if err != nil {
		n = 0
	}
	clear(out[n:])
}

func (s *stream) Close() error {
	if err := s.stream.Stop(); err != nil {
		s.stream.Close()
		return fmt.Errorf("cannot stop portaudio stream: %w", err)
	}
	return s.stream.Close()
}
