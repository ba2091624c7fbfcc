package oto

import (
	"fmt"
	"io"

	"github.com/ebitengine/oto/v3"
	"github.com/patchwire/fmsynth"
)

// Context plays fmsynth.AudioSources on the default output device. oto pulls
// audio from its own goroutine.
type Context struct {
	ctx        *oto.Context
	sampleRate int
}

// reader adapts an AudioSource to the io.Reader oto pulls from.
type reader struct {
	source fmsynth.AudioSource
	floats []float32
	tmp    []byte
}

const otoBufferSize = 2048 // frames

func NewContext(sampleRate int) (*Context, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0, // platform default
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &Context{ctx: ctx, sampleRate: sampleRate}, nil
}

// Play starts pulling source. Closing the returned player stops it.
func (c *Context) Play(source fmsynth.AudioSource) (io.Closer, error) {
	p := c.ctx.NewPlayer(&reader{source: source})
	p.SetBufferSize(otoBufferSize * 2 * 4)
	p.Play()
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("cannot start oto player: %w", err)
	}
	return p, nil
}

// Close suspends the device; an oto context lives as long as the process.
func (c *Context) Close() error {
	if err := c.ctx.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}

func (r *reader) Read(p []byte) (int, error) {
	n := len(p) / 8 * 2 // whole stereo frames of float32
	if cap(r.floats) < n {
		r.floats = make([]float32, n)
	}
	floats := r.floats[:n]
	got, err := r.source.ReadAudio(floats)
	if err != nil {
		return 0, err
	}
	clear(floats[got:])
	r.tmp = FloatBufferToFloat32LE(floats, r.tmp)
	return copy(p, r.tmp), nil
}
