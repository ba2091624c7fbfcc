package vm

import (
	"fmt"

	"github.com/patchwire/fmsynth"
)

// Patch is a fixed pool of voices built from one definition, together with
// the table of which key each voice is playing. It drains its event channel
// every time a sample is pulled and mixes all voices, assigned or not, into
// one interleaved stereo stream.
//
// When the pool is full, further KeyDown events are dropped; there is no
// voice stealing.
type Patch struct {
	voices      []*Voice
	assignments []int // key per voice, or unassigned
	events      <-chan fmsynth.InputEvent

	pending    float32
	hasPending bool

	// Logf, if not nil, receives voice allocation messages. It is called on
	// the audio goroutine.
	Logf func(format string, args ...any)
}

const unassigned = -1

// NewPatch validates def and builds its voice pool. events may be nil, in
// which case the patch only reacts to HandleEvent.
func NewPatch(def fmsynth.PatchDefinition, sampleRate int, events <-chan fmsynth.InputEvent) (*Patch, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid patch: %w", err)
	}
	n := def.NumVoices()
	p := &Patch{
		voices:      make([]*Voice, n),
		assignments: make([]int, n),
		events:      events,
	}
	for i := range p.voices {
		v, err := newVoice(&def, 1/float64(sampleRate))
		if err != nil {
			return nil, fmt.Errorf("voice %d: %w", i, err)
		}
		p.voices[i] = v
		p.assignments[i] = unassigned
	}
	return p, nil
}

// HandleEvent routes one event to a voice. KeyDown goes to the first free
// voice; KeyUp goes to the first voice playing that key and frees it.
func (p *Patch) HandleEvent(e fmsynth.InputEvent) {
	switch e.Kind {
	case fmsynth.KeyDown:
		i := p.find(unassigned)
		if i < 0 {
			p.logf("no free voice, dropping key %d", e.Key)
			return
		}
		p.voices[i].ProcessEvent(e)
		p.assignments[i] = int(e.Key)
		p.logf("allocating voice %d to key %d", i, e.Key)
	case fmsynth.KeyUp:
		i := p.find(int(e.Key))
		if i < 0 {
			return
		}
		p.voices[i].ProcessEvent(e)
		p.assignments[i] = unassigned
		p.logf("releasing voice %d", i)
	}
}

func (p *Patch) find(key int) int {
	for i, k := range p.assignments {
		if k == key {
			return i
		}
	}
	return -1
}

// Assignment returns the key the voice at slot i is assigned to.
func (p *Patch) Assignment(i int) (key byte, ok bool) {
	if k := p.assignments[i]; k != unassigned {
		return byte(k), true
	}
	return 0, false
}

// NumVoices returns the size of the voice pool.
func (p *Patch) NumVoices() int { return len(p.voices) }

// Voice returns the voice at slot i.
func (p *Patch) Voice(i int) *Voice { return p.voices[i] }

func (p *Patch) drainEvents() {
	for {
		select {
		case e, ok := <-p.events:
			if !ok {
				p.events = nil
				return
			}
			p.HandleEvent(e)
		default:
			return
		}
	}
}

// Next returns the next interleaved sample of the mix. Left and right of a
// tick are computed together: every voice is ticked once and the left and
// right means are taken separately, so the channels of different voices are
// never mixed with each other. The stream never ends.
func (p *Patch) Next() (float32, bool) {
	p.drainEvents()
	if p.hasPending {
		p.hasPending = false
		return p.pending, true
	}
	var left, right float64
	for _, v := range p.voices {
		l, r := v.Tick()
		left += l
		right += r
	}
	n := float64(len(p.voices))
	p.pending, p.hasPending = float32(right/n), true
	return float32(left / n), true
}

// ReadAudio fills buf with interleaved samples; a Patch can be played
// directly by an fmsynth.AudioContext.
func (p *Patch) ReadAudio(buf []float32) (int, error) {
	return fmsynth.ReadSource(p, buf), nil
}

func (p *Patch) logf(format string, args ...any) {
	if p.Logf != nil {
		p.Logf(format, args...)
	}
}
