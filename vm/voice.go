package vm

import (
	"fmt"

	"github.com/patchwire/fmsynth"
)

// Voice is one instance of the node graph of a patch, with its own bus. The
// nodes are evaluated in list order; a node placed before the node it reads
// sees the previous tick's value, which is how feedback paths are made.
type Voice struct {
	bus   Bus
	nodes []Node

	freq, gate, lchan, rchan int

	pending    float32
	hasPending bool
}

// NewVoice validates the definition and builds one voice of it.
func NewVoice(def *fmsynth.PatchDefinition, sampleRate int) (*Voice, error) {
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid patch: %w", err)
	}
	return newVoice(def, 1/float64(sampleRate))
}

func newVoice(def *fmsynth.PatchDefinition, samplePeriod float64) (*Voice, error) {
	nodes := make([]Node, len(def.Nodes))
	for i, n := range def.Nodes {
		node, err := NewNode(n, samplePeriod)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		nodes[i] = node
	}
	return &Voice{
		bus:   NewBus(def.BusLength()),
		nodes: nodes,
		freq:  slot(def.IO.Freq),
		gate:  slot(def.IO.Gate),
		lchan: slot(def.IO.LChan),
		rchan: slot(def.IO.RChan),
	}, nil
}

// SetFreq writes the frequency slot, if the patch maps one.
func (v *Voice) SetFreq(hz float64) {
	OutPort{Link: v.freq}.Write(v.bus, hz)
}

// SetGate writes 1 or 0 to the gate slot, if the patch maps one.
func (v *Voice) SetGate(on bool) {
	var g float64
	if on {
		g = 1
	}
	OutPort{Link: v.gate}.Write(v.bus, g)
}

func (v *Voice) ProcessEvent(e fmsynth.InputEvent) {
	switch e.Kind {
	case fmsynth.KeyDown:
		v.SetFreq(e.Freq)
		v.SetGate(true)
	case fmsynth.KeyUp:
		v.SetGate(false)
	}
}

// Tick evaluates every node once and returns the stereo pair read from the
// lchan and rchan slots (0 for an unmapped channel).
func (v *Voice) Tick() (left, right float64) {
	for _, n := range v.nodes {
		n.Tick(v.bus)
	}
	return v.read(v.lchan), v.read(v.rchan)
}

func (v *Voice) read(link int) float64 {
	if link < 0 {
		return 0
	}
	return v.bus[link]
}

// Next returns the voice as an interleaved sample stream: a call with no
// pending sample ticks the graph, returns left and keeps right for the next
// call. The stream never ends.
func (v *Voice) Next() (float32, bool) {
	if v.hasPending {
		v.hasPending = false
		return v.pending, true
	}
	l, r := v.Tick()
	v.pending, v.hasPending = float32(r), true
	return float32(l), true
}

// Bus returns the voice's link bus. It is meant for inspection.
func (v *Voice) Bus() Bus { return v.bus }
