package vm

import (
	"fmt"

	"github.com/patchwire/fmsynth"
)

// Node is one DSP unit of a Voice. Tick is called exactly once per sample;
// a node reads its inputs from the bus, updates its private state and writes
// its outputs back to the bus. Nodes never share state with each other.
type Node interface {
	Tick(bus Bus)
}

// ports resolves the named ports of a node definition, defaulting missing
// inputs to the constant 0 and missing outputs to unconnected.
type ports struct {
	def fmsynth.NodeDef
}

func (p ports) in(name string) InPort {
	if spec, ok := p.def.Inputs[name]; ok {
		return NewInPort(spec)
	}
	return ConstPort(0)
}

func (p ports) out(name string) OutPort {
	if spec, ok := p.def.Outputs[name]; ok {
		return NewOutPort(spec)
	}
	return OutPort{Link: Unlinked}
}

// NewNode builds a node with fresh state from its definition. samplePeriod is
// the duration of one tick in seconds.
func NewNode(def fmsynth.NodeDef, samplePeriod float64) (Node, error) {
	p := ports{def: def}
	switch def.Type {
	case fmsynth.NodeTypeADSR:
		return &Envelope{
			Gate:         p.in("gate"),
			Attack:       p.in("a"),
			Decay:        p.in("d"),
			Sustain:      p.in("s"),
			Release:      p.in("r"),
			Out:          p.out("out"),
			SamplePeriod: samplePeriod,
		}, nil
	case fmsynth.NodeTypeSinOsc:
		return &Oscillator{
			Freq:         p.in("freq"),
			Phase:        p.in("phase"),
			Vol:          p.in("vol"),
			Feedback:     p.in("feedback"),
			Out:          p.out("out"),
			SamplePeriod: samplePeriod,
		}, nil
	case fmsynth.NodeTypeMixer:
		return &Mixer{
			In:  [4]InPort{p.in("in1"), p.in("in2"), p.in("in3"), p.in("in4")},
			Out: p.out("out"),
		}, nil
	}
	return nil, fmt.Errorf("%w %q", fmsynth.ErrUnknownNodeType, def.Type)
}
