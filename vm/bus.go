package vm

import "github.com/patchwire/fmsynth"

type (
	// Bus is the link bus of one graph instance: a flat array of slots
	// through which the nodes of a Voice talk to each other and to the host.
	Bus []float64

	// InPort reads a bus slot through an affine transform. Link < 0 means
	// the port is not linked and always reads Bias.
	InPort struct {
		Mult, Bias float64
		Link       int
	}

	// OutPort writes a bus slot. Link < 0 means the output is not connected
	// and writes are discarded.
	OutPort struct {
		Link int
	}
)

// Unlinked is the Link value of ports that are not connected to the bus.
const Unlinked = -1

func NewBus(length int) Bus {
	return make(Bus, length)
}

// Clear zeroes every slot.
func (b Bus) Clear() {
	clear(b)
}

// ConstPort returns an input port that always reads v.
func ConstPort(v float64) InPort {
	return InPort{Bias: v, Link: Unlinked}
}

func NewInPort(spec fmsynth.InPortSpec) InPort {
	if spec.Link == nil {
		return ConstPort(spec.Bias)
	}
	return InPort{Mult: spec.Mult, Bias: spec.Bias, Link: *spec.Link}
}

func NewOutPort(spec fmsynth.OutPortSpec) OutPort {
	if spec.Link == nil {
		return OutPort{Link: Unlinked}
	}
	return OutPort{Link: *spec.Link}
}

func (p InPort) Read(bus Bus) float64 {
	if p.Link < 0 {
		return p.Bias
	}
	return bus[p.Link]*p.Mult + p.Bias
}

func (p OutPort) Write(bus Bus, value float64) {
	if p.Link < 0 {
		return
	}
	bus[p.Link] = value
}

// slot is the IO map counterpart of OutPort: a bus index the host reads or
// writes, or Unlinked.
func slot(s *int) int {
	if s == nil {
		return Unlinked
	}
	return *s
}
