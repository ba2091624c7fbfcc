package vm

// Mixer sums its four inputs. Per-input gain comes from the Mult of each
// input port.
type Mixer struct {
	In  [4]InPort
	Out OutPort
}

func (m *Mixer) Tick(bus Bus) {
	var sum float64
	for _, in := range m.In {
		sum += in.Read(bus)
	}
	m.Out.Write(bus, sum)
}
