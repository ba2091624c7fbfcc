package vm

import "math"

// Oscillator is a sine oscillator with phase accumulation. Each tick the
// phase integral advances by Freq*SamplePeriod cycles and the output is
//
//	Vol * sin(2π*phaseIntegral + Phase + Feedback*previousOutput)
//
// Phase is in radians. The integral is kept in [0, 1), so frequency
// modulation never causes a jump in phase, only in its slope.
type Oscillator struct {
	Freq, Phase, Vol, Feedback InPort
	Out                        OutPort
	SamplePeriod               float64

	phaseIntegral float64
	prev          float64
}

func (o *Oscillator) Tick(bus Bus) {
	o.phaseIntegral += o.Freq.Read(bus) * o.SamplePeriod
	o.phaseIntegral -= math.Floor(o.phaseIntegral)
	if math.IsNaN(o.phaseIntegral) {
		// a non-finite frequency must not stick once it goes away
		o.phaseIntegral = 0
	}
	arg := 2*math.Pi*o.phaseIntegral + o.Phase.Read(bus)
	if fb := o.Feedback.Read(bus); fb != 0 {
		arg += fb * o.prev
	}
	out := o.Vol.Read(bus) * math.Sin(arg)
	o.prev = out
	o.Out.Write(bus, out)
}

// PhaseIntegral returns the accumulated phase in cycles, wrapped to [0, 1).
func (o *Oscillator) PhaseIntegral() float64 { return o.phaseIntegral }
