package vm

type (
	// Envelope is a linear ADSR envelope generator. A rising edge of Gate
	// restarts the attack from 0 in any state; a falling edge releases from
	// whatever level the envelope is at, so a note released during attack or
	// decay fades out at once instead of first holding at the sustain level.
	// Stage times are in seconds; a time
	// that is zero, negative or NaN makes its stage instantaneous.
	Envelope struct {
		Gate, Attack, Decay, Sustain, Release InPort
		Out                                   OutPort
		SamplePeriod                          float64

		state        EnvelopeState
		value        float64
		releaseLevel float64
		gate         bool
	}

	EnvelopeState int
)

const (
	EnvIdle EnvelopeState = iota
	EnvAttacking
	EnvDecaying
	EnvSustaining
	EnvReleasing
)

func (e *Envelope) Tick(bus Bus) {
	gate := e.Gate.Read(bus) != 0
	sustain := clamp01(e.Sustain.Read(bus))
	switch {
	case gate && !e.gate:
		e.value = 0
		e.state = EnvAttacking
	case !gate && e.gate && e.state != EnvIdle && e.state != EnvReleasing:
		e.releaseLevel = e.value
		e.state = EnvReleasing
	}
	e.gate = gate
	switch e.state {
	case EnvAttacking:
		if a := e.Attack.Read(bus); a > 0 {
			e.value += e.SamplePeriod / a
		} else {
			e.value = 1
		}
		if e.value >= 1 {
			e.value = 1
			e.state = EnvDecaying
		}
	case EnvDecaying:
		if d := e.Decay.Read(bus); d > 0 {
			e.value -= (1 - sustain) * e.SamplePeriod / d
		} else {
			e.value = sustain
		}
		if e.value <= sustain {
			e.value = sustain
			e.state = EnvSustaining
		}
	case EnvSustaining:
		e.value = sustain
	case EnvReleasing:
		if r := e.Release.Read(bus); r > 0 {
			e.value -= e.releaseLevel * e.SamplePeriod / r
		} else {
			e.value = 0
		}
		if e.value <= 0 {
			e.value = 0
			e.state = EnvIdle
		}
	default:
		e.value = 0
	}
	e.Out.Write(bus, e.value)
}

// State returns the current stage of the envelope.
func (e *Envelope) State() EnvelopeState { return e.state }

// Value returns the level written on the last tick.
func (e *Envelope) Value() float64 { return e.value }

func (s EnvelopeState) String() string {
	switch s {
	case EnvIdle:
		return "idle"
	case EnvAttacking:
		return "attacking"
	case EnvDecaying:
		return "decaying"
	case EnvSustaining:
		return "sustaining"
	case EnvReleasing:
		return "releasing"
	}
	return "unknown"
}

// clamp01 maps v into [0, 1]; NaN maps to 0.
func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v >= 0 {
		return v
	}
	return 0
}
