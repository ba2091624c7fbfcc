package player

import (
	"time"

	"github.com/patchwire/fmsynth"
)

// Stoppable wraps the source of one patch generation. Every PollEvery samples,
// counted from the first pull, it compares its tag to the live generation;
// once they differ it ends its stream for good. The check runs on the pulling
// goroutine, so a superseded patch keeps sounding for at most one poll
// interval.
type Stoppable struct {
	source    fmsynth.Source
	gen       *Generation
	tag       uint64
	pollEvery int
	untilPoll int
	stopped   bool

	// OnStop, if not nil, is called once, on the pulling goroutine, when the
	// source retires.
	OnStop func(tag uint64)
}

// DefaultPollInterval is how often a patch checks whether it is stale.
const DefaultPollInterval = 100 * time.Millisecond

// NewStoppable wraps source with generation tag. pollEvery is in samples and
// is rounded up to a whole number of stereo frames.
func NewStoppable(source fmsynth.Source, gen *Generation, tag uint64, pollEvery int) *Stoppable {
	pollEvery += pollEvery & 1
	if pollEvery < 2 {
		pollEvery = 2
	}
	return &Stoppable{source: source, gen: gen, tag: tag, pollEvery: pollEvery}
}

// PollSamples converts a wall-clock poll interval into interleaved stereo
// samples at sampleRate.
func PollSamples(interval time.Duration, sampleRate int) int {
	return int(interval.Seconds() * float64(sampleRate) * 2)
}

func (s *Stoppable) Next() (float32, bool) {
	if s.stopped {
		return 0, false
	}
	if s.untilPoll <= 0 {
		s.untilPoll = s.pollEvery
		if s.gen.Load() != s.tag {
			s.stop()
			return 0, false
		}
	}
	s.untilPoll--
	v, ok := s.source.Next()
	if !ok {
		s.stop()
	}
	return v, ok
}

// Tag returns the generation the source was created for.
func (s *Stoppable) Tag() uint64 { return s.tag }

// Stopped reports whether the source has retired.
func (s *Stoppable) Stopped() bool { return s.stopped }

func (s *Stoppable) stop() {
	s.stopped = true
	if s.OnStop != nil {
		s.OnStop(s.tag)
	}
}
