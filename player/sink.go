package player

import (
	"slices"
	"sync/atomic"

	"github.com/patchwire/fmsynth"
)

// Sink is the output boundary: an fmsynth.AudioSource that sums any number
// of interleaved stereo sources. Sources are added with Append from any
// goroutine and removed when their stream ends. ReadAudio never blocks; new
// sources are picked up at the start of each call.
//
// Sources are pulled newest-first, so that when several patches share one
// event channel, the most recent one drains it.
type Sink struct {
	broker  *Broker
	sources []fmsynth.Source // oldest first
	active  atomic.Int32
}

func NewSink(broker *Broker) *Sink {
	return &Sink{broker: broker}
}

// Append queues source to be mixed in. It returns false if the queue is full,
// which only happens if the audio device has stopped pulling.
func (s *Sink) Append(source fmsynth.Source) bool {
	return TrySend(s.broker.ToSink, source)
}

// CanAppend reports whether Append would succeed. With a single goroutine
// appending, a true result holds until that goroutine appends.
func (s *Sink) CanAppend() bool {
	return len(s.broker.ToSink) < cap(s.broker.ToSink)
}

// Active returns the number of sources being mixed, as of the last ReadAudio.
func (s *Sink) Active() int { return int(s.active.Load()) }

// ReadAudio fills buf with whole stereo frames and returns how many samples
// were written; with an odd length the last sample is left untouched. The
// audio is also offered to the broker's scope channel, and dropped if that is
// full.
func (s *Sink) ReadAudio(buf []float32) (int, error) {
F:
	for {
		select {
		case src := <-s.broker.ToSink:
			s.sources = append(s.sources, src)
		default:
			break F
		}
	}
	n := len(buf) &^ 1
	for i := 0; i < n; i += 2 {
		var l, r float32
		for j := len(s.sources) - 1; j >= 0; j-- {
			sl, ok := s.sources[j].Next()
			if !ok {
				s.sources = slices.Delete(s.sources, j, j+1)
				continue
			}
			sr, ok := s.sources[j].Next()
			if !ok {
				s.sources = slices.Delete(s.sources, j, j+1)
			}
			l += sl
			r += sr
		}
		buf[i], buf[i+1] = l, r
	}
	s.active.Store(int32(len(s.sources)))
	captured := s.broker.GetAudioBuffer()
	*captured = append(*captured, buf[:n]...)
	if !TrySend(s.broker.ToScope, captured) {
		s.broker.PutAudioBuffer(captured)
	}
	return n, nil
}
