package player

import (
	"sync"

	"github.com/patchwire/fmsynth"
)

type (
	// Broker carries messages between the coordinating loop and the audio
	// goroutine. Every channel is one-directional and bounded; the audio
	// side only ever sends or receives without blocking.
	//
	// Captured audio is passed around in buffers from a sync.Pool, so the
	// audio goroutine does not allocate in steady state. Whoever receives a
	// buffer from ToScope returns it with PutAudioBuffer.
	Broker struct {
		ToSink  chan fmsynth.Source
		ToScope chan *[]float32

		bufferPool sync.Pool
	}
)

func NewBroker() *Broker {
	return &Broker{
		ToSink:     make(chan fmsynth.Source, 64),
		ToScope:    make(chan *[]float32, 64),
		bufferPool: sync.Pool{New: func() any { return &[]float32{} }},
	}
}

// GetAudioBuffer returns an empty audio buffer from the buffer pool.
func (b *Broker) GetAudioBuffer() *[]float32 {
	return b.bufferPool.Get().(*[]float32)
}

// PutAudioBuffer resets the length of the buffer, keeping its capacity, and
// returns it to the pool.
func (b *Broker) PutAudioBuffer(buf *[]float32) {
	*buf = (*buf)[:0]
	b.bufferPool.Put(buf)
}

// TrySend is a helper function to send a value to a channel if it is not full.
// It is guaranteed to be non-blocking. Return true if the value was sent, false
// otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}
