package player

import "sync/atomic"

// Generation is the counter naming the current patch. The coordinating loop
// is its only writer; stale patches read it from the audio goroutine. The
// zero value is generation 0, meaning no patch has been loaded.
type Generation struct {
	v atomic.Uint64
}

func (g *Generation) Load() uint64 { return g.v.Load() }

// Next advances the counter and returns the new generation.
func (g *Generation) Next() uint64 { return g.v.Add(1) }
