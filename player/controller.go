package player

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/patchwire/fmsynth"
	"github.com/patchwire/fmsynth/scope"
	"github.com/patchwire/fmsynth/vm"
)

// Controller is the coordinating loop: it owns the Sink, turns patch updates
// into running patches and answers waveform requests. All patches read note
// events from the same channel.
type Controller struct {
	Sink         *Sink
	Broker       *Broker
	Events       <-chan fmsynth.InputEvent
	SampleRate   int
	PollInterval time.Duration

	// Verbose makes the patches log voice allocation from the audio
	// goroutine.
	Verbose bool

	gen   Generation
	scope *scope.Scope
}

func NewController(broker *Broker, sink *Sink, events <-chan fmsynth.InputEvent, sampleRate int) *Controller {
	return &Controller{
		Sink:         sink,
		Broker:       broker,
		Events:       events,
		SampleRate:   sampleRate,
		PollInterval: DefaultPollInterval,
		scope:        scope.New(scope.DefaultLength),
	}
}

// Generation returns the generation of the most recently loaded patch.
func (c *Controller) Generation() uint64 { return c.gen.Load() }

// Load builds a patch from def and appends it to the sink, retiring every
// older patch within one poll interval. If def is invalid nothing changes and
// the previous patch keeps playing.
func (c *Controller) Load(def fmsynth.PatchDefinition) (uint64, error) {
	patch, err := vm.NewPatch(def, c.SampleRate, c.Events)
	if err != nil {
		return 0, err
	}
	if c.Verbose {
		patch.Logf = log.Printf
	}
	// the generation only moves once the patch is sure to reach the sink,
	// otherwise the playing patch would retire with nothing to replace it
	if !c.Sink.CanAppend() {
		return 0, fmt.Errorf("patch %d: the sink is not accepting new sources", c.gen.Load()+1)
	}
	tag := c.gen.Next()
	source := NewStoppable(patch, &c.gen, tag, PollSamples(c.PollInterval, c.SampleRate))
	source.OnStop = func(tag uint64) {
		if c.Verbose {
			log.Printf("patch %d is stale, stopping", tag)
		}
	}
	if !c.Sink.Append(source) {
		return tag, fmt.Errorf("patch %d: the sink is not accepting new sources", tag)
	}
	return tag, nil
}

// Run serves requests until ctx is done or requests is closed.
func (c *Controller) Run(ctx context.Context, requests <-chan fmsynth.ClientRequest) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case buf := <-c.Broker.ToScope:
			c.scope.Write(*buf)
			c.Broker.PutAudioBuffer(buf)
		case req, ok := <-requests:
			if !ok {
				return nil
			}
			c.handle(req)
		}
	}
}

func (c *Controller) handle(req fmsynth.ClientRequest) {
	switch req.Kind {
	case fmsynth.UpdatePatch:
		tag, err := c.Load(req.Patch)
		if err != nil {
			log.Printf("could not load patch: %v", err)
			return
		}
		log.Printf("loaded patch %d (%d nodes, %d voices)", tag, len(req.Patch.Nodes), req.Patch.NumVoices())
	case fmsynth.RequestWaveform:
		if req.Reply == nil {
			return
		}
		if !TrySend(req.Reply, c.scope.Waveform(c.SampleRate)) {
			log.Printf("waveform reply dropped")
		}
	}
}
