//go:build cgo

package gomidi

import (
	"fmt"
	"log"

	"github.com/patchwire/fmsynth"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// Input listens to one MIDI input port and turns note on / note off messages
// into fmsynth.InputEvents. The driver calls back on its own goroutine; the
// events are sent without blocking and dropped if the channel is full.
type Input struct {
	driver *rtmididrv.Driver
	in     drivers.In
	stop   func()
	events chan<- fmsynth.InputEvent
}

// Open chooses a port with ChoosePort, prompting if needed, and starts
// listening to it.
func Open(events chan<- fmsynth.InputEvent, namePrefix string) (*Input, error) {
	driver, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("cannot open MIDI driver: %w", err)
	}
	ins, err := driver.Ins()
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("cannot list MIDI inputs: %w", err)
	}
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}
	index, ask, err := ChoosePort(names, namePrefix)
	if err == nil && ask {
		index, err = Prompt(names)
	}
	if err != nil {
		driver.Close()
		return nil, err
	}
	m := &Input{driver: driver, in: ins[index], events: events}
	if err := m.in.Open(); err != nil {
		driver.Close()
		return nil, fmt.Errorf("opening MIDI input failed: %w", err)
	}
	m.stop, err = midi.ListenTo(m.in, m.HandleMessage)
	if err != nil {
		m.in.Close()
		driver.Close()
		return nil, fmt.Errorf("cannot listen to MIDI input: %w", err)
	}
	log.Printf("using MIDI input %q", m.in.String())
	return m, nil
}

func (m *Input) HandleMessage(msg midi.Message, timestampms int32) {
	event, ok := fmsynth.ParseMIDI(msg)
	if !ok {
		return
	}
	select {
	case m.events <- event:
	default:
		log.Printf("note queue full, dropping %v", event)
	}
}

func (m *Input) Close() error {
	if m.stop != nil {
		m.stop()
	}
	if m.in.IsOpen() {
		m.in.Close()
	}
	return m.driver.Close()
}
