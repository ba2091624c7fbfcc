package fmsynth

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

type (
	// PatchDefinition is the serialized form of a patch: an ordered list of
	// nodes, the bus slots with special meaning for the host, and the size of
	// the voice pool. The order of Nodes is the evaluation order; nothing
	// sorts them.
	PatchDefinition struct {
		Nodes []NodeDef `json:"nodes" yaml:"nodes"`
		IO    IO        `json:"io" yaml:"io"`

		// Voices is the polyphony of the patch. 0 means DefaultVoices.
		Voices int `json:"voices,omitempty" yaml:"voices,omitempty"`

		// Links is the length of the link bus of every voice. 0 means
		// DefaultLinks.
		Links int `json:"links,omitempty" yaml:"links,omitempty"`
	}

	// NodeDef describes one DSP node. Type is one of the keys of NodeTypes.
	// Ports missing from Inputs read as the constant 0 and ports missing from
	// Outputs are not written anywhere.
	NodeDef struct {
		Type    string                 `json:"type" yaml:"type"`
		Inputs  map[string]InPortSpec  `json:"inputs,omitempty" yaml:"inputs,omitempty"`
		Outputs map[string]OutPortSpec `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	}

	// IO names the bus slots the host writes (Freq, Gate) and reads (LChan,
	// RChan). A nil slot is not mapped.
	IO struct {
		Freq  *int `json:"freq,omitempty" yaml:"freq,omitempty"`
		Gate  *int `json:"gate,omitempty" yaml:"gate,omitempty"`
		LChan *int `json:"lchan,omitempty" yaml:"lchan,omitempty"`
		RChan *int `json:"rchan,omitempty" yaml:"rchan,omitempty"`
	}
)

const (
	DefaultVoices = 8
	MaxVoices     = 32
	DefaultLinks  = 100
	MaxLinks      = 4096
)

var (
	ErrUnknownNodeType = errors.New("unknown node type")
	ErrUnknownPort     = errors.New("unknown port")
	ErrLinkOutOfRange  = errors.New("link index out of range")
)

// Slot returns a pointer to i, for filling the optional link fields.
func Slot(i int) *int { return &i }

// NumVoices returns the size of the voice pool.
func (d *PatchDefinition) NumVoices() int {
	if d.Voices <= 0 {
		return DefaultVoices
	}
	return d.Voices
}

// BusLength returns the number of links in the bus of every voice.
func (d *PatchDefinition) BusLength() int {
	if d.Links <= 0 {
		return DefaultLinks
	}
	return d.Links
}

// Copy makes a deep copy of a patch definition.
func (d *PatchDefinition) Copy() PatchDefinition {
	nodes := make([]NodeDef, len(d.Nodes))
	for i, n := range d.Nodes {
		nodes[i] = n.Copy()
	}
	return PatchDefinition{
		Nodes:  nodes,
		IO:     d.IO.Copy(),
		Voices: d.Voices,
		Links:  d.Links,
	}
}

// Copy makes a deep copy of a node definition.
func (n *NodeDef) Copy() NodeDef {
	ret := NodeDef{Type: n.Type}
	if n.Inputs != nil {
		ret.Inputs = make(map[string]InPortSpec, len(n.Inputs))
		for k, v := range n.Inputs {
			ret.Inputs[k] = v.Copy()
		}
	}
	if n.Outputs != nil {
		ret.Outputs = make(map[string]OutPortSpec, len(n.Outputs))
		for k, v := range n.Outputs {
			ret.Outputs[k] = v.Copy()
		}
	}
	return ret
}

func (io IO) Copy() IO {
	return IO{
		Freq:  copySlot(io.Freq),
		Gate:  copySlot(io.Gate),
		LChan: copySlot(io.LChan),
		RChan: copySlot(io.RChan),
	}
}

func copySlot(s *int) *int {
	if s == nil {
		return nil
	}
	return Slot(*s)
}

// Validate checks the whole definition and reports every problem found. Link
// indices are checked against BusLength, so that a validated patch can never
// index outside its bus.
func (d *PatchDefinition) Validate() error {
	var errs []error
	if d.Voices < 0 || d.Voices > MaxVoices {
		errs = append(errs, fmt.Errorf("voices: %d is not in 0..%d (0 = default)", d.Voices, MaxVoices))
	}
	if d.Links < 0 || d.Links > MaxLinks {
		errs = append(errs, fmt.Errorf("links: %d is not in 0..%d (0 = default)", d.Links, MaxLinks))
	}
	busLength := d.BusLength()
	checkLink := func(where string, link *int) {
		if link != nil && (*link < 0 || *link >= busLength) {
			errs = append(errs, fmt.Errorf("%s: %w: %d (bus length %d)", where, ErrLinkOutOfRange, *link, busLength))
		}
	}
	for i, n := range d.Nodes {
		nodeType, ok := NodeTypes[n.Type]
		if !ok {
			errs = append(errs, fmt.Errorf("node %d: %w %q", i, ErrUnknownNodeType, n.Type))
			continue
		}
		for _, name := range slices.Sorted(maps.Keys(n.Inputs)) {
			where := fmt.Sprintf("node %d (%s) input %q", i, n.Type, name)
			if _, ok := nodeType.Input(name); !ok {
				errs = append(errs, fmt.Errorf("%s: %w", where, ErrUnknownPort))
				continue
			}
			checkLink(where, n.Inputs[name].Link)
		}
		for _, name := range slices.Sorted(maps.Keys(n.Outputs)) {
			where := fmt.Sprintf("node %d (%s) output %q", i, n.Type, name)
			if _, ok := nodeType.Output(name); !ok {
				errs = append(errs, fmt.Errorf("%s: %w", where, ErrUnknownPort))
				continue
			}
			checkLink(where, n.Outputs[name].Link)
		}
	}
	checkLink("io freq", d.IO.Freq)
	checkLink("io gate", d.IO.Gate)
	checkLink("io lchan", d.IO.LChan)
	checkLink("io rchan", d.IO.RChan)
	return errors.Join(errs...)
}

// ParsePatch parses a patch definition from either JSON or YAML. It does not
// validate the result.
func ParsePatch(data []byte) (PatchDefinition, error) {
	var def PatchDefinition
	errJSON := json.Unmarshal(data, &def)
	if errJSON == nil {
		return def, nil
	}
	def = PatchDefinition{}
	if errYaml := yaml.Unmarshal(data, &def); errYaml != nil {
		return PatchDefinition{}, fmt.Errorf("the patch could not be parsed as .json (%v) or .yml (%v)", errJSON, errYaml)
	}
	return def, nil
}
