package fmsynth

import (
	"encoding/json"
	"errors"
	"fmt"
)

type (
	// ClientRequest is one message of the configuration protocol, after
	// parsing.
	ClientRequest struct {
		Kind  RequestKind
		Patch PatchDefinition // only for UpdatePatch

		// Reply, if not nil, receives the answer to a RequestWaveform. It
		// should be buffered; whoever answers never blocks on it.
		Reply chan Waveform
	}

	RequestKind int

	// Waveform is a snapshot of the most recent audio output, sent back to
	// clients that ask for it.
	Waveform struct {
		SampleRate int        `json:"sampleRate"`
		Left       []float32  `json:"left"`
		Right      []float32  `json:"right"`
		Peak       [2]float32 `json:"peak"`
		RMS        [2]float32 `json:"rms"`
		Spectrum   []float32  `json:"spectrum,omitempty"`
	}
)

const (
	UpdatePatch RequestKind = iota + 1
	RequestWaveform
)

const (
	updatePatchTag     = "update_patch"
	requestWaveformTag = "request_waveform"
)

var ErrMalformedRequest = errors.New("malformed request")

// ParseClientRequest decodes a text frame of the configuration protocol. The
// frame is either a JSON object with exactly one key naming the request kind,
// or the bare string "request_waveform". Patches are validated here, so an
// UpdatePatch that parses is safe to build.
func ParseClientRequest(data []byte) (ClientRequest, error) {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		if name == requestWaveformTag {
			return ClientRequest{Kind: RequestWaveform}, nil
		}
		return ClientRequest{}, fmt.Errorf("%w: unknown request %q", ErrMalformedRequest, name)
	}
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return ClientRequest{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if len(tagged) != 1 {
		return ClientRequest{}, fmt.Errorf("%w: expected exactly one request kind, got %d", ErrMalformedRequest, len(tagged))
	}
	for tag, body := range tagged {
		switch tag {
		case updatePatchTag:
			var def PatchDefinition
			if err := json.Unmarshal(body, &def); err != nil {
				return ClientRequest{}, fmt.Errorf("%w: %s: %v", ErrMalformedRequest, tag, err)
			}
			if err := def.Validate(); err != nil {
				return ClientRequest{}, fmt.Errorf("%w: %s: %v", ErrMalformedRequest, tag, err)
			}
			return ClientRequest{Kind: UpdatePatch, Patch: def}, nil
		case requestWaveformTag:
			return ClientRequest{Kind: RequestWaveform}, nil
		default:
			return ClientRequest{}, fmt.Errorf("%w: unknown request %q", ErrMalformedRequest, tag)
		}
	}
	panic("unreachable")
}

func (k RequestKind) String() string {
	switch k {
	case UpdatePatch:
		return updatePatchTag
	case RequestWaveform:
		return requestWaveformTag
	}
	return fmt.Sprintf("RequestKind(%d)", int(k))
}
