package fmsynth_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/patchwire/fmsynth"
)

func TestParseClientRequest(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantKind fmsynth.RequestKind
		wantErr  bool
	}{
		{"update patch", `{"update_patch": ` + jsonPatch + `}`, fmsynth.UpdatePatch, false},
		{"bare waveform request", `"request_waveform"`, fmsynth.RequestWaveform, false},
		{"tagged waveform request", `{"request_waveform": {}}`, fmsynth.RequestWaveform, false},
		{"invalid patch", `{"update_patch": {"nodes": [{"type": "saw"}]}}`, 0, true},
		{"patch of wrong shape", `{"update_patch": [1, 2]}`, 0, true},
		{"unknown kind", `{"play": 1}`, 0, true},
		{"unknown bare string", `"update_patch"`, 0, true},
		{"two kinds", `{"request_waveform": {}, "update_patch": {}}`, 0, true},
		{"empty object", `{}`, 0, true},
		{"not json", `request_waveform`, 0, true},
		{"number", `42`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := fmsynth.ParseClientRequest([]byte(tt.data))
			if tt.wantErr {
				if !errors.Is(err, fmsynth.ErrMalformedRequest) {
					t.Fatalf("got %v, want ErrMalformedRequest", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Kind != tt.wantKind {
				t.Errorf("got kind %v, want %v", req.Kind, tt.wantKind)
			}
		})
	}
}

func TestParseClientRequestPatch(t *testing.T) {
	req, err := fmsynth.ParseClientRequest([]byte(`{"update_patch": ` + jsonPatch + `}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.Patch.Nodes) != 2 || req.Patch.NumVoices() != 4 || req.Reply != nil {
		t.Errorf("got %+v", req)
	}
}

func TestWaveformJSON(t *testing.T) {
	w := fmsynth.Waveform{SampleRate: 44100, Left: []float32{0.5}, Right: []float32{-0.5}, Peak: [2]float32{0.5, 0.5}}
	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"sampleRate":44100,"left":[0.5],"right":[-0.5],"peak":[0.5,0.5],"rms":[0,0]}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}
