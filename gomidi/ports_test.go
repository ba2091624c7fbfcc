package gomidi

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestChoosePort(t *testing.T) {
	tests := []struct {
		name      string
		names     []string
		prefix    string
		wantIndex int
		wantAsk   bool
		wantErr   bool
	}{
		{"none", nil, "", 0, false, true},
		{"single", []string{"Keys"}, "", 0, false, false},
		{"two takes the second", []string{"Midi Through", "Keys"}, "", 1, false, false},
		{"many asks", []string{"Midi Through", "Keys", "Pads"}, "", 0, true, false},
		{"prefix", []string{"Midi Through", "Keys", "Pads"}, "Pa", 2, false, false},
		{"prefix takes the first match", []string{"Keys 1", "Keys 2"}, "Keys", 0, false, false},
		{"prefix without match", []string{"Keys"}, "Drums", 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, ask, err := ChoosePort(tt.names, tt.prefix)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, want error: %v", err, tt.wantErr)
			}
			if err == nil && (index != tt.wantIndex || ask != tt.wantAsk) {
				t.Fatalf("got (%d, %v), want (%d, %v)", index, ask, tt.wantIndex, tt.wantAsk)
			}
		})
	}
	if _, _, err := ChoosePort(nil, ""); !errors.Is(err, ErrNoInputs) {
		t.Errorf("no ports: got %v, want ErrNoInputs", err)
	}
}

type scriptedReader struct {
	lines []string
	out   bytes.Buffer
}

func (r *scriptedReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) Stdout() io.Writer { return &r.out }

func TestPrompt(t *testing.T) {
	names := []string{"Midi Through", "Keys", "Pads"}
	r := &scriptedReader{lines: []string{"", "pads", "7", " 2 "}}
	index, err := prompt(r, names)
	if err != nil || index != 2 {
		t.Fatalf("prompt = %d, %v; want 2, nil", index, err)
	}
	if out := r.out.String(); !strings.Contains(out, "  1: Keys") || strings.Count(out, "enter a number") != 2 {
		t.Errorf("unexpected prompt output:\n%s", out)
	}
	if _, err := prompt(&scriptedReader{}, names); !errors.Is(err, io.EOF) {
		t.Errorf("prompt at end of input: got %v, want io.EOF", err)
	}
}
