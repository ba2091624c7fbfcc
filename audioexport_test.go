package fmsynth_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/patchwire/fmsynth"
	"github.com/youpy/go-wav"
)

func TestWav(t *testing.T) {
	buffer := []float32{0, 0, 0.5, -0.5, 1, -1, 2, -2}
	data, err := fmsynth.Wav(buffer, 22050)
	if err != nil {
		t.Fatalf("Wav failed: %v", err)
	}
	r := wav.NewReader(bytes.NewReader(data))
	format, err := r.Format()
	if err != nil {
		t.Fatalf("could not read the format: %v", err)
	}
	if format.NumChannels != 2 || format.SampleRate != 22050 || format.BitsPerSample != 16 {
		t.Fatalf("got format %+v, want 16-bit stereo at 22050 Hz", format)
	}
	var got []int
	for {
		samples, err := r.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("could not read samples: %v", err)
		}
		for _, s := range samples {
			got = append(got, r.IntValue(s, 0), r.IntValue(s, 1))
		}
	}
	want := []int{0, 0, 16383, -16383, 32767, -32767, 32767, -32768}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRaw(t *testing.T) {
	buffer := []float32{0.25, -1}
	data, err := fmsynth.Raw(buffer, false)
	if err != nil || len(data) != 8 {
		t.Fatalf("Raw float32 = %d bytes, %v", len(data), err)
	}
	if v := math.Float32frombits(binary.LittleEndian.Uint32(data[4:])); v != -1 {
		t.Errorf("second float32 sample %v, want -1", v)
	}
	data, err = fmsynth.Raw(buffer, true)
	if err != nil || len(data) != 4 {
		t.Fatalf("Raw pcm16 = %d bytes, %v", len(data), err)
	}
	if v := int16(binary.LittleEndian.Uint16(data)); v != 8191 {
		t.Errorf("first int16 sample %v, want 8191", v)
	}
}
