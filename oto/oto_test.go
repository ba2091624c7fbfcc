package oto

import (
	"encoding/binary"
	"math"
	"testing"
)

type rampSource struct{ next float32 }

func (s *rampSource) ReadAudio(buf []float32) (int, error) {
	for i := range buf {
		buf[i] = s.next
		s.next++
	}
	return len(buf), nil
}

func TestFloatBufferToFloat32LE(t *testing.T) {
	src := []float32{0, 1, -0.5, float32(math.Inf(1))}
	dst := FloatBufferToFloat32LE(src, make([]byte, 0, 2))
	if len(dst) != 16 {
		t.Fatalf("got %d bytes, want 16", len(dst))
	}
	for i, want := range src {
		if got := math.Float32frombits(binary.LittleEndian.Uint32(dst[4*i:])); got != want {
			t.Errorf("sample %d: got %v, want %v", i, got, want)
		}
	}
}

func TestReaderReadsWholeFrames(t *testing.T) {
	r := &reader{source: &rampSource{}}
	p := make([]byte, 8*3+5)
	n, err := r.Read(p)
	if err != nil || n != 24 {
		t.Fatalf("Read = %d, %v; want 24, nil", n, err)
	}
	for i := 0; i < 6; i++ {
		if got := math.Float32frombits(binary.LittleEndian.Uint32(p[4*i:])); got != float32(i) {
			t.Errorf("sample %d: got %v, want %v", i, got, i)
		}
	}
}
