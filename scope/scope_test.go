package scope_test

import (
	"math"
	"testing"

	"github.com/patchwire/fmsynth/scope"
)

func TestScopeWaveform(t *testing.T) {
	const rate = 8192
	s := scope.New(1024)
	buf := make([]float32, 2*2048)
	for i := 0; i < len(buf)/2; i++ {
		buf[2*i] = float32(math.Sin(2 * math.Pi * 512 * float64(i) / rate))
		buf[2*i+1] = 0.25
	}
	s.Write(buf[:1000])
	s.Write(buf[1000:])
	w := s.Waveform(rate)
	if len(w.Left) != 1024 || len(w.Right) != 1024 {
		t.Fatalf("got %d + %d samples, want 1024 + 1024", len(w.Left), len(w.Right))
	}
	if last := w.Left[len(w.Left)-1]; last != buf[len(buf)-2] {
		t.Errorf("newest left sample %v, want %v", last, buf[len(buf)-2])
	}
	if math.Abs(float64(w.Peak[0])-1) > 1e-3 || w.Peak[1] != 0.25 {
		t.Errorf("peak %v, want [1 0.25]", w.Peak)
	}
	if math.Abs(float64(w.RMS[0])-math.Sqrt2/2) > 1e-3 || math.Abs(float64(w.RMS[1])-0.25) > 1e-6 {
		t.Errorf("rms %v, want [%v 0.25]", w.RMS, math.Sqrt2/2)
	}
	if len(w.Spectrum) != 512 {
		t.Fatalf("spectrum has %d bins, want 512", len(w.Spectrum))
	}
	// 512 Hz is bin 64 with 1024 points at 8192 Hz
	maxBin := 1
	for i := 1; i < len(w.Spectrum); i++ {
		if w.Spectrum[i] > w.Spectrum[maxBin] {
			maxBin = i
		}
	}
	if maxBin != 64 {
		t.Errorf("spectral peak at bin %d, want 64", maxBin)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	w := scope.Analyze(nil, nil, 44100)
	if w.Peak != [2]float32{} || w.RMS != [2]float32{} || w.Spectrum != nil {
		t.Errorf("analysis of no audio should be zero, got %+v", w)
	}
}
