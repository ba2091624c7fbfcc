package scope

import (
	"math"
	"math/cmplx"

	"github.com/ktye/fft"
	"github.com/patchwire/fmsynth"
	"github.com/viterin/vek/vek32"
)

// MaxSpectrumSize caps the FFT length of Analyze.
const MaxSpectrumSize = 4096

// Analyze computes the peak and RMS level of both channels, and the magnitude
// spectrum of their mean over the largest power-of-two window that fits at
// the end of the audio. Bin k of the spectrum is at
// k*sampleRate/(2*len(Spectrum)) hertz; a full-scale sine gives a peak of
// about 1.
func Analyze(left, right []float32, sampleRate int) fmsynth.Waveform {
	ret := fmsynth.Waveform{SampleRate: sampleRate, Left: left, Right: right}
	for c, x := range [2][]float32{left, right} {
		if len(x) == 0 {
			continue
		}
		abs := vek32.Abs(x)
		ret.Peak[c] = vek32.Max(abs)
		ret.RMS[c] = float32(math.Sqrt(float64(vek32.Dot(x, x)) / float64(len(x))))
	}
	n := min(len(left), len(right))
	size := 1
	for size*2 <= min(n, MaxSpectrumSize) {
		size *= 2
	}
	if size < 2 {
		return ret
	}
	mono := vek32.Add(left[n-size:n], right[n-size:n])
	vek32.MulNumber_Inplace(mono, 0.5)
	ret.Spectrum = spectrum(mono)
	return ret
}

func spectrum(x []float32) []float32 {
	n := len(x)
	f, err := fft.New(n)
	if err != nil {
		return nil
	}
	c := make([]complex128, n)
	var windowSum float64
	for i, v := range x {
		w := (1 - math.Cos(2*math.Pi*float64(i)/float64(n))) / 2 // hann
		windowSum += w
		c[i] = complex(float64(v)*w, 0)
	}
	c = f.Transform(c)
	ret := make([]float32, n/2)
	for i := range ret {
		ret[i] = float32(2 * cmplx.Abs(c[i]) / windowSum)
	}
	return ret
}
