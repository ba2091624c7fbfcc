package fmsynth

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/youpy/go-wav"
)

// Wav encodes an interleaved stereo buffer as a 16-bit PCM .wav file.
func Wav(buffer []float32, sampleRate int) ([]byte, error) {
	buf := new(bytes.Buffer)
	frames := len(buffer) / 2
	w := wav.NewWriter(buf, uint32(frames), 2, uint32(sampleRate), 16)
	samples := make([]wav.Sample, frames)
	for i := range samples {
		samples[i].Values[0] = toInt16(buffer[2*i])
		samples[i].Values[1] = toInt16(buffer[2*i+1])
	}
	if err := w.WriteSamples(samples); err != nil {
		return nil, fmt.Errorf("Wav failed: %v", err)
	}
	return buf.Bytes(), nil
}

// Raw dumps the buffer without a header, either as float32 or as 16-bit PCM,
// little-endian.
func Raw(buffer []float32, pcm16 bool) ([]byte, error) {
	buf := new(bytes.Buffer)
	err := rawToBuffer(buffer, pcm16, buf)
	if err != nil {
		return nil, fmt.Errorf("Raw failed: %v", err)
	}
	return buf.Bytes(), nil
}

func rawToBuffer(data []float32, pcm16 bool, buf *bytes.Buffer) error {
	var err error
	if pcm16 {
		int16data := make([]int16, len(data))
		for i, v := range data {
			int16data[i] = int16(toInt16(v))
		}
		err = binary.Write(buf, binary.LittleEndian, int16data)
	} else {
		err = binary.Write(buf, binary.LittleEndian, data)
	}
	if err != nil {
		return fmt.Errorf("could not binary write data to binary buffer: %v", err)
	}
	return nil
}

func toInt16(v float32) int {
	return clamp(int(v*math.MaxInt16), math.MinInt16, math.MaxInt16)
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
