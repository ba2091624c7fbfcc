package oto

import (
	"encoding/binary"
	"math"
)

// FloatBufferToFloat32LE writes the samples into dst as little-endian
// float32, reusing its capacity, and returns the filled slice.
func FloatBufferToFloat32LE(src []float32, dst []byte) []byte {
	n := 4 * len(src)
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, v := range src {
		binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(v))
	}
	return dst
}
