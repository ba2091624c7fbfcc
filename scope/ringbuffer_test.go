package scope_test

import (
	"fmt"
	"testing"

	"github.com/patchwire/fmsynth/scope"
)

func TestRingBuffer(t *testing.T) {
	tests := []struct {
		name   string
		writes [][]int
		want   string
	}{
		{"empty", nil, "[0 0 0 0]"},
		{"partial", [][]int{{1, 2}}, "[0 0 1 2]"},
		{"exact", [][]int{{1, 2, 3, 4}}, "[1 2 3 4]"},
		{"wrap", [][]int{{1, 2, 3}, {4, 5, 6}}, "[3 4 5 6]"},
		{"longer than buffer", [][]int{{1, 2, 3, 4, 5, 6, 7}}, "[4 5 6 7]"},
		{"many small", [][]int{{1}, {2}, {3}, {4}, {5}}, "[2 3 4 5]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := scope.RingBuffer[int]{Buffer: make([]int, 4)}
			for _, w := range tt.writes {
				r.WriteWrap(w)
			}
			if got := fmt.Sprint(r.Ordered(nil)); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRingBufferSingle(t *testing.T) {
	r := scope.RingBuffer[int]{Buffer: make([]int, 3)}
	for i := 1; i <= 5; i++ {
		r.WriteWrapSingle(i)
	}
	if got, want := fmt.Sprint(r.Ordered(nil)), "[3 4 5]"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}
