package vm_test

import (
	"testing"

	"github.com/patchwire/fmsynth/vm"
)

func TestMixer(t *testing.T) {
	mixer := &vm.Mixer{
		In: [4]vm.InPort{
			{Mult: 1, Link: 0},
			{Mult: 0.5, Link: 1},
			{Mult: 1, Bias: 0.25, Link: 2},
			vm.ConstPort(0),
		},
		Out: vm.OutPort{Link: 4},
	}
	tests := []struct {
		name    string
		a, b, c float64
		want    float64
	}{
		{"silence", 0, 0, 0, 0.25},
		{"sum", 1, 2, 3, 1 + 1 + 3.25},
		{"cancellation", 1, -2, -0.25, 0},
		{"negative", -0.5, -0.5, -0.5, -0.5 - 0.25 - 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := vm.NewBus(5)
			bus[0], bus[1], bus[2] = tt.a, tt.b, tt.c
			for i := 0; i < 2; i++ { // no state carried between ticks
				mixer.Tick(bus)
				if bus[4] != tt.want {
					t.Fatalf("tick %d: got %v, want %v", i, bus[4], tt.want)
				}
			}
		})
	}
}
