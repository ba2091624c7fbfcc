package vm_test

import (
	"slices"
	"testing"

	"github.com/patchwire/fmsynth"
	"github.com/patchwire/fmsynth/vm"
)

func TestInPortRead(t *testing.T) {
	bus := vm.NewBus(4)
	bus[2] = 0.5
	tests := []struct {
		name string
		port vm.InPort
		want float64
	}{
		{"constant", vm.ConstPort(3), 3},
		{"constant ignores mult", vm.InPort{Mult: 10, Bias: -1, Link: vm.Unlinked}, -1},
		{"identity", vm.InPort{Mult: 1, Link: 2}, 0.5},
		{"gain", vm.InPort{Mult: 4, Link: 2}, 2},
		{"gain and offset", vm.InPort{Mult: -2, Bias: 0.25, Link: 2}, -0.75},
		{"unwritten slot", vm.InPort{Mult: 5, Bias: 1, Link: 3}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.port.Read(bus); got != tt.want {
				t.Errorf("Read() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewInPortFromSpec(t *testing.T) {
	bus := vm.NewBus(2)
	bus[1] = 3
	if got := vm.NewInPort(fmsynth.Const(7)).Read(bus); got != 7 {
		t.Errorf("const port read %v, want 7", got)
	}
	if got := vm.NewInPort(fmsynth.Linked(1)).Read(bus); got != 3 {
		t.Errorf("linked port read %v, want 3", got)
	}
	if got := vm.NewInPort(fmsynth.Affine(1, 0.5, 1)).Read(bus); got != 2.5 {
		t.Errorf("affine port read %v, want 2.5", got)
	}
}

func TestOutPortWrite(t *testing.T) {
	bus := vm.NewBus(3)
	bus[0], bus[1], bus[2] = 1, 2, 3
	before := slices.Clone(bus)
	vm.NewOutPort(fmsynth.OutPortSpec{}).Write(bus, 42)
	if !slices.Equal(bus, before) {
		t.Fatalf("unconnected write changed the bus: got %v, want %v", bus, before)
	}
	vm.NewOutPort(fmsynth.Output(1)).Write(bus, 42)
	if want := (vm.Bus{1, 42, 3}); !slices.Equal(bus, want) {
		t.Fatalf("connected write: got %v, want %v", bus, want)
	}
	bus.Clear()
	if want := (vm.Bus{0, 0, 0}); !slices.Equal(bus, want) {
		t.Fatalf("Clear: got %v, want %v", bus, want)
	}
}
