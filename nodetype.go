package fmsynth

import (
	"fmt"
)

type (
	// NodeType documents the ports a node type takes. The order of Inputs
	// and Outputs is the order in which editors and exports list them.
	NodeType struct {
		Inputs  []PortParameter
		Outputs []PortParameter
	}

	// PortParameter documents one port of a node type
	PortParameter struct {
		Name        string
		DisplayFunc PortDisplayFunc // formats a constant value of the port; nil means plain number
	}

	PortDisplayFunc func(float64) (value string, unit string)
)

const (
	NodeTypeADSR   = "adsr"
	NodeTypeSinOsc = "sinosc"
	NodeTypeMixer  = "mixer"
)

// NodeTypes documents all the available node types and their ports.
var NodeTypes = map[string]NodeType{
	NodeTypeADSR: {
		Inputs: []PortParameter{
			{Name: "gate"},
			{Name: "a", DisplayFunc: engineeringTime},
			{Name: "d", DisplayFunc: engineeringTime},
			{Name: "s"},
			{Name: "r", DisplayFunc: engineeringTime}},
		Outputs: []PortParameter{{Name: "out"}}},
	NodeTypeSinOsc: {
		Inputs: []PortParameter{
			{Name: "freq", DisplayFunc: func(v float64) (string, string) { return formatFloat(v), "Hz" }},
			{Name: "phase", DisplayFunc: func(v float64) (string, string) { return formatFloat(v), "rad" }},
			{Name: "vol"},
			{Name: "feedback"}},
		Outputs: []PortParameter{{Name: "out"}}},
	NodeTypeMixer: {
		Inputs:  []PortParameter{{Name: "in1"}, {Name: "in2"}, {Name: "in3"}, {Name: "in4"}},
		Outputs: []PortParameter{{Name: "out"}}},
}

// InputNames returns the names of the input ports in documentation order.
func (t NodeType) InputNames() []string { return portNames(t.Inputs) }

// OutputNames returns the names of the output ports in documentation order.
func (t NodeType) OutputNames() []string { return portNames(t.Outputs) }

// Input returns the documentation of the named input port.
func (t NodeType) Input(name string) (PortParameter, bool) { return findPort(t.Inputs, name) }

// Output returns the documentation of the named output port.
func (t NodeType) Output(name string) (PortParameter, bool) { return findPort(t.Outputs, name) }

// Display formats a constant value of the port for humans.
func (p PortParameter) Display(v float64) string {
	if p.DisplayFunc == nil {
		return formatFloat(v)
	}
	value, unit := p.DisplayFunc(v)
	if unit == "" {
		return value
	}
	return value + " " + unit
}

func portNames(ports []PortParameter) []string {
	ret := make([]string, len(ports))
	for i, p := range ports {
		ret[i] = p.Name
	}
	return ret
}

func findPort(ports []PortParameter, name string) (PortParameter, bool) {
	for _, p := range ports {
		if p.Name == name {
			return p, true
		}
	}
	return PortParameter{}, false
}

func engineeringTime(sec float64) (string, string) {
	if sec == 0 {
		return "0", "s"
	} else if sec < 1e-3 {
		return fmt.Sprintf("%.2f", sec*1e6), "us"
	} else if sec < 1 {
		return fmt.Sprintf("%.2f", sec*1e3), "ms"
	}
	return fmt.Sprintf("%.2f", sec), "s"
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.4g", f)
}
