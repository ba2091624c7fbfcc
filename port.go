package fmsynth

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

type (
	// InPortSpec is the serialized form of an input port. When Link is nil
	// the port is the constant Bias; otherwise it reads
	// bus[Link]*Mult + Bias.
	InPortSpec struct {
		Mult float64 `json:"mult" yaml:"mult"`
		Bias float64 `json:"bias" yaml:"bias"`
		Link *int    `json:"link,omitempty" yaml:"link,omitempty"`
	}

	// OutPortSpec is the serialized form of an output port. A nil Link means
	// the output is not used.
	OutPortSpec struct {
		Link *int `json:"link,omitempty" yaml:"link,omitempty"`
	}

	// inPortFields accepts all the encodings of an input port: the affine
	// {mult, bias, link} form and the tagged {const} / {link} forms.
	inPortFields struct {
		Mult  *float64 `json:"mult" yaml:"mult"`
		Bias  *float64 `json:"bias" yaml:"bias"`
		Link  *int     `json:"link" yaml:"link"`
		Const *float64 `json:"const" yaml:"const"`
	}
)

var errConstAndLink = errors.New("input port cannot be both a constant and a link")

// Const returns an input port that always reads v.
func Const(v float64) InPortSpec { return InPortSpec{Bias: v} }

// Linked returns an input port that reads link unmodified.
func Linked(link int) InPortSpec { return InPortSpec{Mult: 1, Link: Slot(link)} }

// Affine returns an input port that reads bus[link]*mult + bias.
func Affine(link int, mult, bias float64) InPortSpec {
	return InPortSpec{Mult: mult, Bias: bias, Link: Slot(link)}
}

// Output returns an output port writing to link.
func Output(link int) OutPortSpec { return OutPortSpec{Link: Slot(link)} }

func (p InPortSpec) Copy() InPortSpec {
	p.Link = copySlot(p.Link)
	return p
}

func (p OutPortSpec) Copy() OutPortSpec {
	p.Link = copySlot(p.Link)
	return p
}

// IsIdentity reports whether the port passes its link through unchanged.
func (p InPortSpec) IsIdentity() bool {
	return p.Link != nil && p.Mult == 1 && p.Bias == 0
}

func (p InPortSpec) String() string {
	if p.Link == nil {
		return fmt.Sprintf("%g", p.Bias)
	}
	if p.IsIdentity() {
		return fmt.Sprintf("[%d]", *p.Link)
	}
	return fmt.Sprintf("[%d]*%g%+g", *p.Link, p.Mult, p.Bias)
}

func (p *InPortSpec) UnmarshalJSON(data []byte) error {
	var f inPortFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	return p.set(f)
}

func (p *InPortSpec) UnmarshalYAML(value *yaml.Node) error {
	var f inPortFields
	if err := value.Decode(&f); err != nil {
		return err
	}
	return p.set(f)
}

func (p *InPortSpec) set(f inPortFields) error {
	if f.Const != nil {
		if f.Link != nil {
			return errConstAndLink
		}
		*p = Const(*f.Const)
		return nil
	}
	*p = InPortSpec{Link: f.Link}
	if f.Mult != nil {
		p.Mult = *f.Mult
	} else if f.Link != nil {
		p.Mult = 1
	}
	if f.Bias != nil {
		p.Bias = *f.Bias
	}
	return nil
}
