// Package dot exports the signal flow of a patch as a Graphviz digraph.
package dot

import (
	_ "embed"
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/patchwire/fmsynth"
)

//go:embed graph.dot.tmpl
var graphTemplate string

var tmpl = template.Must(template.New("graph").Funcs(sprig.TxtFuncMap()).Parse(graphTemplate))

type (
	graph struct {
		Nodes []node
		IO    []ioNode
		Edges []edge
	}

	node struct {
		Index           int
		Type            string
		Inputs, Outputs []string // record fields
	}

	ioNode struct {
		Name string
		Host bool // written by the host rather than read by it
	}

	edge struct {
		From, To, Label string
	}

	endpoint struct {
		id   string
		port fmsynth.InPortSpec // readers only
	}
)

// Render writes the patch as a digraph: one record per node, one node per
// mapped IO channel and one edge from every writer of a link to every reader
// of it. The patch should be valid; links that nothing writes or reads are
// left out.
func Render(w io.Writer, def *fmsynth.PatchDefinition) error {
	if err := tmpl.Execute(w, build(def)); err != nil {
		return fmt.Errorf("could not render the graph: %w", err)
	}
	return nil
}

func build(def *fmsynth.PatchDefinition) graph {
	var g graph
	writers := map[int][]endpoint{}
	readers := map[int][]endpoint{}
	var links []int
	see := func(link int) {
		if _, ok := writers[link]; ok {
			return
		}
		if _, ok := readers[link]; ok {
			return
		}
		links = append(links, link)
	}
	for i, n := range def.Nodes {
		gn := node{Index: i, Type: n.Type}
		nodeType := fmsynth.NodeTypes[n.Type]
		for _, p := range nodeType.Inputs {
			spec, ok := n.Inputs[p.Name]
			field := fmt.Sprintf("<i_%s> %s", p.Name, p.Name)
			switch {
			case !ok:
				field += " = 0"
			case spec.Link == nil:
				field += " = " + p.Display(spec.Bias)
			default:
				see(*spec.Link)
				readers[*spec.Link] = append(readers[*spec.Link], endpoint{id: fmt.Sprintf("n%d:i_%s", i, p.Name), port: spec})
			}
			gn.Inputs = append(gn.Inputs, field)
		}
		for _, p := range nodeType.Outputs {
			gn.Outputs = append(gn.Outputs, fmt.Sprintf("<o_%s> %s", p.Name, p.Name))
			if spec, ok := n.Outputs[p.Name]; ok && spec.Link != nil {
				see(*spec.Link)
				writers[*spec.Link] = append(writers[*spec.Link], endpoint{id: fmt.Sprintf("n%d:o_%s", i, p.Name)})
			}
		}
		g.Nodes = append(g.Nodes, gn)
	}
	for _, c := range []struct {
		name string
		link *int
		host bool
	}{
		{"freq", def.IO.Freq, true},
		{"gate", def.IO.Gate, true},
		{"lchan", def.IO.LChan, false},
		{"rchan", def.IO.RChan, false},
	} {
		if c.link == nil {
			continue
		}
		g.IO = append(g.IO, ioNode{Name: c.name, Host: c.host})
		see(*c.link)
		e := endpoint{id: "io_" + c.name, port: fmsynth.Linked(*c.link)}
		if c.host {
			writers[*c.link] = append(writers[*c.link], e)
		} else {
			readers[*c.link] = append(readers[*c.link], e)
		}
	}
	for _, link := range links {
		for _, from := range writers[link] {
			for _, to := range readers[link] {
				label := fmt.Sprintf("[%d]", link)
				if !to.port.IsIdentity() {
					label = to.port.String()
				}
				g.Edges = append(g.Edges, edge{From: from.id, To: to.id, Label: label})
			}
		}
	}
	return g
}
