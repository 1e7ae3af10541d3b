package session

import (
	"fmt"
	"strings"
)

// DOTOptions configures the DOT generation
type DOTOptions struct {
	ShowActions   bool
	RankDirection string // "TB", "LR", "BT", "RL"
	NodeShape     string
}

// DefaultDOTOptions returns the default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		ShowActions:   true,
		RankDirection: "LR",
		NodeShape:     "box",
	}
}

// DOTGenerator generates Graphviz DOT representations of session machines
type DOTGenerator struct {
	definition *Definition
	options    DOTOptions
}

// NewDOTGenerator creates a new DOT generator for the given definition
func NewDOTGenerator(definition *Definition, options ...DOTOptions) *DOTGenerator {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}
	return &DOTGenerator{
		definition: definition,
		options:    opts,
	}
}

// Generate creates a DOT representation of the machine
func (g *DOTGenerator) Generate() (string, error) {
	if g.definition == nil {
		return "", NewConfigurationError("DOTGenerator", "no machine definition")
	}

	var dot strings.Builder

	dot.WriteString("digraph Session {\n")
	dot.WriteString(fmt.Sprintf("  rankdir=%s;\n", g.options.RankDirection))
	dot.WriteString(fmt.Sprintf("  node [shape=%s];\n", g.options.NodeShape))
	dot.WriteString("  edge [fontsize=10];\n\n")

	dot.WriteString("  // States\n")
	for _, state := range g.definition.GetStates() {
		g.writeState(&dot, state)
	}

	dot.WriteString("\n  // Transitions\n")
	for _, state := range g.definition.GetStates() {
		for _, transition := range g.definition.GetTransitions(state) {
			g.writeTransition(&dot, transition)
		}
	}

	dot.WriteString("}\n")
	return dot.String(), nil
}

func (g *DOTGenerator) writeState(dot *strings.Builder, state State) {
	fillColor := "lightblue"
	shape := g.options.NodeShape
	label := state.String()

	if state == g.definition.GetInitialState() {
		fillColor = "lightgreen"
		label += "\\n(initial)"
	}
	if g.definition.IsFinal(state) {
		fillColor = "lightcoral"
		shape = "doublecircle"
	}

	dot.WriteString(fmt.Sprintf("  %q [label=\"%s\", shape=%s, style=filled, fillcolor=%s];\n",
		state.String(), label, shape, fillColor))
}

func (g *DOTGenerator) writeTransition(dot *strings.Builder, transition Transition) {
	label := transition.EventName
	if g.options.ShowActions && transition.Action != nil {
		label += " / action"
	}

	dot.WriteString(fmt.Sprintf("  %q -> %q [label=%q];\n",
		transition.SourceState.String(), transition.TargetState.String(), label))
}
