// Package calltree renders the CALL/RETURN nesting of a trace as a
// directed graph using Graphviz.
package calltree

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/glasspiral/glasspiral/pkg/trace"
)

// Node is one call frame in the tree.
type Node struct {
	// ID is unique per node ("call-<step index>", or "root").
	ID string

	// Name is the called function name; empty for anonymous calls.
	Name string

	// StepIndex is the trace index of the opening CALL, -1 for the root.
	StepIndex int

	// Line is the source line of the opening CALL.
	Line int

	// Body counts non-call steps recorded inside this frame.
	Body int

	Children []*Node
}

// Tree is the call structure of a whole trace.
type Tree struct {
	Root *Node
}

// FromTrace builds the call tree with a stack walk: CALL pushes a
// frame, RETURN pops one, everything else is counted on the open frame.
// Unbalanced traces are tolerated; a RETURN with no open frame is
// counted on the root.
func FromTrace(steps trace.Trace) *Tree {
	root := &Node{ID: "root", Name: "trace", StepIndex: -1}
	stack := []*Node{root}

	for _, step := range steps {
		top := stack[len(stack)-1]
		switch {
		case step.IsCall():
			node := &Node{
				ID:        fmt.Sprintf("call-%d", step.Index),
				Name:      step.Name,
				StepIndex: step.Index,
				Line:      step.Line,
			}
			top.Children = append(top.Children, node)
			stack = append(stack, node)
		case step.IsReturn():
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			} else {
				root.Body++
			}
		default:
			top.Body++
		}
	}
	return &Tree{Root: root}
}

// Options configures DOT generation.
type Options struct {
	// Detailed includes step indexes, source lines and body step counts
	// in node labels. When false, only the call name is shown.
	Detailed bool
}

// ToDOT converts the tree to Graphviz DOT format. The resulting DOT
// string can be rendered using [RenderSVG] or [RenderPNG].
//
// The synthetic root is rendered with a dashed outline and grey fill to
// distinguish it from real call frames.
func ToDOT(t *Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	writeNodes(&buf, t.Root, opts)
	buf.WriteString("\n")
	writeEdges(&buf, t.Root)

	buf.WriteString("}\n")
	return buf.String()
}

func writeNodes(buf *bytes.Buffer, n *Node, opts Options) {
	label := fmtLabel(n, opts.Detailed)
	attrs := fmtAttrs(n, label)
	fmt.Fprintf(buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	for _, c := range n.Children {
		writeNodes(buf, c, opts)
	}
}

func writeEdges(buf *bytes.Buffer, n *Node) {
	for _, c := range n.Children {
		fmt.Fprintf(buf, "  %q -> %q;\n", n.ID, c.ID)
		writeEdges(buf, c)
	}
}

func fmtLabel(n *Node, detailed bool) string {
	name := n.Name
	if name == "" {
		name = n.ID
	}
	if !detailed || n.StepIndex < 0 {
		return name
	}

	parts := []string{fmt.Sprintf("step: %d", n.StepIndex)}
	if n.Line > 0 {
		parts = append(parts, fmt.Sprintf("line: %d", n.Line))
	}
	parts = append(parts, fmt.Sprintf("body: %d", n.Body))

	return name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.StepIndex < 0 {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}
