package preview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/archlens/pkg/graph"
	"github.com/matzehuels/archlens/pkg/optimize"
)

// Options configures DOT generation.
type Options struct {
	// Scale converts diagram units to points. Zero means 1.
	Scale float64
	// Title is drawn above the frame when set.
	Title string
}

// ToDOT converts an optimization result to Graphviz DOT.
func ToDOT(res optimize.Result, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	present := make(map[string]struct{}, len(res.Nodes))
	for _, n := range res.Nodes {
		present[n.ID] = struct{}{}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, scale), ", "))
	}

	ghosts := map[string]struct{}{}
	for _, e := range res.Edges {
		for _, id := range []string{e.Source, e.Target} {
			if _, ok := present[id]; ok {
				continue
			}
			if _, ok := ghosts[id]; ok {
				continue
			}
			ghosts[id] = struct{}{}
			fmt.Fprintf(&buf, "  %q [shape=point, width=0.05, color=grey, label=\"\"];\n", id)
		}
	}

	buf.WriteString("\n")
	for _, e := range res.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n graph.Node, scale float64) []string {
	label := n.DisplayLabel()
	style := "rounded,filled"
	fill := "white"
	penwidth := 0.0

	if h := n.Hints; h != nil {
		if !h.ShowLabel {
			label = ""
		}
		if h.Simplified {
			fill = "whitesmoke"
		}
		penwidth = h.StrokeWidth
	} else if n.StrokeWidth > 0 {
		penwidth = n.StrokeWidth
	}
	if n.IconLoading {
		style += ",dashed"
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Position != nil {
		// Graphviz y grows upwards.
		attrs = append(attrs, fmt.Sprintf("pos=\"%.2f,%.2f!\"", n.Position.X*scale, -n.Position.Y*scale))
	}
	attrs = append(attrs, fmt.Sprintf("style=%q", style), "fillcolor="+fill)
	if penwidth > 0 {
		attrs = append(attrs, fmt.Sprintf("penwidth=%.2f", penwidth))
	}
	if n.Icon != "" && (n.Hints == nil || n.Hints.ShowIcon) {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", "icon: "+n.Icon))
	}
	return attrs
}
