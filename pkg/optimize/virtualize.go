package optimize

import (
	"github.com/matzehuels/archlens/pkg/graph"
)

// Virtualize culls nodes outside area grown by buffer on every side.
//
// Nodes without a position are always kept. An edge is kept when at least
// one endpoint survived. Input order is preserved and the inputs are not
// modified.
func Virtualize(nodes []graph.Node, edges []graph.Edge, area graph.Rect, buffer float64) ([]graph.Node, []graph.Edge) {
	padded := area.Expand(buffer)

	kept := make([]graph.Node, 0, len(nodes))
	ids := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if n.Position == nil || padded.Contains(*n.Position) {
			kept = append(kept, n)
			ids[n.ID] = struct{}{}
		}
	}
	return kept, FilterEdges(edges, ids)
}

// FilterEdges keeps edges with at least one endpoint in ids. Edges between
// two culled nodes are dropped; an edge leaving the visible area keeps its
// dangling endpoint so the consumer can draw it off-screen.
func FilterEdges(edges []graph.Edge, ids map[string]struct{}) []graph.Edge {
	kept := make([]graph.Edge, 0, len(edges))
	for _, e := range edges {
		_, src := ids[e.Source]
		_, dst := ids[e.Target]
		if src || dst {
			kept = append(kept, e)
		}
	}
	return kept
}

// ApplyVirtualization culls nodes and edges against vp using the configured
// buffer and records the surviving nodes as visible.
//
// Without viewport bounds nothing is culled and every node counts as visible.
func (e *Engine) ApplyVirtualization(nodes []graph.Node, edges []graph.Edge, vp *graph.Viewport) ([]graph.Node, []graph.Edge) {
	area, ok := vp.Bounds()
	if !ok {
		e.visibility.Replace(nodes)
		return nodes, edges
	}
	keptNodes, keptEdges := Virtualize(nodes, edges, area, e.cfg.Viewport.Buffer)
	e.visibility.Replace(keptNodes)
	e.logger.Debug("virtualized",
		"viewport", vp.String(),
		"nodes", len(keptNodes), "of", len(nodes),
		"edges", len(keptEdges))
	return keptNodes, keptEdges
}
