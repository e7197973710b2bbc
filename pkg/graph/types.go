package graph

import (
	"github.com/matzehuels/archlens/pkg/icons"
)

// Point is a position in diagram coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RenderHints carries the fidelity decisions for one node.
type RenderHints struct {
	Simplified  bool    `json:"simplified"`
	ShowIcon    bool    `json:"showIcon"`
	ShowLabel   bool    `json:"showLabel"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

// Node is a diagram element.
//
// A nil Position means the node has not been placed and is treated as always
// visible. Icon is the caller's icon name; IconData holds the resolved
// payload. While IconLoading is set, IconRequest is non-nil and IconData is
// empty.
type Node struct {
	ID          string         `json:"id"`
	Type        string         `json:"type,omitempty"`
	Label       string         `json:"label,omitempty"`
	Position    *Point         `json:"position,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	IconData    string         `json:"iconData,omitempty"`
	IconLoading bool           `json:"iconLoading,omitempty"`
	IconRequest *icons.Request `json:"iconRequest,omitempty"`
	StrokeWidth float64        `json:"strokeWidth,omitempty"`
	Hints       *RenderHints   `json:"hints,omitempty"`
	Style       map[string]any `json:"style,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// NeedsIcon reports whether the node references an icon that has not been
// resolved yet.
func (n *Node) NeedsIcon() bool {
	return n.Icon != "" && n.IconData == ""
}

// Edge links two nodes by ID.
type Edge struct {
	ID     string         `json:"id,omitempty"`
	Source string         `json:"source"`
	Target string         `json:"target"`
	Style  map[string]any `json:"style,omitempty"`
}

// Graph is the full diagram as supplied by a caller.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeIDs returns the set of node identifiers in g.
func (g Graph) NodeIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = struct{}{}
	}
	return ids
}
