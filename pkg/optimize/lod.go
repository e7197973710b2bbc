package optimize

import (
	"github.com/matzehuels/archlens/pkg/graph"
)

// Fidelity is a rendering detail level.
type Fidelity int

const (
	// FidelityMinimal: simplified, no icon, no label.
	FidelityMinimal Fidelity = iota
	// FidelityReduced: simplified, no icon, label kept.
	FidelityReduced
	// FidelityFull: everything drawn at the node's own stroke width.
	FidelityFull
)

func (f Fidelity) String() string {
	switch f {
	case FidelityMinimal:
		return "minimal"
	case FidelityReduced:
		return "reduced"
	default:
		return "full"
	}
}

// FidelityFor returns the fidelity for a zoom factor. Missing zoom means
// full fidelity.
func FidelityFor(vp *graph.Viewport, cfg LODConfig) Fidelity {
	zoom, ok := vp.ZoomLevel()
	switch {
	case !ok || zoom >= cfg.ZoomThreshold:
		return FidelityFull
	case zoom >= cfg.LabelThreshold:
		return FidelityReduced
	default:
		return FidelityMinimal
	}
}

// ApplyLevelOfDetail returns copies of nodes annotated with render hints for
// the viewport's zoom.
//
// Hints derive from the node's own StrokeWidth (or the configured default),
// never from hints a previous pass attached, so applying it twice gives the
// same result. The input slice and its nodes are not modified.
func ApplyLevelOfDetail(nodes []graph.Node, vp *graph.Viewport, cfg LODConfig) []graph.Node {
	fidelity := FidelityFor(vp, cfg)
	out := make([]graph.Node, len(nodes))
	for i, n := range nodes {
		width := n.StrokeWidth
		if width <= 0 {
			width = cfg.DefaultStrokeWidth
		}
		hints := &graph.RenderHints{
			Simplified:  fidelity != FidelityFull,
			ShowIcon:    fidelity == FidelityFull,
			ShowLabel:   fidelity != FidelityMinimal,
			StrokeWidth: width,
		}
		if hints.Simplified {
			hints.StrokeWidth = width * cfg.StrokeReduction
		}
		n.Hints = hints
		out[i] = n
	}
	return out
}
