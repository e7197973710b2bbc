package optimize

import "math"

// Speedup bounds.
const (
	MinSpeedup = 1.0
	MaxSpeedup = 5.0
)

// EstimateSpeedup returns a heuristic render speedup for n elements under
// the given strategies. Each strategy contributes a factor of at least 1
// that grows with n; the product is clamped to [MinSpeedup, MaxSpeedup]. The
// estimate depends only on its arguments.
func EstimateSpeedup(active Strategies, n int) float64 {
	size := float64(max(n, 0))
	speedup := 1.0
	for _, s := range active {
		speedup *= strategyFactor(s, size)
	}
	return math.Min(MaxSpeedup, math.Max(MinSpeedup, speedup))
}

func strategyFactor(s Strategy, n float64) float64 {
	switch s {
	case Virtualization:
		return 1 + math.Min(n/200, 2)
	case LazyLoading:
		return 1 + math.Min(n/400, 1)
	case LevelOfDetail:
		return 1.3
	case Batching:
		return 1 + math.Min(n/1000, 0.3)
	case Caching:
		return 1 + math.Min(n/2000, 0.2)
	default:
		return 1
	}
}

// Performance summarizes the effect of one pass.
type Performance struct {
	EstimatedSpeedup float64 `json:"estimatedSpeedup"`
	ReductionPercent float64 `json:"reductionPercent"`
	RenderedNodes    int     `json:"renderedNodes"`
	TotalNodes       int     `json:"totalNodes"`
	RenderedEdges    int     `json:"renderedEdges"`
	TotalEdges       int     `json:"totalEdges"`
}

func newPerformance(active Strategies, totalNodes, totalEdges, renderedNodes, renderedEdges int) Performance {
	p := Performance{
		EstimatedSpeedup: EstimateSpeedup(active, totalNodes),
		RenderedNodes:    renderedNodes,
		TotalNodes:       totalNodes,
		RenderedEdges:    renderedEdges,
		TotalEdges:       totalEdges,
	}
	if total := totalNodes + totalEdges; total > 0 {
		p.ReductionPercent = 100 * float64(total-renderedNodes-renderedEdges) / float64(total)
	}
	return p
}
