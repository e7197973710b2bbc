package optimize

import "slices"

// Strategy names one optimization technique.
type Strategy string

const (
	Virtualization Strategy = "virtualization"
	LevelOfDetail  Strategy = "level_of_detail"
	LazyLoading    Strategy = "lazy_loading"
	Batching       Strategy = "batching"
	Caching        Strategy = "caching"
)

// AllStrategies lists every strategy in selection order.
var AllStrategies = []Strategy{LazyLoading, Batching, Caching, LevelOfDetail, Virtualization}

// Strategies is the set active for one pass, in selection order.
type Strategies []Strategy

// Has reports whether s is in the set.
func (ss Strategies) Has(s Strategy) bool {
	return slices.Contains(ss, s)
}

// Strings returns the strategy names.
func (ss Strategies) Strings() []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}
	return out
}

// SelectStrategies returns the strategies worth running for a diagram of n
// elements. A strategy is selected when its flag is enabled and n reaches
// its threshold. Caching has no threshold. Batching shares the lazy-loading
// threshold. The result is never nil.
func SelectStrategies(n int, cfg Config) Strategies {
	f, t := cfg.Strategies, cfg.Thresholds
	active := Strategies{}
	if f.LazyLoading && n >= t.LazyLoading {
		active = append(active, LazyLoading)
	}
	if f.Batching && n >= t.LazyLoading {
		active = append(active, Batching)
	}
	if f.Caching {
		active = append(active, Caching)
	}
	if f.LevelOfDetail && n >= t.LevelOfDetail {
		active = append(active, LevelOfDetail)
	}
	if f.Virtualization && n >= t.Virtualization {
		active = append(active, Virtualization)
	}
	return active
}
