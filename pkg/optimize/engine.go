package optimize

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/archlens/pkg/cache"
	"github.com/matzehuels/archlens/pkg/graph"
	"github.com/matzehuels/archlens/pkg/icons"
	"github.com/matzehuels/archlens/pkg/observability"
)

// Engine runs optimization passes and owns the state that persists between
// them: the icon cache, the visibility set, the load queue and statistics.
//
// An Engine is safe for concurrent use. Separate engines share nothing
// except a cache backend passed to both.
type Engine struct {
	cfg      Config
	cache    cache.Cache
	keyer    cache.Keyer
	resolver icons.Resolver
	logger   *log.Logger

	visibility *VisibilityTracker
	processing atomic.Bool
	flight     singleflight.Group

	mu       sync.Mutex
	fetcher  icons.Fetcher
	onLoaded IconLoadedFunc
	queue    *loadQueue
	active   Strategies
	stats    counters
}

type counters struct {
	Passes        int
	CacheHits     int
	CacheMisses   int
	Fetched       int
	FetchFailures int
}

// Result is the output of one optimization pass.
type Result struct {
	PassID         string       `json:"passId"`
	Nodes          []graph.Node `json:"nodes"`
	Edges          []graph.Edge `json:"edges"`
	OriginalCount  int          `json:"originalCount"`
	OptimizedCount int          `json:"optimizedCount"`
	Strategies     Strategies   `json:"strategies"`
	Performance    Performance  `json:"performance"`
}

// Statistics is a snapshot of engine state.
type Statistics struct {
	CacheSize       int        `json:"cacheSize"`
	VisibleElements int        `json:"visibleElements"`
	QueuedLoads     int        `json:"queuedLoads"`
	IsProcessing    bool       `json:"isProcessing"`
	Strategies      Strategies `json:"strategies"`

	Passes        int `json:"passes"`
	CacheHits     int `json:"cacheHits"`
	CacheMisses   int `json:"cacheMisses"`
	Fetched       int `json:"fetched"`
	FetchFailures int `json:"fetchFailures"`
}

// NewEngine creates an engine. Invalid configuration values are replaced by
// defaults and logged. Nil collaborators get defaults: an in-memory cache
// bounded by cfg.Cache.Capacity, the default keyer, a fetcher that rejects
// every request, and log.Default().
func NewEngine(cfg Config, c cache.Cache, keyer cache.Keyer, fetcher icons.Fetcher, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	for _, w := range cfg.SetDefaults() {
		logger.Warn("config corrected", "detail", w)
	}
	if c == nil {
		c = cache.NewMemoryCache(cfg.Cache.Capacity)
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if fetcher == nil {
		fetcher = icons.FailingFetcher{}
	}
	return &Engine{
		cfg:        cfg,
		cache:      c,
		keyer:      keyer,
		resolver:   cfg.Resolver(),
		logger:     logger,
		visibility: NewVisibilityTracker(),
		fetcher:    fetcher,
		queue:      newLoadQueue(),
	}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Visibility returns the tracker holding the last pass's visible nodes.
func (e *Engine) Visibility() *VisibilityTracker { return e.visibility }

// SetFetcher replaces the icon fetcher used by later queue rounds. A nil
// fetcher rejects every request.
func (e *Engine) SetFetcher(f icons.Fetcher) {
	if f == nil {
		f = icons.FailingFetcher{}
	}
	e.mu.Lock()
	e.fetcher = f
	e.mu.Unlock()
}

// SetIconLoadedCallback registers fn to receive each successfully fetched
// icon. A later call replaces the earlier callback; nil removes it.
func (e *Engine) SetIconLoadedCallback(fn IconLoadedFunc) {
	e.mu.Lock()
	e.onLoaded = fn
	e.mu.Unlock()
}

// SelectStrategies applies [SelectStrategies] with the engine configuration.
func (e *Engine) SelectStrategies(n int) Strategies {
	return SelectStrategies(n, e.cfg)
}

// ApplyLevelOfDetail applies [ApplyLevelOfDetail] with the engine
// configuration.
func (e *Engine) ApplyLevelOfDetail(nodes []graph.Node, vp *graph.Viewport) []graph.Node {
	return ApplyLevelOfDetail(nodes, vp, e.cfg.LOD)
}

// Optimize runs one full pass over g for viewport vp, which may be nil.
//
// It never fails: an invalid viewport is logged and treated as absent, and
// icon cache errors count as misses. The returned nodes and edges are fresh
// copies; g is not modified. Every call recomputes from the full input.
func (e *Engine) Optimize(ctx context.Context, g graph.Graph, vp *graph.Viewport) Result {
	passID := uuid.NewString()
	start := time.Now()
	observability.Engine().OnOptimizeStart(ctx, passID, len(g.Nodes))

	if err := vp.Validate(); err != nil {
		e.logger.Warn("ignoring viewport", "pass", passID, "err", err)
		vp = nil
	}

	active := e.SelectStrategies(len(g.Nodes))
	e.mu.Lock()
	e.active = active
	e.stats.Passes++
	e.mu.Unlock()

	nodes, edges := slices.Clone(g.Nodes), slices.Clone(g.Edges)
	if nodes == nil {
		nodes = []graph.Node{}
	}
	if edges == nil {
		edges = []graph.Edge{}
	}

	if active.Has(Virtualization) {
		nodes, edges = e.ApplyVirtualization(nodes, edges, vp)
	} else {
		e.visibility.Replace(nodes)
	}
	if active.Has(LevelOfDetail) {
		nodes = e.ApplyLevelOfDetail(nodes, vp)
	}
	if active.Has(LazyLoading) {
		nodes = e.prepareLazyLoading(ctx, nodes, active.Has(Caching))
	}

	res := Result{
		PassID:         passID,
		Nodes:          nodes,
		Edges:          edges,
		OriginalCount:  len(g.Nodes),
		OptimizedCount: len(nodes),
		Strategies:     active,
		Performance:    newPerformance(active, len(g.Nodes), len(g.Edges), len(nodes), len(edges)),
	}

	elapsed := time.Since(start)
	e.logger.Debug("optimized",
		"pass", passID,
		"nodes", res.OptimizedCount, "of", res.OriginalCount,
		"strategies", active.Strings(),
		"speedup", res.Performance.EstimatedSpeedup,
		"took", elapsed)
	observability.Engine().OnOptimizeComplete(ctx, passID, active.Strings(), res.OptimizedCount, elapsed)
	return res
}

// UpdateViewport re-runs the pass for a new viewport. It is Optimize with
// the arguments in pan-and-zoom order.
func (e *Engine) UpdateViewport(ctx context.Context, vp *graph.Viewport, g graph.Graph) Result {
	return e.Optimize(ctx, g, vp)
}

// ClearCache empties the icon cache.
func (e *Engine) ClearCache(ctx context.Context) error {
	if err := e.cache.Clear(ctx); err != nil {
		return err
	}
	e.logger.Debug("icon cache cleared")
	return nil
}

// Reset clears the cache, the visibility set, the load queue and the
// statistics. A queue round in flight finishes, but its entries are gone.
func (e *Engine) Reset(ctx context.Context) error {
	e.visibility.Clear()
	e.mu.Lock()
	e.queue.reset()
	e.active = nil
	e.stats = counters{}
	e.mu.Unlock()
	return e.ClearCache(ctx)
}

// Statistics returns a snapshot of the engine state. A cache whose size
// cannot be read reports -1.
func (e *Engine) Statistics(ctx context.Context) Statistics {
	size, err := e.cache.Len(ctx)
	if err != nil {
		e.logger.Warn("icon cache size unavailable", "err", err)
		size = -1
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	active := slices.Clone(e.active)
	if active == nil {
		active = Strategies{}
	}
	return Statistics{
		CacheSize:       size,
		VisibleElements: e.visibility.Len(),
		QueuedLoads:     e.queue.len(),
		IsProcessing:    e.processing.Load(),
		Strategies:      active,
		Passes:          e.stats.Passes,
		CacheHits:       e.stats.CacheHits,
		CacheMisses:     e.stats.CacheMisses,
		Fetched:         e.stats.Fetched,
		FetchFailures:   e.stats.FetchFailures,
	}
}

// Close releases the cache backend.
func (e *Engine) Close() error {
	return e.cache.Close()
}

// batchSize is the configured size when batching was active in the last
// pass (or is enabled, before any pass), otherwise 1.
func (e *Engine) batchSize() int {
	if e.strategyActive(Batching, e.cfg.Strategies.Batching) {
		return e.cfg.Loading.BatchSize
	}
	return 1
}

func (e *Engine) cachingEnabled() bool {
	return e.strategyActive(Caching, e.cfg.Strategies.Caching)
}

func (e *Engine) strategyActive(s Strategy, enabled bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return enabled
	}
	return e.active.Has(s)
}
