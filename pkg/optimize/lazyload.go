package optimize

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/archlens/pkg/cache"
	"github.com/matzehuels/archlens/pkg/graph"
	"github.com/matzehuels/archlens/pkg/observability"
)

// IconLoadedFunc receives the payload of a successfully fetched icon.
type IconLoadedFunc func(nodeID string, data []byte)

// QueueReport summarizes one ProcessLoadingQueue call.
type QueueReport struct {
	// Skipped is set when another call was already processing the queue.
	Skipped   bool `json:"skipped"`
	Rounds    int  `json:"rounds"`
	Succeeded int  `json:"succeeded"`
	Failed    int  `json:"failed"`
	// Remaining is the queue size when the call returned.
	Remaining int `json:"remaining"`
}

// PrepareLazyLoading resolves icons from the cache and queues fetches for
// the rest. It returns copies of nodes; the inputs are not modified.
//
// A node whose icon is cached gets IconData filled and no queue entry. A
// node that still needs its icon is marked IconLoading with an IconRequest
// attached, and queued with visible priority if it was visible in the last
// pass. Nodes without an icon pass through.
func (e *Engine) PrepareLazyLoading(ctx context.Context, nodes []graph.Node) []graph.Node {
	return e.prepareLazyLoading(ctx, nodes, e.cachingEnabled())
}

func (e *Engine) prepareLazyLoading(ctx context.Context, nodes []graph.Node, useCache bool) []graph.Node {
	out := make([]graph.Node, len(nodes))
	var queued, resolved int
	for i, n := range nodes {
		out[i] = n
		if !n.NeedsIcon() {
			continue
		}
		req := e.resolver.Resolve(n.Icon)
		key := e.keyer.IconKey(n.Icon, cache.IconKeyOpts{Format: req.Format, Source: req.Source})

		if useCache {
			if data, ok := e.cacheGet(ctx, key); ok {
				out[i].IconData = string(data)
				out[i].IconLoading = false
				out[i].IconRequest = nil
				resolved++
				continue
			}
		}

		prio := PriorityBackground
		if e.visibility.Contains(n.ID) {
			prio = PriorityVisible
		}
		r := req
		out[i].IconLoading = true
		out[i].IconRequest = &r

		e.mu.Lock()
		if e.queue.push(LoadEntry{NodeID: n.ID, Request: req, CacheKey: key, Priority: prio}) {
			queued++
		}
		e.mu.Unlock()
	}
	if queued > 0 || resolved > 0 {
		e.logger.Debug("prepared icons", "cached", resolved, "queued", queued)
	}
	return out
}

// ProcessLoadingQueue fetches queued icons until the queue is empty or ctx
// is done.
//
// Each round takes up to the batch size entries, highest priority first,
// and fetches them concurrently. A failed fetch is logged and its entry
// dropped; it never affects the other entries or the caller. Successful
// payloads are cached and passed to the icon-loaded callback once the whole
// round has finished.
//
// Only one call processes at a time. A call made while another is running
// returns immediately with Skipped set.
func (e *Engine) ProcessLoadingQueue(ctx context.Context) QueueReport {
	if !e.processing.CompareAndSwap(false, true) {
		e.logger.Debug("queue already processing")
		return QueueReport{Skipped: true, Remaining: e.queueLen()}
	}
	defer e.processing.Store(false)

	var report QueueReport
	size, useCache := e.batchSize(), e.cachingEnabled()
	for ctx.Err() == nil {
		e.mu.Lock()
		batch := e.queue.take(size)
		e.mu.Unlock()
		if len(batch) == 0 {
			break
		}
		ok, failed := e.runBatch(ctx, batch, useCache)
		report.Rounds++
		report.Succeeded += ok
		report.Failed += failed
	}
	report.Remaining = e.queueLen()
	if report.Rounds > 0 {
		e.logger.Debug("processed icon queue",
			"rounds", report.Rounds,
			"ok", report.Succeeded,
			"failed", report.Failed,
			"remaining", report.Remaining)
	}
	return report
}

type fetchResult struct {
	data []byte
	err  error
}

func (e *Engine) runBatch(ctx context.Context, batch []LoadEntry, useCache bool) (succeeded, failed int) {
	e.mu.Lock()
	fetcher, onLoaded := e.fetcher, e.onLoaded
	e.mu.Unlock()

	results := make([]fetchResult, len(batch))
	var g errgroup.Group
	for i, entry := range batch {
		g.Go(func() error {
			start := time.Now()
			v, err, _ := e.flight.Do(entry.CacheKey, func() (any, error) {
				return fetcher.Fetch(ctx, entry.Request)
			})
			observability.Engine().OnIconFetch(ctx, entry.Request.Name, time.Since(start), err)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].data, _ = v.([]byte)
			return nil
		})
	}
	_ = g.Wait()

	for i, entry := range batch {
		res := results[i]
		if res.err != nil {
			failed++
			e.logger.Warn("icon fetch failed", "node", entry.NodeID, "icon", entry.Request.Name, "err", res.err)
			continue
		}
		succeeded++
		if useCache {
			e.cacheSet(ctx, entry.CacheKey, res.data)
		}
		if onLoaded != nil {
			onLoaded(entry.NodeID, res.data)
		}
	}

	e.mu.Lock()
	e.stats.Fetched += succeeded
	e.stats.FetchFailures += failed
	e.mu.Unlock()
	return succeeded, failed
}

// QueuedLoads returns a snapshot of the pending entries in insertion order.
func (e *Engine) QueuedLoads() []LoadEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.snapshot()
}

func (e *Engine) queueLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.len()
}

func (e *Engine) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		e.logger.Warn("icon cache read failed", "key", key, "err", err)
		ok = false
	}
	e.mu.Lock()
	if ok {
		e.stats.CacheHits++
	} else {
		e.stats.CacheMisses++
	}
	e.mu.Unlock()
	if ok {
		observability.Cache().OnCacheHit(ctx, "icon")
	} else {
		observability.Cache().OnCacheMiss(ctx, "icon")
	}
	return data, ok
}

func (e *Engine) cacheSet(ctx context.Context, key string, data []byte) {
	if err := e.cache.Set(ctx, key, data, cache.TTLIcon); err != nil {
		e.logger.Warn("icon cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "icon", len(data))
}
