package optimize

import (
	"cmp"
	"slices"

	"github.com/matzehuels/archlens/pkg/icons"
)

// Priority orders queued icon loads. Higher runs first.
type Priority int

const (
	PriorityBackground Priority = 0
	PriorityVisible    Priority = 1
)

// LoadEntry is one pending icon fetch.
type LoadEntry struct {
	NodeID   string        `json:"nodeId"`
	Request  icons.Request `json:"request"`
	CacheKey string        `json:"cacheKey"`
	Priority Priority      `json:"priority"`
}

// loadQueue keeps at most one entry per node in insertion order. It is not
// safe for concurrent use; the engine guards it.
type loadQueue struct {
	entries []*LoadEntry
	byNode  map[string]*LoadEntry
}

func newLoadQueue() *loadQueue {
	return &loadQueue{byNode: map[string]*LoadEntry{}}
}

// push adds e or, if its node is already queued, refreshes the request and
// raises the priority. Priorities never drop while an entry waits.
func (q *loadQueue) push(e LoadEntry) bool {
	if cur, ok := q.byNode[e.NodeID]; ok {
		cur.Request, cur.CacheKey = e.Request, e.CacheKey
		cur.Priority = max(cur.Priority, e.Priority)
		return false
	}
	entry := &e
	q.entries = append(q.entries, entry)
	q.byNode[e.NodeID] = entry
	return true
}

// take removes up to n entries, highest priority first. The sort is stable
// so entries of equal priority leave in insertion order.
func (q *loadQueue) take(n int) []LoadEntry {
	slices.SortStableFunc(q.entries, func(a, b *LoadEntry) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
	n = min(n, len(q.entries))
	batch := make([]LoadEntry, n)
	for i, e := range q.entries[:n] {
		batch[i] = *e
		delete(q.byNode, e.NodeID)
	}
	q.entries = slices.Delete(q.entries, 0, n)
	return batch
}

func (q *loadQueue) len() int { return len(q.entries) }

func (q *loadQueue) snapshot() []LoadEntry {
	out := make([]LoadEntry, len(q.entries))
	for i, e := range q.entries {
		out[i] = *e
	}
	return out
}

func (q *loadQueue) reset() {
	q.entries = nil
	q.byNode = map[string]*LoadEntry{}
}
