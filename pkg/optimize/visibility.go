package optimize

import (
	"slices"
	"sync"

	"github.com/matzehuels/archlens/pkg/graph"
)

// VisibilityTracker holds the IDs of the nodes considered visible in the
// most recent pass. The set is replaced wholesale, never merged. It is safe
// for concurrent use.
type VisibilityTracker struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewVisibilityTracker returns an empty tracker.
func NewVisibilityTracker() *VisibilityTracker {
	return &VisibilityTracker{ids: map[string]struct{}{}}
}

// Replace sets the visible set to exactly the IDs of nodes.
func (t *VisibilityTracker) Replace(nodes []graph.Node) {
	ids := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		ids[n.ID] = struct{}{}
	}
	t.mu.Lock()
	t.ids = ids
	t.mu.Unlock()
}

// Contains reports whether id was visible in the last pass.
func (t *VisibilityTracker) Contains(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.ids[id]
	return ok
}

// Len returns the number of visible nodes.
func (t *VisibilityTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.ids)
}

// IDs returns the visible IDs in sorted order.
func (t *VisibilityTracker) IDs() []string {
	t.mu.RLock()
	ids := make([]string, 0, len(t.ids))
	for id := range t.ids {
		ids = append(ids, id)
	}
	t.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// Clear empties the set.
func (t *VisibilityTracker) Clear() {
	t.mu.Lock()
	t.ids = map[string]struct{}{}
	t.mu.Unlock()
}
