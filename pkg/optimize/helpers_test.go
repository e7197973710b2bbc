package optimize

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archlens/pkg/graph"
	"github.com/matzehuels/archlens/pkg/icons"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// gridGraph places n nodes on a grid with the given column count and
// spacing, chaining node i to node i+1.
func gridGraph(n, cols int, spacing float64) graph.Graph {
	var g graph.Graph
	for i := range n {
		g.Nodes = append(g.Nodes, graph.Node{
			ID:       fmt.Sprintf("n%d", i),
			Position: &graph.Point{X: float64(i%cols) * spacing, Y: float64(i/cols) * spacing},
		})
		if i > 0 {
			g.Edges = append(g.Edges, graph.Edge{Source: fmt.Sprintf("n%d", i-1), Target: fmt.Sprintf("n%d", i)})
		}
	}
	return g
}

func withIcons(g graph.Graph, icon func(i int) string) graph.Graph {
	for i := range g.Nodes {
		g.Nodes[i].Icon = icon(i)
	}
	return g
}

func nodeIDs(nodes []graph.Node) map[string]struct{} {
	ids := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		ids[n.ID] = struct{}{}
	}
	return ids
}

// recordingFetcher returns "<svg>name</svg>" and records request order.
type recordingFetcher struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (f *recordingFetcher) Fetch(_ context.Context, req icons.Request) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req.Name)
	fail := f.fail[req.Name]
	f.mu.Unlock()
	if fail {
		return nil, fmt.Errorf("boom: %s", req.Name)
	}
	return []byte("<svg>" + req.Name + "</svg>"), nil
}

func (f *recordingFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// loaded collects icon-loaded callbacks.
type loaded struct {
	mu   sync.Mutex
	data map[string]string
}

func newLoaded() *loaded { return &loaded{data: map[string]string{}} }

func (l *loaded) callback(nodeID string, data []byte) {
	l.mu.Lock()
	l.data[nodeID] = string(data)
	l.mu.Unlock()
}

func (l *loaded) get() map[string]string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]string, len(l.data))
	for k, v := range l.data {
		out[k] = v
	}
	return out
}
