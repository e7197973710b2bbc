package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/archlens/pkg/cache"
	"github.com/matzehuels/archlens/pkg/graph"
	"github.com/matzehuels/archlens/pkg/icons"
	"github.com/matzehuels/archlens/pkg/optimize"
)

func exploreFixture(t *testing.T) (exploreModel, cache.Cache) {
	t.Helper()
	var g graph.Graph
	for i := range 200 {
		g.Nodes = append(g.Nodes, graph.Node{
			ID:       fmt.Sprintf("n%d", i),
			Icon:     "svc",
			Position: &graph.Point{X: float64(i%20) * 50, Y: float64(i/20) * 50},
		})
	}
	store := cache.NewMemoryCache(0)
	fetcher := icons.FetcherFunc(func(context.Context, icons.Request) ([]byte, error) {
		return []byte("<svg/>"), nil
	})
	engine := optimize.NewEngine(optimize.DefaultConfig(), store, nil, fetcher, log.New(io.Discard))
	return newExploreModel(context.Background(), engine, g, screen{w: 200, h: 200, zoom: 1}), store
}

func press(t *testing.T, m exploreModel, key tea.KeyMsg) (exploreModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key)
	em, ok := next.(exploreModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return em, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestExplorePan(t *testing.T) {
	m, _ := exploreFixture(t)
	before := m.result.OptimizedCount

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.screen.x != 50 {
		t.Errorf("x = %g, want 50", m.screen.x)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.screen.y != 50 {
		t.Errorf("y = %g, want 50", m.screen.y)
	}
	if m.result.OriginalCount != 200 || before == 0 {
		t.Errorf("unexpected pass: %+v", m.result.Performance)
	}
}

func TestExploreZoomKeepsCenter(t *testing.T) {
	m, _ := exploreFixture(t)
	cx := m.screen.x + m.screen.w/m.screen.zoom/2

	m, _ = press(t, m, runes("-"))
	if m.screen.zoom >= 1 {
		t.Fatalf("zoom = %g, want < 1", m.screen.zoom)
	}
	if got := m.screen.x + m.screen.w/m.screen.zoom/2; got-cx > 1e-9 || cx-got > 1e-9 {
		t.Errorf("center moved from %g to %g", cx, got)
	}

	for range 20 {
		m, _ = press(t, m, runes("-"))
	}
	if m.screen.zoom != minZoom {
		t.Errorf("zoom = %g, want clamp at %g", m.screen.zoom, minZoom)
	}
	for _, n := range m.result.Nodes {
		if n.Hints == nil || !n.Hints.Simplified || n.Hints.ShowLabel {
			t.Fatalf("node %s not minimal at zoom %g: %+v", n.ID, m.screen.zoom, n.Hints)
		}
	}
}

func TestExploreLoadAndClearCache(t *testing.T) {
	m, store := exploreFixture(t)
	if m.stats.QueuedLoads == 0 {
		t.Fatal("expected queued icon loads")
	}

	m, cmd := press(t, m, runes("L"))
	if cmd == nil || !m.loading {
		t.Fatal("L should start loading")
	}
	next, _ := m.Update(cmd())
	m = next.(exploreModel)
	if m.loading || !strings.Contains(m.status, "loaded") {
		t.Errorf("status = %q", m.status)
	}
	if n, _ := store.Len(context.Background()); n != 1 {
		t.Errorf("cache size = %d, want 1", n)
	}

	m, _ = press(t, m, runes("c"))
	if n, _ := store.Len(context.Background()); n != 0 {
		t.Errorf("cache size after clear = %d", n)
	}
	if !strings.Contains(m.View(), "icon cache cleared") {
		t.Error("view should report the cleared cache")
	}
}

func TestExploreQuit(t *testing.T) {
	m, _ := exploreFixture(t)
	_, cmd := press(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
