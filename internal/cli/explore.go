package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archlens/pkg/cache"
	"github.com/matzehuels/archlens/pkg/graph"
	"github.com/matzehuels/archlens/pkg/optimize"
)

const (
	zoomStep = 1.25
	minZoom  = 0.05
	maxZoom  = 8
)

// exploreCommand creates the interactive explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		ef            engineFlags
		screenW       float64
		screenH       float64
		zoom          float64
		x, y          float64
		startQueueRun bool
	)

	cmd := &cobra.Command{
		Use:   "explore <graph.json>",
		Short: "Pan and zoom a diagram and watch the engine react",
		Long: `Open an interactive view that re-runs the engine on every pan or zoom.

Keys: arrows/hjkl pan, +/- zoom, L load queued icons, c clear the icon
cache, q quit.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := graph.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := g.Validate(); err != nil {
				return err
			}

			engine, err := c.newEngine(ctx, ef)
			if err != nil {
				return err
			}
			defer engine.Close()

			m := newExploreModel(ctx, engine, g, screen{w: screenW, h: screenH, x: x, y: y, zoom: zoom})
			m.autoLoad = startQueueRun
			_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
			return err
		},
	}

	ef.register(cmd, cache.BackendMemory)
	cmd.Flags().Float64Var(&screenW, "screen-width", 1200, "screen width in pixels")
	cmd.Flags().Float64Var(&screenH, "screen-height", 800, "screen height in pixels")
	cmd.Flags().Float64Var(&x, "x", 0, "initial left edge")
	cmd.Flags().Float64Var(&y, "y", 0, "initial top edge")
	cmd.Flags().Float64Var(&zoom, "zoom", 1, "initial zoom factor")
	cmd.Flags().BoolVar(&startQueueRun, "load-icons", false, "load queued icons after every pass")
	return cmd
}

// screen is the explorer camera: a fixed screen size looking at diagram
// coordinates from (x, y) at a zoom factor.
type screen struct {
	w, h, x, y, zoom float64
}

func (s screen) viewport() *graph.Viewport {
	return graph.NewViewport(s.x, s.y, s.w/s.zoom, s.h/s.zoom, s.zoom)
}

// pan moves by a quarter of the visible area per step.
func (s screen) pan(dx, dy float64) screen {
	s.x += dx * s.w / s.zoom / 4
	s.y += dy * s.h / s.zoom / 4
	return s
}

// zoomBy scales around the screen center.
func (s screen) zoomBy(f float64) screen {
	next := min(maxZoom, max(minZoom, s.zoom*f))
	cx, cy := s.x+s.w/s.zoom/2, s.y+s.h/s.zoom/2
	s.zoom = next
	s.x, s.y = cx-s.w/next/2, cy-s.h/next/2
	return s
}

type queueDoneMsg optimize.QueueReport

type exploreModel struct {
	ctx    context.Context
	engine *optimize.Engine
	graph  graph.Graph
	screen screen

	result   optimize.Result
	stats    optimize.Statistics
	status   string
	loading  bool
	autoLoad bool
}

func newExploreModel(ctx context.Context, engine *optimize.Engine, g graph.Graph, s screen) exploreModel {
	if s.zoom <= 0 {
		s.zoom = 1
	}
	m := exploreModel{ctx: ctx, engine: engine, graph: g, screen: s}
	m.refresh()
	return m
}

func (m *exploreModel) refresh() {
	m.result = m.engine.UpdateViewport(m.ctx, m.screen.viewport(), m.graph)
	m.stats = m.engine.Statistics(m.ctx)
}

func (m exploreModel) loadQueue() tea.Cmd {
	engine, ctx := m.engine, m.ctx
	return func() tea.Msg {
		return queueDoneMsg(engine.ProcessLoadingQueue(ctx))
	}
}

func (m exploreModel) Init() tea.Cmd {
	if m.autoLoad {
		return m.loadQueue()
	}
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case queueDoneMsg:
		m.loading = false
		m.status = fmt.Sprintf("loaded %d icons, %d failed", msg.Succeeded, msg.Failed)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.screen = m.screen.pan(-1, 0)
		case "right", "l":
			m.screen = m.screen.pan(1, 0)
		case "up", "k":
			m.screen = m.screen.pan(0, -1)
		case "down", "j":
			m.screen = m.screen.pan(0, 1)
		case "+", "=":
			m.screen = m.screen.zoomBy(zoomStep)
		case "-", "_":
			m.screen = m.screen.zoomBy(1 / zoomStep)
		case "L", "enter":
			if m.loading {
				return m, nil
			}
			m.loading = true
			m.status = "loading icons..."
			return m, m.loadQueue()
		case "c":
			if err := m.engine.ClearCache(m.ctx); err != nil {
				m.status = "clear cache: " + err.Error()
			} else {
				m.status = "icon cache cleared"
			}
		default:
			return m, nil
		}
		m.refresh()
		if m.autoLoad && !m.loading && m.stats.QueuedLoads > 0 {
			m.loading = true
			return m, m.loadQueue()
		}
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("archlens explore"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("arrows pan  +/- zoom  L load icons  c clear cache  q quit"))
	b.WriteString("\n\n")

	p := m.result.Performance
	fmt.Fprintf(&b, "%s %s\n", StyleDim.Render("viewport  "), StyleValue.Render(m.screen.viewport().String()))
	fmt.Fprintf(&b, "%s %s\n", StyleDim.Render("strategies"), strategyLine(m.result.Strategies))
	fmt.Fprintf(&b, "%s %s\n", StyleDim.Render("rendered  "),
		StyleNumber.Render(fmt.Sprintf("%d/%d nodes  %d/%d edges  %.0f%% culled  ~%.2fx",
			p.RenderedNodes, p.TotalNodes, p.RenderedEdges, p.TotalEdges, p.ReductionPercent, p.EstimatedSpeedup)))
	fidelity := optimize.FidelityFull
	if m.result.Strategies.Has(optimize.LevelOfDetail) {
		fidelity = optimize.FidelityFor(m.screen.viewport(), m.engine.Config().LOD)
	}
	fmt.Fprintf(&b, "%s %s\n\n", StyleDim.Render("fidelity  "), StyleValue.Render(fidelity.String()))

	b.WriteString(statisticsTable(m.stats))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(StyleDim.Render(m.status))
		b.WriteString("\n")
	}
	return b.String()
}
