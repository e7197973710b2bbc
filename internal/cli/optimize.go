package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archlens/pkg/cache"
	"github.com/matzehuels/archlens/pkg/graph"
	"github.com/matzehuels/archlens/pkg/optimize"
	"github.com/matzehuels/archlens/pkg/preview"
)

// viewportFlags collects the optional viewport fields. Only flags the user
// actually set end up in the viewport.
type viewportFlags struct {
	x, y, width, height, zoom float64
}

func (f *viewportFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.x, "x", 0, "viewport left edge")
	cmd.Flags().Float64Var(&f.y, "y", 0, "viewport top edge")
	cmd.Flags().Float64Var(&f.width, "width", 0, "viewport width")
	cmd.Flags().Float64Var(&f.height, "height", 0, "viewport height")
	cmd.Flags().Float64Var(&f.zoom, "zoom", 1, "zoom factor")
}

func (f *viewportFlags) viewport(cmd *cobra.Command) *graph.Viewport {
	var vp graph.Viewport
	set := func(name string, dst **float64, v float64) {
		if cmd.Flags().Changed(name) {
			*dst = &v
		}
	}
	set("x", &vp.X, f.x)
	set("y", &vp.Y, f.y)
	set("width", &vp.Width, f.width)
	set("height", &vp.Height, f.height)
	set("zoom", &vp.Zoom, f.zoom)
	if vp == (graph.Viewport{}) {
		return nil
	}
	return &vp
}

type optimizeOpts struct {
	engine      engineFlags
	viewport    viewportFlags
	output      string
	loadIcons   bool
	previewPath string
}

// optimizeCommand creates the optimize command.
func (c *CLI) optimizeCommand() *cobra.Command {
	var opts optimizeOpts

	cmd := &cobra.Command{
		Use:   "optimize <graph.json>",
		Short: "Optimize a diagram for a viewport",
		Long: `Run one optimization pass over a diagram and write the nodes and edges
worth rendering, with level-of-detail hints and icon loading state.

Only the viewport flags you pass are used: without --width and --height
nothing is culled, without --zoom every node keeps full detail.`,
		Example: `  archlens optimize diagram.json --width 1200 --height 800 --zoom 0.4
  archlens optimize diagram.json -o frame.json --load-icons --icons-dir ./icons
  archlens optimize diagram.json --width 600 --height 400 --preview frame.svg`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOptimize(cmd.Context(), args[0], opts.viewport.viewport(cmd), opts)
		},
	}

	opts.engine.register(cmd, cache.BackendFile)
	opts.viewport.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.optimized.json, - for stdout)")
	cmd.Flags().BoolVar(&opts.loadIcons, "load-icons", false, "fetch queued icons before writing the result")
	cmd.Flags().StringVar(&opts.previewPath, "preview", "", "also render the frame with Graphviz (.svg, .png or .pdf)")

	return cmd
}

func (c *CLI) runOptimize(ctx context.Context, path string, vp *graph.Viewport, opts optimizeOpts) error {
	logger := loggerFromContext(ctx)

	g, err := graph.ReadFile(path)
	if err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return err
	}

	engine, err := c.newEngine(ctx, opts.engine)
	if err != nil {
		return err
	}
	defer engine.Close()

	prog := newProgress(logger)
	res := engine.Optimize(ctx, g, vp)
	prog.done(fmt.Sprintf("Optimized %d nodes", res.OriginalCount), "rendered", res.OptimizedCount, "pass", res.PassID)

	toStdout := opts.output == "-"
	var report optimize.QueueReport
	if opts.loadIcons {
		res, report = loadIcons(ctx, engine, res, toStdout)
	}

	if err := writeResult(opts.output, path, res); err != nil {
		return err
	}
	if opts.previewPath != "" {
		if err := writePreview(ctx, opts.previewPath, res, path); err != nil {
			return err
		}
	}
	if toStdout {
		return nil
	}

	printSuccess("Optimized %s", path)
	printPass(res)
	printKeyValue("viewport", vp.String())
	printKeyValue("strategies", strategyLine(res.Strategies))
	if opts.loadIcons && report.Failed > 0 {
		printWarning("%d icons could not be loaded, rerun with -v for details", report.Failed)
	}
	printFile(outputPath(opts.output, path))
	if opts.previewPath != "" {
		printFile(opts.previewPath)
	}
	return nil
}

// loadIcons drains the load queue and folds the payloads into res. Small
// diagrams skip lazy loading, so their icons are queued here first.
func loadIcons(ctx context.Context, engine *optimize.Engine, res optimize.Result, quiet bool) (optimize.Result, optimize.QueueReport) {
	if !res.Strategies.Has(optimize.LazyLoading) {
		res.Nodes = engine.PrepareLazyLoading(ctx, res.Nodes)
	}
	var mu sync.Mutex
	loaded := map[string][]byte{}
	engine.SetIconLoadedCallback(func(nodeID string, data []byte) {
		mu.Lock()
		loaded[nodeID] = data
		mu.Unlock()
	})
	defer engine.SetIconLoadedCallback(nil)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Loading %d icons...", len(engine.QueuedLoads())))
	spinner.Start()
	report := engine.ProcessLoadingQueue(ctx)
	switch {
	case quiet:
		spinner.Stop()
	case report.Failed > 0:
		spinner.StopWithError(fmt.Sprintf("Loaded %d icons, %d failed", report.Succeeded, report.Failed))
	default:
		spinner.StopWithSuccess(fmt.Sprintf("Loaded %d icons", report.Succeeded))
	}

	res.Nodes = applyIcons(res.Nodes, loaded)
	return res, report
}

// applyIcons fills IconData for nodes whose icon arrived and clears their
// loading state. Nodes without a payload keep loading.
func applyIcons(nodes []graph.Node, loaded map[string][]byte) []graph.Node {
	for i := range nodes {
		data, ok := loaded[nodes[i].ID]
		if !ok {
			continue
		}
		nodes[i].IconData = string(data)
		nodes[i].IconLoading = false
		nodes[i].IconRequest = nil
	}
	return nodes
}

func outputPath(output, input string) string {
	if output != "" {
		return output
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".optimized.json"
}

func writeResult(output, input string, res optimize.Result) error {
	if output == "-" {
		return graph.WriteGraph(os.Stdout, res)
	}
	f, err := os.Create(outputPath(output, input))
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := graph.WriteGraph(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writePreview(ctx context.Context, path string, res optimize.Result, title string) error {
	format, err := preview.FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := preview.Render(ctx, preview.ToDOT(res, preview.Options{Title: filepath.Base(title)}), format)
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
