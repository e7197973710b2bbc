package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archlens/pkg/cache"
	"github.com/matzehuels/archlens/pkg/graph"
	"github.com/matzehuels/archlens/pkg/icons"
	"github.com/matzehuels/archlens/pkg/optimize"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	sort.Strings(names)
	want := []string{"cache", "completion", "explore", "optimize", "serve"}
	if len(names) != len(want) {
		t.Fatalf("subcommands = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("subcommands = %v, want %v", names, want)
			break
		}
	}
}

func TestViewportFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"none", nil, "none"},
		{"zoom only", []string{"--zoom", "0.3"}, "zoom=0.3"},
		{"bounds", []string{"--width", "150", "--height", "150"}, "w=150 h=150"},
		{"all", []string{"--x", "1", "--y", "2", "--width", "3", "--height", "4", "--zoom", "2"}, "x=1 y=2 w=3 h=4 zoom=2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f viewportFlags
			cmd := &cobra.Command{Use: "test"}
			f.register(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			if got := f.viewport(cmd).String(); got != tt.want {
				t.Errorf("viewport = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	if got := outputPath("", "dir/diagram.json"); got != "diagram.optimized.json" {
		t.Errorf("default output = %q", got)
	}
	if got := outputPath("frame.json", "diagram.json"); got != "frame.json" {
		t.Errorf("explicit output = %q", got)
	}
}

func TestApplyIcons(t *testing.T) {
	nodes := []graph.Node{
		{ID: "a", Icon: "db", IconLoading: true, IconRequest: &icons.Request{Name: "db"}},
		{ID: "b", Icon: "queue", IconLoading: true, IconRequest: &icons.Request{Name: "queue"}},
	}
	out := applyIcons(nodes, map[string][]byte{"a": []byte("<svg/>")})
	if out[0].IconData != "<svg/>" || out[0].IconLoading || out[0].IconRequest != nil {
		t.Errorf("loaded node = %+v", out[0])
	}
	if !out[1].IconLoading || out[1].IconRequest == nil {
		t.Errorf("pending node changed: %+v", out[1])
	}
}

func TestRunOptimize(t *testing.T) {
	dir := t.TempDir()
	iconsDir := filepath.Join(dir, "icons")
	if err := os.Mkdir(iconsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(iconsDir, "db.svg"), []byte("<svg>db</svg>"), 0o644); err != nil {
		t.Fatal(err)
	}

	g := graph.Graph{Nodes: []graph.Node{
		{ID: "api", Position: &graph.Point{X: 0, Y: 0}},
		{ID: "store", Icon: "db", Position: &graph.Point{X: 50, Y: 0}},
	}, Edges: []graph.Edge{{Source: "api", Target: "store"}}}
	in := filepath.Join(dir, "diagram.json")
	writeJSON(t, in, g)
	out := filepath.Join(dir, "frame.json")

	c := New(io.Discard, LogInfo)
	ctx := withLogger(context.Background(), log.New(io.Discard))
	opts := optimizeOpts{
		engine:    engineFlags{backend: "none", iconsDir: iconsDir},
		output:    out,
		loadIcons: true,
	}
	if err := c.runOptimize(ctx, in, nil, opts); err != nil {
		t.Fatalf("runOptimize: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var res optimize.Result
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatal(err)
	}
	if res.OptimizedCount != 2 || len(res.Edges) != 1 {
		t.Errorf("counts = %d nodes, %d edges", res.OptimizedCount, len(res.Edges))
	}
	if res.Nodes[1].IconData != "<svg>db</svg>" || res.Nodes[1].IconLoading {
		t.Errorf("icon not applied: %+v", res.Nodes[1])
	}
}

func TestRunOptimizeMissingFile(t *testing.T) {
	c := New(io.Discard, LogInfo)
	err := c.runOptimize(context.Background(), filepath.Join(t.TempDir(), "nope.json"), nil, optimizeOpts{engine: engineFlags{backend: "none"}})
	if err == nil {
		t.Fatal("expected error for missing graph file")
	}
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := graph.WriteGraph(f, v); err != nil {
		t.Fatal(err)
	}
}

func TestCompletionHelpers(t *testing.T) {
	got, dir := completeBackends(nil, nil, "")
	if len(got) != len(cache.Backends) || dir != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("completeBackends = %v, %v", got, dir)
	}

	exts, dir := completeGraphFiles(nil, nil, "")
	if len(exts) != 1 || exts[0] != "json" || dir != cobra.ShellCompDirectiveFilterFileExt {
		t.Errorf("completeGraphFiles = %v, %v", exts, dir)
	}
	if _, dir := completeGraphFiles(nil, []string{"a.json"}, ""); dir != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("second argument directive = %v", dir)
	}
}

func TestCompletionCommandWritesScript(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.Execute(); err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out.String(), "archlens") {
		t.Error("bash completion does not mention archlens")
	}
}
