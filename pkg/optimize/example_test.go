package optimize_test

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archlens/pkg/graph"
	"github.com/matzehuels/archlens/pkg/optimize"
)

func ExampleSelectStrategies() {
	cfg := optimize.DefaultConfig()
	fmt.Println(optimize.SelectStrategies(10, cfg).Strings())
	fmt.Println(optimize.SelectStrategies(80, cfg).Strings())
	// Output:
	// [caching]
	// [lazy_loading batching caching level_of_detail]
}

func ExampleEngine_Optimize() {
	var g graph.Graph
	for i := range 200 {
		g.Nodes = append(g.Nodes, graph.Node{
			ID:       fmt.Sprintf("svc-%d", i),
			Position: &graph.Point{X: float64(i%20) * 50, Y: float64(i/20) * 50},
		})
	}

	e := optimize.NewEngine(optimize.DefaultConfig(), nil, nil, nil, log.New(io.Discard))
	res := e.Optimize(context.Background(), g, graph.NewViewport(0, 0, 150, 150, 1))

	fmt.Println(res.OptimizedCount, "of", res.OriginalCount)
	// Output:
	// 36 of 200
}
