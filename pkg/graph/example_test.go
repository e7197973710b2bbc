package graph_test

import (
	"fmt"
	"os"

	"github.com/matzehuels/archlens/pkg/graph"
)

func ExampleWriteGraph() {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "api", Icon: "server", Position: &graph.Point{X: 10, Y: 20}}},
		Edges: []graph.Edge{},
	}
	if err := graph.WriteGraph(os.Stdout, g); err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "api",
	//       "position": {
	//         "x": 10,
	//         "y": 20
	//       },
	//       "icon": "server"
	//     }
	//   ],
	//   "edges": []
	// }
}

func ExampleViewport_Bounds() {
	vp := graph.NewViewport(0, 0, 150, 150, 1)
	r, ok := vp.Bounds()
	fmt.Println(ok, r.Expand(100))
	// Output:
	// true {-100 -100 350 350}
}
