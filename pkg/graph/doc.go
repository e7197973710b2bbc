// Package graph defines the diagram data model shared by the optimization
// engine, the CLI and the HTTP API.
//
// # Core Types
//
//   - [Graph]: the full set of [Node]s and [Edge]s supplied by a caller
//   - [Node]: a diagram element with an optional position and icon reference
//   - [Edge]: a referential link between two node IDs
//   - [Viewport]: the visible rectangle plus zoom factor
//   - [RenderHints]: fidelity decisions attached to a node by the engine
//
// Nodes are owned by the caller. The engine works on copies and only ever
// sets hint and icon-loading fields; caller fields such as Style survive
// a round trip untouched.
//
// # Serialization
//
// Graphs use a node-link JSON format:
//
//	{
//	  "nodes": [{"id": "api", "icon": "server", "position": {"x": 10, "y": 20}}],
//	  "edges": [{"id": "e1", "source": "api", "target": "db"}]
//	}
//
// Use [ReadGraph], [ReadFile] and [WriteGraph] for I/O.
package graph
