// Package pkg provides the core libraries for archlens, a rendering
// optimizer for large architecture diagrams.
//
// # Overview
//
// archlens takes a diagram (nodes with positions, icons and styling plus the
// edges between them) and a viewport, decides which optimizations pay off at
// that size, and returns a smaller frame that renders faster:
//
//  1. [optimize] - Strategy selection, viewport culling, level of detail,
//     lazy icon loading and speedup estimation
//  2. [graph] - Diagram and viewport types with JSON serialization
//  3. [icons] - Icon requests and fetchers (local directory, HTTP)
//  4. [cache] - Icon payload caches (memory, file, Redis, MongoDB)
//  5. [preview] - Graphviz previews of an optimized frame
//
// # Architecture
//
//	Diagram JSON + Viewport
//	         ↓
//	    [optimize] SelectStrategies
//	         ↓
//	    cull → level of detail → queue icons
//	         ↓
//	    Result (frame + performance estimate)
//	         ↓
//	    [optimize] ProcessLoadingQueue → [icons] fetch → [cache]
//
// # Quick Start
//
//	eng := optimize.NewEngine(optimize.DefaultConfig(), cache.NewMemoryCache(0), nil,
//	    icons.NewDirFetcher("./icons"), logger)
//	res := eng.Optimize(ctx, g, &vp)
//	fmt.Println(res.Performance.EstimatedSpeedup)
//	report := eng.ProcessLoadingQueue(ctx)
//
// # Supporting Packages
//
//   - [errors] - Error codes shared by the CLI, the HTTP API and the engine
//   - [observability] - Hooks for engine passes, cache access and fetches
//   - [httputil] - Retry helpers for HTTP icon fetching
//   - [buildinfo] - Version information injected at build time
package pkg
