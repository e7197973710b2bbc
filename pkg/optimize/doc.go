// Package optimize is the rendering optimization engine.
//
// Given a full diagram and the consumer's current viewport, the engine
// decides which elements are worth computing and drawing, at what fidelity,
// and which icons still need to be fetched. It never drops caller data: an
// element that is culled from one frame comes back as soon as the viewport
// moves over it again.
//
// # Pipeline
//
// [Engine.Optimize] runs, in order:
//
//  1. Strategy selection ([SelectStrategies]): thresholds on the node count,
//     each gated by a configuration flag.
//  2. Virtualization ([Engine.ApplyVirtualization]): keep nodes inside the
//     viewport grown by a buffer, and edges with at least one kept endpoint.
//  3. Level of detail ([ApplyLevelOfDetail]): simplify nodes as zoom drops.
//  4. Lazy-load preparation ([Engine.PrepareLazyLoading]): resolve icons from
//     the cache or mark them as loading and queue a fetch.
//  5. Performance estimation ([EstimateSpeedup]).
//
// Every pass recomputes everything from the full input; there is no diffing
// against a previous frame. [Engine.UpdateViewport] is the same pass, named
// for pan and zoom handlers.
//
// # Icon loading
//
// Queued fetches run only when the caller invokes
// [Engine.ProcessLoadingQueue]. Visible nodes go first; each round fetches up
// to the batch size concurrently, and a failed fetch is logged and dropped
// without affecting its siblings. Successful payloads are cached and handed
// to the callback registered with [Engine.SetIconLoadedCallback].
//
// # State
//
// The engine is stateless across passes except for the icon cache, the
// visibility set, the load queue and running statistics. [Engine.Reset]
// clears all of them.
package optimize
