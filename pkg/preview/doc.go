// Package preview draws an optimized frame with Graphviz.
//
// The preview shows exactly what a consumer would render for one pass: only
// the nodes and edges that survived virtualization, at the fidelity the
// level-of-detail stage chose, with nodes still waiting for their icon
// drawn dashed. It is a debugging aid, not a replacement for the consumer's
// renderer.
//
// Nodes keep their diagram positions (neato with pinned pos). Edges whose
// other endpoint was culled end in a small grey point so the frame shows
// where connections leave the viewport.
//
//	dot := preview.ToDOT(result, preview.Options{})
//	svg, err := preview.RenderSVG(ctx, dot)
//
// PNG and PDF output go through rsvg-convert (librsvg), which must be on
// PATH.
package preview
