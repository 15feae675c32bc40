// Package render provides artifact rendering for placed scenes.
//
// # Overview
//
// This package contains the rendering pipeline that transforms placed
// scenes into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Scene sinks (in [sink] subpackage): JSON, HTML viewer, 2D SVG
//   - Call-tree diagrams (in [calltree] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). These are used by both
// the SVG sink and the call-tree renderer.
//
//	svg := sink.RenderSVG(sc)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Scene Sinks
//
// The [sink] subpackage writes a scene as data or as a finished document:
// JSON for external 3D renderers, a self-contained HTML viewer page, and
// a 2D front-elevation SVG of the stained-glass spiral.
//
// # Call-Tree Diagrams
//
// The [calltree] subpackage renders the CALL/RETURN nesting of a trace
// as a directed graph using Graphviz.
//
//	dot := calltree.ToDOT(tree, calltree.Options{})
//	svg, err := calltree.RenderSVG(dot)
//
// [sink]: github.com/glasspiral/glasspiral/pkg/render/sink
// [calltree]: github.com/glasspiral/glasspiral/pkg/render/calltree
package render
