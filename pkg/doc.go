// Package pkg provides the core libraries for glasspiral trace visualization.
//
// # Overview
//
// Glasspiral turns static execution traces into 3D stained-glass spiral
// scenes: every recorded operation becomes a colored glass building,
// placed on a spiral that winds downward through the program's history.
// The pkg directory is organized around the data flow:
//
//	Trace text (TYPE|name|value|address|line|depth)
//	         ↓
//	    [trace] package (split lines into steps)
//	         ↓
//	    [spiral] + [scene] packages (place and size buildings)
//	         ↓
//	    [render] package (HTML viewer, SVG elevation, call trees)
//	         ↓
//	    HTML/SVG/JSON/DOT/PNG output
//
// # Main Packages
//
// [trace] - Best-effort parsing of pipe-delimited trace lines. One line
// in, one step out, always.
//
// [spiral] - The placement math: angle, radius, and height per step.
//
// [scene] - Turns steps into placed, sized, colored buildings using
// per-type shape profiles and deterministic sampling. Also holds the
// reveal [scene.Stage] used by animated viewers.
//
// [render] - Output sinks. [render/sink] writes the HTML viewer, the
// SVG front elevation, and the JSON interchange document;
// [render/calltree] reconstructs the CALL/RETURN tree and renders it
// with Graphviz.
//
// [pipeline] - Orchestration (parse → place → render) with caching,
// used by both the CLI and the HTTP server.
//
// # Infrastructure
//
// [cache] - Content-addressed caching of placed scenes and rendered
// artifacts. File-backed for the CLI, Redis for serve deployments.
//
// [gallery] - Stored scenes with metadata, in-memory or MongoDB.
//
// [observability] - Pipeline and cache hooks with a Prometheus
// implementation.
//
// [config], [errors], [buildinfo] - TOML configuration, coded errors
// with input validation, and version stamping.
//
// # Quick Start
//
// Place and render a trace:
//
//	steps := trace.Parse(text)
//	sc := scene.Build(steps, scene.Options{})
//	page, _ := sink.RenderHTML(sc, sink.WithHTMLTitle("my program"))
//
// [trace]: https://pkg.go.dev/github.com/glasspiral/glasspiral/pkg/trace
// [spiral]: https://pkg.go.dev/github.com/glasspiral/glasspiral/pkg/spiral
// [scene]: https://pkg.go.dev/github.com/glasspiral/glasspiral/pkg/scene
// [scene.Stage]: https://pkg.go.dev/github.com/glasspiral/glasspiral/pkg/scene#Stage
// [render]: https://pkg.go.dev/github.com/glasspiral/glasspiral/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/glasspiral/glasspiral/pkg/render/sink
// [render/calltree]: https://pkg.go.dev/github.com/glasspiral/glasspiral/pkg/render/calltree
// [pipeline]: https://pkg.go.dev/github.com/glasspiral/glasspiral/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/glasspiral/glasspiral/pkg/cache
// [gallery]: https://pkg.go.dev/github.com/glasspiral/glasspiral/pkg/gallery
// [observability]: https://pkg.go.dev/github.com/glasspiral/glasspiral/pkg/observability
// [config]: https://pkg.go.dev/github.com/glasspiral/glasspiral/pkg/config
// [errors]: https://pkg.go.dev/github.com/glasspiral/glasspiral/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/glasspiral/glasspiral/pkg/buildinfo
package pkg
