package pipeline

import (
	"github.com/glasspiral/glasspiral/pkg/errors"
	"github.com/glasspiral/glasspiral/pkg/render"
	"github.com/glasspiral/glasspiral/pkg/render/calltree"
	"github.com/glasspiral/glasspiral/pkg/render/sink"
	"github.com/glasspiral/glasspiral/pkg/scene"
	"github.com/glasspiral/glasspiral/pkg/trace"
)

// RenderScene generates output artifacts in the requested formats.
// The trace is needed alongside the scene because the call-tree formats
// (dot, png) are built from CALL/RETURN nesting, not from placement.
func RenderScene(steps trace.Trace, sc scene.Scene, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = sink.RenderJSON(sc, jsonOptions(opts)...)
		case FormatHTML:
			data, err = sink.RenderHTML(sc, htmlOptions(opts)...)
		case FormatSVG:
			data = sink.RenderSVG(sc, svgOptions(opts)...)
		case FormatPDF:
			data, err = render.ToPDF(sink.RenderSVG(sc, svgOptions(opts)...))
		case FormatDOT:
			tree := calltree.FromTrace(steps)
			data = []byte(calltree.ToDOT(tree, calltree.Options{Detailed: opts.Detailed}))
		case FormatPNG:
			tree := calltree.FromTrace(steps)
			dot := calltree.ToDOT(tree, calltree.Options{Detailed: opts.Detailed})
			data, err = calltree.RenderPNG(dot, opts.PNGScale)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func jsonOptions(opts Options) []sink.JSONOption {
	var jsonOpts []sink.JSONOption
	if opts.Title != "" {
		jsonOpts = append(jsonOpts, sink.WithJSONTitle(opts.Title))
	}
	return jsonOpts
}

func htmlOptions(opts Options) []sink.HTMLOption {
	var htmlOpts []sink.HTMLOption
	if opts.Title != "" {
		htmlOpts = append(htmlOpts, sink.WithHTMLTitle(opts.Title))
	}
	delay := opts.RevealDelay
	if delay < 0 {
		delay = 0 // negative disables the staggered reveal
	}
	htmlOpts = append(htmlOpts, sink.WithHTMLRevealDelay(delay))
	return htmlOpts
}

func svgOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithSVGTitle(opts.Title))
	}
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithSVGLabels())
	}
	return svgOpts
}
