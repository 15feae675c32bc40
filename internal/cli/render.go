package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glasspiral/glasspiral/pkg/pipeline"
	"github.com/glasspiral/glasspiral/pkg/render"
	"github.com/glasspiral/glasspiral/pkg/render/sink"
	"github.com/glasspiral/glasspiral/pkg/scene"
)

// renderCommand creates the render command for turning a placed scene
// into output artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatStr   string
		title       string
		revealDelay int
		labels      bool
		output      string
	)

	cmd := &cobra.Command{
		Use:   "render [scene.json]",
		Short: "Render a placed scene to output formats",
		Long: `Render a placed scene to output formats.

Reads a scene file produced by "glasspiral place" and writes one
artifact per requested format next to it. Supported formats here are
html, svg, pdf, and json; the dot and png call-tree formats need the
original trace and are only available through "glasspiral visualize".

Examples:
  glasspiral render scene.json
  glasspiral render scene.json --format html,svg --title "fibonacci"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(args[0], formatStr, title, revealDelay, labels, output)
		},
	}

	cmd.Flags().StringVarP(&formatStr, "format", "f", "", "comma-separated output formats (html, svg, pdf, json)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "scene title shown in the output")
	cmd.Flags().IntVar(&revealDelay, "reveal-delay", pipeline.DefaultRevealDelay, "ms between building reveals in HTML (-1 disables)")
	cmd.Flags().BoolVar(&labels, "labels", false, "annotate SVG panes with step labels")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (defaults to the scene file's base name)")

	return cmd
}

// runRender loads the scene and writes one artifact per format.
func (c *CLI) runRender(scenePath, formatStr, title string, revealDelay int, labels bool, output string) error {
	formats := parseFormats(formatStr, c.Config.Render.Formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	sc, err := scene.ReadSceneFile(scenePath)
	if err != nil {
		return err
	}
	c.Logger.Info("loaded scene", "path", scenePath, "buildings", len(sc.Buildings))

	base := output
	if base == "" {
		base = strings.TrimSuffix(scenePath, filepath.Ext(scenePath))
	}

	prog := newProgress(c.Logger)
	written := []string{}
	for _, format := range formats {
		data, ok, err := renderFormat(sc, format, title, revealDelay, labels)
		if err != nil {
			return err
		}
		if !ok {
			printWarning("Skipping %s: call-tree formats need the trace, use visualize", format)
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		printSuccess("Rendered %s", format)
		printFile(path)
		written = append(written, format)
	}

	if len(written) > 0 {
		prog.done(fmt.Sprintf("Rendered %d artifacts", len(written)))
		printNewline()
		printNextStep("Open", "open "+base+"."+written[0])
	}
	return nil
}

// renderFormat renders one format from a scene alone. The boolean is
// false for formats that cannot be produced without the trace.
func renderFormat(sc scene.Scene, format, title string, revealDelay int, labels bool) ([]byte, bool, error) {
	switch format {
	case pipeline.FormatJSON:
		opts := []sink.JSONOption{}
		if title != "" {
			opts = append(opts, sink.WithJSONTitle(title))
		}
		data, err := sink.RenderJSON(sc, opts...)
		return data, true, err
	case pipeline.FormatHTML:
		opts := []sink.HTMLOption{}
		if title != "" {
			opts = append(opts, sink.WithHTMLTitle(title))
		}
		if revealDelay >= 0 {
			opts = append(opts, sink.WithHTMLRevealDelay(revealDelay))
		} else {
			opts = append(opts, sink.WithHTMLRevealDelay(0))
		}
		data, err := sink.RenderHTML(sc, opts...)
		return data, true, err
	case pipeline.FormatSVG:
		return renderElevation(sc, title, labels), true, nil
	case pipeline.FormatPDF:
		data, err := render.ToPDF(renderElevation(sc, title, labels))
		return data, true, err
	default:
		return nil, false, nil
	}
}

// renderElevation builds the SVG front elevation with the shared options.
func renderElevation(sc scene.Scene, title string, labels bool) []byte {
	opts := []sink.SVGOption{}
	if title != "" {
		opts = append(opts, sink.WithSVGTitle(title))
	}
	if labels {
		opts = append(opts, sink.WithSVGLabels())
	}
	return sink.RenderSVG(sc, opts...)
}
