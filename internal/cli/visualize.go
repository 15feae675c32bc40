package cli

import (
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/glasspiral/glasspiral/pkg/pipeline"
	"github.com/glasspiral/glasspiral/pkg/trace"
)

// roundTo is the precision for the stage timings in the summary line.
const roundTo = 100 * time.Microsecond

// visualizeCommand creates the visualize command, the end-to-end
// parse, place, and render pipeline.
func (c *CLI) visualizeCommand() *cobra.Command {
	opts := c.pipelineOptions()
	var (
		formatStr string
		output    string
		noCache   bool
		example   bool
	)

	cmd := &cobra.Command{
		Use:   "visualize [trace.txt]",
		Short: "Run the full pipeline from trace to artifacts",
		Long: `Run the full pipeline from trace to artifacts.

Parses the trace, places every step on the spiral, and renders all
requested formats in one go. Scene placement and rendered artifacts
are cached, so repeat runs with the same trace and parameters are
fast.

Every format is available here, including the dot and png
call-tree views derived from the trace's CALL/RETURN structure.

Examples:
  glasspiral visualize trace.txt
  glasspiral visualize trace.txt --format html,svg,png -o out/spiral
  tracer myprogram | glasspiral visualize - --title "my program"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.TracePath = args[0]
				if args[0] == "-" {
					opts.TracePath = ""
				}
			}
			if example {
				opts.TracePath = ""
				opts.TraceText = trace.Example
			} else if opts.TracePath == "" {
				text, err := readStdin()
				if err != nil {
					return err
				}
				opts.TraceText = text
			}
			opts.Formats = parseFormats(formatStr, c.Config.Render.Formats)
			return c.runVisualize(cmd, output, noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&formatStr, "format", "f", "", "comma-separated output formats (json, html, svg, pdf, dot, png)")
	cmd.Flags().StringVarP(&output, "output", "o", "spiral", "output base path, one file per format")
	cmd.Flags().StringVarP(&opts.Title, "title", "t", opts.Title, "scene title shown in the output")
	cmd.Flags().IntVar(&opts.RevealDelay, "reveal-delay", pipeline.DefaultRevealDelay, "ms between building reveals in HTML (-1 disables)")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "annotate SVG panes with step labels")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "detailed call-tree node labels")
	cmd.Flags().Float64Var(&opts.PNGScale, "png-scale", pipeline.DefaultPNGScale, "rasterization scale for PNG output")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "sampling seed for reproducible scenes")
	cmd.Flags().Float64Var(&opts.Spiral.TurnRate, "turn-rate", opts.Spiral.TurnRate, "radians advanced per step")
	cmd.Flags().Float64Var(&opts.Spiral.BaseRadius, "base-radius", opts.Spiral.BaseRadius, "spiral radius at the first step")
	cmd.Flags().Float64Var(&opts.Spiral.RadiusGrowth, "radius-growth", opts.Spiral.RadiusGrowth, "radius gained per step")
	cmd.Flags().Float64Var(&opts.Spiral.HeightPerStep, "height-per-step", opts.Spiral.HeightPerStep, "vertical drop per step")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the cache entirely")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute everything even if cached")
	cmd.Flags().BoolVar(&example, "example", false, "visualize the bundled example trace")

	return cmd
}

// runVisualize executes the pipeline and writes all artifacts.
func (c *CLI) runVisualize(cmd *cobra.Command, output string, noCache bool, opts pipeline.Options) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Building spiral...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Pipeline failed")
		return err
	}
	spinner.Stop()
	if spinner.Cancelled() {
		return ctx.Err()
	}

	formats := make([]string, 0, len(result.Artifacts))
	for format := range result.Artifacts {
		formats = append(formats, format)
	}
	sort.Strings(formats)

	for _, format := range formats {
		path := output + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return err
		}
		printFile(path)
	}

	printSuccess("Visualized %d steps", result.Stats.StepCount)
	printStats(result.Stats.StepCount, callCount(result.Steps), result.CacheInfo.RenderHit)
	printDetail("parse %s · place %s · render %s",
		result.Stats.ParseTime.Round(roundTo),
		result.Stats.PlaceTime.Round(roundTo),
		result.Stats.RenderTime.Round(roundTo))
	return nil
}

// readStdin reads all of stdin as trace text.
func readStdin() (string, error) {
	_, text, err := readTrace("-")
	return text, err
}
