package cli

import (
	"github.com/spf13/cobra"

	"github.com/glasspiral/glasspiral/pkg/cache"
	"github.com/glasspiral/glasspiral/pkg/pipeline"
	"github.com/glasspiral/glasspiral/pkg/scene"
	"github.com/glasspiral/glasspiral/pkg/trace"
)

// placeCommand creates the place command for positioning steps on the spiral.
func (c *CLI) placeCommand() *cobra.Command {
	opts := c.pipelineOptions()
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "place [trace.txt]",
		Short: "Place trace steps on the spiral",
		Long: `Place trace steps on the spiral.

Parses the trace and computes a 3D position and glass building for every
step, descending along a spiral from top to bottom. The placed scene is
written as JSON and can be rendered later with "glasspiral render".

Pass "-" (or no argument) to read the trace from stdin.

Examples:
  glasspiral place trace.txt
  glasspiral place trace.txt --turn-rate 0.5 --seed 7 -o scene.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return c.runPlace(cmd, input, output, noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "scene.json", "output scene file")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "sampling seed for reproducible scenes")
	cmd.Flags().Float64Var(&opts.Spiral.TurnRate, "turn-rate", opts.Spiral.TurnRate, "radians advanced per step")
	cmd.Flags().Float64Var(&opts.Spiral.BaseRadius, "base-radius", opts.Spiral.BaseRadius, "spiral radius at the first step")
	cmd.Flags().Float64Var(&opts.Spiral.RadiusGrowth, "radius-growth", opts.Spiral.RadiusGrowth, "radius gained per step")
	cmd.Flags().Float64Var(&opts.Spiral.HeightPerStep, "height-per-step", opts.Spiral.HeightPerStep, "vertical drop per step")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the cache entirely")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute the scene even if cached")

	return cmd
}

// runPlace parses the trace, places the scene, and writes it to output.
func (c *CLI) runPlace(cmd *cobra.Command, input, output string, noCache bool, opts pipeline.Options) error {
	ctx := cmd.Context()

	steps, text, err := readTrace(input)
	if err != nil {
		return err
	}
	traceHash := cache.Hash([]byte(text))

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Placing steps...")
	spinner.Start()

	sc, cached, err := runner.PlaceWithCacheInfo(ctx, steps, traceHash, opts)
	if err != nil {
		spinner.StopWithError("Placement failed")
		return err
	}
	spinner.Stop()
	if spinner.Cancelled() {
		return ctx.Err()
	}

	if err := scene.WriteSceneFile(sc, output); err != nil {
		return err
	}

	printSuccess("Placed %d buildings", len(sc.Buildings))
	printFile(output)
	printStats(sc.StepCount, callCount(steps), cached)
	printNewline()
	printNextStep("Render", "glasspiral render "+output)
	return nil
}

// callCount counts the CALL steps in a trace for stats output.
func callCount(steps trace.Trace) int {
	n := 0
	for _, s := range steps {
		if s.IsCall() {
			n++
		}
	}
	return n
}
