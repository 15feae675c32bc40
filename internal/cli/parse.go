package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/glasspiral/glasspiral/pkg/trace"
)

// parseCommand creates the parse command for splitting trace text into steps.
func (c *CLI) parseCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse [trace.txt]",
		Short: "Parse a trace file into steps",
		Long: `Parse a trace file into steps.

Each line of the trace becomes one step; the step index is the 0-based
line position. Parsing is best-effort: malformed or blank lines still
produce steps with default field values, so the output always has one
step per input line.

Pass "-" (or no argument) to read the trace from stdin.

Examples:
  glasspiral parse trace.txt
  tracer myprogram | glasspiral parse - -o steps.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return c.runParse(input, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// runParse reads the trace and writes the parsed steps as JSON.
func (c *CLI) runParse(input, output string) error {
	steps, _, err := readTrace(input)
	if err != nil {
		return err
	}
	c.Logger.Info("parsed trace", "steps", len(steps))

	data, err := json.MarshalIndent(steps, "", "  ")
	if err != nil {
		return err
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(append(data, '\n')); err != nil {
		return err
	}

	if output != "" {
		printSuccess("Parsed %d steps", len(steps))
		printFile(output)
		printNewline()
		printNextStep("Place", "glasspiral place "+input)
	}
	return nil
}

// readTrace parses trace text from a file, or from stdin when path is
// "-". It returns the steps together with the raw text, which callers
// hash for cache keys.
func readTrace(path string) (trace.Trace, string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("read trace %s: %w", path, err)
	}
	text := string(data)
	return trace.Parse(text), text, nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
