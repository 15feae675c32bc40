package pipeline

import (
	"os"

	"github.com/glasspiral/glasspiral/pkg/errors"
	"github.com/glasspiral/glasspiral/pkg/trace"
)

// traceText resolves the raw trace text from the configured source.
// TracePath wins over TraceText when both are set.
func traceText(opts Options) (string, error) {
	if opts.TracePath == "" {
		return opts.TraceText, nil
	}

	data, err := os.ReadFile(opts.TracePath)
	if os.IsNotExist(err) {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "trace file %s", opts.TracePath)
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "read trace file %s", opts.TracePath)
	}
	return string(data), nil
}

// ParseTrace reads the trace source and splits it into steps. Parsing
// never rejects malformed lines; every input line becomes a step.
func ParseTrace(opts Options) (trace.Trace, string, error) {
	text, err := traceText(opts)
	if err != nil {
		return nil, "", err
	}
	return trace.Parse(text), text, nil
}
