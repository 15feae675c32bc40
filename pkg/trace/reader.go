// Package trace parses recorded execution traces.
//
// A trace is plain text, one operation record per line:
//
//	TYPE|name|value|address|line|depth
//
// The format is internally generated, so parsing is deliberately
// best-effort: missing trailing fields default to empty strings and
// zeros, non-numeric line/depth fields parse as 0, and malformed lines
// still produce a step rather than an error. Callers never receive a
// parse failure; for N input lines they receive exactly N steps, each
// with Index equal to its 0-based line position.
package trace

import (
	"io"
	"strconv"
	"strings"
)

// fieldSep separates the fields of a trace record.
const fieldSep = "|"

// Parse splits raw trace text into ordered steps. A single trailing
// newline is tolerated; interior blank lines yield steps with empty
// type and zero fields.
func Parse(text string) Trace {
	text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
	if text == "" {
		return Trace{}
	}

	lines := strings.Split(text, "\n")
	steps := make(Trace, len(lines))
	for i, line := range lines {
		steps[i] = parseLine(i, strings.TrimSuffix(line, "\r"))
	}
	return steps
}

// Read consumes r fully and parses the contents as a trace.
// The only possible error is an I/O error from r.
func Read(r io.Reader) (Trace, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}

// parseLine decodes one record. Fields beyond the sixth are ignored.
func parseLine(index int, line string) Step {
	fields := strings.Split(line, fieldSep)

	s := Step{
		Index: index,
		Type:  Type(field(fields, 0)),
	}
	s.Name = field(fields, 1)
	s.Value = field(fields, 2)
	s.Address = field(fields, 3)
	s.Line = atoiOrZero(field(fields, 4))
	s.Depth = atoiOrZero(field(fields, 5))
	return s
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
