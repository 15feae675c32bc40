package trace_test

import (
	"fmt"

	"github.com/glasspiral/glasspiral/pkg/trace"
)

func ExampleParse() {
	steps := trace.Parse("CALL|main||0x0|1|0\nDECL|x|42|0x4|2|1\n")

	for _, s := range steps {
		fmt.Printf("%d %s %s\n", s.Index, s.Type, s.Label())
	}
	// Output:
	// 0 CALL main
	// 1 DECL x
}

func ExampleParse_malformed() {
	// Parsing never fails: short lines produce steps with defaults.
	steps := trace.Parse("DECL\n")

	s := steps[0]
	fmt.Printf("type=%s name=%q line=%d\n", s.Type, s.Name, s.Line)
	// Output:
	// type=DECL name="" line=0
}
