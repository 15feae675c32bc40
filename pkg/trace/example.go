package trace

// Example is the bundled demo trace: a main call declaring and summing
// an accumulator in a loop, then returning. It backs the --example CLI
// flags, the viewer's "Load Example" action, and the test suite.
const Example = `CALL|main|||1
DECL|sum|0|0x7ffc1a20|2|1
DECL|i|0|0x7ffc1a24|3|1
LOOP|i < 10||0x7ffc1a24|3|1
ASSIGN|sum|0|0x7ffc1a20|4|2
ASSIGN|i|1|0x7ffc1a24|3|2
ASSIGN|sum|1|0x7ffc1a20|4|2
ASSIGN|i|2|0x7ffc1a24|3|2
ASSIGN|sum|3|0x7ffc1a20|4|2
ASSIGN|i|3|0x7ffc1a24|3|2
ASSIGN|sum|6|0x7ffc1a20|4|2
ASSIGN|i|4|0x7ffc1a24|3|2
RETURN|main|6||6|1
`

// ExampleTrace parses the bundled demo trace.
func ExampleTrace() Trace {
	return Parse(Example)
}
