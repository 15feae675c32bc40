package trace

// Type is the operation tag recorded for a step. Any string is a valid
// Type; the named constants cover the tags the visualizer styles
// specially, everything else renders with the default profile.
type Type string

// Known operation types.
const (
	TypeCall   Type = "CALL"
	TypeDecl   Type = "DECL"
	TypeLoop   Type = "LOOP"
	TypeAssign Type = "ASSIGN"
	TypeReturn Type = "RETURN"
	TypeIf     Type = "IF"
	TypeElse   Type = "ELSE"
)

// Step is one recorded operation in an execution trace. Steps are
// parsed once and never mutated; Index is the unique, stable key into
// both the trace and any placement derived from it.
type Step struct {
	Index   int    `json:"index"`
	Type    Type   `json:"type"`
	Name    string `json:"name,omitempty"`
	Value   string `json:"value,omitempty"`
	Address string `json:"address,omitempty"`
	Line    int    `json:"line,omitempty"`
	Depth   int    `json:"depth,omitempty"`
}

// IsCall reports whether the step is a function call.
func (s Step) IsCall() bool { return s.Type == TypeCall }

// IsReturn reports whether the step is a function return.
func (s Step) IsReturn() bool { return s.Type == TypeReturn }

// Label returns a short display label: the name when present,
// otherwise the type tag.
func (s Step) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return string(s.Type)
}

// Trace is an ordered sequence of steps; order is execution order.
type Trace []Step
