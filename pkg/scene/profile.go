package scene

import "github.com/glasspiral/glasspiral/pkg/trace"

// Range is an inclusive [Min, Max] interval that a dimension is
// sampled from.
type Range struct {
	Min float64 `json:"min" toml:"min"`
	Max float64 `json:"max" toml:"max"`
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Profile is the geometric envelope for one operation type: each
// building drawn for a step of that type samples its trapezoid
// dimensions from these ranges and is tinted with Color.
type Profile struct {
	Height      Range  `json:"height" toml:"height"`
	TopWidth    Range  `json:"top_width" toml:"top_width"`
	BottomWidth Range  `json:"bottom_width" toml:"bottom_width"`
	Depth       Range  `json:"depth" toml:"depth"`
	Color       string `json:"color" toml:"color"`
}

// ProfileTable maps operation types to their profiles. Lookups for
// unknown types fall back to the Default profile, never fail.
type ProfileTable struct {
	Profiles map[trace.Type]Profile `toml:"profiles"`
	Default  Profile                `toml:"default"`
}

// DefaultProfiles is the stained-glass palette used when no
// configuration overrides it. Calls tower over the surrounding steps;
// returns are squat and wide.
func DefaultProfiles() ProfileTable {
	return ProfileTable{
		Profiles: map[trace.Type]Profile{
			trace.TypeCall: {
				Height:      Range{Min: 4.0, Max: 6.5},
				TopWidth:    Range{Min: 1.0, Max: 1.6},
				BottomWidth: Range{Min: 1.8, Max: 2.6},
				Depth:       Range{Min: 1.8, Max: 2.6},
				Color:       "#d4a017", // amber
			},
			trace.TypeDecl: {
				Height:      Range{Min: 1.6, Max: 2.6},
				TopWidth:    Range{Min: 0.8, Max: 1.2},
				BottomWidth: Range{Min: 1.1, Max: 1.7},
				Depth:       Range{Min: 1.1, Max: 1.7},
				Color:       "#2b6cb0", // cobalt
			},
			trace.TypeLoop: {
				Height:      Range{Min: 2.8, Max: 4.2},
				TopWidth:    Range{Min: 1.2, Max: 1.8},
				BottomWidth: Range{Min: 1.4, Max: 2.0},
				Depth:       Range{Min: 1.4, Max: 2.0},
				Color:       "#6b46c1", // violet
			},
			trace.TypeAssign: {
				Height:      Range{Min: 1.0, Max: 1.8},
				TopWidth:    Range{Min: 0.7, Max: 1.1},
				BottomWidth: Range{Min: 0.9, Max: 1.4},
				Depth:       Range{Min: 0.9, Max: 1.4},
				Color:       "#2f855a", // forest
			},
			trace.TypeReturn: {
				Height:      Range{Min: 0.8, Max: 1.4},
				TopWidth:    Range{Min: 1.4, Max: 2.0},
				BottomWidth: Range{Min: 1.8, Max: 2.6},
				Depth:       Range{Min: 1.8, Max: 2.6},
				Color:       "#c53030", // ruby
			},
			trace.TypeIf: {
				Height:      Range{Min: 2.0, Max: 3.2},
				TopWidth:    Range{Min: 0.9, Max: 1.4},
				BottomWidth: Range{Min: 1.2, Max: 1.8},
				Depth:       Range{Min: 1.2, Max: 1.8},
				Color:       "#dd6b20", // copper
			},
			trace.TypeElse: {
				Height:      Range{Min: 2.0, Max: 3.2},
				TopWidth:    Range{Min: 0.9, Max: 1.4},
				BottomWidth: Range{Min: 1.2, Max: 1.8},
				Depth:       Range{Min: 1.2, Max: 1.8},
				Color:       "#319795", // teal
			},
		},
		Default: Profile{
			Height:      Range{Min: 1.2, Max: 2.0},
			TopWidth:    Range{Min: 0.8, Max: 1.2},
			BottomWidth: Range{Min: 1.0, Max: 1.5},
			Depth:       Range{Min: 1.0, Max: 1.5},
			Color:       "#718096", // slate
		},
	}
}

// Lookup returns the profile for t, or the default profile when t has
// no entry.
func (pt ProfileTable) Lookup(t trace.Type) Profile {
	if p, ok := pt.Profiles[t]; ok {
		return p
	}
	return pt.Default
}
