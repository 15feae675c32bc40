// Package spiral computes the downward helical path that trace steps
// are placed along.
//
// Placement is closed-form: each point is a pure function of its step
// index and the spiral parameters, with no dependency on neighbouring
// points. Point 0 sits at the top of the helix and later points wind
// down and outward.
package spiral

import "math"

// Params controls the helix shape. The zero value is not useful; start
// from DefaultParams and override fields as needed.
type Params struct {
	// TurnRate is the angle advance per step, in radians.
	TurnRate float64 `json:"turn_rate" toml:"turn_rate"`

	// BaseRadius is the helix radius at step 0.
	BaseRadius float64 `json:"base_radius" toml:"base_radius"`

	// RadiusGrowth widens the helix by this much per step.
	RadiusGrowth float64 `json:"radius_growth" toml:"radius_growth"`

	// HeightPerStep is the vertical drop per step.
	HeightPerStep float64 `json:"height_per_step" toml:"height_per_step"`
}

// DefaultParams is the spiral shape used when no configuration
// overrides it.
var DefaultParams = Params{
	TurnRate:      0.35,
	BaseRadius:    8.0,
	RadiusGrowth:  0.15,
	HeightPerStep: 0.6,
}

// Point is a 3D coordinate on the helix. Y is up.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Angle returns the helix angle at step index i.
func (p Params) Angle(i int) float64 {
	return float64(i) * p.TurnRate
}

// Radius returns the helix radius at step index i.
func (p Params) Radius(i int) float64 {
	return p.BaseRadius + float64(i)*p.RadiusGrowth
}

// TotalHeight returns the vertical extent of an n-step path. Step 0 is
// placed at this height and step n-1 at HeightPerStep, so the path
// descends toward (but never reaches) the ground plane.
func (p Params) TotalHeight(n int) float64 {
	return float64(n) * p.HeightPerStep
}

// At returns the coordinate for step index i on an n-step path.
func (p Params) At(i, n int) Point {
	angle := p.Angle(i)
	radius := p.Radius(i)
	return Point{
		X: math.Cos(angle) * radius,
		Y: p.TotalHeight(n) - float64(i)*p.HeightPerStep,
		Z: math.Sin(angle) * radius,
	}
}

// Path returns the n points of the helix, co-indexed with the trace
// that they place. Safe to compute in any order; this implementation
// is simply sequential.
func (p Params) Path(n int) []Point {
	points := make([]Point, n)
	for i := range points {
		points[i] = p.At(i, n)
	}
	return points
}
