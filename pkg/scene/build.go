package scene

import (
	"github.com/glasspiral/glasspiral/pkg/spiral"
	"github.com/glasspiral/glasspiral/pkg/trace"
)

// childOffsetFraction is the fraction of the enclosing call's height
// that non-call steps are raised by.
const childOffsetFraction = 0.3

// Options configures scene building.
type Options struct {
	Spiral   spiral.Params
	Profiles ProfileTable
	Seed     uint64

	// Sampler overrides the seeded default; used by tests that want a
	// fixed-size scene.
	Sampler Sampler
}

// setDefaults fills zero-valued options in place.
func (o *Options) setDefaults() {
	if o.Spiral == (spiral.Params{}) {
		o.Spiral = spiral.DefaultParams
	}
	if o.Profiles.Profiles == nil {
		o.Profiles = DefaultProfiles()
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Sampler == nil {
		o.Sampler = NewSampler(o.Seed)
	}
}

// Build places every step of the trace on the spiral and sizes it from
// its type profile. The only carried state is the height of the most
// recent CALL: later non-call steps sit childOffsetFraction of that
// height above their spiral point, and the next CALL replaces it.
func Build(steps trace.Trace, opts Options) Scene {
	opts.setDefaults()

	n := len(steps)
	points := opts.Spiral.Path(n)
	buildings := make([]Building, n)

	parentHeight := 0.0
	for i, step := range steps {
		profile := opts.Profiles.Lookup(step.Type)
		dims := SampleDims(opts.Sampler, profile)

		var offset float64
		if step.IsCall() {
			parentHeight = dims.Height
		} else if parentHeight > 0 {
			offset = parentHeight * childOffsetFraction
		}

		buildings[i] = Building{
			Index:    step.Index,
			Type:     step.Type,
			Label:    step.Label(),
			Value:    step.Value,
			Line:     step.Line,
			Depth:    step.Depth,
			Position: points[i],
			YOffset:  offset,
			Dims:     dims,
			Color:    profile.Color,
		}
	}

	return Scene{
		Seed:      opts.Seed,
		Spiral:    opts.Spiral,
		StepCount: n,
		Buildings: buildings,
	}
}
