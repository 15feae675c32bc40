package scene

import "math/rand/v2"

// Sampler draws a value uniformly from a range. Builders accept a
// Sampler so the per-step size jitter is reproducible: the same seed
// always produces the same scene, which keeps renders cacheable and
// tests deterministic.
type Sampler interface {
	Sample(r Range) float64
}

// DefaultSeed is the sampler seed used when callers don't provide one.
const DefaultSeed = uint64(42)

type seededSampler struct {
	rng *rand.Rand
}

// NewSampler returns a deterministic uniform sampler for the given
// seed.
func NewSampler(seed uint64) Sampler {
	return &seededSampler{rng: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

func (s *seededSampler) Sample(r Range) float64 {
	if r.Span() <= 0 {
		return r.Min
	}
	return r.Min + s.rng.Float64()*r.Span()
}

// SampleDims draws all four trapezoid dimensions from a profile.
func SampleDims(s Sampler, p Profile) Dims {
	return Dims{
		Height:      s.Sample(p.Height),
		TopWidth:    s.Sample(p.TopWidth),
		BottomWidth: s.Sample(p.BottomWidth),
		Depth:       s.Sample(p.Depth),
	}
}
