package pipeline

import (
	"github.com/glasspiral/glasspiral/pkg/scene"
	"github.com/glasspiral/glasspiral/pkg/trace"
)

// PlaceScene builds the scene for a parsed trace. Placement is
// deterministic for a given seed and spiral, which is what makes the
// scene cacheable by content hash.
func PlaceScene(steps trace.Trace, opts Options) scene.Scene {
	opts.SetPlaceDefaults()

	return scene.Build(steps, scene.Options{
		Spiral:   opts.Spiral,
		Profiles: opts.Profiles,
		Seed:     opts.Seed,
	})
}
