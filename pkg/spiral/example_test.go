package spiral_test

import (
	"fmt"

	"github.com/glasspiral/glasspiral/pkg/spiral"
)

func ExampleParams_At() {
	p := spiral.Params{
		TurnRate:      0.5,
		BaseRadius:    10,
		RadiusGrowth:  0,
		HeightPerStep: 1,
	}

	// The first point of a 4-step path sits at the top of the helix.
	pt := p.At(0, 4)
	fmt.Printf("x=%.1f y=%.1f z=%.1f\n", pt.X, pt.Y, pt.Z)
	// Output:
	// x=10.0 y=4.0 z=0.0
}

func ExampleParams_Path() {
	p := spiral.DefaultParams

	points := p.Path(3)
	for i, pt := range points {
		fmt.Printf("step %d: y=%.1f\n", i, pt.Y)
	}
	// Output:
	// step 0: y=1.8
	// step 1: y=1.2
	// step 2: y=0.6
}
