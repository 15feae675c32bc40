package scene

import (
	"context"
	"time"
)

// DefaultRevealDelay is the pause between consecutive building
// reveals. The staggering is purely visual pacing, not backpressure.
const DefaultRevealDelay = 120 * time.Millisecond

// RevealAll drains the stage on a fixed cadence, calling show for each
// building as it becomes visible. It returns early with ctx.Err() when
// the context is cancelled, which is how a newer visualization stops a
// still-running reveal from an older one: cancel the old context, Swap
// the stage, start a new RevealAll.
//
// The first building shows immediately; the delay applies between
// reveals.
func RevealAll(ctx context.Context, st *Stage, delay time.Duration, show func(Building)) error {
	if delay <= 0 {
		delay = DefaultRevealDelay
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		b, ok := st.Reveal()
		if !ok {
			return nil
		}
		show(b)
		timer.Reset(delay)
	}
}
