package scene

import (
	"context"
	"testing"
	"time"

	"github.com/glasspiral/glasspiral/pkg/trace"
)

func TestStageSwapAndReveal(t *testing.T) {
	st := NewStage()
	s := Build(trace.ExampleTrace(), Options{})

	if prev := st.Swap(s); prev != nil {
		t.Error("first Swap should return nil previous scene")
	}
	if st.Len() != len(s.Buildings) {
		t.Fatalf("Len = %d, want %d", st.Len(), len(s.Buildings))
	}

	b, ok := st.Reveal()
	if !ok || b.Index != 0 {
		t.Fatalf("first Reveal = (%v, %v), want building 0", b.Index, ok)
	}
	if got := st.Visible(); len(got) != 1 {
		t.Fatalf("Visible after one reveal = %d buildings", len(got))
	}

	for {
		if _, ok := st.Reveal(); !ok {
			break
		}
	}
	if got := len(st.Visible()); got != len(s.Buildings) {
		t.Errorf("fully revealed %d buildings, want %d", got, len(s.Buildings))
	}
}

func TestStageSwapResetsVisibility(t *testing.T) {
	st := NewStage()
	first := Build(trace.ExampleTrace(), Options{})
	st.Swap(first)
	st.Reveal()
	st.Reveal()

	second := Build(trace.Parse("CALL|f|||1\nRETURN|f|||2|1"), Options{})
	prev := st.Swap(second)
	if prev == nil || prev.StepCount != first.StepCount {
		t.Error("Swap should hand back the displaced scene")
	}
	if got := st.Visible(); len(got) != 0 {
		t.Errorf("Swap should hide everything, %d buildings still visible", len(got))
	}
	if st.Len() != 2 {
		t.Errorf("Len = %d, want 2", st.Len())
	}
}

func TestRevealAllShowsEverything(t *testing.T) {
	st := NewStage()
	st.Swap(Build(trace.Parse("CALL|f|||1\nDECL|x|0||2|1\nRETURN|f|||3|1"), Options{}))

	var shown []int
	err := RevealAll(context.Background(), st, time.Millisecond, func(b Building) {
		shown = append(shown, b.Index)
	})
	if err != nil {
		t.Fatalf("RevealAll error: %v", err)
	}
	if len(shown) != 3 {
		t.Fatalf("showed %d buildings, want 3", len(shown))
	}
	for i, idx := range shown {
		if idx != i {
			t.Errorf("reveal order %v, want ascending indices", shown)
			break
		}
	}
}

func TestRevealAllCancel(t *testing.T) {
	st := NewStage()
	st.Swap(Build(trace.ExampleTrace(), Options{}))

	ctx, cancel := context.WithCancel(context.Background())
	shown := 0
	err := RevealAll(ctx, st, time.Hour, func(Building) {
		shown++
		cancel() // cancel after the first reveal; the rest stay pending
	})
	if err != context.Canceled {
		t.Fatalf("RevealAll error = %v, want context.Canceled", err)
	}
	if shown != 1 {
		t.Errorf("showed %d buildings after cancel, want 1", shown)
	}
	if got := len(st.Visible()); got != 1 {
		t.Errorf("%d buildings visible after cancel, want 1", got)
	}
}
