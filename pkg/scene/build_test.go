package scene

import (
	"testing"

	"github.com/glasspiral/glasspiral/pkg/trace"
)

// midpointSampler always returns the middle of the range, making
// building sizes predictable.
type midpointSampler struct{}

func (midpointSampler) Sample(r Range) float64 { return r.Min + r.Span()/2 }

func TestBuildCoIndexed(t *testing.T) {
	steps := trace.ExampleTrace()
	s := Build(steps, Options{})

	if s.StepCount != len(steps) {
		t.Fatalf("StepCount = %d, want %d", s.StepCount, len(steps))
	}
	if len(s.Buildings) != len(steps) {
		t.Fatalf("got %d buildings for %d steps", len(s.Buildings), len(steps))
	}
	for i, b := range s.Buildings {
		if b.Index != i {
			t.Errorf("building %d has Index %d", i, b.Index)
		}
		if b.Type != steps[i].Type {
			t.Errorf("building %d has type %q, want %q", i, b.Type, steps[i].Type)
		}
	}
}

func TestBuildParentOffset(t *testing.T) {
	steps := trace.Parse("DECL|before\nCALL|f|||1\nASSIGN|x|1||2|1\nCALL|g|||3|1\nDECL|y|0||4|2")
	s := Build(steps, Options{Sampler: midpointSampler{}})

	profiles := DefaultProfiles()
	callHeight := profiles.Lookup(trace.TypeCall).Height
	wantParent := callHeight.Min + callHeight.Span()/2

	// A step before any CALL has no parent, so no offset.
	if got := s.Buildings[0].YOffset; got != 0 {
		t.Errorf("pre-call step YOffset = %v, want 0", got)
	}
	// CALL steps themselves are never offset.
	if got := s.Buildings[1].YOffset; got != 0 {
		t.Errorf("CALL YOffset = %v, want 0", got)
	}
	// Children ride 0.3x the enclosing call's height.
	if got, want := s.Buildings[2].YOffset, wantParent*0.3; got != want {
		t.Errorf("child YOffset = %v, want %v", got, want)
	}
	// A second CALL resets the context; its own child uses the new height
	// (identical here because the sampler is deterministic per type).
	if got, want := s.Buildings[4].YOffset, wantParent*0.3; got != want {
		t.Errorf("second child YOffset = %v, want %v", got, want)
	}
}

func TestBuildUnknownTypeUsesDefaultProfile(t *testing.T) {
	steps := trace.Parse("FROBNICATE|x")
	s := Build(steps, Options{Sampler: midpointSampler{}})

	def := DefaultProfiles().Default
	if s.Buildings[0].Color != def.Color {
		t.Errorf("unknown type color = %q, want default %q", s.Buildings[0].Color, def.Color)
	}
	wantHeight := def.Height.Min + def.Height.Span()/2
	if s.Buildings[0].Dims.Height != wantHeight {
		t.Errorf("unknown type height = %v, want %v", s.Buildings[0].Dims.Height, wantHeight)
	}
}

func TestBuildDeterministicPerSeed(t *testing.T) {
	steps := trace.ExampleTrace()

	a := Build(steps, Options{Seed: 7})
	b := Build(steps, Options{Seed: 7})
	c := Build(steps, Options{Seed: 8})

	for i := range a.Buildings {
		if a.Buildings[i] != b.Buildings[i] {
			t.Fatalf("same seed diverged at building %d", i)
		}
	}

	same := true
	for i := range a.Buildings {
		if a.Buildings[i].Dims != c.Buildings[i].Dims {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical dimensions")
	}
}

func TestSampleWithinRanges(t *testing.T) {
	s := NewSampler(1)
	r := Range{Min: 2, Max: 5}
	for i := 0; i < 100; i++ {
		v := s.Sample(r)
		if v < r.Min || v > r.Max {
			t.Fatalf("sample %v outside [%v, %v]", v, r.Min, r.Max)
		}
	}

	// Degenerate range collapses to Min.
	if got := s.Sample(Range{Min: 3, Max: 3}); got != 3 {
		t.Errorf("degenerate range sampled %v, want 3", got)
	}
}

func TestSceneRoundTrip(t *testing.T) {
	s := Build(trace.ExampleTrace(), Options{})

	data, err := MarshalScene(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := UnmarshalScene(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.StepCount != s.StepCount {
		t.Errorf("StepCount = %d, want %d", got.StepCount, s.StepCount)
	}
	if got.Buildings[3] != s.Buildings[3] {
		t.Errorf("building 3 changed in round trip")
	}
}

func TestUnmarshalSceneRejectsMismatch(t *testing.T) {
	if _, err := UnmarshalScene([]byte(`{"step_count": 2, "buildings": []}`)); err == nil {
		t.Error("mismatched step_count should be rejected")
	}
}
