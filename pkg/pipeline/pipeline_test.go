package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/glasspiral/glasspiral/pkg/cache"
	"github.com/glasspiral/glasspiral/pkg/errors"
	"github.com/glasspiral/glasspiral/pkg/trace"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"html", false},
		{"svg", false},
		{"dot", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "html"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{TraceText: trace.Example}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, DefaultSeed)
	}
	if opts.Spiral.TurnRate == 0 {
		t.Error("spiral defaults not applied")
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatHTML {
		t.Errorf("Formats = %v, want [html]", opts.Formats)
	}
	if opts.RevealDelay != DefaultRevealDelay {
		t.Errorf("RevealDelay = %d, want %d", opts.RevealDelay, DefaultRevealDelay)
	}
}

func TestValidateRejectsTraversalPath(t *testing.T) {
	opts := Options{TracePath: "../secrets"}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("err = %v, want INVALID_PATH", err)
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		TraceText: trace.Example,
		Formats:   []string{"json", "svg", "dot"},
		Title:     "demo",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.StepCount != len(result.Steps) {
		t.Error("stats step count should match parsed steps")
	}
	if result.Scene.StepCount != len(result.Steps) {
		t.Errorf("scene steps = %d, want %d", result.Scene.StepCount, len(result.Steps))
	}
	if result.TraceHash == "" {
		t.Error("trace hash should be set")
	}
	for _, format := range []string{"json", "svg", "dot"} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("artifact %s is empty", format)
		}
	}
	if result.CacheInfo.SceneHit || result.CacheInfo.RenderHit {
		t.Error("first run with a null cache should not hit")
	}
}

func TestExecuteFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.txt")
	if err := os.WriteFile(path, []byte(trace.Example), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		TracePath: path,
		Formats:   []string{"json"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Steps) == 0 {
		t.Error("file trace should parse to steps")
	}
}

func TestExecuteMissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{
		TracePath: filepath.Join(t.TempDir(), "nope.txt"),
	})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestExecuteEmptyTrace(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		TraceText: "",
		Formats:   []string{"json"},
	})
	if err != nil {
		t.Fatalf("empty trace should place an empty scene: %v", err)
	}
	if result.Scene.StepCount != 0 {
		t.Errorf("StepCount = %d, want 0", result.Scene.StepCount)
	}
}

func TestExecuteSceneCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{TraceText: trace.Example, Formats: []string{"json"}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.SceneHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.SceneHit {
		t.Error("second run should hit the scene cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if string(first.Artifacts["json"]) != string(second.Artifacts["json"]) {
		t.Error("cached artifact should be byte-identical")
	}
}

func TestExecuteRefreshBypassesSceneCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{TraceText: trace.Example, Formats: []string{"json"}}
	if _, err := runner.Execute(context.Background(), opts); err != nil {
		t.Fatal(err)
	}

	opts.Refresh = true
	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.SceneHit {
		t.Error("refresh should bypass the scene cache")
	}
}

func TestExecuteDifferentSeedsDifferentScenes(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	a, err := runner.Execute(context.Background(), Options{TraceText: trace.Example, Seed: 1, Formats: []string{"json"}})
	if err != nil {
		t.Fatal(err)
	}
	b, err := runner.Execute(context.Background(), Options{TraceText: trace.Example, Seed: 2, Formats: []string{"json"}})
	if err != nil {
		t.Fatal(err)
	}
	if string(a.Artifacts["json"]) == string(b.Artifacts["json"]) {
		t.Error("different seeds should produce different scenes")
	}
}
