// Package pipeline provides the core visualization pipeline for glasspiral.
//
// This package implements the complete parse → place → render pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read trace text into steps
//  2. Place: Build the scene (spiral positions, sampled dimensions)
//  3. Render: Generate output in various formats (JSON, HTML, SVG, DOT, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    TracePath: "trace.txt",
//	    Formats:   []string{"html"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.Artifacts["html"]
//
// Run individual stages:
//
//	// Parse only
//	steps, err := runner.Parse(ctx, opts)
//
//	// Place with existing steps
//	sc, err := runner.Place(ctx, steps, opts)
//
//	// Render with existing scene
//	artifacts, err := runner.Render(ctx, steps, sc, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/glasspiral/glasspiral/pkg/cache"
	"github.com/glasspiral/glasspiral/pkg/errors"
	"github.com/glasspiral/glasspiral/pkg/scene"
	"github.com/glasspiral/glasspiral/pkg/spiral"
	"github.com/glasspiral/glasspiral/pkg/trace"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultSeed is the default sampling seed for reproducibility.
	DefaultSeed = scene.DefaultSeed

	// DefaultRevealDelay is the stagger between building reveals in the
	// HTML viewer, in milliseconds.
	DefaultRevealDelay = 120

	// DefaultPNGScale is the rasterization scale for PNG output.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatHTML: true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. TracePath wins over TraceText when both are set.
	TracePath string `json:"trace_path,omitempty"`
	TraceText string `json:"trace_text,omitempty"`
	Refresh   bool   `json:"refresh,omitempty"`

	// Place options
	Spiral spiral.Params `json:"spiral"`
	Seed   uint64        `json:"seed,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Title       string   `json:"title,omitempty"`
	RevealDelay int      `json:"reveal_delay,omitempty"` // ms, -1 disables the reveal
	Labels      bool     `json:"labels,omitempty"`       // annotate SVG panes
	Detailed    bool     `json:"detailed,omitempty"`     // detailed call-tree labels
	PNGScale    float64  `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger        `json:"-"`
	Profiles scene.ProfileTable `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Steps is the parsed trace.
	Steps trace.Trace

	// TraceHash is the content hash of the trace text.
	TraceHash string

	// Scene is the placed scene.
	Scene scene.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	StepCount  int
	ParseTime  time.Duration
	PlaceTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SceneHit  bool // Whether the placed scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, html, svg, pdf, dot, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetPlaceDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks parse inputs. An empty trace is legal (it
// places an empty scene), but a trace path must be safe to open.
func (o *Options) ValidateForParse() error {
	if o.TracePath != "" {
		if err := errors.ValidatePath(o.TracePath); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetPlaceDefaults sets default values for scene placement.
func (o *Options) SetPlaceDefaults() {
	if o.Spiral == (spiral.Params{}) {
		o.Spiral = spiral.DefaultParams
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Profiles.Profiles == nil {
		o.Profiles = scene.DefaultProfiles()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	if o.RevealDelay == 0 {
		o.RevealDelay = DefaultRevealDelay
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Title != "" {
		if err := errors.ValidateTitle(o.Title); err != nil {
			return err
		}
	}
	return ValidateFormats(o.Formats)
}

// SceneKeyOpts returns cache key options for scene placement.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		TurnRate:      o.Spiral.TurnRate,
		BaseRadius:    o.Spiral.BaseRadius,
		RadiusGrowth:  o.Spiral.RadiusGrowth,
		HeightPerStep: o.Spiral.HeightPerStep,
		Seed:          o.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Title:       o.Title,
		RevealDelay: o.RevealDelay,
		Labels:      o.Labels,
		Detailed:    o.Detailed,
	}
}
