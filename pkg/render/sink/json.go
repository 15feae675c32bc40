package sink

import (
	"encoding/json"

	"github.com/glasspiral/glasspiral/pkg/buildinfo"
	"github.com/glasspiral/glasspiral/pkg/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	title   string
	compact bool
}

// WithJSONTitle records a display title in the JSON output.
func WithJSONTitle(title string) JSONOption { return func(r *jsonRenderer) { r.title = title } }

// WithJSONCompact disables pretty-printing. Useful for HTTP responses
// where the payload is consumed by machines.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	Generator string      `json:"generator"`
	Version   string      `json:"version"`
	Title     string      `json:"title,omitempty"`
	Scene     scene.Scene `json:"scene"`
}

// RenderJSON exports the scene as a JSON document. This is the primary
// data interchange format for glasspiral, enabling:
//
//   - Feeding external 3D renderers
//   - Caching placed scenes for fast re-rendering
//   - Round-trip rendering (re-import and render identically)
//
// The document wraps the scene with generator metadata so consumers can
// detect format drift across versions.
//
// RenderJSON returns an error only if JSON marshaling fails (should not
// happen with well-formed scenes). It does not modify sc and is safe to
// call concurrently.
func RenderJSON(sc scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Generator: "glasspiral",
		Version:   buildinfo.Version,
		Title:     r.title,
		Scene:     sc,
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
