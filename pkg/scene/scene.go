// Package scene turns a parsed trace into a renderable scene
// description: one stained-glass building per step, placed on a
// downward spiral.
//
// The scene format is the data interchange contract with the external
// renderer (the browser viewer, the SVG elevation, or anything else
// that consumes the JSON). It carries positions, trapezoid dimensions,
// and colors; mesh construction, materials, lighting, and camera work
// are the renderer's problem.
package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/glasspiral/glasspiral/pkg/spiral"
	"github.com/glasspiral/glasspiral/pkg/trace"
)

// Dims are the sampled trapezoid dimensions of one building.
type Dims struct {
	Height      float64 `json:"height" bson:"height"`
	TopWidth    float64 `json:"top_width" bson:"top_width"`
	BottomWidth float64 `json:"bottom_width" bson:"bottom_width"`
	Depth       float64 `json:"depth" bson:"depth"`
}

// Building is the placed, sized, colored representation of one step.
// Index is co-indexed with the source trace.
type Building struct {
	Index    int          `json:"index" bson:"index"`
	Type     trace.Type   `json:"type" bson:"type"`
	Label    string       `json:"label,omitempty" bson:"label,omitempty"`
	Value    string       `json:"value,omitempty" bson:"value,omitempty"`
	Line     int          `json:"line,omitempty" bson:"line,omitempty"`
	Depth    int          `json:"depth,omitempty" bson:"depth,omitempty"`
	Position spiral.Point `json:"position" bson:"position"`

	// YOffset raises non-call steps by a fraction of the enclosing
	// call's height; the renderer adds it to Position.Y.
	YOffset float64 `json:"y_offset,omitempty" bson:"y_offset,omitempty"`

	Dims  Dims   `json:"dims" bson:"dims"`
	Color string `json:"color" bson:"color"`
}

// Scene is the complete placement output for one trace.
type Scene struct {
	Seed      uint64        `json:"seed" bson:"seed"`
	Spiral    spiral.Params `json:"spiral" bson:"spiral"`
	StepCount int           `json:"step_count" bson:"step_count"`
	Buildings []Building    `json:"buildings" bson:"buildings"`
}

// MarshalScene serializes a scene to pretty-printed JSON.
func MarshalScene(s Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalScene deserializes JSON bytes into a Scene and checks the
// co-indexing invariant.
func UnmarshalScene(data []byte) (Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("unmarshal scene: %w", err)
	}
	if s.StepCount != len(s.Buildings) {
		return Scene{}, fmt.Errorf("scene step_count %d does not match %d buildings", s.StepCount, len(s.Buildings))
	}
	return s, nil
}

// WriteSceneFile writes a scene to a JSON file.
func WriteSceneFile(s Scene, path string) error {
	data, err := MarshalScene(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadSceneFile reads a scene from a JSON file.
func ReadSceneFile(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalScene(data)
}
