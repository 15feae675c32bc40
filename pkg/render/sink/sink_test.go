package sink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/glasspiral/glasspiral/pkg/scene"
	"github.com/glasspiral/glasspiral/pkg/trace"
)

func demoScene(t *testing.T) scene.Scene {
	t.Helper()
	return scene.Build(trace.ExampleTrace(), scene.Options{})
}

func TestRenderJSON(t *testing.T) {
	sc := demoScene(t)

	data, err := RenderJSON(sc, WithJSONTitle("demo"))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out struct {
		Generator string      `json:"generator"`
		Title     string      `json:"title"`
		Scene     scene.Scene `json:"scene"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if out.Generator != "glasspiral" {
		t.Errorf("generator = %q", out.Generator)
	}
	if out.Title != "demo" {
		t.Errorf("title = %q", out.Title)
	}
	if len(out.Scene.Buildings) != sc.StepCount {
		t.Errorf("buildings = %d, want %d", len(out.Scene.Buildings), sc.StepCount)
	}
}

func TestRenderJSONCompact(t *testing.T) {
	sc := demoScene(t)

	pretty, err := RenderJSON(sc)
	if err != nil {
		t.Fatal(err)
	}
	compact, err := RenderJSON(sc, WithJSONCompact())
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(pretty), "\n") {
		t.Error("default output should be indented")
	}
	if strings.Contains(string(compact), "\n  ") {
		t.Error("compact output should not be indented")
	}
}

func TestRenderSVG(t *testing.T) {
	sc := demoScene(t)
	svg := string(RenderSVG(sc, WithSVGTitle("demo & test")))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("missing svg root element")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("missing closing tag")
	}
	if got := strings.Count(svg, "<polygon"); got != sc.StepCount {
		t.Errorf("polygons = %d, want one per step (%d)", got, sc.StepCount)
	}
	// Title is escaped.
	if !strings.Contains(svg, "demo &amp; test") {
		t.Error("title should be XML-escaped")
	}
	// Every building color shows up.
	for _, b := range sc.Buildings {
		if !strings.Contains(svg, b.Color) {
			t.Errorf("color %s missing from output", b.Color)
		}
	}
}

func TestRenderSVGLabels(t *testing.T) {
	sc := demoScene(t)
	plain := string(RenderSVG(sc))
	labeled := string(RenderSVG(sc, WithSVGLabels()))

	if strings.Contains(plain, "<text") {
		t.Error("labels should be off by default")
	}
	if !strings.Contains(labeled, "<text") {
		t.Error("WithSVGLabels should draw text")
	}
}

func TestRenderHTML(t *testing.T) {
	sc := demoScene(t)

	html, err := RenderHTML(sc, WithHTMLTitle("my spiral"), WithHTMLRevealDelay(80))
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	page := string(html)

	if !strings.HasPrefix(page, "<!DOCTYPE html>") {
		t.Error("missing doctype")
	}
	if !strings.Contains(page, "<title>my spiral</title>") {
		t.Error("title not rendered")
	}
	if !strings.Contains(page, "const revealDelay = 80;") {
		t.Error("reveal delay not injected")
	}

	// The embedded scene must be parseable JSON.
	start := strings.Index(page, `<script type="application/json" id="scene-data">`)
	if start < 0 {
		t.Fatal("embedded scene block missing")
	}
	start += len(`<script type="application/json" id="scene-data">`)
	end := strings.Index(page[start:], "</script>")
	if end < 0 {
		t.Fatal("embedded scene block unterminated")
	}
	var doc struct {
		Scene scene.Scene `json:"scene"`
	}
	if err := json.Unmarshal([]byte(page[start:start+end]), &doc); err != nil {
		t.Fatalf("embedded scene is not valid JSON: %v", err)
	}
	if doc.Scene.StepCount != sc.StepCount {
		t.Errorf("embedded step_count = %d, want %d", doc.Scene.StepCount, sc.StepCount)
	}
}
