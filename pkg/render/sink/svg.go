package sink

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/glasspiral/glasspiral/pkg/scene"
)

const (
	// leadColor is the stroke around every pane, imitating the lead
	// came of a stained-glass window.
	leadColor = "#1a1a1a"

	svgMargin = 20.0
	svgScale  = 10.0
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title      string
	background string
	labels     bool
}

// WithSVGTitle draws a title above the spiral.
func WithSVGTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithSVGBackground sets the backdrop color (default transparent).
func WithSVGBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithSVGLabels annotates each pane with its step label.
func WithSVGLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// pane is one building projected onto the front elevation.
type pane struct {
	building scene.Building
	x        float64 // projected center
	baseY    float64 // world-space bottom of the pane
	z        float64 // depth for paint ordering
}

// RenderSVG renders the scene as a 2D front elevation: the spiral seen
// from the side, each building drawn as a stained-glass trapezoid.
// Buildings farther from the viewer are painted first so nearer panes
// occlude them.
func RenderSVG(sc scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	panes := buildPanes(sc)
	minX, maxX, maxY := elevationBounds(sc, panes)

	width := (maxX-minX)*svgScale + 2*svgMargin
	height := maxY*svgScale + 2*svgMargin
	if r.title != "" {
		height += 30
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill=%q/>`+"\n", r.background)
	}
	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="22" text-anchor="middle" font-family="sans-serif" font-size="16">%s</text>`+"\n",
			width/2, escapeXML(r.title))
	}

	toScreenX := func(x float64) float64 { return (x-minX)*svgScale + svgMargin }
	toScreenY := func(y float64) float64 {
		sy := (maxY-y)*svgScale + svgMargin
		if r.title != "" {
			sy += 30
		}
		return sy
	}

	for _, p := range panes {
		renderPane(&buf, &r, p, toScreenX, toScreenY)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// buildPanes projects every building and sorts back to front.
func buildPanes(sc scene.Scene) []pane {
	panes := make([]pane, 0, len(sc.Buildings))
	for _, b := range sc.Buildings {
		panes = append(panes, pane{
			building: b,
			x:        b.Position.X,
			baseY:    b.Position.Y + b.YOffset,
			z:        b.Position.Z,
		})
	}
	slices.SortStableFunc(panes, func(a, b pane) int {
		return cmp.Compare(a.z, b.z)
	})
	return panes
}

func elevationBounds(sc scene.Scene, panes []pane) (minX, maxX, maxY float64) {
	maxY = sc.Spiral.TotalHeight(sc.StepCount)
	for _, p := range panes {
		half := p.building.Dims.BottomWidth / 2
		if w := p.building.Dims.TopWidth / 2; w > half {
			half = w
		}
		minX = min(minX, p.x-half)
		maxX = max(maxX, p.x+half)
		if top := p.baseY + p.building.Dims.Height; top > maxY {
			maxY = top
		}
	}
	return minX, maxX, maxY
}

func renderPane(buf *bytes.Buffer, r *svgRenderer, p pane, sx, sy func(float64) float64) {
	d := p.building.Dims

	bottomY := sy(p.baseY)
	topY := sy(p.baseY + d.Height)
	blX := sx(p.x - d.BottomWidth/2)
	brX := sx(p.x + d.BottomWidth/2)
	tlX := sx(p.x - d.TopWidth/2)
	trX := sx(p.x + d.TopWidth/2)

	fmt.Fprintf(buf,
		`  <polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill=%q fill-opacity="0.85" stroke=%q stroke-width="1"/>`+"\n",
		blX, bottomY, brX, bottomY, trX, topY, tlX, topY,
		p.building.Color, leadColor)

	if r.labels && p.building.Label != "" {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="8">%s</text>`+"\n",
			sx(p.x), topY-2, escapeXML(p.building.Label))
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
