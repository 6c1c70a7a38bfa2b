// Package styles holds the presentation rules shared by every preview sink:
// the color palette, the embedded CSS and the text sizing rules.
package styles

import (
	"bytes"
	"fmt"
)

// Font sizes in canvas pixels.
const (
	BadgeFontSize    = 10.0
	DimFontSize      = 13.0
	labelSizeRatio   = 0.55
	labelFontSizeMin = 6.0
	labelFontSizeMax = 15.0
)

// FontFamily is the font stack used for all preview text.
const FontFamily = "system-ui"

// Palette defines the colors of one visual theme.
type Palette struct {
	Background string

	FrontFill   string
	FrontStroke string

	GhostStroke string

	CutoutFill     string
	CutoutStroke   string
	SelectedStroke string
	Label          string // diameter text inside a cutout

	BadgeFill   string
	BadgeStroke string

	DimLine string
	DimText string

	Error string
}

// Default is the configurator's dark-panel-on-paper theme.
var Default = Palette{
	Background:     "#f3e2c9",
	FrontFill:      "#1e2630",
	FrontStroke:    "#55687a",
	GhostStroke:    "#3a4855",
	CutoutFill:     "#111",
	CutoutStroke:   "#ff9d4f",
	SelectedStroke: "#ffd28c",
	Label:          "#ffd28c",
	BadgeFill:      "#fff",
	BadgeStroke:    "#222",
	DimLine:        "#555",
	DimText:        "#222",
	Error:          "red",
}

// Stroke widths and opacities shared by the SVG rules and the raster sink.
const (
	FrontStrokeWidth    = 1.5
	GhostStrokeWidth    = 1.2
	GhostEdgeWidth      = 1.0
	GhostBackOpacity    = 0.25
	GhostEdgeOpacity    = 0.35
	CutoutStrokeWidth   = 1.2
	SelectedStrokeWidth = 1.6
	BadgeStrokeWidth    = 0.4
	DimStrokeWidth      = 1.0
)

// GhostDash is the dash pattern for the ghost outline and edges.
var GhostDash = []float64{4, 3}

// RenderDefs writes the <defs> block with one rule per visual class.
func (p Palette) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n    <style>\n")
	fmt.Fprintf(buf, "      .front { fill:%s; stroke:%s; stroke-width:%g; }\n", p.FrontFill, p.FrontStroke, FrontStrokeWidth)
	fmt.Fprintf(buf, "      .ghost-back { fill:none; stroke:%s; stroke-width:%g; stroke-dasharray:4 3; opacity:%g; }\n", p.GhostStroke, GhostStrokeWidth, GhostBackOpacity)
	fmt.Fprintf(buf, "      .ghost-edge { stroke:%s; stroke-width:%g; stroke-dasharray:4 3; opacity:%g; }\n", p.GhostStroke, GhostEdgeWidth, GhostEdgeOpacity)
	fmt.Fprintf(buf, "      .cutout { fill:%s; stroke:%s; stroke-width:%g; }\n", p.CutoutFill, p.CutoutStroke, CutoutStrokeWidth)
	fmt.Fprintf(buf, "      .cutout.selected { stroke:%s; stroke-width:%g; }\n", p.SelectedStroke, SelectedStrokeWidth)
	fmt.Fprintf(buf, "      .badge { font:%gpx %s; fill:%s; stroke:%s; stroke-width:%g; paint-order:stroke; }\n",
		BadgeFontSize, FontFamily, p.BadgeFill, p.BadgeStroke, BadgeStrokeWidth)
	buf.WriteString("    </style>\n  </defs>\n")
}

// LabelFontSize returns the diameter label size for a cutout of displayed
// radius r, kept legible for tiny holes and bounded for huge ones.
func LabelFontSize(r float64) float64 {
	return max(labelFontSizeMin, min(labelFontSizeMax, r*labelSizeRatio))
}
