package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/panelview/pkg/preview/layout"
	"github.com/matzehuels/panelview/pkg/preview/styles"
)

// ParseErrorPrefix starts the text of every error document.
const ParseErrorPrefix = "state parse error: "

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette styles.Palette
}

// WithPalette replaces the default color palette.
func WithPalette(p styles.Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{palette: styles.Default}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG assembles the preview document: background, ghost, front panel,
// cutouts group and dimensions, in that paint order.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 %s %s' preserveAspectRatio='xMidYMid meet'>\n",
		num(layout.ViewWidth), num(layout.ViewHeight))
	r.palette.RenderDefs(&buf)
	fmt.Fprintf(&buf, "  <rect x='0' y='0' width='%s' height='%s' fill='%s' />\n",
		num(layout.ViewWidth), num(layout.ViewHeight), r.palette.Background)

	if l.Ghost != nil {
		renderGhost(&buf, *l.Ghost)
	}
	renderFront(&buf, l.Frame)
	r.renderHoles(&buf, l.Holes)
	if l.Dims != nil {
		r.renderDims(&buf, *l.Dims)
	}

	buf.WriteString("</svg>")
	return buf.Bytes()
}

// RenderErrorSVG returns the minimal document shown in place of a preview
// when the state could not be decoded.
func RenderErrorSVG(err error, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 %s %s'>",
		num(layout.ViewWidth), num(layout.ViewHeight))
	fmt.Fprintf(&buf, "<text x='4' y='14' fill='%s'>%s", r.palette.Error, ParseErrorPrefix)
	_ = xml.EscapeText(&buf, []byte(err.Error()))
	buf.WriteString("</text></svg>")
	return buf.Bytes()
}

func renderFront(buf *bytes.Buffer, f layout.Frame) {
	fmt.Fprintf(buf, "  <rect x='%s' y='%s' width='%s' height='%s' class='front' />\n",
		num(f.X), num(f.Y), num(f.DispW), num(f.DispH))
}

func renderGhost(buf *bytes.Buffer, g layout.Ghost) {
	fmt.Fprintf(buf, "  <rect x='%s' y='%s' width='%s' height='%s' class='ghost-back' />\n",
		num(g.X), num(g.Y), num(g.W), num(g.H))
	for _, e := range g.Edges {
		fmt.Fprintf(buf, "  <line x1='%s' y1='%s' x2='%s' y2='%s' class='ghost-edge' />\n",
			num(e.X1), num(e.Y1), num(e.X2), num(e.Y2))
	}
}

func (r *svgRenderer) renderHoles(buf *bytes.Buffer, holes []layout.Hole) {
	buf.WriteString("  <g class='cutouts'>")
	for _, h := range holes {
		class := "cutout"
		if h.Selected {
			class += " selected"
		}
		x, y := num(h.DispX), num(h.DispY)
		fmt.Fprintf(buf, "<g class='hole'><circle cx='%s' cy='%s' r='%s' class='%s' data-idx='%d' />", x, y, num(h.DispR), class, h.Index)
		fmt.Fprintf(buf, "<text x='%s' y='%s' text-anchor='middle' class='badge'>%s</text>", x, num(h.BadgeY), h.Badge)
		fmt.Fprintf(buf, "<text x='%s' y='%s' text-anchor='middle' dominant-baseline='middle' style='font:%spx %s;fill:%s;'>%.2f\"</text></g>",
			x, y, num(styles.LabelFontSize(h.DispR)), styles.FontFamily, r.palette.Label, h.Diameter)
	}
	buf.WriteString("</g>\n")
}

func (r *svgRenderer) renderDims(buf *bytes.Buffer, d layout.Dimensions) {
	font := fmt.Sprintf("font:%gpx %s;", styles.DimFontSize, styles.FontFamily)
	w, h := d.WidthLine, d.HeightLine

	fmt.Fprintf(buf, "  <line x1='%s' y1='%s' x2='%s' y2='%s' stroke='%s' stroke-width='%g' />\n",
		num(w.X1), num(w.Y1), num(w.X2), num(w.Y2), r.palette.DimLine, styles.DimStrokeWidth)
	fmt.Fprintf(buf, "  <text x='%s' y='%s' text-anchor='middle' fill='%s' style='%s'>W %.2f in</text>\n",
		num(d.WidthLabelX), num(d.WidthLabelY), r.palette.DimText, font, d.Width)
	fmt.Fprintf(buf, "  <line x1='%s' y1='%s' x2='%s' y2='%s' stroke='%s' stroke-width='%g' />\n",
		num(h.X1), num(h.Y1), num(h.X2), num(h.Y2), r.palette.DimLine, styles.DimStrokeWidth)
	fmt.Fprintf(buf, "  <text x='%s' y='%s' text-anchor='start' dominant-baseline='middle' fill='%s' style='%s'>H %.2f in</text>\n",
		num(d.HeightLabelX), num(d.HeightLabelY), r.palette.DimText, font, d.Height)
}

// num formats a coordinate with the shortest representation that round-trips.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
