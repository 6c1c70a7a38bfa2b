package sink

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/panelview/pkg/errors"
	"github.com/matzehuels/panelview/pkg/preview/layout"
	"github.com/matzehuels/panelview/pkg/preview/styles"
)

// DefaultPNGScale renders at twice the canvas resolution.
const DefaultPNGScale = 2.0

// MaxPNGScale caps the raster size at 7680x5760.
const MaxPNGScale = 16.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	palette styles.Palette
	scale   float64
	dc      *gg.Context
	faces   map[float64]font.Face
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGPalette replaces the default color palette.
func WithPNGPalette(p styles.Palette) PNGOption {
	return func(r *pngRenderer) { r.palette = p }
}

// RenderPNG rasterizes the layout in-process. It paints the same layers as
// [RenderSVG] and needs no external tools.
func RenderPNG(l layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{palette: styles.Default, scale: DefaultPNGScale}
	for _, opt := range opts {
		opt(&r)
	}
	if !(r.scale > 0) || r.scale > MaxPNGScale {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale %v out of range (0, %v]", r.scale, MaxPNGScale)
	}

	w := int(math.Round(layout.ViewWidth * r.scale))
	h := int(math.Round(layout.ViewHeight * r.scale))
	r.dc = gg.NewContext(w, h)

	if err := r.paint(l); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) paint(l layout.Layout) error {
	p := r.palette
	dc := r.dc

	if err := r.setColor(p.Background, 1); err != nil {
		return err
	}
	dc.Clear()

	if l.Ghost != nil {
		if err := r.paintGhost(*l.Ghost); err != nil {
			return err
		}
	}

	f := l.Frame
	if drawable(f.X, f.Y, f.DispW, f.DispH) {
		dc.DrawRectangle(r.px(f.X), r.px(f.Y), r.px(f.DispW), r.px(f.DispH))
		if err := r.fillStroke(p.FrontFill, p.FrontStroke, styles.FrontStrokeWidth); err != nil {
			return err
		}
	}

	for _, h := range l.Holes {
		if err := r.paintHole(h); err != nil {
			return err
		}
	}

	if l.Dims != nil {
		return r.paintDims(*l.Dims)
	}
	return nil
}

func (r *pngRenderer) paintGhost(g layout.Ghost) error {
	dc := r.dc
	dash := make([]float64, len(styles.GhostDash))
	for i, d := range styles.GhostDash {
		dash[i] = r.px(d)
	}
	dc.SetDash(dash...)
	defer dc.SetDash()

	if err := r.setColor(r.palette.GhostStroke, styles.GhostBackOpacity); err != nil {
		return err
	}
	if drawable(g.X, g.Y, g.W, g.H) {
		dc.DrawRectangle(r.px(g.X), r.px(g.Y), r.px(g.W), r.px(g.H))
		dc.SetLineWidth(r.px(styles.GhostStrokeWidth))
		dc.Stroke()
	}

	if err := r.setColor(r.palette.GhostStroke, styles.GhostEdgeOpacity); err != nil {
		return err
	}
	dc.SetLineWidth(r.px(styles.GhostEdgeWidth))
	for _, e := range g.Edges {
		r.strokeLine(e)
	}
	return nil
}

func (r *pngRenderer) paintHole(h layout.Hole) error {
	p := r.palette
	dc := r.dc

	// A degenerate frame yields NaN or infinite geometry, which the
	// rasterizer never finishes filling.
	if !drawable(h.DispX, h.DispY, h.DispR, h.BadgeY) {
		return nil
	}

	stroke, width := p.CutoutStroke, styles.CutoutStrokeWidth
	if h.Selected {
		stroke, width = p.SelectedStroke, styles.SelectedStrokeWidth
	}
	dc.DrawCircle(r.px(h.DispX), r.px(h.DispY), r.px(h.DispR))
	if err := r.fillStroke(p.CutoutFill, stroke, width); err != nil {
		return err
	}

	// Badge: outline first, then fill, like paint-order:stroke.
	dc.SetFontFace(r.face(r.px(styles.BadgeFontSize)))
	if err := r.setColor(p.BadgeStroke, 1); err != nil {
		return err
	}
	o := r.px(styles.BadgeStrokeWidth)
	for _, d := range [][2]float64{{-o, 0}, {o, 0}, {0, -o}, {0, o}} {
		dc.DrawStringAnchored(string(h.Badge), r.px(h.DispX)+d[0], r.px(h.BadgeY)+d[1], 0.5, 0)
	}
	if err := r.setColor(p.BadgeFill, 1); err != nil {
		return err
	}
	dc.DrawStringAnchored(string(h.Badge), r.px(h.DispX), r.px(h.BadgeY), 0.5, 0)

	dc.SetFontFace(r.face(r.px(styles.LabelFontSize(h.DispR))))
	if err := r.setColor(p.Label, 1); err != nil {
		return err
	}
	dc.DrawStringAnchored(fmt.Sprintf("%.2f\"", h.Diameter), r.px(h.DispX), r.px(h.DispY), 0.5, 0.35)
	return nil
}

func (r *pngRenderer) paintDims(d layout.Dimensions) error {
	p := r.palette
	dc := r.dc

	if err := r.setColor(p.DimLine, 1); err != nil {
		return err
	}
	dc.SetLineWidth(r.px(styles.DimStrokeWidth))
	for _, s := range []layout.Segment{d.WidthLine, d.HeightLine} {
		r.strokeLine(s)
	}

	dc.SetFontFace(r.face(r.px(styles.DimFontSize)))
	if err := r.setColor(p.DimText, 1); err != nil {
		return err
	}
	if drawable(d.WidthLabelX, d.WidthLabelY) {
		dc.DrawStringAnchored(fmt.Sprintf("W %.2f in", d.Width), r.px(d.WidthLabelX), r.px(d.WidthLabelY), 0.5, 0)
	}
	if drawable(d.HeightLabelX, d.HeightLabelY) {
		dc.DrawStringAnchored(fmt.Sprintf("H %.2f in", d.Height), r.px(d.HeightLabelX), r.px(d.HeightLabelY), 0, 0.35)
	}
	return nil
}

// strokeLine strokes s with the current color and width, skipping segments
// that are not drawable.
func (r *pngRenderer) strokeLine(s layout.Segment) {
	if !drawable(s.X1, s.Y1, s.X2, s.Y2) {
		return
	}
	r.dc.DrawLine(r.px(s.X1), r.px(s.Y1), r.px(s.X2), r.px(s.Y2))
	r.dc.Stroke()
}

// maxCoord bounds canvas coordinates the rasterizer is asked to handle.
const maxCoord = 1e6

// drawable reports whether every v is a finite canvas coordinate within
// ±maxCoord.
func drawable(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.Abs(v) > maxCoord {
			return false
		}
	}
	return true
}

func (r *pngRenderer) fillStroke(fill, stroke string, width float64) error {
	if err := r.setColor(fill, 1); err != nil {
		return err
	}
	r.dc.FillPreserve()
	if err := r.setColor(stroke, 1); err != nil {
		return err
	}
	r.dc.SetLineWidth(r.px(width))
	r.dc.Stroke()
	return nil
}

func (r *pngRenderer) setColor(hex string, alpha float64) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette color %q", hex)
	}
	r.dc.SetRGBA(c.R, c.G, c.B, alpha)
	return nil
}

func (r *pngRenderer) px(v float64) float64 { return v * r.scale }

var (
	goRegularOnce sync.Once
	goRegular     *truetype.Font
)

// face returns a Go Regular face at the given pixel size. Faces hold glyph
// caches and are not safe for concurrent use, so each renderer keeps its own.
func (r *pngRenderer) face(size float64) font.Face {
	goRegularOnce.Do(func() {
		// Compiled-in font; parsing cannot fail.
		goRegular, _ = truetype.Parse(goregular.TTF)
	})
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(goRegular, &truetype.Options{Size: size, Hinting: font.HintingFull})
	if r.faces == nil {
		r.faces = make(map[float64]font.Face)
	}
	r.faces[size] = f
	return f
}
