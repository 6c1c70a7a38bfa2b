package sink

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/matzehuels/panelview/pkg/preview/layout"
	"github.com/matzehuels/panelview/pkg/preview/styles"
)

type jsonOutput struct {
	ViewWidth  num            `json:"view_width"`
	ViewHeight num            `json:"view_height"`
	Panel      jsonPanel      `json:"panel"`
	Frame      jsonFrame      `json:"frame"`
	Ghost      *jsonGhost     `json:"ghost,omitempty"`
	Holes      []jsonHole     `json:"holes"`
	Dims       *jsonDimension `json:"dims,omitempty"`
}

type jsonPanel struct {
	Width    num    `json:"width"`
	Height   num    `json:"height"`
	Depth    num    `json:"depth"`
	ZoomMode string `json:"zoom_mode"`
	Zoom     num    `json:"zoom"`
}

type jsonFrame struct {
	X      num `json:"x"`
	Y      num `json:"y"`
	Scale  num `json:"scale"`
	Width  num `json:"width"`
	Height num `json:"height"`
}

type jsonGhost struct {
	X     num `json:"x"`
	Y     num `json:"y"`
	Shift num `json:"shift"`
}

type jsonHole struct {
	Index    int    `json:"index"`
	Badge    string `json:"badge"`
	Selected bool   `json:"selected,omitempty"`
	Diameter num    `json:"diameter"`
	CX       num    `json:"cx"`
	CY       num    `json:"cy"`
	ClampedX bool   `json:"clamped_x,omitempty"`
	ClampedY bool   `json:"clamped_y,omitempty"`
	DispX    num    `json:"disp_x"`
	DispY    num    `json:"disp_y"`
	DispR    num    `json:"disp_r"`
	FontSize num    `json:"font_size"`
}

type jsonDimension struct {
	WidthLine  jsonSegment `json:"width_line"`
	HeightLine jsonSegment `json:"height_line"`
}

type jsonSegment struct {
	X1 num `json:"x1"`
	Y1 num `json:"y1"`
	X2 num `json:"x2"`
	Y2 num `json:"y2"`
}

func segment(s layout.Segment) jsonSegment {
	return jsonSegment{num(s.X1), num(s.Y1), num(s.X2), num(s.Y2)}
}

// num encodes NaN and ±Inf as null. A zero or negative panel size puts
// them in the frame scale and every coordinate derived from it.
type num float64

func (n num) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// RenderJSON exports the resolved layout, including per-hole diameter
// provenance and clamp flags, for tooling that needs numbers, not pictures.
func RenderJSON(l layout.Layout) ([]byte, error) {
	out := jsonOutput{
		ViewWidth:  layout.ViewWidth,
		ViewHeight: layout.ViewHeight,
		Panel: jsonPanel{
			Width: num(l.Width), Height: num(l.Height), Depth: num(l.Depth),
			ZoomMode: l.ZoomMode, Zoom: num(layout.ZoomFactor(l.ZoomMode)),
		},
		Frame: jsonFrame{
			X: num(l.Frame.X), Y: num(l.Frame.Y), Scale: num(l.Frame.Scale),
			Width: num(l.Frame.DispW), Height: num(l.Frame.DispH),
		},
		Holes: make([]jsonHole, len(l.Holes)),
	}
	if l.Ghost != nil {
		out.Ghost = &jsonGhost{X: num(l.Ghost.X), Y: num(l.Ghost.Y), Shift: num(l.Ghost.Shift)}
	}
	for i, h := range l.Holes {
		out.Holes[i] = jsonHole{
			Index:    h.Index,
			Badge:    string(h.Badge),
			Selected: h.Selected,
			Diameter: num(h.Diameter),
			CX:       num(h.CX),
			CY:       num(h.CY),
			ClampedX: h.ClampedX,
			ClampedY: h.ClampedY,
			DispX:    num(h.DispX),
			DispY:    num(h.DispY),
			DispR:    num(h.DispR),
			FontSize: num(styles.LabelFontSize(h.DispR)),
		}
	}
	if l.Dims != nil {
		out.Dims = &jsonDimension{WidthLine: segment(l.Dims.WidthLine), HeightLine: segment(l.Dims.HeightLine)}
	}
	return json.MarshalIndent(out, "", "  ")
}
