package layout

// Canvas geometry, in canvas pixels.
const (
	ViewWidth  = 480.0
	ViewHeight = 360.0
	ViewMargin = 12.0
)

// Zoom factors applied on top of the fit-to-canvas scale.
const (
	ZoomFactorClose   = 0.60
	ZoomFactorNormal  = 0.35
	ZoomFactorWide    = 0.25
	ZoomFactorDefault = 0.45
)

// Frame is the shared coordinate frame: the panel's on-canvas box and the
// uniform inch-to-pixel scale every later stage projects with.
type Frame struct {
	X, Y         float64 // top-left corner of the front panel
	Scale        float64 // pixels per inch
	DispW, DispH float64 // displayed panel size
}

// ZoomFactor maps a zoom mode to its factor. Unknown modes use the default.
func ZoomFactor(mode string) float64 {
	switch mode {
	case "close":
		return ZoomFactorClose
	case "normal":
		return ZoomFactorNormal
	case "wide":
		return ZoomFactorWide
	default:
		return ZoomFactorDefault
	}
}

// ResolveFrame fits a width×height panel into the canvas drawing area,
// applies the zoom factor and centers the result. Non-positive dimensions are
// not guarded and follow IEEE-754 arithmetic.
func ResolveFrame(width, height float64, zoomMode string) Frame {
	maxW := ViewWidth - ViewMargin*2
	maxH := ViewHeight - ViewMargin*2
	scale := min(maxW/width, maxH/height) * ZoomFactor(zoomMode)

	dispW := width * scale
	dispH := height * scale
	return Frame{
		X:     (ViewWidth - dispW) / 2,
		Y:     (ViewHeight - dispH) / 2,
		Scale: scale,
		DispW: dispW,
		DispH: dispH,
	}
}

// Right returns the x coordinate of the panel's right edge.
func (f Frame) Right() float64 { return f.X + f.DispW }

// Bottom returns the y coordinate of the panel's bottom edge.
func (f Frame) Bottom() float64 { return f.Y + f.DispH }

// CenterX returns the x coordinate of the panel center.
func (f Frame) CenterX() float64 { return f.X + f.DispW/2 }

// CenterY returns the y coordinate of the panel center.
func (f Frame) CenterY() float64 { return f.Y + f.DispH/2 }
