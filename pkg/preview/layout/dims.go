package layout

const (
	dimWidthRise    = 20.0 // width line sits this far above the panel
	dimWidthLabel   = 6.0  // label baseline above the width line
	dimHeightOffset = 30.0 // height line sits this far right of the panel
	dimHeightLabel  = 4.0  // label start right of the height line
)

// Dimensions holds the width and height annotations. Depth and hole spacing
// are never annotated.
type Dimensions struct {
	Width, Height float64 // panel size in inches, for the labels

	WidthLine    Segment
	WidthLabelX  float64 // centered
	WidthLabelY  float64
	HeightLine   Segment
	HeightLabelX float64 // start-anchored
	HeightLabelY float64 // vertically centered
}

// BuildDimensions places the annotations around the front panel of f.
func BuildDimensions(f Frame, width, height float64) Dimensions {
	wy := f.Y - dimWidthRise
	hx := f.Right() + dimHeightOffset
	return Dimensions{
		Width:        width,
		Height:       height,
		WidthLine:    Segment{f.X, wy, f.Right(), wy},
		WidthLabelX:  f.CenterX(),
		WidthLabelY:  wy - dimWidthLabel,
		HeightLine:   Segment{hx, f.Y, hx, f.Bottom()},
		HeightLabelX: hx + dimHeightLabel,
		HeightLabelY: f.CenterY(),
	}
}
