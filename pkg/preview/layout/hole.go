package layout

import "github.com/matzehuels/panelview/pkg/state"

const (
	// EdgeMargin is the clearance, in inches, kept between a hole and every
	// panel edge.
	EdgeMargin = 0.5

	// DefaultNominal replaces a non-positive nominal diameter.
	DefaultNominal = 12.0

	// EstimateFactor shrinks a nominal diameter when no measured size exists.
	EstimateFactor = 0.93

	// BadgeOffset is the gap, in pixels, between a circle's top and its badge.
	BadgeOffset = 10.0
)

// Badge tells where a hole's displayed diameter came from.
type Badge string

const (
	BadgeSpec Badge = "SPEC"
	BadgeCut  Badge = "CUT"
	BadgeEst  Badge = "EST"
)

// Hole is a cutout after diameter resolution, clamping and projection.
type Hole struct {
	Index    int
	Badge    Badge
	Selected bool

	Diameter float64 // inches, after clamping to the panel
	Radius   float64

	// Center in panel inches, measured from the top-left corner.
	CX, CY             float64
	ClampedX, ClampedY bool

	// Canvas projection.
	DispX, DispY, DispR float64
	BadgeY              float64
}

// ResolveDiameter picks spec, then cut, then the estimated nominal diameter,
// and clamps the result to the panel's width and height.
func ResolveDiameter(h state.Hole, width, height float64) (float64, Badge) {
	var d float64
	var badge Badge
	switch {
	case h.Spec != nil:
		d, badge = *h.Spec, BadgeSpec
	case h.Cut != nil:
		d, badge = *h.Cut, BadgeCut
	default:
		nominal := h.Nominal
		if nominal <= 0 {
			nominal = DefaultNominal
		}
		d, badge = nominal*EstimateFactor, BadgeEst
	}
	return min(d, width, height), badge
}

// ClampCenter keeps a circle of radius r centered at pos inside [0, extent]
// with EdgeMargin clearance on both sides. The lower bound is applied first,
// so when the circle cannot fit the upper bound wins.
func ClampCenter(pos, r, extent float64) (float64, bool) {
	clamped := false
	if pos-r-EdgeMargin < 0 {
		pos, clamped = r+EdgeMargin, true
	}
	if pos+r+EdgeMargin > extent {
		pos, clamped = extent-r-EdgeMargin, true
	}
	return pos, clamped
}

// clampCenterLegacy reproduces the historical vertical check, which only
// snapped when the circle overshot the far edge by more than the margin.
func clampCenterLegacy(pos, r, extent float64) (float64, bool) {
	clamped := false
	if pos-r-EdgeMargin < 0 {
		pos, clamped = r+EdgeMargin, true
	}
	if pos+r-EdgeMargin > extent {
		pos, clamped = extent-r-EdgeMargin, true
	}
	return pos, clamped
}

// PlaceHole resolves, clamps and projects the hole at index i.
func PlaceHole(i int, h state.Hole, width, height float64, f Frame, opts ...Option) Hole {
	o := newOptions(opts...)

	d, badge := ResolveDiameter(h, width, height)
	r := d / 2

	cx, clampedX := ClampCenter(width/2+h.DX, r, width)
	var cy float64
	var clampedY bool
	if o.legacyClamp {
		cy, clampedY = clampCenterLegacy(height/2+h.DY, r, height)
	} else {
		cy, clampedY = ClampCenter(height/2+h.DY, r, height)
	}

	dispX := f.X + (cx-width/2)*f.Scale + f.DispW/2
	dispY := f.Y + (cy-height/2)*f.Scale + f.DispH/2
	dispR := r * f.Scale

	return Hole{
		Index:    i,
		Badge:    badge,
		Selected: h.Selected,
		Diameter: d,
		Radius:   r,
		CX:       cx,
		CY:       cy,
		ClampedX: clampedX,
		ClampedY: clampedY,
		DispX:    dispX,
		DispY:    dispY,
		DispR:    dispR,
		BadgeY:   dispY - dispR - BadgeOffset,
	}
}
