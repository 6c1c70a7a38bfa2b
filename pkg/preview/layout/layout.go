package layout

import "github.com/matzehuels/panelview/pkg/state"

// Layout is the fully resolved geometry of one preview. It holds no markup;
// sinks turn it into SVG, PNG or JSON.
type Layout struct {
	Width, Height, Depth float64 // panel size in inches
	ZoomMode             string

	Frame Frame
	Ghost *Ghost      // nil unless the ghost layer is enabled
	Holes []Hole      // input order, which is also paint order
	Dims  *Dimensions // nil unless dimensions are enabled
}

// Option configures layout computation.
type Option func(*options)

type options struct {
	legacyClamp bool
}

// WithLegacyClamp reproduces the historical vertical clamp, whose far-edge
// check subtracted the margin instead of adding it. Holes near the bottom
// edge then keep less than EdgeMargin of clearance. Use it only when output
// must match previews produced before the clamp was made symmetric.
func WithLegacyClamp() Option {
	return func(o *options) { o.legacyClamp = true }
}

func newOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Build resolves the frame, ghost, holes and dimensions for cfg.
func Build(cfg state.Config, opts ...Option) Layout {
	f := ResolveFrame(cfg.Width, cfg.Height, cfg.ZoomMode)

	l := Layout{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Depth:    cfg.Depth,
		ZoomMode: cfg.ZoomMode,
		Frame:    f,
		Holes:    make([]Hole, len(cfg.Holes)),
	}
	if cfg.ShowGhost {
		g := BuildGhost(f, cfg.Depth)
		l.Ghost = &g
	}
	for i, h := range cfg.Holes {
		l.Holes[i] = PlaceHole(i, h, cfg.Width, cfg.Height, f, opts...)
	}
	if cfg.ShowDims {
		d := BuildDimensions(f, cfg.Width, cfg.Height)
		l.Dims = &d
	}
	return l
}

// ClampedCount returns how many holes were moved to respect the edge margin.
func (l Layout) ClampedCount() int {
	n := 0
	for _, h := range l.Holes {
		if h.ClampedX || h.ClampedY {
			n++
		}
	}
	return n
}
