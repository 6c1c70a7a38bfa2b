package layout

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/panelview/pkg/state"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func TestZoomFactor(t *testing.T) {
	tests := []struct {
		mode string
		want float64
	}{
		{"close", 0.60},
		{"normal", 0.35},
		{"wide", 0.25},
		{"default", 0.45},
		{"", 0.45},
		{"CLOSE", 0.45},
		{"fisheye", 0.45},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			if got := ZoomFactor(tt.mode); got != tt.want {
				t.Errorf("ZoomFactor(%q) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestResolveFrameScenarioA(t *testing.T) {
	f := ResolveFrame(24, 12, "normal")

	checks := []struct {
		name      string
		got, want float64
	}{
		{"Scale", f.Scale, 6.65},
		{"DispW", f.DispW, 159.6},
		{"DispH", f.DispH, 79.8},
		{"X", f.X, 160.2},
		{"Y", f.Y, 140.1},
	}
	for _, c := range checks {
		if !approx(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestResolveFrameFormula(t *testing.T) {
	tests := []struct {
		w, h float64
		mode string
	}{
		{24, 12, "close"},
		{12, 24, "wide"},
		{100, 3, "default"},
		{0.5, 0.5, "unknown"},
	}

	for _, tt := range tests {
		f := ResolveFrame(tt.w, tt.h, tt.mode)
		want := math.Min((480-24)/tt.w, (360-24)/tt.h) * ZoomFactor(tt.mode)
		if !approx(f.Scale, want) {
			t.Errorf("ResolveFrame(%v, %v, %q).Scale = %v, want %v", tt.w, tt.h, tt.mode, f.Scale, want)
		}
		if !approx(f.CenterX(), ViewWidth/2) || !approx(f.CenterY(), ViewHeight/2) {
			t.Errorf("panel not centered: center = (%v, %v)", f.CenterX(), f.CenterY())
		}
	}
}

func TestResolveFrameDegenerate(t *testing.T) {
	// Not guarded: must not panic, result follows float semantics.
	f := ResolveFrame(0, 12, "normal")
	if math.IsNaN(f.Scale) {
		t.Errorf("zero width: Scale = NaN, want finite fit-to-height scale")
	}
	_ = ResolveFrame(-5, -5, "close")
	_ = ResolveFrame(0, 0, "wide")
}

func TestGhostShift(t *testing.T) {
	tests := []struct {
		depth, want float64
	}{
		{0, 12},
		{3, 15.6},
		{60, 84},
		{500, 84},
	}

	for _, tt := range tests {
		if got := GhostShift(tt.depth); !approx(got, tt.want) {
			t.Errorf("GhostShift(%v) = %v, want %v", tt.depth, got, tt.want)
		}
	}
}

func TestBuildGhost(t *testing.T) {
	f := Frame{X: 100, Y: 50, Scale: 1, DispW: 200, DispH: 80}
	g := BuildGhost(f, 3)

	if !approx(g.X, 115.6) || !approx(g.Y, 65.6) {
		t.Errorf("ghost origin = (%v, %v), want (115.6, 65.6)", g.X, g.Y)
	}
	if g.W != f.DispW || g.H != f.DispH {
		t.Errorf("ghost size = %v×%v, want %v×%v", g.W, g.H, f.DispW, f.DispH)
	}

	want := [4]Segment{
		{100, 50, 115.6, 65.6},
		{300, 50, 315.6, 65.6},
		{100, 130, 115.6, 145.6},
		{300, 130, 315.6, 145.6},
	}
	for i, e := range g.Edges {
		w := want[i]
		if !approx(e.X1, w.X1) || !approx(e.Y1, w.Y1) || !approx(e.X2, w.X2) || !approx(e.Y2, w.Y2) {
			t.Errorf("Edges[%d] = %+v, want %+v", i, e, w)
		}
	}
}

func TestResolveDiameter(t *testing.T) {
	tests := []struct {
		name      string
		hole      state.Hole
		w, h      float64
		wantD     float64
		wantBadge Badge
	}{
		{"spec wins", state.Hole{Nominal: 10, Cut: state.Float(3), Spec: state.Float(1.5)}, 24, 12, 1.5, BadgeSpec},
		{"cut over nominal", state.Hole{Nominal: 10, Cut: state.Float(3)}, 24, 12, 3, BadgeCut},
		{"estimated nominal", state.Hole{Nominal: 2}, 24, 12, 1.86, BadgeEst},
		{"default nominal", state.Hole{Nominal: 0}, 24, 20, 11.16, BadgeEst},
		{"negative nominal", state.Hole{Nominal: -3}, 24, 20, 11.16, BadgeEst},
		{"clamped to height", state.Hole{Spec: state.Float(30)}, 24, 12, 12, BadgeSpec},
		{"clamped to width", state.Hole{Cut: state.Float(30)}, 8, 12, 8, BadgeCut},
		{"default clamped", state.Hole{}, 24, 6, 6, BadgeEst},
		{"zero spec kept", state.Hole{Nominal: 5, Spec: state.Float(0)}, 24, 12, 0, BadgeSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, badge := ResolveDiameter(tt.hole, tt.w, tt.h)
			if !approx(d, tt.wantD) {
				t.Errorf("diameter = %v, want %v", d, tt.wantD)
			}
			if badge != tt.wantBadge {
				t.Errorf("badge = %v, want %v", badge, tt.wantBadge)
			}
		})
	}
}

func TestClampCenter(t *testing.T) {
	tests := []struct {
		name        string
		pos, r, ext float64
		want        float64
		clamped     bool
	}{
		{"inside", 12, 0.75, 24, 12, false},
		{"far edge", 23.9, 0.93, 24, 22.57, true},
		{"near edge", 0.2, 1, 24, 1.5, true},
		{"exactly at margin", 1.5, 1, 24, 1.5, false},
		{"too big upper wins", 5, 5, 8, 2.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := ClampCenter(tt.pos, tt.r, tt.ext)
			if !approx(got, tt.want) || clamped != tt.clamped {
				t.Errorf("ClampCenter(%v, %v, %v) = (%v, %v), want (%v, %v)",
					tt.pos, tt.r, tt.ext, got, clamped, tt.want, tt.clamped)
			}
		})
	}
}

func TestPlaceHoleScenarioB(t *testing.T) {
	f := ResolveFrame(24, 12, "normal")
	h := PlaceHole(0, state.Hole{Spec: state.Float(1.5), Selected: true}, 24, 12, f)

	if h.Diameter != 1.5 || h.Radius != 0.75 {
		t.Errorf("diameter/radius = %v/%v, want 1.5/0.75", h.Diameter, h.Radius)
	}
	if h.ClampedX || h.ClampedY {
		t.Error("centered hole should not be clamped")
	}
	if h.Badge != BadgeSpec {
		t.Errorf("Badge = %v, want SPEC", h.Badge)
	}
	if !h.Selected {
		t.Error("Selected should carry through")
	}
	if !approx(h.DispX, f.CenterX()) || !approx(h.DispY, f.CenterY()) {
		t.Errorf("display center = (%v, %v), want panel center (%v, %v)", h.DispX, h.DispY, f.CenterX(), f.CenterY())
	}
	if !approx(h.DispR, 0.75*f.Scale) {
		t.Errorf("DispR = %v, want %v", h.DispR, 0.75*f.Scale)
	}
	if !approx(h.BadgeY, h.DispY-h.DispR-10) {
		t.Errorf("BadgeY = %v, want %v", h.BadgeY, h.DispY-h.DispR-10)
	}
}

func TestPlaceHoleScenarioC(t *testing.T) {
	f := ResolveFrame(24, 12, "normal")
	h := PlaceHole(3, state.Hole{DX: 11.9, Nominal: 2}, 24, 12, f)

	if !approx(h.Diameter, 1.86) || !approx(h.Radius, 0.93) {
		t.Errorf("diameter/radius = %v/%v, want 1.86/0.93", h.Diameter, h.Radius)
	}
	if !h.ClampedX || !approx(h.CX, 22.57) {
		t.Errorf("CX = %v (clamped %v), want 22.57 (clamped)", h.CX, h.ClampedX)
	}
	if h.ClampedY || h.CY != 6 {
		t.Errorf("CY = %v (clamped %v), want 6 (not clamped)", h.CY, h.ClampedY)
	}
	if h.Badge != BadgeEst {
		t.Errorf("Badge = %v, want EST", h.Badge)
	}
	if h.Index != 3 {
		t.Errorf("Index = %d, want 3", h.Index)
	}
	wantX := f.X + (22.57-12)*f.Scale + f.DispW/2
	if !approx(h.DispX, wantX) {
		t.Errorf("DispX = %v, want %v", h.DispX, wantX)
	}
}

func TestPlaceHoleLegacyClamp(t *testing.T) {
	f := ResolveFrame(24, 12, "normal")
	hole := state.Hole{DY: 4.8, Spec: state.Float(2)}

	sym := PlaceHole(0, hole, 24, 12, f)
	if !sym.ClampedY || !approx(sym.CY, 10.5) {
		t.Errorf("symmetric CY = %v (clamped %v), want 10.5 (clamped)", sym.CY, sym.ClampedY)
	}

	legacy := PlaceHole(0, hole, 24, 12, f, WithLegacyClamp())
	if legacy.ClampedY || !approx(legacy.CY, 10.8) {
		t.Errorf("legacy CY = %v (clamped %v), want 10.8 (not clamped)", legacy.CY, legacy.ClampedY)
	}

	// Both modes agree on the x axis and on the near edge.
	near := state.Hole{DX: -11.9, DY: -5.9, Spec: state.Float(2)}
	a := PlaceHole(0, near, 24, 12, f)
	b := PlaceHole(0, near, 24, 12, f, WithLegacyClamp())
	if a.CX != b.CX || a.CY != b.CY {
		t.Errorf("near-edge clamp differs: (%v, %v) vs (%v, %v)", a.CX, a.CY, b.CX, b.CY)
	}
}

func TestPlaceHoleStaysInsidePanel(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 2000; i++ {
		w := 1 + rng.Float64()*60
		h := 1 + rng.Float64()*60
		hole := state.Hole{
			DX:      (rng.Float64() - 0.5) * 3 * w,
			DY:      (rng.Float64() - 0.5) * 3 * h,
			Nominal: rng.Float64()*20 - 2,
		}
		switch rng.IntN(3) {
		case 0:
			hole.Spec = state.Float(rng.Float64() * 10)
		case 1:
			hole.Cut = state.Float(rng.Float64() * 10)
		}

		f := ResolveFrame(w, h, "default")
		p := PlaceHole(i, hole, w, h, f)

		if p.Diameter > w || p.Diameter > h {
			t.Fatalf("diameter %v exceeds panel %v×%v", p.Diameter, w, h)
		}
		if 2*p.Radius+2*EdgeMargin <= w {
			if p.CX-p.Radius-EdgeMargin < -eps || p.CX+p.Radius+EdgeMargin > w+eps {
				t.Fatalf("hole %d escapes x: cx=%v r=%v w=%v", i, p.CX, p.Radius, w)
			}
		}
		if 2*p.Radius+2*EdgeMargin <= h {
			if p.CY-p.Radius-EdgeMargin < -eps || p.CY+p.Radius+EdgeMargin > h+eps {
				t.Fatalf("hole %d escapes y: cy=%v r=%v h=%v", i, p.CY, p.Radius, h)
			}
		}
	}
}

func TestBuildDimensions(t *testing.T) {
	f := Frame{X: 160, Y: 140, Scale: 6, DispW: 160, DispH: 80}
	d := BuildDimensions(f, 24, 12)

	if d.WidthLine != (Segment{160, 120, 320, 120}) {
		t.Errorf("WidthLine = %+v", d.WidthLine)
	}
	if d.WidthLabelX != 240 || d.WidthLabelY != 114 {
		t.Errorf("width label at (%v, %v), want (240, 114)", d.WidthLabelX, d.WidthLabelY)
	}
	if d.HeightLine != (Segment{350, 140, 350, 220}) {
		t.Errorf("HeightLine = %+v", d.HeightLine)
	}
	if d.HeightLabelX != 354 || d.HeightLabelY != 180 {
		t.Errorf("height label at (%v, %v), want (354, 180)", d.HeightLabelX, d.HeightLabelY)
	}
}

func TestBuild(t *testing.T) {
	cfg := state.Config{
		Width: 24, Height: 12, Depth: 3, ZoomMode: "normal",
		ShowGhost: true, ShowDims: true,
		Holes: []state.Hole{
			{Spec: state.Float(1.5), Selected: true},
			{DX: 11.9, Nominal: 2},
		},
	}

	l := Build(cfg)
	if l.Ghost == nil {
		t.Error("Ghost should be set when ShowGhost is true")
	}
	if l.Dims == nil {
		t.Error("Dims should be set when ShowDims is true")
	}
	if len(l.Holes) != 2 || l.Holes[0].Index != 0 || l.Holes[1].Index != 1 {
		t.Fatalf("holes not in input order: %+v", l.Holes)
	}
	if got := l.ClampedCount(); got != 1 {
		t.Errorf("ClampedCount() = %d, want 1", got)
	}

	cfg.ShowGhost, cfg.ShowDims = false, false
	l = Build(cfg)
	if l.Ghost != nil || l.Dims != nil {
		t.Error("optional layers should be nil when disabled")
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	cfg := state.Config{Width: 24, Height: 12, ZoomMode: "normal", Holes: []state.Hole{{DX: 50, Nominal: 2}}}
	_ = Build(cfg)
	if cfg.Holes[0].DX != 50 {
		t.Errorf("input hole mutated: DX = %v", cfg.Holes[0].DX)
	}
}
