package layout

const (
	ghostBaseShift = 20.0
	ghostDepthGain = 2.0
	ghostMaxShift  = 140.0
	ghostDamping   = 0.6
)

// Segment is a straight line in canvas space.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Ghost is the back outline that suggests panel depth. It has the same size
// as the front panel, shifted by Shift along both axes.
type Ghost struct {
	X, Y  float64
	W, H  float64
	Shift float64
	Edges [4]Segment // front corner to matching ghost corner: TL, TR, BL, BR
}

// GhostShift returns the diagonal offset for a panel of the given depth.
// The offset saturates at 140·0.6 for deep panels.
func GhostShift(depth float64) float64 {
	return min(ghostBaseShift+depth*ghostDepthGain, ghostMaxShift) * ghostDamping
}

// BuildGhost places the ghost outline behind the front panel of f.
func BuildGhost(f Frame, depth float64) Ghost {
	shift := GhostShift(depth)
	gx, gy := f.X+shift, f.Y+shift
	return Ghost{
		X: gx, Y: gy,
		W: f.DispW, H: f.DispH,
		Shift: shift,
		Edges: [4]Segment{
			{f.X, f.Y, gx, gy},
			{f.X + f.DispW, f.Y, gx + f.DispW, gy},
			{f.X, f.Y + f.DispH, gx, gy + f.DispH},
			{f.X + f.DispW, f.Y + f.DispH, gx + f.DispW, gy + f.DispH},
		},
	}
}
