package sink

import (
	"bufio"
	"bytes"
	"strconv"

	"github.com/matzehuels/panelview/pkg/preview/layout"
)

// DXF layer names.
const (
	DXFLayerPanel   = "PANEL"
	DXFLayerCutouts = "CUTOUTS"
)

// RenderDXF writes a cut drawing in panel inches: the panel outline as four
// LINE entities and one CIRCLE per hole at its clamped center. The origin is
// the panel's bottom-left corner with y pointing up, so layout rows are
// flipped.
func RenderDXF(l layout.Layout) []byte {
	var buf bytes.Buffer
	w := dxfWriter{bufio.NewWriter(&buf)}

	w.pair(0, "SECTION")
	w.pair(2, "HEADER")
	w.pair(9, "$ACADVER")
	w.pair(1, "AC1009")
	w.pair(9, "$INSUNITS")
	w.integer(70, 1) // inches
	w.pair(0, "ENDSEC")

	w.pair(0, "SECTION")
	w.pair(2, "ENTITIES")

	corners := [4][2]float64{{0, 0}, {l.Width, 0}, {l.Width, l.Height}, {0, l.Height}}
	for i, a := range corners {
		b := corners[(i+1)%len(corners)]
		w.pair(0, "LINE")
		w.pair(8, DXFLayerPanel)
		w.float(10, a[0])
		w.float(20, a[1])
		w.float(11, b[0])
		w.float(21, b[1])
	}

	for _, h := range l.Holes {
		w.pair(0, "CIRCLE")
		w.pair(8, DXFLayerCutouts)
		w.float(10, h.CX)
		w.float(20, l.Height-h.CY)
		w.float(40, h.Radius)
	}

	w.pair(0, "ENDSEC")
	w.pair(0, "EOF")
	w.Flush()
	return buf.Bytes()
}

// dxfWriter emits group code/value line pairs.
type dxfWriter struct{ *bufio.Writer }

func (w dxfWriter) pair(code int, value string) {
	w.WriteString(strconv.Itoa(code))
	w.WriteByte('\n')
	w.WriteString(value)
	w.WriteByte('\n')
}

func (w dxfWriter) integer(code, v int) { w.pair(code, strconv.Itoa(v)) }

func (w dxfWriter) float(code int, v float64) {
	w.pair(code, strconv.FormatFloat(v, 'f', -1, 64))
}
