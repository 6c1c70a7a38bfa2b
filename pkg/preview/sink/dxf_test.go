package sink

import (
	"bufio"
	"bytes"
	"strconv"
	"testing"

	"github.com/matzehuels/panelview/pkg/preview/layout"
	"github.com/matzehuels/panelview/pkg/state"
)

type dxfEntity struct {
	kind   string
	groups map[int]string
}

// readDXFEntities parses the ENTITIES section into its entities.
func readDXFEntities(t *testing.T, data []byte) []dxfEntity {
	t.Helper()
	sc := bufio.NewScanner(bytes.NewReader(data))
	var pairs [][2]string
	for sc.Scan() {
		code := sc.Text()
		if !sc.Scan() {
			t.Fatalf("group code %q has no value", code)
		}
		pairs = append(pairs, [2]string{code, sc.Text()})
	}
	if last := pairs[len(pairs)-1]; last != [2]string{"0", "EOF"} {
		t.Fatalf("last group = %v, want 0/EOF", last)
	}

	var out []dxfEntity
	inEntities := false
	for _, p := range pairs {
		switch {
		case p == [2]string{"2", "ENTITIES"}:
			inEntities = true
		case inEntities && p[0] == "0" && p[1] == "ENDSEC":
			return out
		case inEntities && p[0] == "0":
			out = append(out, dxfEntity{kind: p[1], groups: map[int]string{}})
		case inEntities && len(out) > 0:
			code, err := strconv.Atoi(p[0])
			if err != nil {
				t.Fatalf("bad group code %q", p[0])
			}
			out[len(out)-1].groups[code] = p[1]
		}
	}
	t.Fatal("ENTITIES section not closed")
	return nil
}

func (e dxfEntity) float(t *testing.T, code int) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(e.groups[code], 64)
	if err != nil {
		t.Fatalf("%s group %d = %q", e.kind, code, e.groups[code])
	}
	return v
}

func TestRenderDXF(t *testing.T) {
	// Second hole is pushed left of the right edge by the clamp.
	cfg := panel(state.Hole{Spec: state.Float(1.5), DY: -2}, state.Hole{DX: 11.9, Nominal: 2})
	l := layout.Build(cfg)

	ents := readDXFEntities(t, RenderDXF(l))
	if len(ents) != 6 {
		t.Fatalf("entities = %d, want 4 lines + 2 circles", len(ents))
	}

	for _, e := range ents[:4] {
		if e.kind != "LINE" || e.groups[8] != DXFLayerPanel {
			t.Errorf("outline entity = %+v", e)
		}
	}
	if ents[1].float(t, 10) != 24 || ents[2].float(t, 21) != 12 {
		t.Errorf("outline does not span 24 x 12: %+v %+v", ents[1], ents[2])
	}

	for i, e := range ents[4:] {
		h := l.Holes[i]
		if e.kind != "CIRCLE" || e.groups[8] != DXFLayerCutouts {
			t.Fatalf("hole %d entity = %+v", i, e)
		}
		if e.float(t, 10) != h.CX || e.float(t, 20) != 12-h.CY || e.float(t, 40) != h.Radius {
			t.Errorf("hole %d circle = %v, want center (%v, %v) r %v", i, e.groups, h.CX, 12-h.CY, h.Radius)
		}
	}

	// y grows upward: a hole above center sits above mid-height.
	if y := ents[4].float(t, 20); y <= 6 {
		t.Errorf("hole above center has y = %v", y)
	}
}

func TestRenderDXFHeader(t *testing.T) {
	out := RenderDXF(layout.Build(panel()))
	for _, want := range []string{"0\nSECTION\n2\nHEADER\n", "9\n$INSUNITS\n70\n1\n", "0\nEOF\n"} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("dxf missing %q", want)
		}
	}
	if !bytes.HasPrefix(out, []byte("0\nSECTION\n")) {
		t.Errorf("dxf starts with %q", out[:min(len(out), 16)])
	}
}
