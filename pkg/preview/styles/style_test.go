package styles

import (
	"bytes"
	"strings"
	"testing"
)

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		r, want float64
	}{
		{0, 6},
		{5, 6},
		{20, 11},
		{100, 15},
	}

	for _, tt := range tests {
		got := LabelFontSize(tt.r)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("LabelFontSize(%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestRenderDefs(t *testing.T) {
	var buf bytes.Buffer
	Default.RenderDefs(&buf)
	out := buf.String()

	for _, class := range []string{".front", ".ghost-back", ".ghost-edge", ".cutout", ".cutout.selected", ".badge"} {
		if !strings.Contains(out, class+" {") {
			t.Errorf("defs missing rule for %s", class)
		}
	}
	if !strings.Contains(out, "fill:#1e2630") {
		t.Error("front fill color missing")
	}
	if !strings.HasPrefix(out, "  <defs>") || !strings.HasSuffix(out, "</defs>\n") {
		t.Errorf("defs block not well delimited:\n%s", out)
	}
}
