package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/panelview/pkg/errors"
)

const tinySVG = `<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 10 10'><rect width='10' height='10' /></svg>`

func TestToPDF(t *testing.T) {
	if !Available() {
		_, err := ToPDF(context.Background(), []byte(tinySVG))
		if !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Fatalf("ToPDF without rsvg-convert: got %v, want UNSUPPORTED", err)
		}
		t.Skip("rsvg-convert not installed")
	}

	pdf, err := ToPDF(context.Background(), []byte(tinySVG))
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output is not a PDF: %q", pdf[:min(len(pdf), 8)])
	}
}

func TestToPDFBadInput(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	_, err := ToPDF(context.Background(), []byte("not svg"))
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("got %v, want INTERNAL_ERROR", err)
	}
}
