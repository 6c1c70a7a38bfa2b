// Package state defines the configuration snapshot a preview is rendered from
// and the gate that decodes it from the front end's JSON payload.
//
// A [Config] is built fresh for every render and is never mutated by the
// renderer. [Decode] enforces the wire contract: every field is required
// except a hole's "cut" and "spec", which may be absent or null.
//
//	cfg, err := state.Decode(payload)
//	if err != nil {
//	    var de *state.DecodeError
//	    errors.As(err, &de) // always succeeds
//	}
package state

import (
	"math"

	"github.com/matzehuels/panelview/pkg/errors"
)

// Zoom modes understood by the scale resolver. Any other value behaves
// like ZoomDefault.
const (
	ZoomClose   = "close"
	ZoomNormal  = "normal"
	ZoomWide    = "wide"
	ZoomDefault = "default"
)

// Config is one snapshot of the configurator UI. Dimensions are in inches.
type Config struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Depth     float64 `json:"depth"`
	ShowGhost bool    `json:"showGhost"`
	ShowDims  bool    `json:"showDims"`
	ZoomMode  string  `json:"zoomMode"`
	Holes     []Hole  `json:"holes"`
}

// Hole is a circular cutout positioned relative to the panel center.
type Hole struct {
	DX       float64  `json:"dx"`
	DY       float64  `json:"dy"`
	Nominal  float64  `json:"nominal"` // non-positive means unset
	Cut      *float64 `json:"cut"`
	Spec     *float64 `json:"spec"`
	Selected bool     `json:"selected"`
}

// Float returns a pointer to v, for building optional hole diameters.
func Float(v float64) *float64 { return &v }

// Validate reports dimensions the renderer would draw as degenerate output.
// The renderer itself never calls Validate; strict callers do.
func (c Config) Validate() error {
	for _, d := range []struct {
		name string
		v    float64
	}{{"width", c.Width}, {"height", c.Height}} {
		if math.IsNaN(d.v) || math.IsInf(d.v, 0) || d.v <= 0 {
			return errors.New(errors.ErrCodeInvalidDimensions, "%s must be a positive number, got %v", d.name, d.v)
		}
	}
	if math.IsNaN(c.Depth) || math.IsInf(c.Depth, 0) || c.Depth < 0 {
		return errors.New(errors.ErrCodeInvalidDimensions, "depth must be zero or positive, got %v", c.Depth)
	}
	return nil
}
