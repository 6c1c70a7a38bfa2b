package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrMissingField is the cause of a DecodeError for an absent or null
// required field.
var ErrMissingField = errors.New("missing field")

// DecodeError reports why a payload could not be turned into a Config.
type DecodeError struct {
	Field string // JSON path of the offending field, empty for syntax errors
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Wire shapes: pointers distinguish "absent or null" from zero.
type rawConfig struct {
	Width     *float64   `json:"width"`
	Height    *float64   `json:"height"`
	Depth     *float64   `json:"depth"`
	ShowGhost *bool      `json:"showGhost"`
	ShowDims  *bool      `json:"showDims"`
	ZoomMode  *string    `json:"zoomMode"`
	Holes     *[]rawHole `json:"holes"`
}

type rawHole struct {
	DX       *float64 `json:"dx"`
	DY       *float64 `json:"dy"`
	Nominal  *float64 `json:"nominal"`
	Cut      *float64 `json:"cut"`
	Spec     *float64 `json:"spec"`
	Selected *bool    `json:"selected"`
}

// Decode parses a state payload. Any failure is returned as a *DecodeError.
func Decode(data []byte) (Config, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, &DecodeError{Err: err}
	}

	var cfg Config
	var d decoder
	required(&d, "width", raw.Width, &cfg.Width)
	required(&d, "height", raw.Height, &cfg.Height)
	required(&d, "depth", raw.Depth, &cfg.Depth)
	required(&d, "showGhost", raw.ShowGhost, &cfg.ShowGhost)
	required(&d, "showDims", raw.ShowDims, &cfg.ShowDims)
	required(&d, "zoomMode", raw.ZoomMode, &cfg.ZoomMode)
	if d.err == nil && raw.Holes == nil {
		d.err = &DecodeError{Field: "holes", Err: ErrMissingField}
	}
	if d.err != nil {
		return Config{}, d.err
	}

	cfg.Holes = make([]Hole, len(*raw.Holes))
	for i, rh := range *raw.Holes {
		h := &cfg.Holes[i]
		prefix := fmt.Sprintf("holes[%d].", i)
		required(&d, prefix+"dx", rh.DX, &h.DX)
		required(&d, prefix+"dy", rh.DY, &h.DY)
		required(&d, prefix+"nominal", rh.Nominal, &h.Nominal)
		required(&d, prefix+"selected", rh.Selected, &h.Selected)
		h.Cut, h.Spec = rh.Cut, rh.Spec
		if d.err != nil {
			return Config{}, d.err
		}
	}
	return cfg, nil
}

// Read decodes a payload from r.
func Read(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read state: %w", err)
	}
	return Decode(data)
}

// ReadFile decodes the payload stored at path.
func ReadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read state %s: %w", path, err)
	}
	return Decode(data)
}

// Encode returns the canonical payload for cfg. Absent cut/spec encode as null.
func Encode(cfg Config) ([]byte, error) {
	if cfg.Holes == nil {
		cfg.Holes = []Hole{}
	}
	return json.Marshal(cfg)
}

// decoder copies required fields, keeping only the first missing one.
type decoder struct {
	err error
}

func required[T any](d *decoder, name string, src *T, dst *T) {
	if d.err != nil {
		return
	}
	if src == nil {
		d.err = &DecodeError{Field: name, Err: ErrMissingField}
		return
	}
	*dst = *src
}
