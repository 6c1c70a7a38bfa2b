// Package pipeline runs the decode → layout → render pipeline behind the
// CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: parse the state payload into a [state.Config]
//  2. Layout: resolve frame, ghost, holes and dimensions
//  3. Render: produce artifacts in the requested formats (SVG, PNG, PDF, JSON)
//
// Rendered artifacts are cached per format. The key is the hash of the
// re-encoded state plus every option that changes the artifact's bytes, so
// payloads that differ only in whitespace, key order or unknown fields
// share cache entries.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, payload, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// [state.Config]: github.com/matzehuels/panelview/pkg/state.Config
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/panelview/pkg/cache"
	"github.com/matzehuels/panelview/pkg/errors"
	"github.com/matzehuels/panelview/pkg/preview/layout"
	"github.com/matzehuels/panelview/pkg/preview/sink"
	"github.com/matzehuels/panelview/pkg/state"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDXF  = "dxf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDXF:  true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatDXF:  "application/dxf",
}

// DefaultPNGScale is the PNG scale used when none is set.
const DefaultPNGScale = sink.DefaultPNGScale

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	Formats     []string `json:"formats,omitempty"`
	LegacyClamp bool     `json:"legacy_clamp,omitempty"` // historical vertical clamp
	Strict      bool     `json:"strict,omitempty"`       // reject non-positive panel sizes
	PNGScale    float64  `json:"png_scale,omitempty"`
	Refresh     bool     `json:"refresh,omitempty"` // skip cache reads

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Config is the decoded state.
	Config state.Config

	// StateHash is the content hash of the re-encoded state.
	StateHash string

	// Layout is the resolved geometry.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PayloadSize  int
	HoleCount    int
	ClampedCount int
	DecodeTime   time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks artifact cache hits.
type CacheInfo struct {
	Hits      []string // formats served from cache
	RenderHit bool     // whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dxf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks options and applies defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.PNGScale <= 0 || o.PNGScale > sink.MaxPNGScale {
		return errors.New(errors.ErrCodeInvalidInput, "png scale %v out of range (0, %v]", o.PNGScale, sink.MaxPNGScale)
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = dedupe(o.Formats)
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutOptions returns the layout options implied by o.
func (o *Options) LayoutOptions() []layout.Option {
	if o.LegacyClamp {
		return []layout.Option{layout.WithLegacyClamp()}
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:      format,
		LegacyClamp: o.LegacyClamp,
	}
	if format == FormatPNG {
		k.Scale = o.PNGScale
	}
	return k
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
