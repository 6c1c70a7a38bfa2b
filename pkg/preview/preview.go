// Package preview renders a panel configuration as an SVG preview.
//
// It ties the stages together: [state.Decode] parses the payload,
// [layout.Build] resolves the frame, ghost, holes and dimensions, and
// [sink.RenderSVG] assembles the document.
//
// Two entry points differ only in how decode failures surface:
//
//	// Tagged result; the caller decides how to show a failure.
//	res := preview.RenderPayload(payload)
//	if res.Err != nil { ... }
//
//	// Fail-soft; a failure becomes a small red error document.
//	svg := preview.Generate(string(payload))
//
// All functions are pure and safe for concurrent use.
//
// [state.Decode]: github.com/matzehuels/panelview/pkg/state.Decode
// [layout.Build]: github.com/matzehuels/panelview/pkg/preview/layout.Build
// [sink.RenderSVG]: github.com/matzehuels/panelview/pkg/preview/sink.RenderSVG
package preview

import (
	"github.com/matzehuels/panelview/pkg/preview/layout"
	"github.com/matzehuels/panelview/pkg/preview/sink"
	"github.com/matzehuels/panelview/pkg/preview/styles"
	"github.com/matzehuels/panelview/pkg/state"
)

// Option configures a render.
type Option func(*options)

type options struct {
	layoutOpts []layout.Option
	svgOpts    []sink.SVGOption
}

// WithLegacyClamp enables [layout.WithLegacyClamp].
func WithLegacyClamp() Option {
	return func(o *options) { o.layoutOpts = append(o.layoutOpts, layout.WithLegacyClamp()) }
}

// WithPalette renders with p instead of [styles.Default].
func WithPalette(p styles.Palette) Option {
	return func(o *options) { o.svgOpts = append(o.svgOpts, sink.WithPalette(p)) }
}

func newOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Result is the outcome of rendering one payload. Exactly one of SVG and
// Err is set.
type Result struct {
	Config state.Config
	Layout layout.Layout
	SVG    []byte
	Err    error // a *state.DecodeError
}

// OK reports whether the payload rendered.
func (r Result) OK() bool { return r.Err == nil }

// Document returns the preview, or the error document when decoding failed.
func (r Result) Document(opts ...Option) []byte {
	if r.Err != nil {
		return sink.RenderErrorSVG(r.Err, newOptions(opts...).svgOpts...)
	}
	return r.SVG
}

// RenderPayload decodes and renders a state payload.
func RenderPayload(payload []byte, opts ...Option) Result {
	cfg, err := state.Decode(payload)
	if err != nil {
		return Result{Err: err}
	}
	o := newOptions(opts...)
	l := layout.Build(cfg, o.layoutOpts...)
	return Result{
		Config: cfg,
		Layout: l,
		SVG:    sink.RenderSVG(l, o.svgOpts...),
	}
}

// Render renders an already decoded configuration.
func Render(cfg state.Config, opts ...Option) []byte {
	o := newOptions(opts...)
	return sink.RenderSVG(layout.Build(cfg, o.layoutOpts...), o.svgOpts...)
}

// Generate renders a JSON state and always returns a document. A payload
// that cannot be decoded yields red text starting with "state parse error: ".
func Generate(stateJSON string, opts ...Option) string {
	return string(RenderPayload([]byte(stateJSON), opts...).Document(opts...))
}
