// Package render holds format conversions shared by the preview sinks.
//
// [ToPDF] converts a finished SVG document to PDF with the external
// rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(l)
//	pdf, err := render.ToPDF(ctx, svg)
//
// Install it with brew install librsvg (macOS) or apt install librsvg2-bin
// (Linux). [Available] reports whether the tool is on PATH; without it
// ToPDF returns an UNSUPPORTED error.
package render
