// Package sink turns a computed [layout.Layout] into a finished artifact.
//
// # Overview
//
// Five sinks share one layout:
//
//   - SVG: the preview document, byte-compatible with the configurator UI
//   - PNG: an in-process raster of the same layers
//   - JSON: the resolved geometry, for tooling and debugging
//   - PDF: print output via rsvg-convert
//   - DXF: a cut drawing in panel inches for CAD and CNC tools
//
// # SVG Output
//
// [RenderSVG] writes a fixed 480x360 canvas. Layers are painted in this
// order: background, ghost back face and edges, front panel, the cutouts
// group, dimension annotations. Attributes are single-quoted and
// coordinates use the shortest decimal form that round-trips.
//
// Every cutout is a group holding its circle, its provenance badge
// (SPEC, CUT or EST) and its diameter label. Circles carry
// data-idx with the hole's input index so a host page can map clicks back
// to the state; the selected hole adds the "selected" class.
//
//	l := layout.Build(cfg)
//	svg := sink.RenderSVG(l)
//
// [RenderErrorSVG] produces the small document shown when a state cannot
// be decoded. Its text starts with [ParseErrorPrefix].
//
// # PNG Output
//
// [RenderPNG] rasterizes with fogleman/gg and the Go fonts, so it works
// without librsvg:
//
//	png, err := sink.RenderPNG(l, sink.WithScale(2))
//
// A panel of zero size yields NaN or infinite canvas coordinates. The PNG
// sink skips shapes it cannot draw; the JSON sink writes such numbers as null.
//
// # DXF Output
//
// [RenderDXF] writes the panel outline as LINE entities on the PANEL layer
// and every hole as a CIRCLE on the CUTOUTS layer. Units are inches with the
// origin at the panel's bottom-left corner.
//
// # PDF Output
//
// [RenderPDF] converts the SVG with [render.ToPDF] and needs librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [layout.Layout]: github.com/matzehuels/panelview/pkg/preview/layout.Layout
// [render.ToPDF]: github.com/matzehuels/panelview/pkg/render.ToPDF
package sink
