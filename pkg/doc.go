// Package pkg provides the core libraries for panelview.
//
// # Overview
//
// Panelview turns a snapshot of a panel configurator (panel size, depth,
// zoom, circular cutouts) into a preview drawing. The pkg directory is
// organized into three areas:
//
//  1. Domain: [state], [preview] and its [preview/layout], [preview/sink]
//     and [preview/styles] subpackages
//  2. Infrastructure: [cache], [errors], [observability], [render]
//  3. Orchestration: [pipeline] and [server]
//
// # Architecture
//
// The data flow through panelview:
//
//	state payload (JSON)
//	         ↓
//	    [state] package (decode, validate)
//	         ↓
//	    [preview/layout] package (scale, ghost, holes, dimensions)
//	         ↓
//	    [preview/sink] package (SVG, PNG, JSON; PDF via [render])
//	         ↓
//	    [pipeline] package (cache per artifact) → CLI or [server]
//
// # Quick Start
//
// Render a payload the way the configurator front end does:
//
//	svg := preview.Generate(payload)
//
// Or with caching and several formats:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, []byte(payload), pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//
// [state]: https://pkg.go.dev/github.com/matzehuels/panelview/pkg/state
// [preview]: https://pkg.go.dev/github.com/matzehuels/panelview/pkg/preview
// [preview/layout]: https://pkg.go.dev/github.com/matzehuels/panelview/pkg/preview/layout
// [preview/sink]: https://pkg.go.dev/github.com/matzehuels/panelview/pkg/preview/sink
// [preview/styles]: https://pkg.go.dev/github.com/matzehuels/panelview/pkg/preview/styles
// [cache]: https://pkg.go.dev/github.com/matzehuels/panelview/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/panelview/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/panelview/pkg/observability
// [render]: https://pkg.go.dev/github.com/matzehuels/panelview/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/panelview/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/panelview/pkg/server
package pkg
