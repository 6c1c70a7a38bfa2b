package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/panelview/pkg/preview/layout"
	"github.com/matzehuels/panelview/pkg/preview/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, l, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders a single artifact.
func RenderFormat(ctx context.Context, l layout.Layout, format string, opts Options) ([]byte, error) {
	var data []byte
	var err error

	switch format {
	case FormatSVG:
		data = sink.RenderSVG(l)
	case FormatPNG:
		data, err = sink.RenderPNG(l, sink.WithScale(opts.PNGScale))
	case FormatPDF:
		data, err = sink.RenderPDF(ctx, l)
	case FormatJSON:
		data, err = sink.RenderJSON(l)
	case FormatDXF:
		data = sink.RenderDXF(l)
	default:
		return nil, ValidateFormat(format)
	}

	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}
