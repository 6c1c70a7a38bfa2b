package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/panelview/pkg/pipeline"
)

// stdinArg reads the state payload from standard input.
const stdinArg = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file (single format) or base path (multiple)
	formats     string  // comma-separated output formats
	legacyClamp bool    // historical vertical clamp
	strict      bool    // reject non-positive panel sizes
	noCache     bool    // bypass the artifact cache
	refresh     bool    // re-render and overwrite cached artifacts
	pngScale    float64 // PNG scale factor
	quiet       bool    // no spinner or summary
}

// renderCommand creates the render command.
//
// Flags left unset fall back to the [render] section of the config file.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <state.json|->",
		Short: "Render a state snapshot to SVG, PNG, PDF or JSON",
		Long: `Render a configurator state snapshot.

The output path defaults to the input name with the format's extension.
Reading from stdin (-) with a single format and no --output writes the
artifact to stdout.`,
		Example: `  panelview render state.json
  panelview render state.json -f svg,png -o out/panel
  cat state.json | panelview render - > preview.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			popts := pipelineDefaults(cfg)
			flags := cmd.Flags()
			if flags.Changed("format") {
				popts.Formats = parseFormats(opts.formats)
			}
			if flags.Changed("legacy-clamp") {
				popts.LegacyClamp = opts.legacyClamp
			}
			if flags.Changed("strict") {
				popts.Strict = opts.strict
			}
			if flags.Changed("png-scale") {
				popts.PNGScale = opts.pngScale
			}
			popts.Refresh = opts.refresh
			popts.Logger = c.Logger
			if err := popts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), cfg, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			return c.runRender(cmd.Context(), runner, args[0], cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), popts, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dxf (comma-separated)")
	cmd.Flags().BoolVar(&opts.legacyClamp, "legacy-clamp", false, "use the historical vertical edge clamp")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject zero or negative panel dimensions")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and re-render")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", pipeline.DefaultPNGScale, "PNG scale factor")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress progress output")

	return cmd
}

// runRender executes the pipeline for one input and writes every artifact.
func (c *CLI) runRender(ctx context.Context, runner *pipeline.Runner, input string, stdin io.Reader, stdout, stderr io.Writer, popts pipeline.Options, opts *renderOpts) error {
	ctx = withLogger(ctx, c.Logger)
	logger := loggerFromContext(ctx)

	payload, err := readInput(input, stdin)
	if err != nil {
		return err
	}
	logger.Debug("read state", "input", input, "bytes", len(payload))

	toStdout := input == stdinArg && opts.output == "" && len(popts.Formats) == 1

	var spin *spinner
	if !opts.quiet && !toStdout {
		spin = newSpinner(ctx, stderr, "Rendering "+strings.Join(popts.Formats, ", "))
		spin.Start()
	}
	prog := newProgress(logger)
	result, err := runner.Execute(ctx, payload, popts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d holes", result.Stats.HoleCount))

	if result.Stats.ClampedCount > 0 {
		logger.Warn("holes moved inside the edge margin", "count", result.Stats.ClampedCount)
	}

	if toStdout {
		_, err := stdout.Write(result.Artifacts[popts.Formats[0]])
		return err
	}

	paths := outputPaths(opts.output, input, popts.Formats)
	for _, format := range popts.Formats {
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debug("wrote artifact", "format", format, "path", path, "cached", slices.Contains(result.CacheInfo.Hits, format))
	}

	if !opts.quiet {
		printSuccess(stdout, "Rendered %s", input)
		printStats(stdout, result.Stats.HoleCount, result.Stats.ClampedCount, result.CacheInfo.RenderHit)
		for _, format := range popts.Formats {
			printFile(stdout, paths[format])
		}
	}
	return nil
}

// readInput reads the payload from a file, or from stdin for "-".
func readInput(input string, stdin io.Reader) ([]byte, error) {
	if input == stdinArg {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", input, err)
	}
	return data, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input ("preview" for stdin).
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinArg {
			return "preview"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to its file. A single format written to an
// explicit --output keeps that exact path.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
