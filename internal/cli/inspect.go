package cli

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/panelview/pkg/errors"
	"github.com/matzehuels/panelview/pkg/preview/layout"
	"github.com/matzehuels/panelview/pkg/state"
)

// inspectCommand creates the inspect command, which shows how every hole
// was resolved: diameter source, clamping and canvas position.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain       bool
		legacyClamp bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <state.json|->",
		Short: "Show the resolved holes of a state snapshot",
		Long: `Inspect decodes a state snapshot and lists every hole after diameter
resolution and edge clamping. It opens an interactive table unless --plain
is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("legacy-clamp") {
				legacyClamp = cfg.Render.LegacyClamp
			}

			payload, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			st, err := state.Decode(payload)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPayload, err, "decode %s", args[0])
			}

			var opts []layout.Option
			if legacyClamp {
				opts = append(opts, layout.WithLegacyClamp())
			}
			l := layout.Build(st, opts...)
			c.Logger.Debug("built layout", "holes", len(l.Holes), "clamped", l.ClampedCount())

			if plain {
				return printHoleTable(cmd.OutOrStdout(), l)
			}
			_, err = tea.NewProgram(newInspectModel(args[0], l), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a static table instead of the interactive view")
	cmd.Flags().BoolVar(&legacyClamp, "legacy-clamp", false, "use the historical vertical edge clamp")

	return cmd
}

// holeColumns are the headers shared by the plain and interactive tables.
var holeColumns = []string{"#", "Source", "Diameter", "Center", "Clamped", "Canvas"}

// holeRow formats one resolved hole.
func holeRow(h layout.Hole) []string {
	idx := fmt.Sprint(h.Index)
	if h.Selected {
		idx += "*"
	}
	return []string{
		idx,
		string(h.Badge),
		fmt.Sprintf("%.2f in", h.Diameter),
		fmt.Sprintf("%.2f, %.2f", h.CX, h.CY),
		clampLabel(h),
		fmt.Sprintf("%.1f, %.1f r %.1f", h.DispX, h.DispY, h.DispR),
	}
}

func clampLabel(h layout.Hole) string {
	switch {
	case h.ClampedX && h.ClampedY:
		return "x, y"
	case h.ClampedX:
		return "x"
	case h.ClampedY:
		return "y"
	}
	return "-"
}

// panelSummary describes the panel and frame in one line.
func panelSummary(l layout.Layout) string {
	return fmt.Sprintf("%g x %g x %g in · zoom %s · scale %.2f px/in · %d holes",
		l.Width, l.Height, l.Depth, l.ZoomMode, l.Frame.Scale, len(l.Holes))
}

// printHoleTable writes the holes as a bordered lipgloss table.
func printHoleTable(w io.Writer, l layout.Layout) error {
	rows := make([][]string, len(l.Holes))
	for i, h := range l.Holes {
		rows[i] = holeRow(h)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers(holeColumns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || row >= len(l.Holes) {
				return base
			}
			h := l.Holes[row]
			switch {
			case h.Selected:
				return base.Foreground(colorAccent).Bold(true)
			case col == 4 && (h.ClampedX || h.ClampedY):
				return base.Foreground(colorWarn)
			}
			return base
		})

	if _, err := fmt.Fprintln(w, StyleDim.Render(panelSummary(l))); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
