package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette (ANSI 256).
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
	colorBright = lipgloss.Color("255")
)

// Styles shared by the status lines and the inspect view.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorAccent)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorBright)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

// status is a one-line message kind: a glyph plus how to color it.
type status struct {
	glyph string
	style lipgloss.Style
	body  func(string) string
}

var (
	statusOK   = status{"✓", lipgloss.NewStyle().Foreground(colorOK), nil}
	statusWarn = status{"!", lipgloss.NewStyle().Foreground(colorWarn), func(s string) string { return StyleWarning.Render(s) }}
	statusInfo = status{"›", lipgloss.NewStyle().Foreground(colorMuted), nil}
)

func (s status) print(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if s.body != nil {
		msg = s.body(msg)
	}
	fmt.Fprintln(w, s.style.Render(s.glyph)+" "+msg)
}

func printSuccess(w io.Writer, format string, args ...any) { statusOK.print(w, format, args...) }
func printWarning(w io.Writer, format string, args ...any) { statusWarn.print(w, format, args...) }
func printInfo(w io.Writer, format string, args ...any)    { statusInfo.print(w, format, args...) }

// printDetail prints an indented, dimmed line under a status line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints one written artifact path.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// printStats prints the render summary, e.g. "3 holes · 1 clamped · cached".
func printStats(w io.Writer, holeCount, clampedCount int, cached bool) {
	parts := []string{StyleDim.Render(fmt.Sprintf("%d holes", holeCount))}
	if clampedCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d clamped", clampedCount)))
	}
	if cached {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorOK).Render("cached"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorMuted).Render("fresh"))
	}
	fmt.Fprintln(w, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}
