package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/panelview/pkg/preview/layout"
)

// Detail pane styles
var (
	detailLabelStyle = lipgloss.NewStyle().Foreground(colorMuted).Width(10)
	detailBoxStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorFaint).
				Padding(0, 1)
)

// =============================================================================
// InspectModel - Interactive hole table
// =============================================================================

type inspectKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

func (k inspectKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Up, k.Down, k.Quit} }

func (k inspectKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var inspectKeys = inspectKeyMap{
	Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// InspectModel is the bubbletea model behind `panelview inspect`.
type InspectModel struct {
	Title  string
	Layout layout.Layout

	table table.Model
	help  help.Model
}

func newInspectModel(title string, l layout.Layout) InspectModel {
	widths := []int{4, 6, 10, 14, 8, 22}
	cols := make([]table.Column, len(holeColumns))
	for i, name := range holeColumns {
		cols[i] = table.Column{Title: name, Width: widths[i]}
	}
	rows := make([]table.Row, len(l.Holes))
	for i, h := range l.Holes {
		rows[i] = holeRow(h)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorFaint).
		BorderBottom(true).
		Foreground(colorMuted).
		Bold(true)
	styles.Selected = styles.Selected.Foreground(colorAccent).Bold(true)

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(max(len(rows), 1), 15)),
		table.WithStyles(styles),
	)

	return InspectModel{Title: title, Layout: l, table: t, help: help.New()}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, inspectKeys.Quit) {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h := msg.Height - 14
		if h < 3 {
			h = 3
		}
		m.table.SetHeight(min(h, max(len(m.Layout.Holes), 1)))
		m.help.Width = msg.Width
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(panelSummary(m.Layout)))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if i := m.table.Cursor(); i >= 0 && i < len(m.Layout.Holes) {
		b.WriteString(detailBoxStyle.Render(holeDetail(m.Layout.Holes[i])))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(inspectKeys))
	return b.String()
}

// holeDetail explains how one hole's diameter and position were chosen.
func holeDetail(h layout.Hole) string {
	source := map[layout.Badge]string{
		layout.BadgeSpec: "specified diameter",
		layout.BadgeCut:  "measured cut diameter",
		layout.BadgeEst:  fmt.Sprintf("nominal x %.2f", layout.EstimateFactor),
	}[h.Badge]

	lines := []string{
		detailLabelStyle.Render("Hole") + StyleValue.Render(fmt.Sprint(h.Index)),
		detailLabelStyle.Render("Source") + StyleValue.Render(string(h.Badge)) + StyleDim.Render(" ("+source+")"),
		detailLabelStyle.Render("Diameter") + StyleNumber.Render(fmt.Sprintf("%.3f in", h.Diameter)),
		detailLabelStyle.Render("Center") + StyleNumber.Render(fmt.Sprintf("%.3f, %.3f in", h.CX, h.CY)),
	}
	if h.ClampedX || h.ClampedY {
		lines = append(lines, detailLabelStyle.Render("Clamped")+StyleWarning.Render(clampLabel(h)+fmt.Sprintf(" (%.1f in margin)", layout.EdgeMargin)))
	}
	if h.Selected {
		lines = append(lines, detailLabelStyle.Render("")+StyleHighlight.Render("selected"))
	}
	return strings.Join(lines, "\n")
}
