package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/segscope/internal/cli"
	"github.com/Veraticus/segscope/internal/config"
	"github.com/Veraticus/segscope/internal/render"
	"github.com/charmbracelet/lipgloss"
)

var (
	sidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth).
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(cli.SubtleColor)

	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(cli.PrimaryColor).
			Padding(0, 1)
	tabStyle = lipgloss.NewStyle().
			Foreground(cli.SubtleColor).
			Padding(0, 1)
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	content := m.viewport.View()
	if m.layout == config.LayoutTabs {
		content = m.renderTabs() + "\n\n" + content
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), content)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatus(), m.help.View(m.keymap))
}

// renderSidebar draws the cluster multi-select.
func (m Model) renderSidebar() string {
	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render(cli.FilterIcon + " Clusters"))
	b.WriteString("\n")

	if len(m.clusters) == 0 {
		b.WriteString(cli.SubtleStyle.Render("No clusters loaded"))
		return sidebarStyle.Render(b.String())
	}

	palette := m.dashboard.Palette()
	for i, id := range m.clusters {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		check := "[ ]"
		if m.selection.Contains(id) {
			check = "[x]"
		}
		label := palette.Style(id).Render(fmt.Sprintf("Cluster %s", id))
		count := cli.SubtleStyle.Render(render.FormatCount(m.table.ClusterSize(id)))
		fmt.Fprintf(&b, "%s%s %s %s\n", pointer, check, label, count)
	}

	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render(fmt.Sprintf("%s of %s customers",
		render.FormatCount(m.snap.Summary.Total), render.FormatCount(m.table.Len()))))

	return sidebarStyle.Height(m.viewport.Height).Render(b.String())
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(render.Sections))
	for _, s := range render.Sections {
		if s == m.tab {
			tabs = append(tabs, activeTabStyle.Render(s.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(s.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderStatus() string {
	switch {
	case m.status == "":
		return cli.SubtleStyle.Render(fmt.Sprintf("Clusters: %s  ·  %3.f%%", m.selection, m.viewport.ScrollPercent()*100))
	case m.statusErr:
		return cli.FormatError(m.status)
	default:
		return cli.FormatSuccess(m.status)
	}
}
