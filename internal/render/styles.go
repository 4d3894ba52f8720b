package render

import (
	"github.com/Veraticus/segscope/internal/cli"
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all styling definitions for the dashboard.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Section  lipgloss.Style
	Subtle   lipgloss.Style
	Warning  lipgloss.Style
	Normal   lipgloss.Style
	Bold     lipgloss.Style

	Card       lipgloss.Style
	CardLabel  lipgloss.Style
	CardValue  lipgloss.Style
	InsightBox lipgloss.Style
	Dimmed     lipgloss.Style
	TableCell  lipgloss.Style
	TableHead  lipgloss.Style
	TableFrame lipgloss.Style
}

// NewStyles creates a new Styles instance with default styling.
func NewStyles() *Styles {
	s := &Styles{
		Title:    cli.TitleStyle.MarginBottom(0),
		Subtitle: cli.SubtitleStyle,
		Subtle:   cli.SubtleStyle,
		Warning:  cli.WarningStyle,
		Normal:   lipgloss.NewStyle(),
		Bold:     cli.BoldStyle,
	}

	s.Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.PrimaryColor).
		MarginTop(1)

	s.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cli.SubtleColor).
		Padding(0, 2).
		MarginRight(1)

	s.CardLabel = lipgloss.NewStyle().
		Foreground(cli.SubtleColor)

	s.CardValue = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.SuccessColor)

	s.InsightBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		MarginTop(1)

	s.Dimmed = lipgloss.NewStyle().
		Foreground(cli.SubtleColor).
		Faint(true)

	s.TableCell = lipgloss.NewStyle().Padding(0, 1)
	s.TableHead = s.TableCell.Bold(true).Foreground(cli.PrimaryColor)
	s.TableFrame = lipgloss.NewStyle().Foreground(cli.SubtleColor)

	return s
}
