package render

import (
	"strings"

	"github.com/Veraticus/segscope/internal/model"
	"github.com/Veraticus/segscope/internal/segment"
	"github.com/charmbracelet/lipgloss"
)

// Insights renders one card per cluster of the table. Clusters outside the
// current selection are dimmed rather than hidden.
func (d *Dashboard) Insights(view *segment.View) string {
	clusters := view.Table().Clusters()
	if len(clusters) == 0 {
		return d.styles.Subtle.Render("The table has no clusters")
	}

	cards := make([]string, 0, len(clusters))
	for _, id := range clusters {
		cards = append(cards, d.insightCard(id, d.opts.Profiles.Lookup(id), view.Selection().Contains(id)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (d *Dashboard) insightCard(id model.ClusterID, profile model.ClusterProfile, selected bool) string {
	box := d.styles.InsightBox.
		BorderForeground(d.palette.Color(id)).
		Width(max(20, d.opts.Width-2))

	title := d.palette.Style(id).Bold(true).Render(profile.Title(id))

	var body []string
	if len(profile.Characteristics) == 0 && len(profile.Actions) == 0 {
		body = append(body, d.styles.Subtle.Render("No profile configured for this cluster"))
	}
	if len(profile.Characteristics) > 0 {
		body = append(body, d.styles.Bold.Render("Characteristics:"), bullets(profile.Characteristics))
	}
	if len(profile.Actions) > 0 {
		body = append(body, d.styles.Bold.Render("Actions:"), bullets(profile.Actions))
	}

	card := box.Render(lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, body...)...))
	if !selected {
		return d.styles.Dimmed.Render(card)
	}
	return card
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "  • " + item
	}
	return strings.Join(lines, "\n")
}
