// Package render turns segment summaries into terminal dashboards.
package render

import (
	"fmt"
	"strings"

	"github.com/Veraticus/segscope/internal/cli"
	"github.com/Veraticus/segscope/internal/model"
	"github.com/Veraticus/segscope/internal/segment"
	"github.com/charmbracelet/lipgloss"
)

// Section is one block of the dashboard. In tabbed layouts each section is a tab.
type Section int

// Dashboard sections in display order.
const (
	SectionOverview Section = iota
	SectionDistribution
	SectionScatter
	SectionInsights
	SectionData
)

// Sections lists every section in display order.
var Sections = []Section{SectionOverview, SectionDistribution, SectionScatter, SectionInsights, SectionData}

// String returns the tab title of the section.
func (s Section) String() string {
	switch s {
	case SectionOverview:
		return "Overview"
	case SectionDistribution:
		return "Distribution"
	case SectionScatter:
		return "Scatter"
	case SectionInsights:
		return "Insights"
	case SectionData:
		return "Data"
	default:
		return "Unknown"
	}
}

// Options configures a Dashboard.
type Options struct {
	Profiles      model.ClusterProfiles
	Title         string
	Caption       string
	Currency      string
	SampleSize    int
	Width         int
	ScatterHeight int
}

// Dashboard renders snapshots with a fixed palette and options.
type Dashboard struct {
	styles  *Styles
	palette Palette
	opts    Options
}

// New creates a dashboard.
func New(palette Palette, opts Options) *Dashboard {
	if opts.Width <= 0 {
		opts.Width = 100
	}
	if opts.ScatterHeight <= 0 {
		opts.ScatterHeight = 14
	}
	return &Dashboard{styles: NewStyles(), palette: palette, opts: opts}
}

// Palette returns the dashboard palette.
func (d *Dashboard) Palette() Palette {
	return d.palette
}

// Width returns the render width.
func (d *Dashboard) Width() int {
	return d.opts.Width
}

// WithWidth returns a copy of d rendering at width columns.
func (d *Dashboard) WithWidth(width int) *Dashboard {
	next := *d
	if width > 0 {
		next.opts.Width = width
	}
	return &next
}

// SampleSize returns how many rows the data section shows at once.
// Zero or less means every row.
func (d *Dashboard) SampleSize() int {
	return d.opts.SampleSize
}

// Render draws every section stacked on one page.
func (d *Dashboard) Render(snap segment.Snapshot) string {
	return d.RenderPage(snap, 0)
}

// RenderPage is Render with the data table starting at row offset.
func (d *Dashboard) RenderPage(snap segment.Snapshot, offset int) string {
	parts := []string{d.Header(snap.View)}
	for _, s := range Sections {
		parts = append(parts, d.RenderSection(s, snap, offset))
	}
	return strings.Join(parts, "\n\n")
}

// RenderSection draws a single section. offset pages the data table.
func (d *Dashboard) RenderSection(s Section, snap segment.Snapshot, offset int) string {
	switch s {
	case SectionOverview:
		return strings.Join([]string{
			d.MetricCards(snap.Summary),
			d.heading(cli.ChartIcon, "Customers per Cluster"),
			d.BarChart(snap.Summary),
			d.heading(cli.DonutIcon, "Customer Share per Cluster"),
			d.ProportionChart(snap.Summary),
		}, "\n")

	case SectionDistribution:
		parts := []string{d.heading(cli.ViolinIcon, "RFM Distribution per Cluster")}
		for _, dist := range segment.Distributions(snap.View) {
			parts = append(parts, d.DistributionChart(dist))
		}
		return strings.Join(parts, "\n\n")

	case SectionScatter:
		return d.heading(cli.TargetIcon, "Customer Spread (Recency vs Monetary)") + "\n" + d.Scatter(snap.View)

	case SectionInsights:
		return d.heading(cli.BrainIcon, "Cluster Insights") + "\n" + d.Insights(snap.View)

	case SectionData:
		return d.heading(cli.TableIcon, "Customer Data (Sample)") + "\n" + d.SampleTable(snap.View, offset)

	default:
		return ""
	}
}

// Header renders the title, caption and current filter.
func (d *Dashboard) Header(view *segment.View) string {
	lines := []string{d.styles.Title.Render(cli.ChartIcon + " " + d.opts.Title)}
	if d.opts.Caption != "" {
		lines = append(lines, d.styles.Subtle.Width(d.opts.Width).Render(d.opts.Caption))
	}

	selected := make([]string, 0, view.Selection().Len())
	for _, id := range view.Selection().IDs() {
		selected = append(selected, d.palette.Style(id).Render(id.String()))
	}
	filter := "none"
	if len(selected) > 0 {
		filter = strings.Join(selected, ", ")
	}
	source := fmt.Sprintf("source: %s (loaded %s)", view.Table().Source(), view.Table().LoadedAt().Format("2006-01-02 15:04"))
	lines = append(lines, fmt.Sprintf("%s Clusters: %s   %s", cli.FilterIcon, filter, d.styles.Subtle.Render(source)))

	return strings.Join(lines, "\n")
}

// MetricCards renders total customers and the two headline means.
func (d *Dashboard) MetricCards(summary segment.Summary) string {
	card := func(label, value string) string {
		return d.styles.Card.Render(d.styles.CardLabel.Render(label) + "\n" + d.styles.CardValue.Render(value))
	}

	monetary := segment.Placeholder
	if summary.AvgMonetary.Valid {
		monetary = FormatMoney(d.opts.Currency, summary.AvgMonetary.Rounded())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Customer", FormatCount(summary.Total)),
		card("Avg Frequency", FormatMean(summary.AvgFrequency)),
		card(fmt.Sprintf("Avg Monetary (%s)", d.opts.Currency), monetary),
	)
}

func (d *Dashboard) heading(icon, title string) string {
	return d.styles.Section.Render(icon + " " + title)
}
