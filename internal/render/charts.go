package render

import (
	"fmt"
	"strings"

	"github.com/Veraticus/segscope/internal/model"
	"github.com/Veraticus/segscope/internal/segment"
	"github.com/charmbracelet/lipgloss"
)

const emptyMessage = "No customers in the current selection"

func clusterLabel(id model.ClusterID) string {
	return "Cluster " + id.String()
}

// BarChart draws one horizontal bar per cluster count.
func (d *Dashboard) BarChart(summary segment.Summary) string {
	if summary.Total == 0 {
		return d.styles.Subtle.Render(emptyMessage)
	}

	labelWidth := 0
	for _, c := range summary.Counts {
		labelWidth = max(labelWidth, lipgloss.Width(clusterLabel(c.Cluster)))
	}
	countWidth := len(FormatCount(summary.MaxCount()))
	barWidth := max(10, d.opts.Width-labelWidth-countWidth-4)

	peak := summary.MaxCount()
	lines := make([]string, 0, len(summary.Counts))
	for _, c := range summary.Counts {
		n := c.Count * barWidth / peak
		if n == 0 && c.Count > 0 {
			n = 1
		}
		bar := d.palette.Style(c.Cluster).Render(strings.Repeat("█", n))
		lines = append(lines, fmt.Sprintf("%s  %s %s",
			padRight(clusterLabel(c.Cluster), labelWidth),
			bar,
			FormatCount(c.Count)))
	}
	return strings.Join(lines, "\n")
}

// ProportionChart is the terminal stand-in for a donut chart: a single
// ring segmented by cluster share, followed by a percentage legend.
func (d *Dashboard) ProportionChart(summary segment.Summary) string {
	shares := summary.Proportions()
	if len(shares) == 0 {
		return d.styles.Subtle.Render(emptyMessage)
	}

	width := max(10, d.opts.Width-2)
	cells := apportion(shares, width)

	var ring strings.Builder
	for i, s := range shares {
		ring.WriteString(d.palette.Style(s.Cluster).Render(strings.Repeat("━", cells[i])))
	}

	legend := make([]string, 0, len(shares))
	for _, s := range shares {
		legend = append(legend, fmt.Sprintf("%s %s %s  %s",
			d.palette.Style(s.Cluster).Render("■"),
			padRight(clusterLabel(s.Cluster), 10),
			padLeft(fmt.Sprintf("%.1f%%", s.Share*100), 6),
			d.styles.Subtle.Render("("+FormatCount(s.Count)+")")))
	}

	return ring.String() + "\n" + strings.Join(legend, "\n")
}

// apportion splits width cells among shares with the largest remainder
// method, so the cells always sum to width.
func apportion(shares []segment.ClusterShare, width int) []int {
	cells := make([]int, len(shares))
	remainders := make([]float64, len(shares))
	used := 0
	for i, s := range shares {
		exact := s.Share * float64(width)
		cells[i] = int(exact)
		remainders[i] = exact - float64(cells[i])
		used += cells[i]
	}
	for ; used < width; used++ {
		best := 0
		for i := range remainders {
			if remainders[i] > remainders[best] {
				best = i
			}
		}
		cells[best]++
		remainders[best] = -1
	}
	return cells
}

// Scatter plots Recency (x) against MonetaryValue (y), one glyph per
// occupied cell, coloured by the cluster of the last customer in that cell.
func (d *Dashboard) Scatter(view *segment.View) string {
	if view.Len() == 0 {
		return d.styles.Subtle.Render(emptyMessage)
	}

	const axisWidth = 9
	width := max(10, d.opts.Width-axisWidth-2)
	height := d.opts.ScatterHeight

	first := view.At(0)
	minX, maxX := float64(first.Recency), float64(first.Recency)
	minY, maxY := first.MonetaryValue, first.MonetaryValue
	view.Each(func(c model.Customer) {
		minX = min(minX, float64(c.Recency))
		maxX = max(maxX, float64(c.Recency))
		minY = min(minY, c.MonetaryValue)
		maxY = max(maxY, c.MonetaryValue)
	})

	type cell struct {
		cluster model.ClusterID
		used    bool
	}
	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}
	view.Each(func(c model.Customer) {
		x := scale(float64(c.Recency), minX, maxX, width)
		y := height - 1 - scale(c.MonetaryValue, minY, maxY, height)
		grid[y][x] = cell{cluster: c.Cluster, used: true}
	})

	lines := make([]string, 0, height+3)
	for row := range grid {
		label := ""
		switch row {
		case 0:
			label = FormatCompact(maxY)
		case height - 1:
			label = FormatCompact(minY)
		}

		var b strings.Builder
		for _, c := range grid[row] {
			if c.used {
				b.WriteString(d.palette.Style(c.cluster).Render("●"))
			} else {
				b.WriteByte(' ')
			}
		}
		lines = append(lines, padLeft(label, axisWidth-1)+" │"+b.String())
	}

	lines = append(lines, strings.Repeat(" ", axisWidth)+"└"+strings.Repeat("─", width))
	lo, hi := FormatCompact(minX), FormatCompact(maxX)
	lines = append(lines, strings.Repeat(" ", axisWidth+1)+padRight(lo, width-len(hi))+hi)
	lines = append(lines, d.styles.Subtle.Render(fmt.Sprintf("%sx: Recency (days)   y: Monetary Value (%s)",
		strings.Repeat(" ", axisWidth+1), d.opts.Currency)))

	legend := make([]string, 0, view.Selection().Len())
	for _, id := range view.Selection().IDs() {
		legend = append(legend, d.palette.Style(id).Render("● "+clusterLabel(id)))
	}
	lines = append(lines, strings.Repeat(" ", axisWidth+1)+strings.Join(legend, "  "))

	return strings.Join(lines, "\n")
}

// DistributionChart draws one box plot per cluster on a shared axis:
// ├── whiskers, ▓ inter-quartile box, ┃ median.
func (d *Dashboard) DistributionChart(dist segment.Distribution) string {
	title := d.styles.Bold.Render(dist.Dimension.String())
	if len(dist.Clusters) == 0 {
		return title + "\n" + d.styles.Subtle.Render(emptyMessage)
	}

	const labelWidth = 11
	const statsWidth = 30
	width := max(10, d.opts.Width-labelWidth-statsWidth-2)

	lines := []string{title}
	for _, cq := range dist.Clusters {
		q := cq.Quartiles
		pos := func(v float64) int { return scale(v, dist.Min, dist.Max, width) }
		lo, q1, med, q3, hi := pos(q.Min), pos(q.Q1), pos(q.Median), pos(q.Q3), pos(q.Max)

		cells := make([]rune, width)
		for i := range cells {
			switch {
			case i < lo || i > hi:
				cells[i] = ' '
			case i == med:
				cells[i] = '┃'
			case i >= q1 && i <= q3:
				cells[i] = '▓'
			case i == lo:
				cells[i] = '├'
			case i == hi:
				cells[i] = '┤'
			default:
				cells[i] = '─'
			}
		}

		stats := fmt.Sprintf("med %s  IQR %s–%s",
			FormatCompact(q.Median), FormatCompact(q.Q1), FormatCompact(q.Q3))
		lines = append(lines, fmt.Sprintf("%s %s %s",
			padRight(clusterLabel(cq.Cluster), labelWidth),
			d.palette.Style(cq.Cluster).Render(string(cells)),
			d.styles.Subtle.Render(stats)))
	}

	axis := padRight(FormatCompact(dist.Min), width-len(FormatCompact(dist.Max))) + FormatCompact(dist.Max)
	lines = append(lines, strings.Repeat(" ", labelWidth+1)+d.styles.Subtle.Render(axis))

	return strings.Join(lines, "\n")
}
