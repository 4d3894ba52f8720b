package render

import (
	"math"
	"strings"

	"github.com/Veraticus/segscope/internal/segment"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatMoney renders an amount with two decimals and thousands separators.
func FormatMoney(currency string, v float64) string {
	return currency + printer.Sprintf("%.2f", v)
}

// FormatMean renders a mean like Mean.Display but with grouping separators.
func FormatMean(m segment.Mean) string {
	if !m.Valid {
		return segment.Placeholder
	}
	return printer.Sprintf("%.2f", m.Rounded())
}

// FormatCompact shortens large axis values: 1234567 -> 1.2M.
func FormatCompact(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e6:
		return trimZero(printer.Sprintf("%.1f", v/1e6)) + "M"
	case abs >= 1e3:
		return trimZero(printer.Sprintf("%.1f", v/1e3)) + "k"
	case abs >= 100 || v == math.Trunc(v):
		return printer.Sprintf("%.0f", v)
	default:
		return printer.Sprintf("%.2f", v)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// padRight pads s with spaces to width cells, ANSI aware.
func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// padLeft pads s with leading spaces to width cells, ANSI aware.
func padLeft(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

// scale maps v from [lo, hi] onto [0, cells-1]. A degenerate range maps to 0.
func scale(v, lo, hi float64, cells int) int {
	if cells <= 1 || hi <= lo {
		return 0
	}
	pos := int(math.Round((v - lo) / (hi - lo) * float64(cells-1)))
	return max(0, min(cells-1, pos))
}
