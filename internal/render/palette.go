package render

import (
	"sort"

	"github.com/Veraticus/segscope/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Named color sequences. Set2 matches the seaborn palette of the same name.
var sequences = map[string][]lipgloss.Color{
	"set2": {
		"#66C2A5", "#FC8D62", "#8DA0CB", "#E78AC3",
		"#A6D854", "#FFD92F", "#E5C494", "#B3B3B3",
	},
	"tab10": {
		"#1F77B4", "#FF7F0E", "#2CA02C", "#D62728", "#9467BD",
		"#8C564B", "#E377C2", "#7F7F7F", "#BCBD22", "#17BECF",
	},
	"pastel": {
		"#A1C9F4", "#FFB482", "#8DE5A1", "#FF9F9B",
		"#D0BBFF", "#DEBB9B", "#FAB0E4", "#CFCFCF",
	},
	// "map" assigns nothing by position; only explicit colors apply.
	"map": nil,
}

// DefaultFallback is used for clusters without an assigned color.
const DefaultFallback = lipgloss.Color("#B3B3B3")

// Palette maps cluster ids to colors. Unmapped clusters get the fallback.
type Palette struct {
	colors   map[model.ClusterID]lipgloss.Color
	fallback lipgloss.Color
}

// PaletteOptions describes how to build a Palette.
type PaletteOptions struct {
	Explicit map[model.ClusterID]string
	Profiles model.ClusterProfiles
	Name     string
	Fallback string
	Clusters []model.ClusterID
}

// HasSequence reports whether name is a known palette name.
func HasSequence(name string) bool {
	_, ok := sequences[name]
	return ok
}

// NewPalette assigns colors in three layers: the named sequence by ascending
// cluster id, then profile colors, then explicit per-cluster colors.
func NewPalette(opts PaletteOptions) Palette {
	p := Palette{
		colors:   make(map[model.ClusterID]lipgloss.Color),
		fallback: DefaultFallback,
	}
	if opts.Fallback != "" {
		p.fallback = lipgloss.Color(opts.Fallback)
	}

	clusters := append([]model.ClusterID(nil), opts.Clusters...)
	sort.Slice(clusters, func(i, j int) bool { return clusters[i] < clusters[j] })

	seq := sequences[opts.Name]
	for i, id := range clusters {
		if len(seq) == 0 {
			break
		}
		p.colors[id] = seq[i%len(seq)]
	}

	for id, profile := range opts.Profiles {
		if profile.Color != "" {
			p.colors[id] = lipgloss.Color(profile.Color)
		}
	}
	for id, c := range opts.Explicit {
		p.colors[id] = lipgloss.Color(c)
	}

	return p
}

// Color returns the color for id.
func (p Palette) Color(id model.ClusterID) lipgloss.Color {
	if c, ok := p.colors[id]; ok {
		return c
	}
	if p.fallback == "" {
		return DefaultFallback
	}
	return p.fallback
}

// Style returns a foreground style in the cluster's color.
func (p Palette) Style(id model.ClusterID) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Color(id))
}
