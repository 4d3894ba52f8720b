// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Veraticus/segscope/internal/common"
	"github.com/Veraticus/segscope/internal/model"
	"github.com/spf13/viper"
)

// Layout names accepted by display.layout.
const (
	LayoutPage = "page"
	LayoutTabs = "tabs"
)

// Config is the typed view of everything segscope reads from viper.
type Config struct {
	Profiles model.ClusterProfiles
	Palette  PaletteConfig
	Data     DataConfig
	Display  DisplayConfig
	Export   ExportConfig
	Logging  LoggingConfig
}

// DataConfig locates the segmentation table.
type DataConfig struct {
	Source    string
	Table     string
	Delimiter rune
}

// DisplayConfig controls the dashboard chrome.
type DisplayConfig struct {
	Title      string
	Caption    string
	Currency   string
	Layout     string
	SampleSize int
	Width      int
}

// PaletteConfig maps clusters to colors.
type PaletteConfig struct {
	Colors   map[model.ClusterID]string
	Name     string
	Fallback string
}

// ExportConfig controls CSV export.
type ExportConfig struct {
	Dir      string
	Progress bool
}

// LoggingConfig controls slog setup.
type LoggingConfig struct {
	Level  string
	Format string
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.source", "rfm_segmentasi_final.csv")
	v.SetDefault("data.table", "")
	v.SetDefault("data.delimiter", ",")

	v.SetDefault("display.title", "RFM Customer Segmentation Dashboard")
	v.SetDefault("display.caption", "Customer segments by Recency, Frequency and Monetary value to support marketing decisions.")
	v.SetDefault("display.currency", "£")
	v.SetDefault("display.layout", LayoutPage)
	v.SetDefault("display.sample_size", 50)
	v.SetDefault("display.width", 100)

	v.SetDefault("palette.name", "set2")
	v.SetDefault("palette.fallback", "#b3b3b3")

	v.SetDefault("export.dir", ".")
	v.SetDefault("export.progress", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load builds a Config from v. Cluster profiles come from the "clusters" key
// and, when profiles.path is set, from that YAML file layered on top.
func Load(v *viper.Viper) (*Config, error) {
	delimiter, err := parseDelimiter(v.GetString("data.delimiter"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Data: DataConfig{
			Source:    ExpandPath(v.GetString("data.source")),
			Table:     v.GetString("data.table"),
			Delimiter: delimiter,
		},
		Display: DisplayConfig{
			Title:      v.GetString("display.title"),
			Caption:    v.GetString("display.caption"),
			Currency:   v.GetString("display.currency"),
			Layout:     strings.ToLower(v.GetString("display.layout")),
			SampleSize: v.GetInt("display.sample_size"),
			Width:      v.GetInt("display.width"),
		},
		Palette: PaletteConfig{
			Name:     strings.ToLower(v.GetString("palette.name")),
			Fallback: v.GetString("palette.fallback"),
		},
		Export: ExportConfig{
			Dir:      ExpandPath(v.GetString("export.dir")),
			Progress: v.GetBool("export.progress"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}

	cfg.Palette.Colors, err = clusterKeyed(v.GetStringMapString("palette.colors"))
	if err != nil {
		return nil, fmt.Errorf("palette.colors: %w", err)
	}

	cfg.Profiles = make(model.ClusterProfiles)
	var inline map[string]model.ClusterProfile
	if err := v.UnmarshalKey("clusters", &inline); err != nil {
		return nil, fmt.Errorf("%w: clusters: %v", common.ErrInvalidConfig, err)
	}
	for key, profile := range inline {
		id, err := model.ParseClusterID(key)
		if err != nil {
			return nil, fmt.Errorf("%w: clusters: %v", common.ErrInvalidConfig, err)
		}
		cfg.Profiles[id] = profile
	}

	if path := v.GetString("profiles.path"); path != "" {
		fromFile, err := LoadProfiles(ExpandPath(path))
		if err != nil {
			return nil, err
		}
		for id, profile := range fromFile {
			cfg.Profiles[id] = profile
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6}|[0-9]{1,3})$`)

// Validate checks value ranges and color formats.
func (c *Config) Validate() error {
	if c.Data.Source == "" {
		return fmt.Errorf("%w: data.source is required", common.ErrMissingConfig)
	}

	switch c.Display.Layout {
	case LayoutPage, LayoutTabs:
	default:
		return fmt.Errorf("%w: display.layout must be %q or %q, got %q",
			common.ErrInvalidConfig, LayoutPage, LayoutTabs, c.Display.Layout)
	}

	if c.Display.SampleSize < 0 {
		return fmt.Errorf("%w: display.sample_size cannot be negative", common.ErrInvalidConfig)
	}
	if c.Display.Width < 40 {
		return fmt.Errorf("%w: display.width must be at least 40", common.ErrInvalidConfig)
	}

	if c.Palette.Fallback != "" && !colorPattern.MatchString(c.Palette.Fallback) {
		return fmt.Errorf("%w: palette.fallback %q is not a color", common.ErrInvalidConfig, c.Palette.Fallback)
	}
	for id, color := range c.Palette.Colors {
		if !colorPattern.MatchString(color) {
			return fmt.Errorf("%w: palette color for cluster %s %q is not a color", common.ErrInvalidConfig, id, color)
		}
	}
	for id, p := range c.Profiles {
		if p.Color != "" && !colorPattern.MatchString(p.Color) {
			return fmt.Errorf("%w: color for cluster %s %q is not a color", common.ErrInvalidConfig, id, p.Color)
		}
	}

	return nil
}

func clusterKeyed(in map[string]string) (map[model.ClusterID]string, error) {
	out := make(map[model.ClusterID]string, len(in))
	for key, value := range in {
		id, err := model.ParseClusterID(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
		}
		out[id] = value
	}
	return out, nil
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "", ",":
		return ',', nil
	case `\t`, "tab", "\t":
		return '\t', nil
	}
	if unquoted, err := strconv.Unquote(`"` + s + `"`); err == nil {
		s = unquoted
	}
	r := []rune(s)
	if len(r) != 1 || r[0] == '"' || r[0] == '\r' || r[0] == '\n' {
		return 0, fmt.Errorf("%w: data.delimiter must be a single character, got %q", common.ErrInvalidConfig, s)
	}
	return r[0], nil
}
