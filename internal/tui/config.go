package tui

import (
	"github.com/Veraticus/segscope/internal/config"
	"github.com/Veraticus/segscope/internal/export"
	"github.com/Veraticus/segscope/internal/render"
	"github.com/Veraticus/segscope/internal/segment"
)

// ExportFunc writes a view somewhere and returns where it went.
type ExportFunc func(view *segment.View) (string, error)

// Config holds TUI configuration.
type Config struct {
	Table     *segment.Table
	Dashboard *render.Dashboard
	Exporter  ExportFunc
	Selection *segment.Selection
	Layout    string
	ExportDir string
	Width     int
	Height    int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Layout:    config.LayoutTabs,
		ExportDir: ".",
		Width:     120,
		Height:    40,
	}
}

// WithTable sets the loaded segmentation table.
func WithTable(t *segment.Table) Option {
	return func(c *Config) {
		c.Table = t
	}
}

// WithDashboard sets the renderer.
func WithDashboard(d *render.Dashboard) Option {
	return func(c *Config) {
		c.Dashboard = d
	}
}

// WithLayout selects page or tabs layout.
func WithLayout(layout string) Option {
	return func(c *Config) {
		c.Layout = layout
	}
}

// WithSelection sets the initial selection. The default is every cluster.
func WithSelection(sel segment.Selection) Option {
	return func(c *Config) {
		c.Selection = &sel
	}
}

// WithExportDir sets where the export key writes CSV files.
func WithExportDir(dir string) Option {
	return func(c *Config) {
		c.ExportDir = dir
	}
}

// WithExporter overrides the export action.
func WithExporter(fn ExportFunc) Option {
	return func(c *Config) {
		c.Exporter = fn
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

func (c Config) exporter() ExportFunc {
	if c.Exporter != nil {
		return c.Exporter
	}
	dir := c.ExportDir
	return func(view *segment.View) (string, error) {
		return export.ToFile(dir, view, export.Options{})
	}
}
