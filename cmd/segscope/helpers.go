package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/segscope/internal/cli"
	"github.com/Veraticus/segscope/internal/common"
	"github.com/Veraticus/segscope/internal/config"
	"github.com/Veraticus/segscope/internal/render"
	"github.com/Veraticus/segscope/internal/segment"
	"github.com/Veraticus/segscope/internal/source"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app bundles what every command needs after configuration is read.
type app struct {
	cfg       *config.Config
	table     *segment.Table
	dashboard *render.Dashboard
}

// loadApp reads configuration, loads the table once and builds the renderer.
func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	src, err := source.Open(cfg.Data.Source, source.Options{
		Table:     cfg.Data.Table,
		Delimiter: cfg.Data.Delimiter,
	})
	if err != nil {
		return nil, err
	}

	table, err := segment.NewLoader(src, slog.Default()).Load(cmd.Context())
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, table: table, dashboard: newDashboard(cfg, table)}, nil
}

func newDashboard(cfg *config.Config, table *segment.Table) *render.Dashboard {
	if !render.HasSequence(cfg.Palette.Name) {
		slog.Warn("Unknown palette, using explicit colors only", "palette", cfg.Palette.Name)
	}

	palette := render.NewPalette(render.PaletteOptions{
		Explicit: cfg.Palette.Colors,
		Profiles: cfg.Profiles,
		Name:     cfg.Palette.Name,
		Fallback: cfg.Palette.Fallback,
		Clusters: table.Clusters(),
	})

	return render.New(palette, render.Options{
		Profiles:   cfg.Profiles,
		Title:      cfg.Display.Title,
		Caption:    cfg.Display.Caption,
		Currency:   cfg.Display.Currency,
		SampleSize: cfg.Display.SampleSize,
		Width:      cfg.Display.Width,
	})
}

// addClustersFlag registers the --clusters filter shared by several commands.
func addClustersFlag(cmd *cobra.Command) {
	cmd.Flags().String("clusters", "", `comma separated cluster ids to include, or "none" (default: all)`)
}

// selectionFromFlag parses --clusters, defaulting to every cluster in table.
func selectionFromFlag(cmd *cobra.Command, table *segment.Table) (segment.Selection, error) {
	raw, _ := cmd.Flags().GetString("clusters")
	if raw == "" {
		return segment.SelectAll(table), nil
	}

	sel, err := segment.ParseSelection(raw)
	if err != nil {
		return segment.Selection{}, err
	}

	for _, id := range sel.IDs() {
		if table.ClusterSize(id) == 0 {
			slog.Warn("Selected cluster has no customers", "cluster", id)
		}
	}
	return sel, nil
}

// errorMessage turns an error into the line printed on exit.
func errorMessage(err error) string {
	var userErr *common.UserError
	switch {
	case errors.As(err, &userErr):
		return cli.FormatError(userErr.UserMessage)
	case errors.Is(err, common.ErrSourceNotFound):
		return cli.FormatError(fmt.Sprintf("Segmentation data not found: %v", err))
	case errors.Is(err, common.ErrMissingColumn), errors.Is(err, common.ErrMalformedSource):
		return cli.FormatError(fmt.Sprintf("Segmentation data is not usable: %v", err))
	default:
		return cli.FormatError(err.Error())
	}
}
