package main

import (
	"github.com/Veraticus/segscope/internal/config"
	"github.com/Veraticus/segscope/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func interactiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"tui"},
		Short:   "Explore the segmentation interactively",
		Long: `Open the interactive dashboard. Toggle clusters with space or x, select
all with ctrl+a, clear with ctrl+d, switch tabs with tab and press e to
export the current view to CSV. Press ? for every key binding.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			sel, err := selectionFromFlag(cmd, a.table)
			if err != nil {
				return err
			}

			return tui.Run(cmd.Context(),
				tui.WithTable(a.table),
				tui.WithDashboard(a.dashboard),
				tui.WithSelection(sel),
				tui.WithLayout(a.cfg.Display.Layout),
				tui.WithExportDir(config.ExpandPath(a.cfg.Export.Dir)),
			)
		},
	}

	addClustersFlag(cmd)
	cmd.Flags().String("layout", "", "layout: tabs or page (default: display.layout)")
	_ = viper.BindPFlag("display.layout", cmd.Flags().Lookup("layout"))

	return cmd
}
