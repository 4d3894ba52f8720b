package main

import (
	"fmt"

	"github.com/Veraticus/segscope/internal/segment"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Render the full dashboard to stdout",
		Long: `Render every dashboard section for the selected clusters: metric cards,
cluster counts and shares, the Recency/Monetary scatter, RFM distributions,
cluster insights and a sample of the customer table.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			sel, err := selectionFromFlag(cmd, a.table)
			if err != nil {
				return err
			}

			snap := segment.Compute(a.table, sel)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.dashboard.Render(snap))
			return err
		},
	}

	addClustersFlag(cmd)
	cmd.Flags().Int("sample", 50, "number of customer rows in the data sample (0 for all)")
	cmd.Flags().Int("width", 100, "render width in columns")
	_ = viper.BindPFlag("display.sample_size", cmd.Flags().Lookup("sample"))
	_ = viper.BindPFlag("display.width", cmd.Flags().Lookup("width"))

	return cmd
}
