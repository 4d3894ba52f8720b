package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/segscope/internal/cli"
	"github.com/Veraticus/segscope/internal/common"
	"github.com/Veraticus/segscope/internal/config"
	"github.com/Veraticus/segscope/internal/export"
	"github.com/Veraticus/segscope/internal/segment"
	"github.com/Veraticus/segscope/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	var (
		output   string
		toSheets bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered customers to CSV or Google Sheets",
		Long: `Write the customers of the selected clusters to a CSV file with the same
columns as the source and no index column. With --output pointing at a
directory, a timestamped file name is generated.

With --sheets the view and its summary are written to Google Sheets instead.
Credentials come from the sheets section of the config file or the
GOOGLE_SHEETS_* environment variables.`,
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

			if toSheets {
				return exportToSheets(cmd, a, snap)
			}

			if output == "" {
				output = a.cfg.Export.Dir
			}

			opts := export.Options{}
			if a.cfg.Export.Progress {
				opts.Progress = os.Stderr
			}

			path, err := export.ToFile(config.ExpandPath(output), snap.View, opts)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("Exported %d customers (clusters %s) to %s", snap.View.Len(), sel, path)))
			return err
		},
	}

	addClustersFlag(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or directory (default: export.dir)")
	cmd.Flags().BoolVar(&toSheets, "sheets", false, "write to Google Sheets instead of CSV")
	cmd.Flags().Bool("progress", true, "show a progress bar while writing")
	_ = viper.BindPFlag("export.progress", cmd.Flags().Lookup("progress"))

	return cmd
}

func exportToSheets(cmd *cobra.Command, a *app, snap segment.Snapshot) error {
	sheetsCfg, err := config.LoadSheetsConfig(viper.GetViper())
	if err != nil {
		return common.NewUserError("Google Sheets is not configured; set sheets.service_account_path or GOOGLE_SHEETS_* credentials", err)
	}

	writer, err := sheets.NewWriter(cmd.Context(), *sheetsCfg, slog.Default())
	if err != nil {
		return err
	}

	url, err := writer.Write(cmd.Context(), snap, a.cfg.Profiles)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
		fmt.Sprintf("Exported %d customers to %s", snap.View.Len(), url)))
	return err
}
