package main

import (
	"fmt"
	"io"

	"github.com/Veraticus/segscope/internal/cli"
	"github.com/Veraticus/segscope/internal/model"
	"github.com/Veraticus/segscope/internal/render"
	"github.com/Veraticus/segscope/internal/segment"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func clustersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clusters",
		Short: "List the clusters in the table",
		Long:  `Display every cluster found in the source with its customer count, share and configured label.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			return writeClusters(cmd.OutOrStdout(), a.table, a.cfg.Profiles, a.dashboard.Palette())
		},
	}
}

func writeClusters(w io.Writer, t *segment.Table, profiles model.ClusterProfiles, palette render.Palette) error {
	clusters := t.Clusters()
	if len(clusters) == 0 {
		_, err := fmt.Fprintln(w, cli.InfoStyle.Render("No clusters found in "+t.Source()))
		return err
	}

	rows := make([][]string, 0, len(clusters))
	for _, id := range clusters {
		profile := profiles.Lookup(id)
		label := profile.Label
		if label == "" {
			label = "(no profile)"
		}
		share := float64(t.ClusterSize(id)) / float64(t.Len()) * 100
		rows = append(rows, []string{
			id.String(),
			profile.Icon + " " + label,
			render.FormatCount(t.ClusterSize(id)),
			fmt.Sprintf("%.1f%%", share),
		})
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(cli.SubtleStyle).
		Headers("Cluster", "Label", "Customers", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 && row >= 0 && row < len(clusters) {
				return palette.Style(clusters[row]).Inherit(cellStyle)
			}
			return cellStyle
		})

	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n", cli.FormatTitle("Clusters"), tbl.String(),
		cli.SubtleStyle.Render(fmt.Sprintf("%s customers in %s", render.FormatCount(t.Len()), t.Source())))
	return err
}
