package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/segscope/internal/cli"
	"github.com/Veraticus/segscope/internal/model"
	"github.com/Veraticus/segscope/internal/render"
	"github.com/Veraticus/segscope/internal/segment"
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print aggregate metrics for the selected clusters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("invalid format %q: use text or json", format)
			}

			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			sel, err := selectionFromFlag(cmd, a.table)
			if err != nil {
				return err
			}

			snap := segment.Compute(a.table, sel)
			if format == "json" {
				return writeSummaryJSON(cmd.OutOrStdout(), snap, a.cfg.Profiles)
			}
			return writeSummaryText(cmd.OutOrStdout(), snap, a.cfg.Profiles, a.cfg.Display.Currency)
		},
	}

	addClustersFlag(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "output format (text, json)")

	return cmd
}

type summaryJSON struct {
	AvgRecency    *float64      `json:"avg_recency"`
	AvgFrequency  *float64      `json:"avg_frequency"`
	AvgMonetary   *float64      `json:"avg_monetary"`
	Selection     []int         `json:"selection"`
	Clusters      []clusterJSON `json:"clusters"`
	TotalMonetary float64       `json:"total_monetary"`
	Total         int           `json:"total_customers"`
}

type clusterJSON struct {
	Label string  `json:"label,omitempty"`
	ID    int     `json:"id"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// meanPtr returns nil for an undefined mean so it encodes as null.
func meanPtr(m segment.Mean) *float64 {
	if !m.Valid {
		return nil
	}
	v := m.Value
	return &v
}

func writeSummaryJSON(w io.Writer, snap segment.Snapshot, profiles model.ClusterProfiles) error {
	out := summaryJSON{
		Total:         snap.Summary.Total,
		TotalMonetary: snap.Summary.TotalMonetary,
		AvgRecency:    meanPtr(snap.Summary.AvgRecency),
		AvgFrequency:  meanPtr(snap.Summary.AvgFrequency),
		AvgMonetary:   meanPtr(snap.Summary.AvgMonetary),
		Selection:     []int{},
		Clusters:      []clusterJSON{},
	}
	for _, id := range snap.View.Selection().IDs() {
		out.Selection = append(out.Selection, int(id))
	}
	for _, s := range snap.Summary.Proportions() {
		out.Clusters = append(out.Clusters, clusterJSON{
			ID:    int(s.Cluster),
			Label: profiles.Lookup(s.Cluster).Label,
			Count: s.Count,
			Share: s.Share,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeSummaryText(w io.Writer, snap segment.Snapshot, profiles model.ClusterProfiles, currency string) error {
	s := snap.Summary

	monetary := segment.Placeholder
	if s.AvgMonetary.Valid {
		monetary = render.FormatMoney(currency, s.AvgMonetary.Rounded())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Clusters: %s\n\n", snap.View.Selection())
	fmt.Fprintf(&b, "  • Total Customer: %s\n", render.FormatCount(s.Total))
	fmt.Fprintf(&b, "  • Avg Recency: %s days\n", render.FormatMean(s.AvgRecency))
	fmt.Fprintf(&b, "  • Avg Frequency: %s\n", render.FormatMean(s.AvgFrequency))
	fmt.Fprintf(&b, "  • Avg Monetary: %s\n", monetary)
	fmt.Fprintf(&b, "  • Total Monetary: %s\n", render.FormatMoney(currency, s.TotalMonetary))

	if len(s.Counts) > 0 {
		b.WriteString("\nCustomers per cluster:\n")
		for _, share := range s.Proportions() {
			label := profiles.Lookup(share.Cluster).Label
			if label != "" {
				label = " (" + label + ")"
			}
			fmt.Fprintf(&b, "  • Cluster %s%s: %s (%.1f%%)\n",
				share.Cluster, label, render.FormatCount(share.Count), share.Share*100)
		}
	}

	_, err := fmt.Fprintln(w, cli.RenderBox("Segment Summary", strings.TrimRight(b.String(), "\n")))
	return err
}
