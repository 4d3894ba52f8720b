package sheets

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/segscope/internal/model"
	"github.com/Veraticus/segscope/internal/segment"
)

// sheetLayout is the cell grid for one export plus the row positions the
// formatter needs.
type sheetLayout struct {
	values         [][]any
	headingRows    []int
	dataStart      int
	monetaryColumn int
	width          int
}

func prepareValues(snap segment.Snapshot, profiles model.ClusterProfiles, currency string, now time.Time) sheetLayout {
	summary := snap.Summary
	columns := snap.View.Table().Columns()

	layout := sheetLayout{monetaryColumn: -1}
	layout.values = make([][]any, 0, 16+len(summary.Counts)+snap.View.Len())

	heading := func(cells ...any) {
		layout.headingRows = append(layout.headingRows, len(layout.values))
		layout.values = append(layout.values, cells)
	}

	layout.values = append(layout.values,
		[]any{"Customer Segmentation", "Clusters: " + selectionLabel(snap.View.Selection())},
		[]any{"Source", snap.View.Table().Source()},
		[]any{"Exported", now.Format(time.RFC3339)},
		[]any{},
	)

	heading("Summary")
	layout.values = append(layout.values,
		[]any{"Total Customer", summary.Total},
		[]any{"Avg Frequency", summary.AvgFrequency.Display()},
		[]any{fmt.Sprintf("Avg Monetary (%s)", currency), summary.AvgMonetary.Display()},
		[]any{fmt.Sprintf("Total Monetary (%s)", currency), summary.TotalMonetary},
		[]any{},
	)

	heading("Cluster Breakdown")
	heading("Cluster", "Label", "Customers", "Share")
	for _, share := range summary.Proportions() {
		layout.values = append(layout.values, []any{
			int(share.Cluster),
			profiles.Lookup(share.Cluster).Label,
			share.Count,
			fmt.Sprintf("%.1f%%", share.Share*100),
		})
	}
	layout.values = append(layout.values, []any{})

	heading("Customer Data")
	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col
		if col == model.ColumnMonetaryValue {
			layout.monetaryColumn = i
		}
	}
	heading(header...)
	layout.dataStart = len(layout.values)

	snap.View.Each(func(c model.Customer) {
		row := make([]any, len(columns))
		for i, col := range columns {
			row[i] = cellValue(c, col)
		}
		layout.values = append(layout.values, row)
	})

	layout.width = max(4, len(columns))
	return layout
}

// cellValue keeps core columns numeric so the sheet can sort and sum them.
func cellValue(c model.Customer, column string) any {
	switch column {
	case model.ColumnRecency:
		return c.Recency
	case model.ColumnFrequency:
		return c.Frequency
	case model.ColumnMonetaryValue:
		return c.MonetaryValue
	case model.ColumnCluster:
		return int(c.Cluster)
	default:
		return c.Field(column)
	}
}

func selectionLabel(sel segment.Selection) string {
	ids := sel.IDs()
	if len(ids) == 0 {
		return "none"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
