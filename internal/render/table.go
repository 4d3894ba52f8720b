package render

import (
	"fmt"

	"github.com/Veraticus/segscope/internal/model"
	"github.com/Veraticus/segscope/internal/segment"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// SampleTable renders the first rows of the view in source column order.
func (d *Dashboard) SampleTable(view *segment.View, offset int) string {
	if view.Len() == 0 {
		return d.styles.Subtle.Render(emptyMessage)
	}

	size := d.opts.SampleSize
	if size <= 0 {
		size = view.Len()
	}
	offset = max(0, min(offset, view.Len()-1))
	end := min(view.Len(), offset+size)

	columns := view.Table().Columns()
	headers := append([]string{"#"}, columns...)

	rows := make([][]string, 0, end-offset)
	for i := offset; i < end; i++ {
		c := view.At(i)
		row := make([]string, 0, len(headers))
		row = append(row, FormatCount(c.Index))
		for _, col := range columns {
			row = append(row, d.cell(c, col))
		}
		rows = append(rows, row)
	}

	clusterCol := -1
	for i, h := range headers {
		if h == model.ColumnCluster {
			clusterCol = i
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(d.styles.TableFrame).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return d.styles.TableHead
			}
			if col == clusterCol && row >= 0 && row < len(rows) {
				if id, err := model.ParseClusterID(rows[row][col]); err == nil {
					return d.styles.TableCell.Foreground(d.palette.Color(id))
				}
			}
			return d.styles.TableCell
		})

	footer := d.styles.Subtle.Render(fmt.Sprintf("Showing rows %s–%s of %s customers",
		FormatCount(offset+1), FormatCount(end), FormatCount(view.Len())))

	return t.String() + "\n" + footer
}

func (d *Dashboard) cell(c model.Customer, column string) string {
	if column == model.ColumnMonetaryValue {
		return printer.Sprintf("%.2f", c.MonetaryValue)
	}
	return c.Field(column)
}
