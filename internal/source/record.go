// Package source reads segmentation tables from CSV files and SQL databases.
package source

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/segscope/internal/common"
	"github.com/Veraticus/segscope/internal/model"
)

// columnIndex maps column names to their position in a row.
type columnIndex map[string]int

// newColumnIndex validates that every core column is present exactly once.
func newColumnIndex(columns []string) (columnIndex, error) {
	idx := make(columnIndex, len(columns))
	for i, name := range columns {
		name = strings.TrimSpace(name)
		if _, dup := idx[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", common.ErrMalformedSource, name)
		}
		idx[name] = i
	}

	var missing []string
	for _, c := range model.CoreColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingColumn, strings.Join(missing, ", "))
	}

	return idx, nil
}

// parseCustomer builds a customer from one row of string values.
// row is the 1-based data row number used in error messages.
func (idx columnIndex) parseCustomer(columns, values []string, row int) (model.Customer, error) {
	if len(values) != len(columns) {
		return model.Customer{}, fmt.Errorf("%w: row %d has %d fields, expected %d",
			common.ErrMalformedSource, row, len(values), len(columns))
	}

	recency, err := parseWhole(values[idx[model.ColumnRecency]])
	if err != nil {
		return model.Customer{}, fieldError(row, model.ColumnRecency, err)
	}
	frequency, err := parseWhole(values[idx[model.ColumnFrequency]])
	if err != nil {
		return model.Customer{}, fieldError(row, model.ColumnFrequency, err)
	}
	monetary, err := parseFinite(values[idx[model.ColumnMonetaryValue]])
	if err != nil {
		return model.Customer{}, fieldError(row, model.ColumnMonetaryValue, err)
	}
	cluster, err := model.ParseClusterID(values[idx[model.ColumnCluster]])
	if err != nil {
		return model.Customer{}, fieldError(row, model.ColumnCluster, err)
	}

	c := model.Customer{
		Index:         row - 1,
		Recency:       recency,
		Frequency:     frequency,
		MonetaryValue: monetary,
		Cluster:       cluster,
	}

	for i, name := range columns {
		name = strings.TrimSpace(name)
		if model.IsCoreColumn(name) {
			continue
		}
		if c.Extra == nil {
			c.Extra = make(map[string]string, len(columns)-len(model.CoreColumns))
		}
		c.Extra[name] = values[i]
	}

	return c, nil
}

func fieldError(row int, column string, err error) error {
	return fmt.Errorf("%w: row %d column %s: %v", common.ErrMalformedSource, row, column, err)
}

// parseWhole parses an integer count, tolerating float formatting like "12.0".
func parseWhole(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := parseFinite(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int(f), nil
}

// parseFinite parses a float and rejects NaN and infinities, which
// ParseFloat accepts.
func parseFinite(s string) (float64, error) {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return f, nil
}

func trimColumns(columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))
	}
	return out
}
