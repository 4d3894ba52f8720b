package source

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/Veraticus/segscope/internal/common"
	"github.com/Veraticus/segscope/internal/model"
	"github.com/Veraticus/segscope/internal/service"
)

// DefaultTable is the table read when none is configured.
const DefaultTable = "rfm_segments"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

func validateTable(table string) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("%w: invalid table name %q", common.ErrInvalidConfig, table)
	}
	return nil
}

// readTable runs SELECT * against table and parses every row.
func readTable(ctx context.Context, db *sql.DB, table string) (*service.Dataset, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", table))
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", common.ErrMalformedSource, table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	columns := trimColumns(cols)

	idx, err := newColumnIndex(columns)
	if err != nil {
		return nil, err
	}

	raw := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range raw {
		dest[i] = &raw[i]
	}

	var customers []model.Customer
	row := 0
	for rows.Next() {
		row++
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", common.ErrMalformedSource, row, err)
		}

		values := make([]string, len(raw))
		for i, v := range raw {
			if !v.Valid && model.IsCoreColumn(columns[i]) {
				return nil, fieldError(row, columns[i], fmt.Errorf("null value"))
			}
			values[i] = v.String
		}

		c, err := idx.parseCustomer(columns, values, row)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return &service.Dataset{Columns: columns, Customers: customers}, nil
}
