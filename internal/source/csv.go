package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/segscope/internal/common"
	"github.com/Veraticus/segscope/internal/model"
	"github.com/Veraticus/segscope/internal/service"
)

// CSVSource reads a delimited text file with a header row.
type CSVSource struct {
	path      string
	delimiter rune
}

// NewCSVSource creates a CSV source. A zero delimiter means comma.
func NewCSVSource(path string, delimiter rune) *CSVSource {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVSource{path: path, delimiter: delimiter}
}

// Describe implements service.Source.
func (s *CSVSource) Describe() string {
	return s.path
}

// Read implements service.Source.
func (s *CSVSource) Read(ctx context.Context) (*service.Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrSourceNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	return ReadCSV(ctx, f, s.delimiter)
}

// ReadCSV parses a segmentation table from r.
func ReadCSV(ctx context.Context, r io.Reader, delimiter rune) (*service.Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file, no header row", common.ErrMalformedSource)
		}
		return nil, fmt.Errorf("%w: reading header: %v", common.ErrMalformedSource, err)
	}

	columns := trimColumns(header)
	idx, err := newColumnIndex(columns)
	if err != nil {
		return nil, err
	}

	var customers []model.Customer
	for row := 1; ; row++ {
		if row%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		values, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrMalformedSource, err)
		}

		c, err := idx.parseCustomer(columns, values, row)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	return &service.Dataset{Columns: columns, Customers: customers}, nil
}
