package source

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Veraticus/segscope/internal/common"
	"github.com/Veraticus/segscope/internal/service"
)

// Options tune how a location string is turned into a Source.
type Options struct {
	Table     string // SQL table, overridden by a ?table= parameter
	Delimiter rune   // CSV field delimiter
}

// Open picks a Source implementation from the location's scheme:
//
//	data/rfm.csv                      CSV file
//	csv:///abs/path.csv               CSV file
//	sqlite:///var/lib/rfm.db?table=t  SQLite table
//	postgres://user@host/db?table=t   PostgreSQL table
func Open(location string, opts Options) (service.Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: data source", common.ErrMissingConfig)
	}

	scheme, rest, found := strings.Cut(location, "://")
	if !found {
		return NewCSVSource(location, opts.Delimiter), nil
	}

	switch strings.ToLower(scheme) {
	case "csv", "file":
		return NewCSVSource(rest, opts.Delimiter), nil

	case "sqlite", "sqlite3":
		path, query, _ := strings.Cut(rest, "?")
		table := opts.Table
		if query != "" {
			values, err := url.ParseQuery(query)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
			}
			if t := values.Get("table"); t != "" {
				table = t
			}
		}
		return NewSQLiteSource(path, table), nil

	case "postgres", "postgresql":
		u, err := url.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
		}
		table := opts.Table
		q := u.Query()
		if t := q.Get("table"); t != "" {
			table = t
			q.Del("table")
			u.RawQuery = q.Encode()
		}
		return NewPostgresSource(u.String(), table), nil

	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedScheme, scheme)
	}
}
