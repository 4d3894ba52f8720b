package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/Veraticus/segscope/internal/common"
	"github.com/Veraticus/segscope/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteSource reads the segmentation table from a SQLite database file.
type SQLiteSource struct {
	path  string
	table string
}

// NewSQLiteSource creates a SQLite source reading table from the file at path.
func NewSQLiteSource(path, table string) *SQLiteSource {
	if table == "" {
		table = DefaultTable
	}
	return &SQLiteSource{path: path, table: table}
}

// Describe implements service.Source.
func (s *SQLiteSource) Describe() string {
	return fmt.Sprintf("sqlite://%s?table=%s", s.path, s.table)
}

// Read implements service.Source.
func (s *SQLiteSource) Read(ctx context.Context) (*service.Dataset, error) {
	// Opening a missing file would silently create an empty database.
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrSourceNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", s.path, err)
	}

	db, err := sql.Open("sqlite3", sqliteDSN(s.path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedSource, err)
	}

	return readTable(ctx, db, s.table)
}

// sqliteDSN builds a read-only URI filename. The path is escaped so '?', '#'
// and '%' in file names are not read as URI syntax.
func sqliteDSN(path string) string {
	u := url.URL{
		Scheme:   "file",
		Opaque:   (&url.URL{Path: path}).EscapedPath(),
		RawQuery: "mode=ro&_busy_timeout=5000",
	}
	return u.String()
}
