package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Veraticus/segscope/internal/service"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

// PostgresSource reads the segmentation table from PostgreSQL.
type PostgresSource struct {
	dsn   string
	table string
}

// NewPostgresSource creates a PostgreSQL source. dsn must not carry the
// table option; Open strips it before calling this.
func NewPostgresSource(dsn, table string) *PostgresSource {
	if table == "" {
		table = DefaultTable
	}
	return &PostgresSource{dsn: dsn, table: table}
}

// Describe implements service.Source. Credentials are not included.
func (s *PostgresSource) Describe() string {
	return "postgres table " + s.table
}

// Read implements service.Source.
func (s *PostgresSource) Read(ctx context.Context) (*service.Dataset, error) {
	db, err := sql.Open("pgx", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return readTable(ctx, db, s.table)
}
