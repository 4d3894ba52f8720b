package source

import (
	"context"
	"database/sql"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/Veraticus/segscope/internal/common"
	"github.com/Veraticus/segscope/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createSegmentDB(t *testing.T, rows [][]any) string {
	t.Helper()
	return createSegmentDBAt(t, filepath.Join(t.TempDir(), "segments.db"), rows)
}

func createSegmentDBAt(t *testing.T, path string, rows [][]any) string {
	t.Helper()

	dsn := url.URL{Scheme: "file", Opaque: (&url.URL{Path: path}).EscapedPath(), RawQuery: "mode=rwc"}
	db, err := sql.Open("sqlite3", dsn.String())
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE rfm_segments (
		CustomerID TEXT,
		Recency INTEGER,
		Frequency INTEGER,
		MonetaryValue REAL,
		Cluster INTEGER
	)`)
	require.NoError(t, err)

	for _, r := range rows {
		_, err = db.Exec(`INSERT INTO rfm_segments VALUES (?, ?, ?, ?, ?)`, r...)
		require.NoError(t, err)
	}
	return path
}

func TestSQLiteSourceRead(t *testing.T) {
	path := createSegmentDB(t, [][]any{
		{"12346", 325, 1, 77183.6, 0},
		{"12347", 2, 7, 4310.0, 1},
		{nil, 75, 4, 1797.24, 2},
	})

	ds, err := NewSQLiteSource(path, "").Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"CustomerID", "Recency", "Frequency", "MonetaryValue", "Cluster"}, ds.Columns)
	require.Len(t, ds.Customers, 3)
	assert.Equal(t, "12346", ds.Customers[0].Extra["CustomerID"])
	assert.Equal(t, 325, ds.Customers[0].Recency)
	assert.InDelta(t, 4310.0, ds.Customers[1].MonetaryValue, 1e-9)
	assert.Equal(t, model.ClusterID(2), ds.Customers[2].Cluster)
	assert.Empty(t, ds.Customers[2].Extra["CustomerID"])
}

func TestSQLiteSourceSpecialCharactersInPath(t *testing.T) {
	for _, name := range []string{"seg?v=2.db", "seg#1.db", "100%.db", "with space.db"} {
		t.Run(name, func(t *testing.T) {
			path := createSegmentDBAt(t, filepath.Join(t.TempDir(), name), [][]any{
				{"12346", 325, 1, 77183.6, 0},
			})

			ds, err := NewSQLiteSource(path, "").Read(context.Background())
			require.NoError(t, err)
			require.Len(t, ds.Customers, 1)
			assert.Equal(t, 325, ds.Customers[0].Recency)
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"absolute", "/data/rfm.db", "file:/data/rfm.db?mode=ro&_busy_timeout=5000"},
		{"relative", "data/rfm.db", "file:data/rfm.db?mode=ro&_busy_timeout=5000"},
		{"query character", "/data/rfm?x.db", "file:/data/rfm%3Fx.db?mode=ro&_busy_timeout=5000"},
		{"fragment character", "/data/rfm#1.db", "file:/data/rfm%231.db?mode=ro&_busy_timeout=5000"},
		{"percent", "/data/100%.db", "file:/data/100%25.db?mode=ro&_busy_timeout=5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(tt.path))
		})
	}
}

func TestSQLiteSourceNullCluster(t *testing.T) {
	path := createSegmentDB(t, [][]any{{"1", 1, 1, 1.0, nil}})

	_, err := NewSQLiteSource(path, "").Read(context.Background())
	assert.ErrorIs(t, err, common.ErrMalformedSource)
}

func TestSQLiteSourceErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewSQLiteSource(filepath.Join(t.TempDir(), "missing.db"), "").Read(context.Background())
		assert.ErrorIs(t, err, common.ErrSourceNotFound)
	})

	t.Run("invalid table name", func(t *testing.T) {
		path := createSegmentDB(t, nil)
		_, err := NewSQLiteSource(path, "rfm; DROP TABLE x").Read(context.Background())
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})

	t.Run("unknown table", func(t *testing.T) {
		path := createSegmentDB(t, nil)
		_, err := NewSQLiteSource(path, "other").Read(context.Background())
		assert.ErrorIs(t, err, common.ErrMalformedSource)
	})
}
