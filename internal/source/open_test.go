package source

import (
	"testing"

	"github.com/Veraticus/segscope/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("plain path is csv", func(t *testing.T) {
		src, err := Open("rfm_segmentasi_final.csv", Options{Delimiter: ';'})
		require.NoError(t, err)
		csvSrc, ok := src.(*CSVSource)
		require.True(t, ok)
		assert.Equal(t, "rfm_segmentasi_final.csv", csvSrc.path)
		assert.Equal(t, ';', csvSrc.delimiter)
	})

	t.Run("csv scheme", func(t *testing.T) {
		src, err := Open("csv:///data/rfm.csv", Options{})
		require.NoError(t, err)
		assert.Equal(t, "/data/rfm.csv", src.Describe())
	})

	t.Run("sqlite with table parameter", func(t *testing.T) {
		src, err := Open("sqlite://data/rfm.db?table=segments_v2", Options{Table: "ignored"})
		require.NoError(t, err)
		sqliteSrc, ok := src.(*SQLiteSource)
		require.True(t, ok)
		assert.Equal(t, "data/rfm.db", sqliteSrc.path)
		assert.Equal(t, "segments_v2", sqliteSrc.table)
	})

	t.Run("sqlite default table", func(t *testing.T) {
		src, err := Open("sqlite:///tmp/rfm.db", Options{})
		require.NoError(t, err)
		assert.Equal(t, DefaultTable, src.(*SQLiteSource).table)
	})

	t.Run("postgres strips table from dsn", func(t *testing.T) {
		src, err := Open("postgres://analyst:pw@localhost:5432/shop?sslmode=disable&table=customer_rfm", Options{})
		require.NoError(t, err)
		pgSrc, ok := src.(*PostgresSource)
		require.True(t, ok)
		assert.Equal(t, "customer_rfm", pgSrc.table)
		assert.Equal(t, "postgres://analyst:pw@localhost:5432/shop?sslmode=disable", pgSrc.dsn)
		assert.NotContains(t, pgSrc.Describe(), "pw")
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		_, err := Open("mongodb://localhost/rfm", Options{})
		assert.ErrorIs(t, err, common.ErrUnsupportedScheme)
	})

	t.Run("empty location", func(t *testing.T) {
		_, err := Open("  ", Options{})
		assert.ErrorIs(t, err, common.ErrMissingConfig)
	})
}
