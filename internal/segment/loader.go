package segment

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/segscope/internal/service"
)

// Loader reads a source once and memoizes the resulting Table.
type Loader struct {
	source service.Source
	logger *slog.Logger
	table  *Table
	reads  int
	mu     sync.Mutex
}

// NewLoader creates a loader for src. A nil logger uses slog.Default().
func NewLoader(src service.Source, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{source: src, logger: logger}
}

// Load returns the cached table, reading the source on first use.
// Failures are returned as-is and are not cached, so a later call retries.
func (l *Loader) Load(ctx context.Context) (*Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.table != nil {
		return l.table, nil
	}

	start := time.Now()
	l.reads++
	ds, err := l.source.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", l.source.Describe(), err)
	}

	l.table = NewTable(ds, l.source.Describe())
	l.logger.Info("Loaded segmentation table",
		"source", l.source.Describe(),
		"rows", l.table.Len(),
		"clusters", len(l.table.Clusters()),
		"duration", time.Since(start))

	return l.table, nil
}

// Reads reports how many times the underlying source was read.
func (l *Loader) Reads() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reads
}
