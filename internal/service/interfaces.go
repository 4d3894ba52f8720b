// Package service defines the interfaces shared between segscope components.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/segscope/internal/model"
)

// Dataset is the raw result of reading a segmentation source: the column
// order as found in the source and every parsed customer row.
type Dataset struct {
	Columns   []string
	Customers []model.Customer
}

// Source reads the full segmentation table from some backing store.
type Source interface {
	// Read returns every row. Implementations must fail rather than return an
	// empty dataset when the backing store is missing or malformed.
	Read(ctx context.Context) (*Dataset, error)
	// Describe returns a human readable location, used in logs.
	Describe() string
}

// RetryOptions configures retry behavior for remote operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// WithDefaults fills in zero fields with sensible defaults.
func (o RetryOptions) WithDefaults() RetryOptions {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = 100 * time.Millisecond
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = 30 * time.Second
	}
	if o.Multiplier <= 0 {
		o.Multiplier = 2.0
	}
	return o
}
