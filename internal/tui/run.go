package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// New builds the model without starting a program. Useful for tests and
// for embedding in other bubbletea programs.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Table == nil {
		return Model{}, fmt.Errorf("table is required")
	}
	if cfg.Dashboard == nil {
		return Model{}, fmt.Errorf("dashboard is required")
	}

	return newModel(cfg), nil
}

// Run starts the interactive dashboard and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, opts ...Option) error {
	m, err := New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
