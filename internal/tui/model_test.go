package tui

import (
	"errors"
	"testing"

	"github.com/Veraticus/segscope/internal/config"
	"github.com/Veraticus/segscope/internal/model"
	"github.com/Veraticus/segscope/internal/render"
	"github.com/Veraticus/segscope/internal/segment"
	"github.com/Veraticus/segscope/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *segment.Table {
	var customers []model.Customer
	counts := map[model.ClusterID]int{0: 4, 1: 1, 2: 3, 3: 2}
	for _, id := range []model.ClusterID{0, 1, 2, 3} {
		for n := 0; n < counts[id]; n++ {
			i := len(customers)
			customers = append(customers, model.Customer{
				Index:         i,
				Recency:       i * 10,
				Frequency:     int(id) + 1,
				MonetaryValue: float64(i) * 25.5,
				Cluster:       id,
			})
		}
	}
	return segment.NewTable(&service.Dataset{Columns: model.CoreColumns, Customers: customers}, "test.csv")
}

func newTestModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	table := testTable()
	dashboard := render.New(render.NewPalette(render.PaletteOptions{Name: "set2", Clusters: table.Clusters()}), render.Options{
		Title:      "Test",
		Currency:   "£",
		SampleSize: 2,
	})
	base := []Option{WithTable(table), WithDashboard(dashboard), WithSize(120, 40)}
	m, err := New(append(base, opts...)...)
	require.NoError(t, err)
	return m
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table is required")

	_, err = New(WithTable(testTable()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard is required")
}

func TestDefaultSelectionIsAllClusters(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, []model.ClusterID{0, 1, 2, 3}, m.Selection().IDs())
	assert.Equal(t, 10, m.Snapshot().Summary.Total)
}

func TestToggleRecomputes(t *testing.T) {
	m := newTestModel(t)

	// cursor starts on cluster 0
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.Selection().Contains(0))
	assert.Equal(t, 6, m.Snapshot().Summary.Total)

	m, _ = press(t, m, runes("j"), runes("j"), runes("x"))
	assert.Equal(t, []model.ClusterID{1, 3}, m.Selection().IDs())
	assert.Equal(t, 3, m.Snapshot().Summary.Total)
	assert.Equal(t, []segment.ClusterCount{{Cluster: 1, Count: 1}, {Cluster: 3, Count: 2}}, m.Snapshot().Summary.Counts)
}

func TestSelectAllAndNone(t *testing.T) {
	m := newTestModel(t, WithSelection(segment.NewSelection(2)))
	assert.Equal(t, 3, m.Snapshot().Summary.Total)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.True(t, m.Selection().IsEmpty())
	assert.Equal(t, 0, m.Snapshot().Summary.Total)
	assert.False(t, m.Snapshot().Summary.AvgMonetary.Valid)
	assert.Contains(t, m.View(), segment.Placeholder)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.Equal(t, 10, m.Snapshot().Summary.Total)
}

func TestCursorStaysInBounds(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, runes("k"), runes("k"))
	assert.Equal(t, 0, m.cursor)

	for i := 0; i < 10; i++ {
		m, _ = press(t, m, runes("j"))
	}
	assert.Equal(t, 3, m.cursor)
}

func TestTabsCycle(t *testing.T) {
	m := newTestModel(t, WithLayout(config.LayoutTabs))
	assert.Equal(t, render.SectionOverview, m.Tab())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, render.SectionDistribution, m.Tab())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, render.SectionData, m.Tab())
	assert.Contains(t, m.View(), "Showing rows 1–2 of 10 customers")

	m, _ = press(t, m, runes("n"))
	assert.Contains(t, m.View(), "Showing rows 3–4 of 10 customers")

	m, _ = press(t, m, runes("p"), runes("p"))
	assert.Equal(t, 0, m.rowOffset)
}

func TestPageLayoutIgnoresTabs(t *testing.T) {
	m := newTestModel(t, WithLayout(config.LayoutPage))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, render.SectionOverview, m.Tab())
}

func TestExport(t *testing.T) {
	var exported *segment.View
	m := newTestModel(t,
		WithSelection(segment.NewSelection(0)),
		WithExporter(func(view *segment.View) (string, error) {
			exported = view
			return "/tmp/out.csv", nil
		}))

	m, cmd := press(t, m, runes("e"))
	require.NotNil(t, cmd)
	assert.True(t, m.exporting)

	next, _ := m.Update(cmd())
	m = next.(Model)

	require.NotNil(t, exported)
	assert.Equal(t, 4, exported.Len())
	assert.False(t, m.exporting)
	assert.Contains(t, m.status, "Exported 4 customers to /tmp/out.csv")
	assert.False(t, m.statusErr)
}

func TestExportCountFollowsExportedView(t *testing.T) {
	m := newTestModel(t,
		WithSelection(segment.NewSelection(0)),
		WithExporter(func(*segment.View) (string, error) {
			return "/tmp/out.csv", nil
		}))

	m, cmd := press(t, m, runes("e"))
	require.NotNil(t, cmd)

	// Selection changes while the export is still running.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	require.Equal(t, 10, m.Snapshot().Summary.Total)

	next, _ := m.Update(cmd())
	m = next.(Model)

	assert.Contains(t, m.status, "Exported 4 customers to /tmp/out.csv")
}

func TestExportFailure(t *testing.T) {
	m := newTestModel(t, WithExporter(func(*segment.View) (string, error) {
		return "", errors.New("disk full")
	}))

	m, cmd := press(t, m, runes("e"))
	next, _ := m.Update(cmd())
	m = next.(Model)

	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "disk full")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	m, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "deselect all")
}
