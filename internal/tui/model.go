// Package tui implements the interactive segmentation dashboard.
package tui

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/segscope/internal/config"
	"github.com/Veraticus/segscope/internal/model"
	"github.com/Veraticus/segscope/internal/render"
	"github.com/Veraticus/segscope/internal/segment"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const sidebarWidth = 30

// Model holds the interactive dashboard state. Every selection change
// recomputes the snapshot before the next frame is drawn.
type Model struct {
	dashboard *render.Dashboard
	table     *segment.Table
	exporter  ExportFunc
	status    string
	statusErr bool
	keymap    KeyMap
	help      help.Model
	viewport  viewport.Model
	clusters  []model.ClusterID
	selection segment.Selection
	snap      segment.Snapshot
	layout    string
	tab       render.Section
	cursor    int
	rowOffset int
	width     int
	height    int
	exporting bool
	quitting  bool
}

func newModel(cfg Config) Model {
	sel := segment.SelectAll(cfg.Table)
	if cfg.Selection != nil {
		sel = *cfg.Selection
	}

	m := Model{
		dashboard: cfg.Dashboard,
		table:     cfg.Table,
		exporter:  cfg.exporter(),
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		viewport:  viewport.New(0, 0),
		clusters:  cfg.Table.Clusters(),
		selection: sel,
		layout:    cfg.Layout,
		tab:       render.SectionOverview,
	}
	m.resize(cfg.Width, cfg.Height)
	m.recompute()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			slog.Error("Export failed", "error", msg.err)
			m.setStatus(fmt.Sprintf("Export failed: %v", msg.err), true)
		} else {
			m.setStatus(fmt.Sprintf("Exported %d customers to %s", msg.count, msg.path), false)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)
		m.refresh()

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.clusters)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keymap.Toggle):
		if len(m.clusters) > 0 {
			m.setSelection(m.selection.Toggle(m.clusters[m.cursor]))
		}

	case key.Matches(msg, m.keymap.SelectAll):
		m.setSelection(segment.SelectAll(m.table))

	case key.Matches(msg, m.keymap.DeselectAll):
		m.setSelection(segment.NewSelection())

	case key.Matches(msg, m.keymap.NextTab):
		m.switchTab(1)

	case key.Matches(msg, m.keymap.PrevTab):
		m.switchTab(-1)

	case key.Matches(msg, m.keymap.NextRows):
		m.pageRows(1)

	case key.Matches(msg, m.keymap.PrevRows):
		m.pageRows(-1)

	case key.Matches(msg, m.keymap.Export):
		if m.exporting {
			return m, nil
		}
		m.exporting = true
		m.setStatus("Exporting…", false)
		return m, m.exportCmd()

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// Selection returns the current cluster selection.
func (m Model) Selection() segment.Selection {
	return m.selection
}

// Snapshot returns the filtered view and summary currently displayed.
func (m Model) Snapshot() segment.Snapshot {
	return m.snap
}

// Tab returns the active section in the tabbed layout.
func (m Model) Tab() render.Section {
	return m.tab
}

func (m *Model) setSelection(sel segment.Selection) {
	m.selection = sel
	m.rowOffset = 0
	m.recompute()
}

// recompute runs filter and aggregate for the current selection.
func (m *Model) recompute() {
	m.snap = segment.Compute(m.table, m.selection)
	slog.Debug("Recomputed snapshot",
		"clusters", m.selection.String(),
		"customers", m.snap.Summary.Total)
	m.refresh()
}

func (m *Model) switchTab(delta int) {
	if m.layout != config.LayoutTabs {
		return
	}
	n := len(render.Sections)
	m.tab = render.Sections[(int(m.tab)+delta+n)%n]
	m.refresh()
	m.viewport.GotoTop()
}

func (m *Model) pageRows(delta int) {
	size := m.dashboard.SampleSize()
	if size <= 0 {
		return
	}
	next := m.rowOffset + delta*size
	if next < 0 || next >= m.snap.View.Len() {
		return
	}
	m.rowOffset = next
	m.refresh()
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m Model) exportCmd() tea.Cmd {
	view := m.snap.View
	exporter := m.exporter
	return func() tea.Msg {
		path, err := exporter(view)
		return exportDoneMsg{path: path, count: view.Len(), err: err}
	}
}

// resize lays out the sidebar, content viewport and help footer.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	contentWidth := max(40, width-sidebarWidth-1)
	m.dashboard = m.dashboard.WithWidth(contentWidth - 2)

	reserved := 3 // status line, help line, spacer
	if m.help.ShowAll {
		reserved += 4
	}
	if m.layout == config.LayoutTabs {
		reserved += 2
	}

	m.viewport.Width = contentWidth
	m.viewport.Height = max(5, height-reserved)
}

// refresh re-renders the content into the viewport.
func (m *Model) refresh() {
	var content string
	if m.layout == config.LayoutTabs {
		content = m.dashboard.RenderSection(m.tab, m.snap, m.rowOffset)
	} else {
		content = m.dashboard.RenderPage(m.snap, m.rowOffset)
	}
	m.viewport.SetContent(content)
}
