package render

import (
	"strings"
	"testing"

	"github.com/Veraticus/segscope/internal/model"
	"github.com/Veraticus/segscope/internal/segment"
	"github.com/Veraticus/segscope/internal/service"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *segment.Table {
	customers := []model.Customer{
		{Index: 0, Recency: 10, Frequency: 2, MonetaryValue: 100.5, Cluster: 0},
		{Index: 1, Recency: 300, Frequency: 1, MonetaryValue: 12.25, Cluster: 1},
		{Index: 2, Recency: 5, Frequency: 40, MonetaryValue: 9000, Cluster: 2},
		{Index: 3, Recency: 20, Frequency: 8, MonetaryValue: 750, Cluster: 0},
		{Index: 4, Recency: 60, Frequency: 4, MonetaryValue: 320, Cluster: 3},
	}
	return segment.NewTable(&service.Dataset{Columns: model.CoreColumns, Customers: customers}, "test.csv")
}

func testDashboard() *Dashboard {
	profiles := model.ClusterProfiles{
		0: {Label: "Lowest Customers", Icon: "😴", Characteristics: []string{"Rarely buys"}, Actions: []string{"Win-back campaign"}},
		1: {Label: "Best Customers", Icon: "💎"},
	}
	palette := NewPalette(PaletteOptions{Name: "set2", Clusters: []model.ClusterID{0, 1, 2, 3}})
	return New(palette, Options{
		Profiles:   profiles,
		Title:      "Customer Segmentation",
		Currency:   "£",
		SampleSize: 3,
		Width:      80,
	})
}

func TestPalette(t *testing.T) {
	tests := []struct {
		name string
		opts PaletteOptions
		id   model.ClusterID
		want lipgloss.Color
	}{
		{
			name: "sequence by ascending cluster",
			opts: PaletteOptions{Name: "set2", Clusters: []model.ClusterID{3, 0, 1}},
			id:   1,
			want: "#FC8D62",
		},
		{
			name: "explicit overrides sequence",
			opts: PaletteOptions{Name: "set2", Clusters: []model.ClusterID{0}, Explicit: map[model.ClusterID]string{0: "#000000"}},
			id:   0,
			want: "#000000",
		},
		{
			name: "profile color overrides sequence",
			opts: PaletteOptions{Name: "set2", Clusters: []model.ClusterID{0}, Profiles: model.ClusterProfiles{0: {Color: "#123456"}}},
			id:   0,
			want: "#123456",
		},
		{
			name: "unmapped cluster uses fallback",
			opts: PaletteOptions{Name: "map", Explicit: map[model.ClusterID]string{0: "#000000"}, Fallback: "#999999"},
			id:   7,
			want: "#999999",
		},
		{
			name: "unknown name and no fallback",
			opts: PaletteOptions{Name: "nope", Clusters: []model.ClusterID{0}},
			id:   0,
			want: DefaultFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPalette(tt.opts).Color(tt.id))
		})
	}
}

func TestApportion(t *testing.T) {
	shares := []segment.ClusterShare{
		{Cluster: 0, Count: 1, Share: 1.0 / 3},
		{Cluster: 1, Count: 1, Share: 1.0 / 3},
		{Cluster: 2, Count: 1, Share: 1.0 / 3},
	}
	for _, width := range []int{10, 11, 79, 100} {
		cells := apportion(shares, width)
		sum := 0
		for _, c := range cells {
			sum += c
		}
		assert.Equal(t, width, sum, "width %d", width)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatCount(1234567))
	assert.Equal(t, "£1,234.50", FormatMoney("£", 1234.5))
	assert.Equal(t, segment.Placeholder, FormatMean(segment.Mean{}))
	assert.Equal(t, "2.35", FormatMean(segment.Mean{Value: 2.346, Valid: true}))
	assert.Equal(t, "1.2M", FormatCompact(1234567))
	assert.Equal(t, "3k", FormatCompact(3000))
	assert.Equal(t, "42", FormatCompact(42))
}

func TestRenderSections(t *testing.T) {
	d := testDashboard()
	snap := segment.Compute(testTable(), segment.NewSelection(0, 1))

	out := d.Render(snap)
	assert.Contains(t, out, "Customer Segmentation")
	assert.Contains(t, out, "Total Customer")
	assert.Contains(t, out, "Avg Monetary (£)")
	assert.Contains(t, out, "Cluster 0")
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "Lowest Customers")
	assert.Contains(t, out, "Win-back campaign")
	assert.Contains(t, out, "No profile configured")

	data := d.RenderSection(SectionData, snap, 0)
	assert.Contains(t, data, "Showing rows 1–3 of 3 customers")
	assert.Contains(t, data, "100.50")
}

func TestHeader(t *testing.T) {
	table := testTable()
	header := testDashboard().Header(segment.Filter(table, segment.NewSelection(1)))

	assert.Contains(t, header, "Customer Segmentation")
	assert.Contains(t, header, "source: test.csv")
	assert.Contains(t, header, "loaded "+table.LoadedAt().Format("2006-01-02 15:04"))
}

func TestRenderEmptySelection(t *testing.T) {
	d := testDashboard()
	snap := segment.Compute(testTable(), segment.NewSelection())

	var out string
	require.NotPanics(t, func() { out = d.Render(snap) })

	assert.Contains(t, out, segment.Placeholder)
	assert.Contains(t, out, emptyMessage)
	assert.Contains(t, d.MetricCards(snap.Summary), "0")
}

func TestSampleTablePaging(t *testing.T) {
	d := testDashboard()
	snap := segment.Compute(testTable(), segment.SelectAll(testTable()))

	page := d.SampleTable(snap.View, 3)
	assert.Contains(t, page, "Showing rows 4–5 of 5 customers")

	clamped := d.SampleTable(snap.View, 99)
	assert.Contains(t, clamped, "Showing rows 5–5 of 5 customers")
}

func TestSectionString(t *testing.T) {
	names := make([]string, 0, len(Sections))
	for _, s := range Sections {
		names = append(names, s.String())
	}
	assert.Equal(t, "Overview,Distribution,Scatter,Insights,Data", strings.Join(names, ","))
	assert.Equal(t, "Unknown", Section(99).String())
}

func TestWithWidth(t *testing.T) {
	d := testDashboard()
	wide := d.WithWidth(140)
	assert.Equal(t, 140, wide.Width())
	assert.Equal(t, 80, d.Width())
	assert.Equal(t, 80, d.WithWidth(0).Width())
}
