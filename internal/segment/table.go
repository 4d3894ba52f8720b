package segment

import (
	"sort"
	"time"

	"github.com/Veraticus/segscope/internal/model"
	"github.com/Veraticus/segscope/internal/service"
)

// Table is the read-only, fully loaded segmentation table.
type Table struct {
	loadedAt  time.Time
	source    string
	columns   []string
	customers []model.Customer
	clusters  []model.ClusterID
	counts    map[model.ClusterID]int
}

// NewTable wraps a dataset. The dataset must not be modified afterwards.
func NewTable(ds *service.Dataset, source string) *Table {
	t := &Table{
		loadedAt:  time.Now(),
		source:    source,
		columns:   append([]string(nil), ds.Columns...),
		customers: ds.Customers,
		counts:    make(map[model.ClusterID]int),
	}
	if len(t.columns) == 0 {
		t.columns = append(t.columns, model.CoreColumns...)
	}

	for _, c := range t.customers {
		t.counts[c.Cluster]++
	}
	for id := range t.counts {
		t.clusters = append(t.clusters, id)
	}
	sort.Slice(t.clusters, func(i, j int) bool { return t.clusters[i] < t.clusters[j] })

	return t
}

// Len returns the number of customers.
func (t *Table) Len() int {
	return len(t.customers)
}

// At returns the customer at row i.
func (t *Table) At(i int) model.Customer {
	return t.customers[i]
}

// Columns returns the column order of the source.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Clusters returns the distinct cluster ids in ascending order.
func (t *Table) Clusters() []model.ClusterID {
	return append([]model.ClusterID(nil), t.clusters...)
}

// ClusterSize returns how many customers carry id in the full table.
func (t *Table) ClusterSize(id model.ClusterID) int {
	return t.counts[id]
}

// Source describes where the table was loaded from.
func (t *Table) Source() string {
	return t.source
}

// LoadedAt reports when the table was read.
func (t *Table) LoadedAt() time.Time {
	return t.loadedAt
}
