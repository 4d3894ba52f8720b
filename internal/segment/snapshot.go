package segment

// Snapshot is one recomputation of the data flow for a selection.
type Snapshot struct {
	View    *View
	Summary Summary
}

// Compute filters t by sel and aggregates the result.
func Compute(t *Table, sel Selection) Snapshot {
	view := Filter(t, sel)
	return Snapshot{View: view, Summary: Aggregate(view)}
}
