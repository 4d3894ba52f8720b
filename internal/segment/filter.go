package segment

import "github.com/Veraticus/segscope/internal/model"

// View is the subset of a Table matching a Selection, in original row order.
// It references the table's rows and owns nothing.
type View struct {
	table     *Table
	selection Selection
	rows      []int
}

// Filter returns the customers of t whose cluster is in sel.
// An empty selection yields an empty view.
func Filter(t *Table, sel Selection) *View {
	v := &View{table: t, selection: sel}
	if sel.IsEmpty() {
		return v
	}

	for i := range t.customers {
		if sel.Contains(t.customers[i].Cluster) {
			v.rows = append(v.rows, i)
		}
	}
	return v
}

// Table returns the table the view projects.
func (v *View) Table() *Table {
	return v.table
}

// Selection returns the selection that produced the view.
func (v *View) Selection() Selection {
	return v.selection
}

// Len returns the number of customers in the view.
func (v *View) Len() int {
	return len(v.rows)
}

// At returns the i-th customer of the view.
func (v *View) At(i int) model.Customer {
	return v.table.customers[v.rows[i]]
}

// Each calls fn for every customer in order.
func (v *View) Each(fn func(model.Customer)) {
	for _, r := range v.rows {
		fn(v.table.customers[r])
	}
}

// Head returns at most n customers from the start of the view.
func (v *View) Head(n int) []model.Customer {
	if n > len(v.rows) || n < 0 {
		n = len(v.rows)
	}
	out := make([]model.Customer, n)
	for i := 0; i < n; i++ {
		out[i] = v.At(i)
	}
	return out
}

// Customers returns a copy of every customer in the view.
func (v *View) Customers() []model.Customer {
	return v.Head(-1)
}
