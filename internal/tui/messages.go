package tui

// exportDoneMsg reports the result of an export started with the export key.
type exportDoneMsg struct {
	err   error
	path  string
	count int // Rows in the exported view
}
