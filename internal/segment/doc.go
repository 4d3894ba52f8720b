// Package segment holds the filter-and-aggregate data flow behind the dashboard.
//
// A Loader reads the segmentation table once and hands out an immutable
// *Table. Filter projects a Table onto a cluster Selection, producing a View,
// and Aggregate turns a View into the Summary that every chart consumes.
// Each user interaction recomputes Filter and Aggregate from the same Table.
package segment
