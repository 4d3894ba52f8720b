package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Core column names every segmentation source must provide.
const (
	ColumnRecency       = "Recency"
	ColumnFrequency     = "Frequency"
	ColumnMonetaryValue = "MonetaryValue"
	ColumnCluster       = "Cluster"
)

// CoreColumns lists the required columns in their canonical order.
var CoreColumns = []string{ColumnRecency, ColumnFrequency, ColumnMonetaryValue, ColumnCluster}

// IsCoreColumn reports whether name is one of the required RFM columns.
func IsCoreColumn(name string) bool {
	for _, c := range CoreColumns {
		if c == name {
			return true
		}
	}
	return false
}

// ClusterID is the segment label assigned to a customer upstream.
type ClusterID int

// String renders the cluster the way it appears in the source file.
func (c ClusterID) String() string {
	return strconv.Itoa(int(c))
}

// UnmarshalText lets quoted YAML keys such as "2" decode into a ClusterID.
func (c *ClusterID) UnmarshalText(text []byte) error {
	id, err := ParseClusterID(string(text))
	if err != nil {
		return err
	}
	*c = id
	return nil
}

// ParseClusterID parses a cluster label. Float-formatted integers such as "2.0"
// are accepted since spreadsheet exports often write them that way.
func ParseClusterID(s string) (ClusterID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty cluster label")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return ClusterID(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid cluster label %q", s)
	}
	return ClusterID(int(f)), nil
}

// Customer is a single row of the segmentation table.
type Customer struct {
	Extra         map[string]string // Non-core source columns, e.g. CustomerID
	MonetaryValue float64
	Index         int // Zero-based row position in the source
	Recency       int
	Frequency     int
	Cluster       ClusterID
}

// Field returns the string form of the named column for this customer.
// Core columns are formatted so that parsing them back yields the same value.
func (c Customer) Field(column string) string {
	switch column {
	case ColumnRecency:
		return strconv.Itoa(c.Recency)
	case ColumnFrequency:
		return strconv.Itoa(c.Frequency)
	case ColumnMonetaryValue:
		return strconv.FormatFloat(c.MonetaryValue, 'f', -1, 64)
	case ColumnCluster:
		return c.Cluster.String()
	default:
		return c.Extra[column]
	}
}
