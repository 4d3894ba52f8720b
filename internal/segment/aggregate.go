package segment

import (
	"math"
	"strconv"

	"github.com/Veraticus/segscope/internal/model"
)

// Placeholder is displayed in place of a statistic that is undefined.
const Placeholder = "—"

// Mean is an arithmetic mean that may be undefined (zero observations).
type Mean struct {
	Value float64
	Valid bool
}

func newMean(sum float64, n int) Mean {
	if n == 0 {
		return Mean{}
	}
	return Mean{Value: sum / float64(n), Valid: true}
}

// Rounded returns the value rounded to two decimals, or 0 when undefined.
func (m Mean) Rounded() float64 {
	if !m.Valid {
		return 0
	}
	return math.Round(m.Value*100) / 100
}

// Display formats the mean with two decimals, or Placeholder when undefined.
func (m Mean) Display() string {
	if !m.Valid {
		return Placeholder
	}
	return strconv.FormatFloat(m.Rounded(), 'f', 2, 64)
}

// ClusterCount is the number of customers of one cluster in a view.
type ClusterCount struct {
	Cluster model.ClusterID
	Count   int
}

// ClusterShare is a cluster's fraction of a view.
type ClusterShare struct {
	Cluster model.ClusterID
	Count   int
	Share   float64
}

// Summary holds every aggregate the dashboard renders.
type Summary struct {
	Counts        []ClusterCount // ascending by cluster, present clusters only
	AvgRecency    Mean
	AvgFrequency  Mean
	AvgMonetary   Mean
	TotalMonetary float64
	Total         int
}

// Aggregate computes the summary of v in a single pass.
func Aggregate(v *View) Summary {
	var recency, frequency, monetary float64
	byCluster := make(map[model.ClusterID]int)

	v.Each(func(c model.Customer) {
		recency += float64(c.Recency)
		frequency += float64(c.Frequency)
		monetary += c.MonetaryValue
		byCluster[c.Cluster]++
	})

	s := Summary{
		Total:         v.Len(),
		AvgRecency:    newMean(recency, v.Len()),
		AvgFrequency:  newMean(frequency, v.Len()),
		AvgMonetary:   newMean(monetary, v.Len()),
		TotalMonetary: monetary,
	}

	// Table clusters are already sorted, so walking them keeps the order.
	for _, id := range v.Table().Clusters() {
		if n := byCluster[id]; n > 0 {
			s.Counts = append(s.Counts, ClusterCount{Cluster: id, Count: n})
		}
	}

	return s
}

// CountFor returns the number of customers of cluster id.
func (s Summary) CountFor(id model.ClusterID) int {
	for _, c := range s.Counts {
		if c.Cluster == id {
			return c.Count
		}
	}
	return 0
}

// MaxCount returns the largest per-cluster count.
func (s Summary) MaxCount() int {
	m := 0
	for _, c := range s.Counts {
		if c.Count > m {
			m = c.Count
		}
	}
	return m
}

// Proportions returns each cluster's share of the total. Empty when Total is 0.
func (s Summary) Proportions() []ClusterShare {
	if s.Total == 0 {
		return nil
	}
	shares := make([]ClusterShare, 0, len(s.Counts))
	for _, c := range s.Counts {
		shares = append(shares, ClusterShare{
			Cluster: c.Cluster,
			Count:   c.Count,
			Share:   float64(c.Count) / float64(s.Total),
		})
	}
	return shares
}
