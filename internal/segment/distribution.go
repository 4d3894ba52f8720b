package segment

import (
	"math"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/Veraticus/segscope/internal/model"
)

// Dimension identifies one of the three RFM measures.
type Dimension int

// RFM dimensions in display order.
const (
	DimensionRecency Dimension = iota
	DimensionFrequency
	DimensionMonetary
)

// Dimensions lists every dimension in display order.
var Dimensions = []Dimension{DimensionRecency, DimensionFrequency, DimensionMonetary}

// String returns the dimension's display name.
func (d Dimension) String() string {
	switch d {
	case DimensionRecency:
		return "Recency"
	case DimensionFrequency:
		return "Frequency"
	case DimensionMonetary:
		return "Monetary Value"
	default:
		return "Unknown"
	}
}

// Value extracts the dimension from a customer.
func (d Dimension) Value(c model.Customer) float64 {
	switch d {
	case DimensionRecency:
		return float64(c.Recency)
	case DimensionFrequency:
		return float64(c.Frequency)
	case DimensionMonetary:
		return c.MonetaryValue
	default:
		return 0
	}
}

// scale is the fixed-point factor used when recording into a histogram.
// Monetary values keep cents; the count dimensions are already whole.
func (d Dimension) scale() float64 {
	if d == DimensionMonetary {
		return 100
	}
	return 1
}

// Quartiles is a five-number summary of one cluster on one dimension.
type Quartiles struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
	Count  int
}

// ClusterQuartiles pairs a cluster with its summary.
type ClusterQuartiles struct {
	Cluster model.ClusterID
	Quartiles
}

// Distribution is one dimension faceted by cluster.
type Distribution struct {
	Clusters  []ClusterQuartiles
	Min       float64
	Max       float64
	Dimension Dimension
}

// significantFigures bounds the relative quantile error to 0.1%.
const significantFigures = 3

// Distributions summarizes every dimension of v, one facet per present cluster.
// An empty view yields distributions without facets.
func Distributions(v *View) []Distribution {
	byCluster := make(map[model.ClusterID][]model.Customer)
	v.Each(func(c model.Customer) {
		byCluster[c.Cluster] = append(byCluster[c.Cluster], c)
	})

	out := make([]Distribution, 0, len(Dimensions))
	for _, dim := range Dimensions {
		d := Distribution{Dimension: dim}
		for _, id := range v.Table().Clusters() {
			members := byCluster[id]
			if len(members) == 0 {
				continue
			}
			q := summarize(dim, members)
			if len(d.Clusters) == 0 || q.Min < d.Min {
				d.Min = q.Min
			}
			if len(d.Clusters) == 0 || q.Max > d.Max {
				d.Max = q.Max
			}
			d.Clusters = append(d.Clusters, ClusterQuartiles{Cluster: id, Quartiles: q})
		}
		out = append(out, d)
	}
	return out
}

// summarize records the members' values, shifted so the minimum maps to
// zero, into an HDR histogram and reads the quartiles back.
func summarize(dim Dimension, members []model.Customer) Quartiles {
	scale := dim.scale()

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range members {
		val := dim.Value(c)
		lo = math.Min(lo, val)
		hi = math.Max(hi, val)
	}

	offset := int64(math.Round(lo * scale))
	span := int64(math.Round(hi*scale)) - offset
	hist := hdrhistogram.New(1, max(span, 2), significantFigures)
	for _, c := range members {
		// Values are within [0, span] by construction.
		_ = hist.RecordValue(int64(math.Round(dim.Value(c)*scale)) - offset)
	}

	at := func(q float64) float64 {
		return float64(hist.ValueAtQuantile(q)+offset) / scale
	}

	return Quartiles{
		Min:    lo,
		Q1:     clamp(at(25), lo, hi),
		Median: clamp(at(50), lo, hi),
		Q3:     clamp(at(75), lo, hi),
		Max:    hi,
		Count:  len(members),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
