package stats

import (
	"math"

	"golang.org/x/exp/slices"
)

// OutlierThreshold is the modified z-score above which a value is an outlier.
const OutlierThreshold = 10.0

// RemoveOutliers trims the upper tail of data using the median and the median
// absolute deviation. Values below the median are never removed. When all
// deviations are zero nothing is removed.
func RemoveOutliers(data []int, m float64) []int {
	if len(data) < 2 {
		return data
	}
	values := toFloats(data)
	med := median(values)
	dev := make([]float64, len(values))
	for i, v := range values {
		dev[i] = math.Abs(v - med)
	}
	mdev := median(dev)

	kept := make([]int, 0, len(data))
	for i, v := range values {
		var s float64
		if mdev != 0 {
			s = (v - med) / mdev
		}
		if s < m {
			kept = append(kept, data[i])
		}
	}
	return kept
}

// median averages the two middle values of even-length samples.
func median(x []float64) float64 {
	sorted := slices.Clone(x)
	slices.Sort(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func toFloats(data []int) []float64 {
	x := make([]float64, len(data))
	for i, v := range data {
		x[i] = float64(v)
	}
	return x
}
