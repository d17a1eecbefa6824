package stats

import (
	"math"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MinDistributionSamples is the number of samples needed before a distribution
// is reported.
const MinDistributionSamples = 1000

// distribution summarises a sample once it is large enough.
type distribution []float64

func newDistribution(data []int) distribution {
	return distribution(toFloats(data))
}

func (d distribution) valid() bool {
	return len(d) >= MinDistributionSamples
}

// meanStd returns the mean and the population standard deviation.
func (d distribution) meanStd() (mean, std float64, ok bool) {
	if !d.valid() {
		return 0, 0, false
	}
	mean, std = d.meanStdUnchecked()
	return mean, std, true
}

func (d distribution) max() (float64, bool) {
	if !d.valid() {
		return 0, false
	}
	return d.maxUnchecked(), true
}

// The unchecked summaries ignore the sample size gate and need a non-empty sample.
func (d distribution) meanStdUnchecked() (mean, std float64) {
	return stat.PopMeanStdDev(d, nil)
}

func (d distribution) minUnchecked() float64 {
	return floats.Min(d)
}

func (d distribution) maxUnchecked() float64 {
	return floats.Max(d)
}

// percentile interpolates linearly between the closest ranks, p in [0, 100].
func (d distribution) percentile(p float64) (float64, bool) {
	if !d.valid() {
		return 0, false
	}
	sorted := slices.Clone(d)
	slices.Sort(sorted)
	h := float64(len(sorted)-1) * p / 100
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1], true
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i]), true
}
