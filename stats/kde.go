package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// minBandwidth is used when all samples are identical.
const minBandwidth = 1.0

type densityModel interface {
	Density(x float64) float64
}

// KDE is a one-dimensional Gaussian kernel density estimate using Scott's
// rule for the bandwidth.
type KDE struct {
	points    []float64
	Bandwidth float64
	kernel    distuv.Normal
}

// NewKDE builds a KDE from data.
func NewKDE(data []int) *KDE {
	points := toFloats(data)
	bw := stat.StdDev(points, nil) * math.Pow(float64(len(points)), -1.0/5)
	if math.IsNaN(bw) || bw <= 0 {
		bw = minBandwidth
	}
	return &KDE{
		points:    points,
		Bandwidth: bw,
		kernel:    distuv.Normal{Mu: 0, Sigma: bw},
	}
}

// Density evaluates the estimated probability density at x.
func (k *KDE) Density(x float64) float64 {
	if len(k.points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range k.points {
		sum += k.kernel.Prob(x - p)
	}
	return sum / float64(len(k.points))
}
