// Package report draws the sampled insert-size distribution of a library.
package report

import (
	"github.com/guigolab/readstats/stats"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	// Bins is the number of histogram bins.
	Bins = 50
	// Points is the number of points at which the density is evaluated.
	Points = 200
)

// ErrNoDistribution is returned when too few insert sizes were sampled to
// draw a distribution.
var ErrNoDistribution = errors.New("not enough insert sizes sampled")

// Density evaluates the insert-size score of rs at n evenly spaced insert
// sizes spanning the sampled range.
func Density(rs *stats.ReadStatistics, n int) (plotter.XYs, error) {
	if !rs.HasInsertSizeDistribution() {
		return nil, ErrNoDistribution
	}
	if n < 1 {
		return nil, errors.Errorf("invalid number of points %d", n)
	}
	values := make([]float64, len(rs.InsertSizes))
	for i, v := range rs.InsertSizes {
		values[i] = float64(v)
	}
	lo, hi := floats.Min(values), floats.Max(values)
	xs := make([]float64, n)
	if n == 1 {
		xs[0] = lo
	} else {
		floats.Span(xs, lo, hi)
	}
	xys := make(plotter.XYs, 0, n)
	last := -1
	for _, x := range xs {
		isize := int(x + 0.5)
		if isize == last {
			continue
		}
		last = isize
		xys = append(xys, plotter.XY{X: float64(isize), Y: rs.ScoreInsertSize(isize)})
	}
	return xys, nil
}

// Plot saves a normalized histogram of the insert sizes of rs overlaid with
// their density to path. The image format follows the path extension.
func Plot(rs *stats.ReadStatistics, title, path string) error {
	xys, err := Density(rs, Points)
	if err != nil {
		return err
	}
	values := make(plotter.Values, len(rs.InsertSizes))
	for i, v := range rs.InsertSizes {
		values[i] = float64(v)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "insert size"
	p.Y.Label.Text = "density"

	h, err := plotter.NewHist(values, Bins)
	if err != nil {
		return errors.Wrap(err, "building histogram")
	}
	h.Normalize(1)
	h.FillColor = plotutil.Color(2)

	line, err := plotter.NewLine(xys)
	if err != nil {
		return errors.Wrap(err, "building density line")
	}
	line.Color = plotutil.Color(0)
	line.Width = vg.Points(2)

	p.Add(h, line)
	p.Legend.Add("sampled", h)
	p.Legend.Add("kde", line)

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	return nil
}
