package report

import (
	"fmt"

	"github.com/guigolab/readstats/stats"
	"github.com/guptarohit/asciigraph"
)

// ASCII renders the insert-size density of rs as a terminal plot of the
// given width.
func ASCII(rs *stats.ReadStatistics, width int) (string, error) {
	xys, err := Density(rs, width)
	if err != nil {
		return "", err
	}
	ys := make([]float64, len(xys))
	for i, xy := range xys {
		ys[i] = xy.Y
	}
	caption := fmt.Sprintf("insert size density %.0f-%.0f", xys[0].X, xys[len(xys)-1].X)
	return asciigraph.Plot(ys,
		asciigraph.Height(10),
		asciigraph.Width(width),
		asciigraph.Precision(4),
		asciigraph.Caption(caption),
	), nil
}
