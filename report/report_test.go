package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guigolab/readstats/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readStatistics(n int) *stats.ReadStatistics {
	s := stats.NewSamples(0, nil)
	for i := 0; i < n; i++ {
		s.InsertSizes = append(s.InsertSizes, 250+i%100)
	}
	s.Tally[stats.ForwardReverse] = n
	return stats.NewReadStatistics(s)
}

func TestDensity(t *testing.T) {
	_, err := Density(readStatistics(10), Points)
	assert.Equal(t, ErrNoDistribution, err)

	rs := readStatistics(2000)
	_, err = Density(rs, 0)
	assert.Error(t, err)

	xys, err := Density(rs, 50)
	require.NoError(t, err)
	require.Len(t, xys, 50)
	assert.Equal(t, 250.0, xys[0].X)
	assert.Equal(t, 349.0, xys[len(xys)-1].X)
	for i, xy := range xys {
		assert.True(t, xy.Y > 0, "[%d]", i)
	}

	// more points than distinct insert sizes
	xys, err = Density(rs, 1000)
	require.NoError(t, err)
	assert.Len(t, xys, 100)
}

func TestPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "isize.png")
	assert.Equal(t, ErrNoDistribution, Plot(readStatistics(10), "sample", path))

	require.NoError(t, Plot(readStatistics(2000), "sample", path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)
}

func TestASCII(t *testing.T) {
	_, err := ASCII(readStatistics(10), 60)
	assert.Equal(t, ErrNoDistribution, err)

	out, err := ASCII(readStatistics(2000), 60)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "insert size density 250-349"))
	assert.True(t, strings.Count(out, "\n") >= 10)
}
