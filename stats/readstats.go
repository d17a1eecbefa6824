package stats

import (
	"sync"

	"github.com/guigolab/readstats/utils"
	log "github.com/sirupsen/logrus"
)

// UpperQuantile is the read length percentile reported as the upper quantile.
const UpperQuantile = 99

// ReadStatistics holds the insert size, read length and mismatch samples of an
// alignment file together with the inferred pair orientations.
//
// Sampled data is never modified after construction. The insert-size density
// model and the score cache are filled on first use; callers scoring from
// several goroutines must serialize calls to ScoreInsertSize.
type ReadStatistics struct {
	InsertSizes        []int
	ReadLengths        []int
	Mismatches         []int
	Tally              OrientationTally
	Orientations       Orientations
	DiscordantFraction float64

	err error

	insertSizes distribution
	readLengths distribution

	newDensity func([]int) densityModel
	kdeOnce    sync.Once
	kde        densityModel
	scores     map[int]float64

	maxOnce       sync.Once
	maxInsertSize float64
	hasMax        bool
}

func newReadStatistics() *ReadStatistics {
	return &ReadStatistics{
		Tally:  make(OrientationTally),
		scores: make(map[int]float64),
		newDensity: func(data []int) densityModel {
			return NewKDE(data)
		},
	}
}

// NewReadStatistics trims the insert-size outliers of s, chooses the dominant
// orientations and returns the resulting ReadStatistics.
func NewReadStatistics(s *Samples) *ReadStatistics {
	rs := newReadStatistics()
	rs.InsertSizes = RemoveOutliers(s.InsertSizes, OutlierThreshold)
	rs.ReadLengths = s.ReadLengths
	rs.Mismatches = s.Mismatches
	rs.Tally.Update(s.Tally)
	rs.Orientations = ChooseOrientations(s.Tally)
	rs.DiscordantFraction = s.DiscordantFraction()
	rs.insertSizes = newDistribution(rs.InsertSizes)
	rs.readLengths = newDistribution(rs.ReadLengths)

	if len(rs.InsertSizes) > 1 {
		mean, std := rs.insertSizes.meanStdUnchecked()
		log.Infof("  insert size mean: %.2f std: %.2f min:%v max:%v",
			mean, std, rs.insertSizes.minUnchecked(), rs.insertSizes.maxUnchecked())
		log.Infof("  discordant: %.4f", rs.DiscordantFraction)
	}
	return rs
}

// Degraded returns an empty ReadStatistics recording the error that prevented
// the statistics from being collected.
func Degraded(err error) *ReadStatistics {
	rs := newReadStatistics()
	rs.err = err
	return rs
}

// Err returns the error that prevented the statistics from being collected, if any.
func (rs *ReadStatistics) Err() error {
	return rs.err
}

// HasInsertSizeDistribution reports whether enough insert sizes were sampled.
func (rs *ReadStatistics) HasInsertSizeDistribution() bool {
	return rs.insertSizes.valid()
}

// MaxInsertSize returns the largest sampled insert size.
func (rs *ReadStatistics) MaxInsertSize() (float64, bool) {
	rs.maxOnce.Do(func() {
		rs.maxInsertSize, rs.hasMax = rs.insertSizes.max()
	})
	return rs.maxInsertSize, rs.hasMax
}

func (rs *ReadStatistics) MeanInsertSize() (float64, bool) {
	mean, _, ok := rs.insertSizes.meanStd()
	return mean, ok
}

func (rs *ReadStatistics) StddevInsertSize() (float64, bool) {
	_, std, ok := rs.insertSizes.meanStd()
	return std, ok
}

// HasReadLengthDistribution reports whether enough read lengths were sampled.
func (rs *ReadStatistics) HasReadLengthDistribution() bool {
	return rs.readLengths.valid()
}

func (rs *ReadStatistics) MeanReadLength() (float64, bool) {
	mean, _, ok := rs.readLengths.meanStd()
	return mean, ok
}

func (rs *ReadStatistics) StddevReadLength() (float64, bool) {
	_, std, ok := rs.readLengths.meanStd()
	return std, ok
}

// ReadLengthUpperQuantile returns the 99th percentile of the read lengths.
func (rs *ReadStatistics) ReadLengthUpperQuantile() (float64, bool) {
	return rs.readLengths.percentile(UpperQuantile)
}

// ScoreInsertSize returns the estimated probability density of an insert size,
// or 0 if there is no insert-size distribution. The density model is built on
// the first call and results are cached by absolute insert size.
func (rs *ReadStatistics) ScoreInsertSize(isize int) float64 {
	if !rs.HasInsertSizeDistribution() {
		return 0
	}
	rs.kdeOnce.Do(func() {
		rs.kde = rs.newDensity(rs.InsertSizes)
	})

	isize = utils.Abs(isize)
	score, ok := rs.scores[isize]
	if !ok {
		score = rs.kde.Density(float64(isize))
		rs.scores[isize] = score
	}
	return score
}
