package stats

import (
	"math"

	"github.com/guigolab/readstats/utils"
)

// DiscordantPenalty is added to the alignment scores of pairs inconsistent
// with the library orientations and insert sizes.
const DiscordantPenalty = -10.0

// Pair is a candidate placement of a read pair.
type Pair interface {
	// Scores returns the log10 alignment scores of both reads.
	Scores() (float64, float64)
	InsertSize() int
	Concordant(rs *ReadStatistics) bool
}

// ScoreReadPair returns the log10 score of a candidate pair: the sum of the
// alignment scores and of the log10 insert-size density for concordant pairs,
// or the sum of the alignment scores plus DiscordantPenalty otherwise. Insert
// sizes with zero density score -Inf.
func (rs *ReadStatistics) ScoreReadPair(p Pair) float64 {
	s1, s2 := p.Scores()
	if !p.Concordant(rs) {
		return s1 + s2 + DiscordantPenalty
	}
	return math.Log10(rs.ScoreInsertSize(p.InsertSize())) + s1 + s2
}

// ReadPair is a Pair placed with a known orientation.
type ReadPair struct {
	Score1, Score2 float64
	Orientation    string
	Size           int
}

func (p *ReadPair) Scores() (float64, float64) {
	return p.Score1, p.Score2
}

func (p *ReadPair) InsertSize() int {
	return p.Size
}

// Concordant reports whether the pair orientation is one of the library
// orientations and its insert size is not above the largest sampled one.
// Every pair is concordant with single-ended libraries.
func (p *ReadPair) Concordant(rs *ReadStatistics) bool {
	if rs.Orientations.IsAny() {
		return true
	}
	if !rs.Orientations.Contains(p.Orientation) {
		return false
	}
	if max, ok := rs.MaxInsertSize(); ok && float64(utils.Abs(p.Size)) > max {
		return false
	}
	return true
}
