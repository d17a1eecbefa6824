package stats

import (
	"github.com/guigolab/readstats/sam"
	"github.com/guigolab/readstats/utils"
	log "github.com/sirupsen/logrus"
)

// MismatchScorer computes the NM tag of records lacking one.
type MismatchScorer interface {
	Annotate(r *sam.Record) error
}

// Samples accumulates insert sizes, read lengths, mismatch counts and
// orientations from sampled records.
type Samples struct {
	InsertSizes []int            `json:"-"`
	ReadLengths []int            `json:"-"`
	Mismatches  []int            `json:"-"`
	Tally       OrientationTally `json:"orientations"`
	Discordant  int              `json:"discordant"`
	Concordant  int              `json:"concordant"`
	minMapQ     int
	mismatches  MismatchScorer
	paired      int
}

// NewSamples returns an empty Samples. Pairs with a mapping quality below
// minMapQ are not sampled. ms may be nil.
func NewSamples(minMapQ int, ms MismatchScorer) *Samples {
	return &Samples{
		Tally:      make(OrientationTally),
		minMapQ:    minMapQ,
		mismatches: ms,
	}
}

// Paired returns the number of sampled read pairs.
func (s *Samples) Paired() int {
	return s.paired
}

// Collect collects the statistics of a sam.Record. Only the first read of
// each properly paired, uniquely placed pair contributes an insert size.
func (s *Samples) Collect(r *sam.Record) {
	if !r.IsPaired() {
		s.Tally[Unpaired]++
		s.ReadLengths = append(s.ReadLengths, r.SeqLen())
		s.collectMismatches(r)
		return
	}
	if !r.IsRead1() {
		return
	}
	if r.IsUnmapped() || r.HasMateUnmapped() {
		return
	}
	if r.IsSecondary() || r.IsSupplementary() {
		return
	}
	if !r.IsProperlyPaired() {
		s.Discordant++
		return
	}
	s.Concordant++

	if int(r.MapQ) < s.minMapQ {
		return
	}
	if r.RefID() != r.MateRefID() {
		return
	}

	s.InsertSizes = append(s.InsertSizes, utils.Abs(r.TempLen))

	o := NewOrientation(r.IsReverse(), r.IsMateReverse())
	if r.Pos > r.MatePos {
		o = o.Flip()
	}
	s.Tally[o]++
	s.ReadLengths = append(s.ReadLengths, r.SeqLen())
	s.collectMismatches(r)
	s.paired++
}

func (s *Samples) collectMismatches(r *sam.Record) {
	_, hasNM := r.NM()
	if !hasNM && s.mismatches != nil {
		if err := s.mismatches.Annotate(r); err != nil {
			log.WithFields(log.Fields{
				"Read": r.Name,
			}).Debugf("Cannot compute mismatches: %v", err)
		}
	}
	if nm, ok := r.NM(); ok {
		s.Mismatches = append(s.Mismatches, nm)
	}
}

// DiscordantFraction returns the fraction of discordant pairs among the
// pairs with a proper-pair flag decision. It is NaN if no pairs were seen.
func (s *Samples) DiscordantFraction() float64 {
	return float64(s.Discordant) / float64(s.Discordant+s.Concordant)
}
