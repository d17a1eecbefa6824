// Package readstats infers the pairing, orientation, insert-size and read-length
// characteristics of a sequencing library by sampling an indexed BAM file.
package readstats

import (
	"time"

	"github.com/guigolab/readstats/config"
	"github.com/guigolab/readstats/region"
	"github.com/guigolab/readstats/sam"
	"github.com/guigolab/readstats/stats"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetLevel(log.WarnLevel)
}

const (
	// UnpairedBailout is the number of unpaired reads after which a region is
	// abandoned if fewer than PairedBailout pairs were sampled.
	UnpairedBailout = 2500
	PairedBailout   = 1000
)

// ErrNoAlignments is returned when sampling finds no records at all.
var ErrNoAlignments = errors.New("no alignments found")

// Source is an indexed alignment file.
type Source interface {
	ChromLengths() map[string]int
	Fetch(reg region.Region) (sam.RecordIterator, error)
}

type scanner struct {
	cfg     *config.Config
	samples *stats.Samples
	skip    int
	records int
}

func (s *scanner) done() bool {
	return s.samples.Paired() >= s.cfg.MaxReads
}

func (s *scanner) scan(src Source, reg region.Region) error {
	it, err := src.Fetch(reg)
	if err != nil {
		return errors.Wrapf(err, "fetching %v", reg)
	}
	defer it.Close()
	for it.Next() {
		s.records++
		if s.skip > 0 {
			s.skip--
			continue
		}
		if s.samples.Tally[stats.Unpaired] > UnpairedBailout && s.samples.Paired() < PairedBailout {
			log.WithFields(log.Fields{
				"Region": reg,
			}).Debugf("Mostly unpaired reads, skipping rest of region")
			break
		}
		s.samples.Collect(it.Record())
		if s.done() {
			break
		}
	}
	return errors.Wrapf(it.Error(), "reading %v", reg)
}

// SampleInsertSizes walks the search regions of src collecting insert sizes,
// read lengths, mismatches and orientations of up to cfg.MaxReads read pairs.
// The first cfg.Skip records are discarded. ms may be nil.
func SampleInsertSizes(src Source, cfg *config.Config, ms stats.MismatchScorer) (samples *stats.Samples, err error) {
	defer func() {
		if r := recover(); r != nil {
			samples, err = nil, errors.Errorf("sampling aborted: %v", r)
		}
	}()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &scanner{
		cfg:     cfg,
		samples: stats.NewSamples(cfg.MinMapQ, ms),
		skip:    cfg.Skip,
	}
	regions := region.NewIterator(src.ChromLengths(), cfg.MinChromLength)
	log.Debugf("Sampling up to %d regions", regions.Len())
	for regions.Next() {
		if s.done() {
			break
		}
		if err := s.scan(src, regions.Region()); err != nil {
			return nil, err
		}
	}
	if s.records == 0 {
		return nil, ErrNoAlignments
	}
	return s.samples, nil
}

// NewReadStatistics samples src and returns the resulting statistics. If
// sampling fails the returned statistics are empty and record the error,
// which is also returned.
func NewReadStatistics(src Source, cfg *config.Config, ms stats.MismatchScorer) (*stats.ReadStatistics, error) {
	start := time.Now()
	samples, err := SampleInsertSizes(src, cfg, ms)
	if err != nil {
		return stats.Degraded(err), err
	}
	rs := stats.NewReadStatistics(samples)
	log.Infof("Stats done in %v", time.Since(start))
	return rs, nil
}
