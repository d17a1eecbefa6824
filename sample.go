package readstats

import (
	"github.com/guigolab/readstats/config"
	"github.com/guigolab/readstats/mismatch"
	"github.com/guigolab/readstats/sam"
	"github.com/guigolab/readstats/stats"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// Sequencer is the alignment parameter preset matching a library's error rate.
type Sequencer string

const (
	Illumina Sequencer = "illumina"
	PacBio   Sequencer = "pacbio"
	MinION   Sequencer = "minion"
)

const (
	minIONMismatchRate = 0.10
	pacBioMismatchRate = 0.01
)

// ClassifySequencer picks the sequencer preset of a single-ended library from
// its sampled mismatch counts and read lengths.
func ClassifySequencer(mismatches, readLengths []int) Sequencer {
	if len(mismatches) == 0 || len(readLengths) == 0 {
		return Illumina
	}
	lengths := stat.Mean(toFloats(readLengths), nil)
	if lengths == 0 {
		return Illumina
	}
	rate := stat.Mean(toFloats(mismatches), nil) / lengths
	switch {
	case rate > minIONMismatchRate:
		return MinION
	case rate > pacBioMismatchRate:
		return PacBio
	}
	return Illumina
}

func toFloats(data []int) []float64 {
	f := make([]float64, len(data))
	for i, v := range data {
		f[i] = float64(v)
	}
	return f
}

// Sample is a named alignment file and the statistics sampled from it.
type Sample struct {
	Name           string
	Path           string
	Config         *config.Config
	ReadStatistics *stats.ReadStatistics
	SingleEnded    bool
	Sequencer      Sequencer

	bam        *sam.Reader
	mismatches *mismatch.Calculator
}

// Bam returns the reader of the sample, opening it on first use.
func (s *Sample) Bam() (*sam.Reader, error) {
	if s.bam == nil {
		r, err := sam.NewReader(s.Path, s.Config)
		if err != nil {
			return nil, err
		}
		s.bam = r
	}
	return s.bam, nil
}

// NewSample opens the BAM file at path and samples its read statistics.
// Errors opening the file or its index are returned; sampling failures are
// logged and recorded in the statistics.
func NewSample(name, path string, cfg *config.Config) (*Sample, error) {
	s := &Sample{
		Name:      name,
		Path:      path,
		Config:    cfg,
		Sequencer: Illumina,
	}
	logger := log.WithFields(log.Fields{
		"Sample": name,
	})
	bam, err := s.Bam()
	if err != nil {
		return nil, err
	}
	var ms stats.MismatchScorer
	if cfg.Reference != "" {
		s.mismatches, err = mismatch.NewCalculator(cfg.Reference)
		if err != nil {
			s.Close()
			return nil, errors.Wrapf(err, "sample %s", name)
		}
		ms = s.mismatches
	}
	rs, err := NewReadStatistics(bam, cfg, ms)
	if err != nil {
		logger.WithError(err).Error("Cannot sample read statistics")
	}
	s.ReadStatistics = rs
	s.SingleEnded = rs.Orientations.IsAny()
	if s.SingleEnded {
		s.Sequencer = ClassifySequencer(rs.Mismatches, rs.ReadLengths)
	}
	logger.WithFields(log.Fields{
		"Sequencer": s.Sequencer,
	}).Info("Alignment parameters")
	return s, nil
}

// Summary returns a snapshot of the sample statistics.
func (s *Sample) Summary() *stats.Summary {
	sum := s.ReadStatistics.Summary()
	sum.Sample = s.Name
	sum.Sequencer = string(s.Sequencer)
	sum.SingleEnded = s.SingleEnded
	return sum
}

// Close closes the BAM and reference files of the sample.
func (s *Sample) Close() error {
	var err error
	if s.mismatches != nil {
		err = s.mismatches.Close()
		s.mismatches = nil
	}
	if s.bam != nil {
		if cerr := s.bam.Close(); err == nil {
			err = cerr
		}
		s.bam = nil
	}
	return err
}
