package readstats

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/biogo/hts/sam"
	"github.com/guigolab/readstats/config"
	"github.com/guigolab/readstats/internal/samtest"
	rsam "github.com/guigolab/readstats/sam"
	"github.com/guigolab/readstats/stats"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lengths = map[string]int{"chr1": 100000}

func writeSample(t *testing.T, index bool, build func(ref *sam.Reference) []*rsam.Record) string {
	h := samtest.Header(lengths, "chr1")
	path, err := samtest.WriteBam(t.TempDir(), "sample.bam", h, build(h.Refs()[0]), index)
	require.NoError(t, err)
	return path
}

func pairedRecords(ref *sam.Reference) []*rsam.Record {
	recs := make([]*rsam.Record, 1200)
	for i := range recs {
		recs[i] = samtest.ProperPair(i, ref, 100+i*10, 300+i*10, false, true)
	}
	return recs
}

func singleRecords(ref *sam.Reference) []*rsam.Record {
	recs := make([]*rsam.Record, 1200)
	for i := range recs {
		recs[i] = samtest.Record(samtest.Spec{
			Name:   fmt.Sprintf("read%d", i),
			Ref:    ref,
			Pos:    100 + i,
			MapQ:   60,
			Length: 100,
			NM:     5,
			HasNM:  true,
		})
	}
	return recs
}

func TestNewSamplePaired(t *testing.T) {
	path := writeSample(t, true, pairedRecords)
	s, err := NewSample("paired", path, config.DefaultConfig())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.ReadStatistics.Err())
	assert.False(t, s.SingleEnded)
	assert.Equal(t, Illumina, s.Sequencer)
	assert.Equal(t, stats.Orientations{"+-"}, s.ReadStatistics.Orientations)

	sum := s.Summary()
	assert.Equal(t, "paired", sum.Sample)
	assert.Equal(t, "illumina", sum.Sequencer)
	assert.Equal(t, 1200, sum.InsertSizes.Samples)
	require.NotNil(t, sum.InsertSizes.Mean)
	assert.Equal(t, 300.0, float64(*sum.InsertSizes.Mean))
}

func TestNewSampleSingleEnded(t *testing.T) {
	path := writeSample(t, true, singleRecords)
	s, err := NewSample("single", path, config.DefaultConfig())
	require.NoError(t, err)
	defer s.Close()

	assert.True(t, s.SingleEnded)
	assert.Equal(t, PacBio, s.Sequencer)
	assert.True(t, s.Summary().SingleEnded)
	assert.Len(t, s.ReadStatistics.Mismatches, 1200)
}

func TestNewSampleErrors(t *testing.T) {
	path := writeSample(t, false, pairedRecords)
	_, err := NewSample("noindex", path, config.DefaultConfig())
	assert.Equal(t, rsam.ErrNoIndex, errors.Cause(err))

	_, err = NewSample("missing", filepath.Join(t.TempDir(), "missing.bam"), config.DefaultConfig())
	assert.True(t, os.IsNotExist(errors.Cause(err)))

	path = writeSample(t, true, pairedRecords)
	cfg := config.DefaultConfig()
	cfg.Reference = filepath.Join(t.TempDir(), "missing.fa")
	_, err = NewSample("noref", path, cfg)
	assert.Error(t, err)
}

func TestNewSampleEmpty(t *testing.T) {
	path := writeSample(t, true, func(*sam.Reference) []*rsam.Record { return nil })
	s, err := NewSample("empty", path, config.DefaultConfig())
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, ErrNoAlignments, s.ReadStatistics.Err())
	assert.Equal(t, ErrNoAlignments.Error(), s.Summary().Error)
}
