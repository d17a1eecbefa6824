package sam

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/guigolab/readstats/config"
	"github.com/guigolab/readstats/region"
	"github.com/pkg/errors"
)

func checkTest(err error, t *testing.T) {
	if err != nil {
		t.Fatal(err)
	}
}

func parse(line []byte, t *testing.T) *Record {
	sr, err := sam.NewReader(bytes.NewReader(line))
	checkTest(err, t)
	r, err := sr.Read()
	checkTest(err, t)
	return NewRecord(r)
}

func TestFlags(t *testing.T) {
	for i, s := range []struct {
		line  []byte
		flags [9]bool
	}{
		{
			[]byte("r001	99	ref	7	30	8M2I4M1D3M	=	37	39	TTAGATAAAGGATACTG	*\n"),
			[9]bool{false, false, true, true, true, false, false, true, false},
		},
		{
			[]byte("r002	4	*	0	0	*	*	0	0	*	*\n"),
			[9]bool{false, true, false, false, false, false, false, false, false},
		},
		{
			[]byte("r003	9	ref	9	30	5S6M	*	0	0	GCCTAAGCTAA	*	SA:Z:ref,29,-,6H5M,17,0;\n"),
			[9]bool{false, false, true, false, false, true, false, false, false},
		},
		{
			[]byte("r004	256	ref	16	30	6M14N5M	*	0	0	ATAGCTTCAGC	*\n"),
			[9]bool{true, false, false, false, false, false, false, false, false},
		},
		{
			[]byte("r003	2064	ref	29	17	6H5M	*	0	0	TAGGC	*	SA:Z:ref,9,+,5S6M,30,1;\n"),
			[9]bool{false, false, false, false, false, false, true, false, true},
		},
		{
			[]byte("r001	147	ref	37	30	9M	=	7	-39	CAGCGGCAT	*	NM:i:1\n"),
			[9]bool{false, false, true, true, false, false, true, false, false},
		},
	} {
		rec := parse(s.line, t)
		flags := [9]bool{rec.IsSecondary(), rec.IsUnmapped(), rec.IsPaired(), rec.IsProperlyPaired(), rec.IsRead1(), rec.HasMateUnmapped(), rec.IsReverse(), rec.IsMateReverse(), rec.IsSupplementary()}
		if flags != s.flags {
			t.Errorf("(flags) [%d] %s: expected %v, got %v", i, rec.Name, s.flags, flags)
		}
	}
}

func TestNM(t *testing.T) {
	for i, s := range []struct {
		line     []byte
		nm       int
		hasNM    bool
		setNM    int
		auxCount int
	}{
		{[]byte("r001	147	ref	37	30	9M	=	7	-39	CAGCGGCAT	*	NM:i:1\n"), 1, true, 4, 1},
		{[]byte("r001	99	ref	7	30	17M	=	37	39	TTAGATAAAGGATACTG	*\n"), 0, false, 2, 1},
		{[]byte("r005	0	ref	7	30	5M	*	0	0	TTAGA	*	NM:i:300	XS:i:2\n"), 300, true, 0, 2},
	} {
		rec := parse(s.line, t)
		nm, ok := rec.NM()
		if nm != s.nm || ok != s.hasNM {
			t.Errorf("(NM) [%d] expected %d/%v, got %d/%v", i, s.nm, s.hasNM, nm, ok)
		}
		checkTest(rec.SetNM(s.setNM), t)
		nm, ok = rec.NM()
		if nm != s.setNM || !ok {
			t.Errorf("(SetNM) [%d] expected %d, got %d/%v", i, s.setNM, nm, ok)
		}
		if len(rec.AuxFields) != s.auxCount {
			t.Errorf("(SetNM) [%d] expected %d aux fields, got %d", i, s.auxCount, len(rec.AuxFields))
		}
	}
}

func TestOverlaps(t *testing.T) {
	rec := parse([]byte("r001	0	ref	101	30	10M	*	0	0	AAAAAAAAAA	*\n"), t)
	for i, c := range []struct {
		start, end int
		expected   bool
	}{
		{0, 100, false},
		{0, 101, true},
		{105, 106, true},
		{109, 200, true},
		{110, 200, false},
	} {
		if got := rec.Overlaps(c.start, c.end); got != c.expected {
			t.Errorf("[%d] [%d,%d): expected %v, got %v", i, c.start, c.end, c.expected, got)
		}
	}
	if rec.SeqLen() != 10 {
		t.Errorf("expected sequence length 10, got %d", rec.SeqLen())
	}
}

var positions = []int{100, 1500, 1900, 5000, 90000}

func writeBam(t *testing.T, dir string, index bool, positions []int) string {
	ref, err := sam.NewReference("chr1", "", "", 100000, nil, nil)
	checkTest(err, t)
	h, err := sam.NewHeader(nil, []*sam.Reference{ref})
	checkTest(err, t)
	path := filepath.Join(dir, "test.bam")
	f, err := os.Create(path)
	checkTest(err, t)
	w, err := bam.NewWriter(f, h, 1)
	checkTest(err, t)
	for i, pos := range positions {
		rec, err := sam.NewRecord("r"+string(rune('a'+i)), ref, nil, pos, -1, 0, 60,
			[]sam.CigarOp{sam.NewCigarOp(sam.CigarMatch, 4)}, []byte("ACGT"), nil, nil)
		checkTest(err, t)
		checkTest(w.Write(rec), t)
	}
	checkTest(w.Close(), t)
	checkTest(f.Close(), t)
	if !index {
		return path
	}

	in, err := os.Open(path)
	checkTest(err, t)
	defer in.Close()
	br, err := bam.NewReader(in, 1)
	checkTest(err, t)
	var bai bam.Index
	for {
		rec, err := br.Read()
		if err == io.EOF {
			break
		}
		checkTest(err, t)
		checkTest(bai.Add(rec, br.LastChunk()), t)
	}
	out, err := os.Create(path + ".bai")
	checkTest(err, t)
	checkTest(bam.WriteIndex(out, &bai), t)
	checkTest(out.Close(), t)
	return path
}

func TestNoIndex(t *testing.T) {
	path := writeBam(t, t.TempDir(), false, positions)
	_, err := NewReader(path, config.DefaultConfig())
	if errors.Cause(err) != ErrNoIndex {
		t.Errorf("expected %v, got %v", ErrNoIndex, err)
	}
}

func TestFetch(t *testing.T) {
	path := writeBam(t, t.TempDir(), true, positions)
	r, err := NewReader(path, config.DefaultConfig())
	checkTest(err, t)
	defer r.Close()

	if l := r.ChromLengths()["chr1"]; l != 100000 {
		t.Errorf("expected chr1 length 100000, got %d", l)
	}
	for i, c := range []struct {
		reg      region.Region
		expected []int
	}{
		{region.Region{Chrom: "chr1", Start: 1000, End: 2000}, []int{1500, 1900}},
		{region.Region{Chrom: "chr1", Start: 2000, End: 3000}, nil},
		{region.NewWhole("chr1"), []int{100, 1500, 1900, 5000, 90000}},
	} {
		it, err := r.Fetch(c.reg)
		checkTest(err, t)
		var got []int
		for it.Next() {
			got = append(got, it.Record().Pos)
		}
		checkTest(it.Error(), t)
		it.Close()
		if len(got) != len(c.expected) {
			t.Errorf("[%d] %v: expected %v, got %v", i, c.reg, c.expected, got)
			continue
		}
		for j := range got {
			if got[j] != c.expected[j] {
				t.Errorf("[%d] %v: expected %v, got %v", i, c.reg, c.expected, got)
				break
			}
		}
	}
	if _, err := r.Fetch(region.NewWhole("chr2")); err == nil {
		t.Error("expected an error for an unknown reference")
	}
}

func TestFetchEmpty(t *testing.T) {
	path := writeBam(t, t.TempDir(), true, nil)
	r, err := NewReader(path, config.DefaultConfig())
	checkTest(err, t)
	defer r.Close()

	for i, reg := range []region.Region{
		region.NewWhole("chr1"),
		{Chrom: "chr1", Start: 1000, End: 2000},
	} {
		it, err := r.Fetch(reg)
		checkTest(err, t)
		if it.Next() {
			t.Errorf("[%d] %v: expected no records", i, reg)
		}
		checkTest(it.Error(), t)
		checkTest(it.Close(), t)
	}
}
