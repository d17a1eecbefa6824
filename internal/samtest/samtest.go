// Package samtest builds synthetic alignment records for tests.
package samtest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	rsam "github.com/guigolab/readstats/sam"
)

// Refs returns references registered in a header so that they carry ids.
func Refs(lengths map[string]int, names ...string) []*sam.Reference {
	return Header(lengths, names...).Refs()
}

// Header returns a header holding one reference per name.
func Header(lengths map[string]int, names ...string) *sam.Header {
	refs := make([]*sam.Reference, len(names))
	for i, name := range names {
		ref, err := sam.NewReference(name, "", "", lengths[name], nil, nil)
		if err != nil {
			panic(err)
		}
		refs[i] = ref
	}
	h, err := sam.NewHeader(nil, refs)
	if err != nil {
		panic(err)
	}
	return h
}

// Spec describes a synthetic record.
type Spec struct {
	Name         string
	Ref, MateRef *sam.Reference
	Pos, MatePos int
	TempLen      int
	MapQ         byte
	Flags        sam.Flags
	Length       int
	Seq          string
	NM           int
	HasNM        bool
	Cigar        string
}

// Record returns the record described by s. The sequence defaults to Length
// A bases and the CIGAR to an all-match alignment.
func Record(s Spec) *rsam.Record {
	seq := s.Seq
	if seq == "" {
		seq = strings.Repeat("A", s.Length)
	}
	var cigar sam.Cigar
	if s.Cigar != "" {
		var err error
		cigar, err = sam.ParseCigar([]byte(s.Cigar))
		if err != nil {
			panic(err)
		}
	} else if len(seq) > 0 {
		cigar = sam.Cigar{sam.NewCigarOp(sam.CigarMatch, len(seq))}
	}
	r := rsam.NewRecord(&sam.Record{
		Name:    s.Name,
		Ref:     s.Ref,
		Pos:     s.Pos,
		MapQ:    s.MapQ,
		Cigar:   cigar,
		Flags:   s.Flags,
		MateRef: s.MateRef,
		MatePos: s.MatePos,
		TempLen: s.TempLen,
		Seq:     sam.NewSeq([]byte(seq)),
	})
	if s.HasNM {
		if err := r.SetNM(s.NM); err != nil {
			panic(err)
		}
	}
	return r
}

// ProperPair returns the first read of a properly paired, uniquely mapped pair.
func ProperPair(i int, ref *sam.Reference, pos, matePos int, reverse, mateReverse bool) *rsam.Record {
	flags := sam.Paired | sam.ProperPair | sam.Read1
	if reverse {
		flags |= sam.Reverse
	}
	if mateReverse {
		flags |= sam.MateReverse
	}
	isize := matePos - pos + 100
	if pos > matePos {
		isize = -(pos - matePos + 100)
	}
	return Record(Spec{
		Name:    fmt.Sprintf("pair%d", i),
		Ref:     ref,
		MateRef: ref,
		Pos:     pos,
		MatePos: matePos,
		TempLen: isize,
		MapQ:    60,
		Flags:   flags,
		Length:  100,
	})
}

// Unpaired returns a mapped single-end read.
func Unpaired(i int, ref *sam.Reference, pos, length int) *rsam.Record {
	return Record(Spec{
		Name:   fmt.Sprintf("read%d", i),
		Ref:    ref,
		Pos:    pos,
		MapQ:   60,
		Length: length,
	})
}

// WriteBam writes recs to dir/name under h and, if index is set, a BAI index
// next to it. Records must be sorted by position.
func WriteBam(dir, name string, h *sam.Header, recs []*rsam.Record, index bool) (string, error) {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	w, err := bam.NewWriter(f, h, 1)
	if err != nil {
		return "", err
	}
	for _, r := range recs {
		if err := w.Write(r.Record); err != nil {
			return "", err
		}
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	if !index {
		return path, nil
	}
	return path, writeIndex(path)
}

func writeIndex(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()
	br, err := bam.NewReader(in, 1)
	if err != nil {
		return err
	}
	defer br.Close()
	var bai bam.Index
	for {
		rec, err := br.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := bai.Add(rec, br.LastChunk()); err != nil {
			return err
		}
	}
	out, err := os.Create(path + ".bai")
	if err != nil {
		return err
	}
	if err := bam.WriteIndex(out, &bai); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
