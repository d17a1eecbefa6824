// Package mismatch computes the edit distance of alignments to an indexed
// FASTA reference.
package mismatch

import (
	"bytes"
	"io"
	"os"

	"github.com/biogo/hts/fai"
	"github.com/biogo/hts/sam"
	rsam "github.com/guigolab/readstats/sam"
	"github.com/pkg/errors"
)

// Reference provides random access to reference sequences.
type Reference interface {
	SeqRange(name string, start, end int) (*fai.Seq, error)
}

var _ Reference = (*fai.File)(nil)

// Calculator computes NM tags against a reference.
type Calculator struct {
	ref Reference
	f   *os.File
}

// New returns a Calculator reading sequences from ref.
func New(ref Reference) *Calculator {
	return &Calculator{ref: ref}
}

// NewCalculator opens a FASTA file and its .fai index.
func NewCalculator(fastaPath string) (*Calculator, error) {
	idxFile, err := os.Open(fastaPath + ".fai")
	if err != nil {
		return nil, errors.Wrapf(err, "opening FASTA index for %s", fastaPath)
	}
	defer idxFile.Close()
	idx, err := fai.ReadFrom(idxFile)
	if err != nil {
		return nil, errors.Wrapf(err, "reading FASTA index for %s", fastaPath)
	}
	f, err := os.Open(fastaPath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", fastaPath)
	}
	return &Calculator{ref: fai.NewFile(f, idx), f: f}, nil
}

// Close closes the underlying FASTA file.
func (c *Calculator) Close() error {
	if c.f == nil {
		return nil
	}
	return c.f.Close()
}

// Count returns the number of mismatched, inserted and deleted bases of r.
func (c *Calculator) Count(r *rsam.Record) (int, error) {
	if r.IsUnmapped() || r.Ref == nil {
		return 0, errors.Errorf("read %s is unmapped", r.Name)
	}
	if r.SeqLen() == 0 {
		return 0, errors.Errorf("read %s has no sequence", r.Name)
	}
	rs, err := c.ref.SeqRange(r.Ref.Name(), r.Pos, r.End())
	if err != nil {
		return 0, errors.Wrapf(err, "fetching reference for read %s", r.Name)
	}
	ref, err := io.ReadAll(rs)
	if err != nil {
		return 0, errors.Wrapf(err, "fetching reference for read %s", r.Name)
	}
	ref = bytes.ToUpper(ref)
	query := bytes.ToUpper(r.Seq.Expand())

	var nm, qpos, rpos int
	for _, co := range r.Cigar {
		n := co.Len()
		switch co.Type() {
		case sam.CigarMatch, sam.CigarEqual, sam.CigarMismatch:
			if qpos+n > len(query) || rpos+n > len(ref) {
				return 0, errors.Errorf("read %s: CIGAR %v exceeds sequence", r.Name, r.Cigar)
			}
			for i := 0; i < n; i++ {
				if query[qpos+i] != ref[rpos+i] {
					nm++
				}
			}
		case sam.CigarInsertion, sam.CigarDeletion:
			nm += n
		}
		con := co.Type().Consumes()
		qpos += n * con.Query
		rpos += n * con.Reference
	}
	return nm, nil
}

// Annotate sets the NM tag of r.
func (c *Calculator) Annotate(r *rsam.Record) error {
	nm, err := c.Count(r)
	if err != nil {
		return err
	}
	return r.SetNM(nm)
}
