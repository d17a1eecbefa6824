package sam

import (
	"io"
	"os"
	"strings"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/bgzf/index"
	"github.com/biogo/hts/sam"
	"github.com/guigolab/readstats/config"
	"github.com/guigolab/readstats/region"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrNoIndex is returned when a BAM file has no usable index.
var ErrNoIndex = errors.New("BAM index not found")

// Reader is an indexed BAM file supporting region queries.
type Reader struct {
	*bam.Reader
	FileName string
	Index    *bam.Index
	Refs     map[string]*sam.Reference
	f        *os.File
}

func NewReader(bamFile string, cfg *config.Config) (*Reader, error) {
	f, r, err := NewBamReader(bamFile, cfg)
	if err != nil {
		return nil, err
	}
	bai, err := readIndex(bamFile)
	if err != nil {
		r.Close()
		f.Close()
		return nil, err
	}
	refs := make(map[string]*sam.Reference)
	for _, ref := range r.Header().Refs() {
		refs[ref.Name()] = ref
	}
	return &Reader{
		r,
		bamFile,
		bai,
		refs,
		f,
	}, nil
}

func NewBamReader(bamFile string, cfg *config.Config) (*os.File, *bam.Reader, error) {
	f, err := os.Open(bamFile)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening %s", bamFile)
	}
	r, err := bam.NewReader(f, cfg.Cpu)
	if err != nil {
		f.Close()
		return nil, nil, errors.Wrapf(err, "reading BAM header of %s", bamFile)
	}
	return f, r, nil
}

func indexFiles(bamFile string) []string {
	files := []string{bamFile + ".bai"}
	if strings.HasSuffix(bamFile, ".bam") {
		files = append(files, strings.TrimSuffix(bamFile, ".bam")+".bai")
	}
	return files
}

func readIndex(bamFile string) (*bam.Index, error) {
	for _, name := range indexFiles(bamFile) {
		i, err := os.Open(name)
		if err != nil {
			continue
		}
		defer i.Close()
		log.Infof("Opening BAM index %s", name)
		bai, err := bam.ReadIndex(i)
		if err != nil {
			return nil, errors.Wrapf(err, "reading BAM index %s", name)
		}
		return bai, nil
	}
	return nil, errors.Wrapf(ErrNoIndex, "need to create index for input bam file %s", bamFile)
}

// ChromLengths returns the length of each reference sequence.
func (r *Reader) ChromLengths() map[string]int {
	lengths := make(map[string]int, len(r.Refs))
	for name, ref := range r.Refs {
		lengths[name] = ref.Len()
	}
	return lengths
}

// Fetch returns an iterator over the records overlapping reg.
func (r *Reader) Fetch(reg region.Region) (RecordIterator, error) {
	ref, ok := r.Refs[reg.Chrom]
	if !ok {
		return nil, errors.Errorf("reference %s not found in %s", reg.Chrom, r.FileName)
	}
	// bam.ReadIndex returns a nil index for files without references.
	if r.Index == nil {
		return emptyIterator{}, nil
	}
	start, end := reg.Start, reg.End
	if reg.IsWhole() {
		start, end = 0, ref.Len()
	}
	chunks, err := r.Index.Chunks(ref, start, end)
	if err != nil {
		if err == io.EOF || err == index.ErrInvalid || err == index.ErrNoReference {
			log.WithFields(log.Fields{
				"Region": reg,
			}).Debugf("No indexed records")
			return emptyIterator{}, nil
		}
		return nil, errors.Wrapf(err, "querying index for %v", reg)
	}
	return NewIterator(r.Reader, NewRefChunk(ref, chunks), start, end)
}

func (r *Reader) Close() error {
	err := r.Reader.Close()
	if cerr := r.f.Close(); err == nil {
		err = cerr
	}
	return err
}
