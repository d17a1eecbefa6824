package sam

import "github.com/biogo/hts/bam"

// RecordIterator iterates over the records of a region in file order.
type RecordIterator interface {
	Next() bool
	Record() *Record
	Error() error
	Close() error
}

// Iterator iterates over the records of a RefChunk overlapping [Start, End).
type Iterator struct {
	*bam.Iterator
	Chr        string
	Start, End int
	rec        *Record
}

func NewIterator(br *bam.Reader, data *RefChunk, start, end int) (RecordIterator, error) {
	if len(data.Chunks) == 0 {
		return emptyIterator{}, nil
	}
	it, err := bam.NewIterator(br, data.Chunks)
	if err != nil {
		return nil, err
	}
	return &Iterator{Iterator: it, Chr: data.Ref.Name(), Start: start, End: end}, nil
}

func (i *Iterator) Next() bool {
	for i.Iterator.Next() {
		r := i.Iterator.Record()
		if r.Ref == nil || r.Ref.Name() != i.Chr || !NewRecord(r).Overlaps(i.Start, i.End) {
			continue
		}
		i.rec = NewRecord(r)
		return true
	}
	return false
}

func (i *Iterator) Record() *Record {
	return i.rec
}

type emptyIterator struct{}

func (emptyIterator) Next() bool      { return false }
func (emptyIterator) Record() *Record { return nil }
func (emptyIterator) Error() error    { return nil }
func (emptyIterator) Close() error    { return nil }
