package sam

import (
	"github.com/biogo/hts/sam"
)

var nmTag = NewTag("NM")

type Record struct {
	*sam.Record
}

// Re-exported biogo sam helpers
var (
	NewTag = sam.NewTag
	NewAux = sam.NewAux
)

func NewRecord(r *sam.Record) *Record {
	return &Record{r}
}

func (r *Record) IsSecondary() bool {
	return r.Flags&sam.Secondary == sam.Secondary
}

func (r *Record) IsSupplementary() bool {
	return r.Flags&sam.Supplementary == sam.Supplementary
}

func (r *Record) IsUnmapped() bool {
	return r.Flags&sam.Unmapped == sam.Unmapped
}

func (r *Record) IsPaired() bool {
	return r.Flags&sam.Paired == sam.Paired
}

func (r *Record) IsProperlyPaired() bool {
	return r.Flags&sam.ProperPair == sam.ProperPair
}

func (r *Record) IsRead1() bool {
	return r.Flags&sam.Read1 == sam.Read1
}

func (r *Record) HasMateUnmapped() bool {
	return r.Flags&sam.MateUnmapped == sam.MateUnmapped
}

func (r *Record) IsReverse() bool {
	return r.Flags&sam.Reverse == sam.Reverse
}

func (r *Record) IsMateReverse() bool {
	return r.Flags&sam.MateReverse == sam.MateReverse
}

// RefID returns the reference id of the record, or -1 if it has no reference.
func (r *Record) RefID() int {
	return r.Ref.ID()
}

// MateRefID returns the reference id of the mate, or -1 if it has no reference.
func (r *Record) MateRefID() int {
	return r.MateRef.ID()
}

// SeqLen returns the length of the read sequence.
func (r *Record) SeqLen() int {
	return r.Seq.Length
}

// Overlaps reports whether the alignment overlaps [start, end).
func (r *Record) Overlaps(start, end int) bool {
	recEnd := r.End()
	if recEnd == r.Pos {
		recEnd++
	}
	return r.Pos < end && recEnd > start
}

// NM returns the value of the NM tag if present.
func (r *Record) NM() (int, bool) {
	aux, ok := r.Tag(nmTag[:])
	if !ok {
		return 0, false
	}
	switch v := aux.Value().(type) {
	case uint8:
		return int(v), true
	case int8:
		return int(v), true
	case uint16:
		return int(v), true
	case int16:
		return int(v), true
	case uint32:
		return int(v), true
	case int32:
		return int(v), true
	}
	return 0, false
}

// SetNM sets the NM tag, replacing any previous value.
func (r *Record) SetNM(nm int) error {
	aux, err := NewAux(nmTag, int32(nm))
	if err != nil {
		return err
	}
	for i, a := range r.AuxFields {
		if a.Tag() == nmTag {
			r.AuxFields[i] = aux
			return nil
		}
	}
	r.AuxFields = append(r.AuxFields, aux)
	return nil
}
