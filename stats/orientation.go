package stats

import (
	"encoding/json"
	"sort"

	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// Orientation is the strand combination of a read pair, left mate first, or
// Unpaired for single reads.
type Orientation uint8

const (
	ForwardForward Orientation = iota
	ForwardReverse
	ReverseForward
	ReverseReverse
	Unpaired
)

var (
	orientations = []Orientation{ForwardForward, ForwardReverse, ReverseForward, ReverseReverse, Unpaired}

	orientationLabels = map[Orientation]string{
		ForwardForward: "++",
		ForwardReverse: "+-",
		ReverseForward: "-+",
		ReverseReverse: "--",
		Unpaired:       "unpaired",
	}

	strandLabels = map[bool]byte{
		false: '+',
		true:  '-',
	}
)

// NewOrientation returns the orientation of a pair given the strand of each mate.
func NewOrientation(selfReverse, mateReverse bool) Orientation {
	o := ForwardForward
	if selfReverse {
		o += 2
	}
	if mateReverse {
		o++
	}
	return o
}

// ParseOrientation parses an orientation label.
func ParseOrientation(s string) (Orientation, bool) {
	for o, label := range orientationLabels {
		if label == s {
			return o, true
		}
	}
	return 0, false
}

// Strands returns the strand of each mate.
func (o Orientation) Strands() (selfReverse, mateReverse bool) {
	return o&2 != 0, o&1 != 0
}

// Flip inverts both strands. Unpaired is returned unchanged.
func (o Orientation) Flip() Orientation {
	if o == Unpaired {
		return o
	}
	self, mate := o.Strands()
	return NewOrientation(!self, !mate)
}

func (o Orientation) String() string {
	if o == Unpaired {
		return orientationLabels[o]
	}
	self, mate := o.Strands()
	return string([]byte{strandLabels[self], strandLabels[mate]})
}

// Orientations is the set of dominant pair orientations, most dominant first.
type Orientations []string

// AnyOrientation is the classification of single-ended data.
var AnyOrientation = Orientations{"any"}

// IsAny reports whether o classifies the data as single-ended.
func (o Orientations) IsAny() bool {
	return len(o) == 1 && o[0] == AnyOrientation[0]
}

// Contains reports whether the orientation label is one of o.
func (o Orientations) Contains(label string) bool {
	return slices.Contains(o, label)
}

func (o Orientations) MarshalJSON() ([]byte, error) {
	if o.IsAny() {
		return json.Marshal(o[0])
	}
	return json.Marshal([]string(o))
}

func (o *Orientations) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*o = Orientations{s}
		return nil
	}
	var labels []string
	if err := json.Unmarshal(b, &labels); err != nil {
		return err
	}
	*o = labels
	return nil
}

// ChooseOrientations selects the dominant orientations of tally. Orientations
// are taken by decreasing count while the last chosen count is less than twice
// the count of the next one. If unpaired reads dominate, or nothing was counted,
// the data is considered single-ended.
func ChooseOrientations(tally OrientationTally) Orientations {
	log.Infof("  counts +/-:%-6d -/+:%-6d +/+:%-6d -/-:%-6d unpaired:%-6d",
		tally[ForwardReverse],
		tally[ReverseForward],
		tally[ForwardForward],
		tally[ReverseReverse],
		tally[Unpaired])

	ranked := make([]Orientation, len(orientations))
	copy(ranked, orientations)
	sort.SliceStable(ranked, func(i, j int) bool {
		return tally[ranked[i]] < tally[ranked[j]]
	})

	pop := func() Orientation {
		o := ranked[len(ranked)-1]
		ranked = ranked[:len(ranked)-1]
		return o
	}
	chosen := []Orientation{pop()}
	for len(ranked) > 0 {
		candidate := pop()
		if tally[chosen[len(chosen)-1]] < 2*tally[candidate] {
			chosen = append(chosen, candidate)
		} else {
			break
		}
	}

	if chosen[0] == Unpaired || tally[chosen[0]] == 0 {
		return AnyOrientation
	}
	labels := make(Orientations, 0, len(chosen))
	for _, o := range chosen {
		if o == Unpaired {
			continue
		}
		labels = append(labels, o.String())
	}
	return labels
}
