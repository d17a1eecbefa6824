// Package region generates the genomic windows sampled when collecting read statistics.
package region

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	// Seed is the shuffling seed. Changing it changes which windows are sampled first.
	Seed = 9535
	// WindowSize is the width of each sampled window.
	WindowSize = 10000
	// Step is the distance between consecutive window starts.
	Step = 1000000
	// Offset is the distance kept from each chromosome end.
	Offset = 2500000
	// Whole marks the bounds of a whole-chromosome region.
	Whole = -1
)

// Region is a genomic interval [Start, End) on Chrom. Whole-chromosome
// regions have Start and End set to Whole.
type Region struct {
	Chrom      string
	Start, End int
}

// NewWhole returns a region spanning the whole chromosome.
func NewWhole(chrom string) Region {
	return Region{chrom, Whole, Whole}
}

// IsWhole reports whether r spans a whole chromosome.
func (r Region) IsWhole() bool {
	return r.Start == Whole && r.End == Whole
}

func (r Region) String() string {
	if r.IsWhole() {
		return r.Chrom
	}
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start, r.End)
}

// Iterator yields the shuffled windows of all chromosomes followed by one
// whole-chromosome region per chromosome in alphabetical order.
type Iterator struct {
	regions []Region
	pos     int
}

// NewIterator returns an Iterator over the chromosomes longer than minLength.
func NewIterator(chromLengths map[string]int, minLength int) *Iterator {
	return &Iterator{
		regions: SearchRegions(chromLengths, minLength),
		pos:     -1,
	}
}

// Next advances the iterator. It returns false when no regions are left.
func (it *Iterator) Next() bool {
	if it.pos < len(it.regions) {
		it.pos++
	}
	return it.pos < len(it.regions)
}

// Region returns the current region.
func (it *Iterator) Region() Region {
	return it.regions[it.pos]
}

// Len returns the total number of regions.
func (it *Iterator) Len() int {
	return len(it.regions)
}

// Reset rewinds the iterator to the first region.
func (it *Iterator) Reset() {
	it.pos = -1
}

// SearchRegions returns the full region sequence produced by an Iterator.
func SearchRegions(chromLengths map[string]int, minLength int) []Region {
	var chroms []string
	for _, chrom := range maps.Keys(chromLengths) {
		if chromLengths[chrom] > minLength {
			chroms = append(chroms, chrom)
		}
	}
	slices.Sort(chroms)

	var windows []Region
	for _, chrom := range chroms {
		for start := Offset; start < chromLengths[chrom]-Offset; start += Step {
			windows = append(windows, Region{chrom, start, start + WindowSize})
		}
	}
	newMT19937(Seed).Shuffle(len(windows), func(i, j int) {
		windows[i], windows[j] = windows[j], windows[i]
	})

	regions := make([]Region, 0, len(windows)+len(chroms))
	regions = append(regions, windows...)
	for _, chrom := range chroms {
		regions = append(regions, NewWhole(chrom))
	}
	return regions
}
