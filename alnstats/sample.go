package alnstats

import (
	"fmt"
	"sort"

	"github.com/biogo/store/llrb"
)

// Sample collects integer observations for mean and lower-median
// computation.
type Sample interface {
	// Add records one value.
	Add(v int)
	// Len returns the number of values added so far.
	Len() int
	// Mean returns the arithmetic mean. ok is false if the sample is empty.
	Mean() (mean float64, ok bool)
	// LowerMedian returns the element at index Len()/2 of the sorted
	// values. For an even length this is the upper of the two central
	// elements; no averaging takes place. ok is false if the sample is empty.
	LowerMedian() (median int, ok bool)
}

// SampleMode selects the Sample implementation used by an Accumulator.
type SampleMode int

const (
	// SampleHistogram keeps one counter per distinct value in an ordered
	// tree. Memory is bounded by the number of distinct values, and the
	// mean and median are exact.
	SampleHistogram SampleMode = iota
	// SampleBuffer keeps every value and sorts them when the median is
	// requested. Memory grows linearly with the input.
	SampleBuffer
)

// String implements fmt.Stringer.
func (m SampleMode) String() string {
	switch m {
	case SampleHistogram:
		return "histogram"
	case SampleBuffer:
		return "buffer"
	default:
		return fmt.Sprintf("SampleMode(%d)", int(m))
	}
}

// ParseSampleMode parses "histogram" or "buffer".
func ParseSampleMode(name string) (SampleMode, error) {
	switch name {
	case "histogram", "":
		return SampleHistogram, nil
	case "buffer":
		return SampleBuffer, nil
	default:
		return SampleHistogram, fmt.Errorf("unknown sampling mode %q; must be histogram or buffer", name)
	}
}

// NewSample creates an empty Sample of the given mode.
func NewSample(mode SampleMode) Sample {
	if mode == SampleBuffer {
		return &bufferSample{}
	}
	return &histSample{}
}

func mean(sum int64, n int) (float64, bool) {
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

type bufferSample struct {
	values []int
	sum    int64
	sorted bool
}

func (s *bufferSample) Add(v int) {
	s.values = append(s.values, v)
	s.sum += int64(v)
	s.sorted = false
}

func (s *bufferSample) Len() int { return len(s.values) }

func (s *bufferSample) Mean() (float64, bool) { return mean(s.sum, len(s.values)) }

func (s *bufferSample) LowerMedian() (int, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	if !s.sorted {
		sort.Ints(s.values)
		s.sorted = true
	}
	return s.values[len(s.values)/2], true
}

// histBin counts the occurrences of one value. It is stored by pointer in
// the tree so that Add can bump the count in place.
type histBin struct {
	value int
	count int
}

// Compare implements llrb.Comparable.
func (b *histBin) Compare(c llrb.Comparable) int {
	o := c.(*histBin)
	switch {
	case b.value < o.value:
		return -1
	case b.value > o.value:
		return 1
	}
	return 0
}

type histSample struct {
	bins llrb.Tree
	n    int
	sum  int64
}

func (s *histSample) Add(v int) {
	s.n++
	s.sum += int64(v)
	if c := s.bins.Get(&histBin{value: v}); c != nil {
		c.(*histBin).count++
		return
	}
	s.bins.Insert(&histBin{value: v, count: 1})
}

func (s *histSample) Len() int { return s.n }

func (s *histSample) Mean() (float64, bool) { return mean(s.sum, s.n) }

func (s *histSample) LowerMedian() (int, bool) {
	if s.n == 0 {
		return 0, false
	}
	var (
		target = s.n / 2
		seen   int
		median int
	)
	s.bins.Do(func(c llrb.Comparable) bool {
		b := c.(*histBin)
		seen += b.count
		if seen > target {
			median = b.value
			return true
		}
		return false
	})
	return median, true
}
