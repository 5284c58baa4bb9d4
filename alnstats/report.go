package alnstats

import (
	"fmt"
)

// StatKind distinguishes raw counters from derived statistics.
type StatKind int

const (
	// CountStat is a raw counter, reported with its share of the total.
	CountStat StatKind = iota
	// DerivedStat is a rate, mean or median.
	DerivedStat
	// SumStat is a total of bases, such as an edit-operation sum. It has no
	// percentage since it is not a number of records.
	SumStat
)

// Labels of the derived statistics.
const (
	LabelMappingRate      = "mapping_rate"
	LabelAvgMapq          = "avg_mapq"
	LabelMedianMapq       = "median_mapq"
	LabelAvgReadLength    = "avg_read_length"
	LabelMedianReadLength = "median_read_length"
	LabelAvgInsertSize    = "avg_insert_size"
	LabelMedianInsertSize = "median_insert_size"
)

// OpLabel returns the report label of the sum for kind k, e.g. "cigar_M".
func OpLabel(k OpKind) string { return "cigar_" + k.String() }

// Stat is one labeled entry of a Report.
type Stat struct {
	Label string
	Kind  StatKind
	// Count is set for CountStat and SumStat.
	Count uint64
	// Percent is 100*Count/total. HasPercent is false when total is zero.
	Percent    float64
	HasPercent bool
	// Value is set for DerivedStat.
	Value float64
}

// Format renders the statistic: "count (pct%)" for counters, the bare sum
// for SumStat, or the value with two decimals for derived statistics.
func (s Stat) Format() string {
	if s.Kind == DerivedStat {
		return fmt.Sprintf("%.2f", s.Value)
	}
	if s.Kind == SumStat || !s.HasPercent {
		return fmt.Sprintf("%d", s.Count)
	}
	return fmt.Sprintf("%d (%.2f%%)", s.Count, s.Percent)
}

// String implements fmt.Stringer.
func (s Stat) String() string { return s.Label + ": " + s.Format() }

// Report is the ordered list of statistics for one stream. Statistics that
// are undefined for the stream, such as the insert-size mean without any
// proper pairs, are absent rather than zero.
type Report struct {
	Stats []Stat
}

// Get returns the statistic with the given label.
func (r *Report) Get(label string) (Stat, bool) {
	for _, s := range r.Stats {
		if s.Label == label {
			return s, true
		}
	}
	return Stat{}, false
}

// Labels lists the labels of r in order.
func (r *Report) Labels() []string {
	labels := make([]string, len(r.Stats))
	for i, s := range r.Stats {
		labels[i] = s.Label
	}
	return labels
}

type reportBuilder struct {
	total uint64
	stats []Stat
}

func (b *reportBuilder) count(label string, n uint64) {
	s := Stat{Label: label, Kind: CountStat, Count: n}
	if b.total > 0 {
		s.Percent = 100 * float64(n) / float64(b.total)
		s.HasPercent = true
	}
	b.stats = append(b.stats, s)
}

func (b *reportBuilder) sum(label string, n uint64) {
	b.stats = append(b.stats, Stat{Label: label, Kind: SumStat, Count: n})
}

func (b *reportBuilder) derived(label string, v float64) {
	b.stats = append(b.stats, Stat{Label: label, Kind: DerivedStat, Value: v})
}

func (b *reportBuilder) sample(meanLabel, medianLabel string, s Sample) {
	if m, ok := s.Mean(); ok {
		b.derived(meanLabel, m)
	}
	if m, ok := s.LowerMedian(); ok {
		b.derived(medianLabel, float64(m))
	}
}

// Report derives rates, means and medians from the accumulated state. It
// is meant to be called once, after the last Observe.
func (a *Accumulator) Report() *Report {
	b := reportBuilder{total: a.counts[Total]}
	counter := func(c Counter) {
		if n, ok := a.Count(c); ok {
			b.count(c.Label(), n)
		}
	}

	b.count(Total.Label(), b.total)
	counter(Mapped)
	counter(Unmapped)
	if mapped := a.counts[Mapped]; mapped > 0 {
		b.derived(LabelMappingRate, 100*float64(mapped)/float64(b.total))
	}
	for _, c := range []Counter{
		Paired, Read1, Read2, ProperPair,
		QCFail, Duplicate, Secondary, Supplementary,
		Mapq0, MapqLE10, MapqLE30, MapqGT30,
	} {
		counter(c)
	}
	b.sample(LabelAvgMapq, LabelMedianMapq, a.mapq)
	counter(Forward)
	counter(Reverse)
	b.sample(LabelAvgReadLength, LabelMedianReadLength, a.readLen)
	b.sample(LabelAvgInsertSize, LabelMedianInsertSize, a.insertSize)
	for k := OpMatch; int(k) < numOpKinds; k++ {
		if n, ok := a.ops.Sum(k); ok {
			b.sum(OpLabel(k), n)
		}
	}
	return &Report{Stats: b.stats}
}
