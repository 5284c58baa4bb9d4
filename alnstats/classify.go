package alnstats

// MapqBucket is a set of cumulative mapq thresholds. A record may belong to
// several buckets at once: mapq 0 is in Mapq0, MapqLE10 and MapqLE30.
type MapqBucket uint8

const (
	// BucketMapq0 holds mapq == 0.
	BucketMapq0 MapqBucket = 1 << iota
	// BucketMapqLE10 holds mapq <= 10.
	BucketMapqLE10
	// BucketMapqLE30 holds mapq <= 30.
	BucketMapqLE30
	// BucketMapqGT30 holds mapq > 30.
	BucketMapqGT30
)

// Has reports whether b includes every bucket in o.
func (b MapqBucket) Has(o MapqBucket) bool { return b&o == o }

// MapqBuckets returns the buckets whose predicate q satisfies.
func MapqBuckets(q int) MapqBucket {
	var b MapqBucket
	if q == 0 {
		b |= BucketMapq0
	}
	if q <= 10 {
		b |= BucketMapqLE10
	}
	if q <= 30 {
		b |= BucketMapqLE30
	}
	if q > 30 {
		b |= BucketMapqGT30
	}
	return b
}

// Facts are the per-record properties the Accumulator counts.
type Facts struct {
	Paired        bool
	Read1         bool
	Read2         bool
	Unmapped      bool
	Duplicate     bool
	QCFail        bool
	Secondary     bool
	Supplementary bool
	Reverse       bool
	ProperPair    bool

	// MapQ and Buckets are set only when HasMapQ is true, i.e. the record is
	// mapped.
	HasMapQ bool
	MapQ    int
	Buckets MapqBucket
}

// Classify projects r onto the facts used by the statistics. It has no side
// effects.
func Classify(r *Record) Facts {
	f := Facts{
		Paired:        r.IsPaired(),
		Read1:         r.IsRead1(),
		Read2:         r.IsRead2(),
		Unmapped:      r.IsUnmapped(),
		Duplicate:     r.IsDuplicate(),
		QCFail:        r.IsQCFail(),
		Secondary:     r.IsSecondary(),
		Supplementary: r.IsSupplementary(),
		Reverse:       r.IsReverse(),
		ProperPair:    r.IsProperPair(),
	}
	if q, ok := r.MappingQuality(); ok {
		f.HasMapQ = true
		f.MapQ = q
		f.Buckets = MapqBuckets(q)
	}
	return f
}
