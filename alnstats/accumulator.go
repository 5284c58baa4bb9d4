package alnstats

// Counter names one integer statistic kept by the Accumulator.
type Counter int

// Counters. Mapq0 through MapqGT30 are cumulative thresholds, not a
// partition of the mapq range.
const (
	Total Counter = iota
	Mapped
	Unmapped
	Paired
	Read1
	Read2
	ProperPair
	QCFail
	Duplicate
	Secondary
	Supplementary
	Mapq0
	MapqLE10
	MapqLE30
	MapqGT30
	Forward
	Reverse

	numCounters
)

var counterLabels = [numCounters]string{
	Total:         "total",
	Mapped:        "mapped",
	Unmapped:      "unmapped",
	Paired:        "paired",
	Read1:         "read1",
	Read2:         "read2",
	ProperPair:    "proper pair",
	QCFail:        "qcfail",
	Duplicate:     "duplicate",
	Secondary:     "secondary",
	Supplementary: "supplementary",
	Mapq0:         "mapq=0",
	MapqLE10:      "mapq<=10",
	MapqLE30:      "mapq<=30",
	MapqGT30:      "mapq>30",
	Forward:       "forward strand",
	Reverse:       "reverse strand",
}

// Label returns the report label of c.
func (c Counter) Label() string { return counterLabels[c] }

// Opts configures an Accumulator.
type Opts struct {
	// Sampling selects how mapq, read-length and insert-size values are kept.
	Sampling SampleMode
	// MaxInsertSize is the exclusive upper bound on |TLEN| for a proper pair
	// to enter the insert-size sample.
	MaxInsertSize int
}

// DefaultOpts is the default configuration.
var DefaultOpts = Opts{
	Sampling:      SampleHistogram,
	MaxInsertSize: 10000,
}

// Accumulator holds the running state of one stream of records. Create one
// per stream with NewAccumulator; it is not reusable and not thread safe.
type Accumulator struct {
	opts Opts

	counts  [numCounters]uint64
	present [numCounters]bool

	mapq       Sample
	readLen    Sample
	insertSize Sample
	ops        OpTally
}

// NewAccumulator creates an empty Accumulator.
func NewAccumulator(opts Opts) *Accumulator {
	if opts.MaxInsertSize <= 0 {
		opts.MaxInsertSize = DefaultOpts.MaxInsertSize
	}
	return &Accumulator{
		opts:       opts,
		mapq:       NewSample(opts.Sampling),
		readLen:    NewSample(opts.Sampling),
		insertSize: NewSample(opts.Sampling),
	}
}

// add bumps c by one if cond holds. The counter becomes present either way.
func (a *Accumulator) add(c Counter, cond bool) {
	a.present[c] = true
	if cond {
		a.counts[c]++
	}
}

// Count returns the value of c. ok is false if c was never touched.
func (a *Accumulator) Count(c Counter) (n uint64, ok bool) {
	return a.counts[c], a.present[c]
}

// Ops returns the edit-operation tally.
func (a *Accumulator) Ops() *OpTally { return &a.ops }

// MapQ returns the mapq sample.
func (a *Accumulator) MapQ() Sample { return a.mapq }

// ReadLengths returns the read-length sample.
func (a *Accumulator) ReadLengths() Sample { return a.readLen }

// InsertSizes returns the insert-size sample.
func (a *Accumulator) InsertSizes() Sample { return a.insertSize }

// Observe folds one record into the state.
//
// Read length is sampled for every record with a known length, mapped or
// not. Everything after the unmapped check (mapq, strand, insert size and
// edit operations) is for mapped records only.
func (a *Accumulator) Observe(r *Record) {
	f := Classify(r)
	a.add(Total, true)
	a.add(QCFail, f.QCFail)
	a.add(Duplicate, f.Duplicate)
	a.add(Secondary, f.Secondary)
	a.add(Supplementary, f.Supplementary)
	a.add(Paired, f.Paired)
	a.add(Read1, f.Read1)
	a.add(Read2, f.Read2)

	if r.QueryLength > 0 {
		a.readLen.Add(r.QueryLength)
	}
	// Both are touched so that mapped+unmapped always adds up to total.
	a.add(Mapped, !f.Unmapped)
	a.add(Unmapped, f.Unmapped)
	if f.Unmapped {
		return
	}

	a.add(ProperPair, f.ProperPair)

	a.mapq.Add(f.MapQ)
	a.add(Mapq0, f.Buckets.Has(BucketMapq0))
	a.add(MapqLE10, f.Buckets.Has(BucketMapqLE10))
	a.add(MapqLE30, f.Buckets.Has(BucketMapqLE30))
	a.add(MapqGT30, f.Buckets.Has(BucketMapqGT30))

	a.add(Forward, !f.Reverse)
	a.add(Reverse, f.Reverse)

	if tlen := r.TemplateLength; f.Paired && f.ProperPair && tlen > 0 && tlen < a.opts.MaxInsertSize {
		a.insertSize.Add(tlen)
	}
	a.TallyOperations(r)
}

// TallyOperations adds the lengths of r's edit operations to the per-kind
// sums. Observe calls it for mapped records; unmapped records carry no ops
// and contribute nothing.
func (a *Accumulator) TallyOperations(r *Record) {
	for _, op := range r.Ops {
		a.ops.Add(op.Kind, op.Len)
	}
}
