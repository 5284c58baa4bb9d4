package alnstats

import (
	"github.com/grailbio/alignstats/encoding/bamprovider"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/hts/sam"
)

// Scan drains iter into a new Accumulator and returns its report. iter is
// closed before Scan returns. If iter fails, no report is produced.
func Scan(iter bamprovider.Iterator, opts Opts) (*Report, error) {
	acc := NewAccumulator(opts)
	var n int
	for iter.Scan() {
		rec := iter.Record()
		r := FromSAM(rec)
		acc.Observe(&r)
		sam.PutInFreePool(rec)
		n++
		if n%10000000 == 0 {
			log.Debug.Printf("scanned %d records", n)
		}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	log.Debug.Printf("scanned %d records in total", n)
	return acc.Report(), nil
}

// ScanPath computes the report for the BAM or SAM file at path.
func ScanPath(path string, popts bamprovider.ProviderOpts, opts Opts) (report *Report, err error) {
	provider := bamprovider.NewProvider(path, popts)
	defer func() {
		if e := provider.Close(); e != nil && err == nil {
			err = errors.E(e, "close", path)
			report = nil
		}
	}()
	if report, err = Scan(provider.NewIterator(), opts); err != nil {
		return nil, errors.E(err, "scan", path)
	}
	return report, nil
}
