package alnstats

import (
	"bytes"

	"github.com/grailbio/hts/sam"
)

// newSAMRecord builds a record with a SEQ of seqLen bases.
func newSAMRecord(flags sam.Flags, mapq byte, seqLen, tlen int, cigar ...sam.CigarOp) *sam.Record {
	return &sam.Record{
		Name:    "read",
		Flags:   flags,
		MapQ:    mapq,
		Seq:     sam.NewSeq(bytes.Repeat([]byte{'A'}, seqLen)),
		TempLen: tlen,
		Cigar:   cigar,
	}
}

func observeAll(opts Opts, recs ...*sam.Record) *Accumulator {
	acc := NewAccumulator(opts)
	for _, rec := range recs {
		r := FromSAM(rec)
		acc.Observe(&r)
	}
	return acc
}

func count(acc *Accumulator, c Counter) uint64 {
	n, _ := acc.Count(c)
	return n
}

const (
	mapped       = sam.Flags(0)
	reverse      = sam.Reverse
	unmapped     = sam.Unmapped
	properR1     = sam.Paired | sam.ProperPair | sam.Read1
	properR2Rev  = sam.Paired | sam.ProperPair | sam.Read2 | sam.Reverse
	pairedR1Only = sam.Paired | sam.Read1
)

func match(n int) sam.CigarOp { return sam.NewCigarOp(sam.CigarMatch, n) }
