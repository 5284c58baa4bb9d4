package alnstats

import (
	"github.com/grailbio/hts/sam"
)

// OpKind is the kind of a CIGAR edit operation, as far as the statistics
// care about it.
type OpKind uint8

const (
	// OpMatch is an alignment match (CIGAR M).
	OpMatch OpKind = iota
	// OpInsertion is an insertion to the reference (CIGAR I).
	OpInsertion
	// OpDeletion is a deletion from the reference (CIGAR D).
	OpDeletion
	// OpSoftClip is a soft clip (CIGAR S).
	OpSoftClip
	// OpHardClip is a hard clip (CIGAR H).
	OpHardClip
	// OpOther covers N, P, = and X. It is never tallied.
	OpOther

	// numOpKinds counts the tallied kinds, OpMatch through OpHardClip.
	numOpKinds = int(OpOther)
)

var opKindNames = [...]string{"M", "I", "D", "S", "H", "other"}

// String returns the CIGAR letter of the kind, or "other".
func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return opKindNames[OpOther]
}

// EditOp is one run-length encoded edit operation.
type EditOp struct {
	Kind OpKind
	Len  int
}

// Record is the decoded view of one alignment consumed by the Accumulator.
type Record struct {
	// Flags is the SAM FLAG field.
	Flags sam.Flags
	// MapQ is meaningful only when the record is mapped. Use MappingQuality.
	MapQ byte
	// QueryLength is the length of SEQ, or 0 if unknown.
	QueryLength int
	// TemplateLength is TLEN. Meaningful only for proper pairs.
	TemplateLength int
	// Ops is nil for unmapped records.
	Ops []EditOp
}

func (r *Record) IsPaired() bool        { return r.Flags&sam.Paired != 0 }
func (r *Record) IsProperPair() bool    { return r.Flags&sam.ProperPair != 0 }
func (r *Record) IsUnmapped() bool      { return r.Flags&sam.Unmapped != 0 }
func (r *Record) IsReverse() bool       { return r.Flags&sam.Reverse != 0 }
func (r *Record) IsRead1() bool         { return r.Flags&sam.Read1 != 0 }
func (r *Record) IsRead2() bool         { return r.Flags&sam.Read2 != 0 }
func (r *Record) IsSecondary() bool     { return r.Flags&sam.Secondary != 0 }
func (r *Record) IsQCFail() bool        { return r.Flags&sam.QCFail != 0 }
func (r *Record) IsDuplicate() bool     { return r.Flags&sam.Duplicate != 0 }
func (r *Record) IsSupplementary() bool { return r.Flags&sam.Supplementary != 0 }

// MappingQuality returns the mapq of a mapped record. ok is false for an
// unmapped record, whose MapQ carries no meaning.
func (r *Record) MappingQuality() (q int, ok bool) {
	if r.IsUnmapped() {
		return 0, false
	}
	return int(r.MapQ), true
}

func opKindFromCigar(t sam.CigarOpType) OpKind {
	switch t {
	case sam.CigarMatch:
		return OpMatch
	case sam.CigarInsertion:
		return OpInsertion
	case sam.CigarDeletion:
		return OpDeletion
	case sam.CigarSoftClipped:
		return OpSoftClip
	case sam.CigarHardClipped:
		return OpHardClip
	default:
		return OpOther
	}
}

// FromSAM converts a decoded SAM/BAM record. The result does not alias r, so
// r may be returned to the free pool afterwards.
func FromSAM(r *sam.Record) Record {
	rec := Record{
		Flags:          r.Flags,
		MapQ:           r.MapQ,
		QueryLength:    r.Seq.Length,
		TemplateLength: r.TempLen,
	}
	if rec.IsUnmapped() || len(r.Cigar) == 0 {
		return rec
	}
	rec.Ops = make([]EditOp, len(r.Cigar))
	for i, co := range r.Cigar {
		rec.Ops[i] = EditOp{Kind: opKindFromCigar(co.Type()), Len: co.Len()}
	}
	return rec
}
