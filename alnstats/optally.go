package alnstats

// OpTally sums edit-operation lengths per kind. A kind is present once any
// operation of that kind has been added, even with length zero.
type OpTally struct {
	sums    [numOpKinds]uint64
	present [numOpKinds]bool
}

// Add adds n bases of kind k. OpOther and unknown kinds are ignored.
func (t *OpTally) Add(k OpKind, n int) {
	if int(k) >= numOpKinds {
		return
	}
	t.sums[k] += uint64(n)
	t.present[k] = true
}

// Sum returns the total length for k. ok is false if k was never added.
func (t *OpTally) Sum(k OpKind) (sum uint64, ok bool) {
	if int(k) >= numOpKinds {
		return 0, false
	}
	return t.sums[k], t.present[k]
}
