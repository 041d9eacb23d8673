package ring

import "math/bits"

// NTTTables holds every precomputation needed to run the forward and
// inverse negacyclic NTT for a fixed (degree, modulus) pair (spec §3,
// §4.4). It is immutable after construction and safe to share between
// concurrent callers, each supplying its own element buffer (spec §5).
type NTTTables struct {
	N int
	Q uint64

	Root    uint64 // primitive 2N-th root of unity
	RootInv uint64 // Root^-1 mod Q

	// R is the bit-reversed power table: R[bitrev(k, log2 N)] = Root^k mod Q.
	R []uint64
	// RInv is R's inverses, reordered into the interleaved layout the
	// inverse butterfly consumes in strictly increasing index order
	// (spec §3: entry 0 is the identity, then blocks of size N/2, N/4, ..., 1).
	RInv []uint64

	// Barrett-preconditioned shadows of R and RInv at both bit widths.
	// Kept duplicated (rather than just the latched width) so the hot
	// loop never branches on bit-width (spec §9 "Precomputed table
	// duplication").
	P64    []uint64
	P52    []uint64
	PInv64 []uint64
	PInv52 []uint64

	// NInv is N^-1 mod Q, and NInvW is N^-1 * RInv[last] mod Q, the two
	// scalars the inverse transform's final layer fuses in (spec §4.6).
	NInv        uint64
	NInvW       uint64
	NInvFactor  MultiplyFactor
	NInvWFactor MultiplyFactor

	// bitShift is the latched table bit-width, 52 or 64 (spec §4.7).
	bitShift int

	bred []uint64 // BRedParams(Q), used by the non-lazy reference path.
}

// NewNTTTables constructs an NTTTables for (n, q), choosing the minimal
// primitive 2n-th root of unity automatically via MinimalPrimitiveRoot
// with the package default randomness source (spec §4.4 step 2).
func NewNTTTables(n int, q uint64) (*NTTTables, error) {
	return NewNTTTablesWithSource(n, q, DefaultSource)
}

// NewNTTTablesWithSource is NewNTTTables with an explicit randomness
// Source for the primitive-root search. The resulting tables do not
// depend on src, since MinimalPrimitiveRoot returns the same root for
// every Source.
func NewNTTTablesWithSource(n int, q uint64, src Source) (*NTTTables, error) {
	if err := ValidateParameters(n, q); err != nil {
		return nil, err
	}
	root, err := MinimalPrimitiveRoot(uint64(2*n), q, src)
	if err != nil {
		return nil, err
	}
	return newNTTTables(n, q, root)
}

// NewNTTTablesWithRoot constructs an NTTTables using a caller-supplied
// root of unity (spec §4.4 constructor "NTT(n, q, ω)"), validating that
// it is indeed a primitive 2n-th root.
func NewNTTTablesWithRoot(n int, q uint64, root uint64) (*NTTTables, error) {
	if err := ValidateParameters(n, q); err != nil {
		return nil, err
	}
	if !IsPrimitiveRoot(root, uint64(2*n), q) {
		return nil, newPrecondition("NewNTTTablesWithRoot", "%d is not a primitive %d-th root of unity mod %d", root, 2*n, q)
	}
	return newNTTTables(n, q, root)
}

func newNTTTables(n int, q uint64, root uint64) (*NTTTables, error) {
	t := &NTTTables{
		N:    n,
		Q:    q,
		Root: root,
		bred: BRedParams(q),
	}
	t.RootInv = InvMod(root, q)
	t.bitShift = latchBitShift(q)
	if t.bitShift == 52 && q >= forwardIFMABound {
		return nil, newOverflow("NewNTTTables", "modulus %d latched to the 52-bit path but exceeds the IFMA-safe bound %d", q, forwardIFMABound)
	}

	logN := bits.Len(uint(n)) - 1

	t.R = make([]uint64, n)
	t.R[0] = 1
	prevIdx := 0
	for k := 1; k < n; k++ {
		idx := int(ReverseBits(uint64(k), logN))
		t.R[idx] = BRed(t.R[prevIdx], root, q, t.bred)
		prevIdx = idx
	}

	invR := make([]uint64, n)
	for k := 0; k < n; k++ {
		invR[k] = InvMod(t.R[k], q)
	}

	t.RInv = make([]uint64, n)
	t.RInv[0] = 1
	pos := 1
	for m := n / 2; m >= 1; m /= 2 {
		for i := 0; i < m; i++ {
			t.RInv[pos] = invR[m+i]
			pos++
		}
	}

	t.P64 = make([]uint64, n)
	t.P52 = make([]uint64, n)
	t.PInv64 = make([]uint64, n)
	t.PInv52 = make([]uint64, n)
	for k := 0; k < n; k++ {
		t.P64[k] = NewMultiplyFactor(t.R[k], q, 64).Precon
		t.P52[k] = NewMultiplyFactor(t.R[k], q, 52).Precon
		t.PInv64[k] = NewMultiplyFactor(t.RInv[k], q, 64).Precon
		t.PInv52[k] = NewMultiplyFactor(t.RInv[k], q, 52).Precon
	}

	t.NInv = InvMod(uint64(n)%q, q)
	t.NInvW = BRed(t.NInv, t.RInv[n-1], q, t.bred)
	t.NInvFactor = NewMultiplyFactor(t.NInv, q, 64)
	t.NInvWFactor = NewMultiplyFactor(t.NInvW, q, 64)

	return t, nil
}

// BitShift reports the table's latched Barrett bit-width (52 or 64).
func (t *NTTTables) BitShift() int { return t.bitShift }
