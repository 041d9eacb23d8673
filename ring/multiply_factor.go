package ring

import (
	"math/big"
	"math/bits"
)

// MultiplyFactor precomputes the Barrett-style preconditioner for a fixed
// multiplier Y at bit-width B (52 or 64), so the hot butterfly loop can
// replace a full 128-bit Barrett reduction with a single 64x64->hi
// multiply plus a low multiply and a subtract (spec §4.2). It is
// immutable once constructed.
type MultiplyFactor struct {
	Y       uint64
	Precon  uint64 // floor(Y * 2^B / q)
	BitSize int    // 52 or 64
}

// NewMultiplyFactor builds a MultiplyFactor for multiplier y, modulus q,
// at bit width bitSize (52 or 64). y must be in [0, q).
func NewMultiplyFactor(y, q uint64, bitSize int) MultiplyFactor {
	var precon uint64
	switch bitSize {
	case 64:
		r := new(big.Int).Lsh(new(big.Int).SetUint64(y), 64)
		r.Div(r, new(big.Int).SetUint64(q))
		precon = r.Uint64()
	case 52:
		r := new(big.Int).Lsh(new(big.Int).SetUint64(y), 52)
		r.Div(r, new(big.Int).SetUint64(q))
		precon = r.Uint64()
	default:
		panic(newPrecondition("NewMultiplyFactor", "bit width must be 52 or 64, got %d", bitSize))
	}
	return MultiplyFactor{Y: y, Precon: precon, BitSize: bitSize}
}

// MulModLazy64 computes the Harvey/Shoup lazy product of y and w, given
// w's 64-bit MultiplyFactor preconditioner wPrecon = floor(w*2^64/q).
// Result lies in [0, 2q) for y < 4q (spec §4.1's
// MultiplyUIntModLazy<64>).
func MulModLazy64(y, w, wPrecon, q uint64) uint64 {
	hi, _ := bits.Mul64(y, wPrecon)
	return y*w - hi*q
}

// MulModLazy52 is the 52-bit-bounded analogue of MulModLazy64: y, w, and
// q must fit within ifma52Bound (spec §4.7's latched bit_shift=52 path).
// The high-52-bits-of-the-104-bit-product step that a real AVX512-IFMA
// instruction performs in one cycle is computed here from the exact
// 128-bit product bits.Mul64 returns, recomposed by shifting (see
// DESIGN.md: a portable, numerically identical stand-in for the
// hardware instruction, since this exercise never invokes an assembler
// to validate hand-written IFMA asm).
func MulModLazy52(y, w, wPrecon, q uint64) uint64 {
	hi, lo := bits.Mul64(y, wPrecon)
	qEst := (hi << 12) | (lo >> 52)
	return y*w - qEst*q
}

// ifma52Bound is the compile-time constant tracking the intermediate
// product overflow threshold for the 52-bit path: a modulus must stay a
// few bits below 2^50 so that y*wPrecon (both < q * 2^2 in the worst
// lazy-reduction case) never overflows the 104-bit product the
// hypothetical IFMA instruction produces (spec §4.5/§4.7).
const ifma52Bound = 1 << 49

// forwardIFMABound and inverseIFMABound are the distinct 52-bit safe
// thresholds for the forward and inverse transforms (spec §4.7 notes the
// inverse path's intermediate range is tighter, since its butterfly
// carries an extra add before the lazy multiply).
const (
	forwardIFMABound = ifma52Bound
	inverseIFMABound = ifma52Bound >> 1
)
