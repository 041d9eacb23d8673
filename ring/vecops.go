package ring

import "unsafe"

// SubMod computes dst[i] = a[i] - b[i] mod q element-wise (spec §4.3). dst
// may alias a or b. The leading n%8 elements run through the scalar path
// before the 8-lane loop takes over, so every variant is bit-identical
// regardless of vector length (spec §4.3's dispatch rule, grounded on the
// teacher's ring_vector_ops.go SubVec split between a head remainder loop
// and an unrolled body).
func SubMod(dst, a, b []uint64, q uint64) {
	n := len(a)
	head := n % 8
	for i := 0; i < head; i++ {
		dst[i] = subMod1(a[i], b[i], q)
	}
	for i := head; i < n; i += 8 {
		ax := (*[8]uint64)(unsafe.Pointer(&a[i]))
		bx := (*[8]uint64)(unsafe.Pointer(&b[i]))
		dx := (*[8]uint64)(unsafe.Pointer(&dst[i]))
		for l := 0; l < 8; l++ {
			dx[l] = subMod1(ax[l], bx[l], q)
		}
	}
}

// SubModScalar subtracts the scalar c from every element of a mod q.
func SubModScalar(dst, a []uint64, c, q uint64) {
	n := len(a)
	head := n % 8
	for i := 0; i < head; i++ {
		dst[i] = subMod1(a[i], c, q)
	}
	for i := head; i < n; i += 8 {
		ax := (*[8]uint64)(unsafe.Pointer(&a[i]))
		dx := (*[8]uint64)(unsafe.Pointer(&dst[i]))
		for l := 0; l < 8; l++ {
			dx[l] = subMod1(ax[l], c, q)
		}
	}
}

func subMod1(a, b, q uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a + q - b
}

// FMAModScalar computes dst[i] = a[i]*b + c[i] mod q (spec §4.3's
// fused-multiply-add kernel). c may be nil, treated as all zeros. b is
// preconditioned once into a 64-bit MultiplyFactor and every element runs
// through the lazy Shoup multiply instead of a fresh Barrett reduction
// (spec §4.3: "Uses a MultiplyFactor for b").
func FMAModScalar(dst, a []uint64, b uint64, c []uint64, q uint64) {
	u := BRedParams(q)
	bRed := BRedAdd(b, q, u)
	factor := NewMultiplyFactor(bRed, q, 64)
	n := len(a)
	for i := 0; i < n; i++ {
		aRed := BRedAdd(a[i], q, u)
		v := CRed(MulModLazy64(aRed, factor.Y, factor.Precon, q), q)
		if c != nil {
			v = CRed(v+BRedAdd(c[i], q, u), q)
		}
		dst[i] = v
	}
}

// MultiplyMod computes dst[i] = a[i]*b[i] mod q element-wise (spec §4.3's
// MultiplyMod). It latches the same bit-width the Dispatcher would pick
// for an NTT of this length over this modulus (spec §4.7): the 52-bit
// lazy path runs only when selectKernel picks the simd52 kernel (a
// modulus below the IFMA-safe threshold, a length of at least
// minSimdDegree, and the IFMA feature and build flag both set); everything
// else runs the 64-bit Barrett path. For a caller-supplied Barrett
// parameter see MultiplyModWithFactor; for a fixed repeated multiplier
// see MultiplyModScalarFactor.
func MultiplyMod(dst, a, b []uint64, q uint64) {
	if selectKernel(latchBitShift(q), len(a)) == kernelSimd52 {
		multiplyMod52(dst, a, b, q)
		return
	}
	u := BRedParams(q)
	n := len(a)
	head := n % 8
	for i := 0; i < head; i++ {
		dst[i] = MulMod(a[i], b[i], q, u)
	}
	for i := head; i < n; i += 8 {
		ax := (*[8]uint64)(unsafe.Pointer(&a[i]))
		bx := (*[8]uint64)(unsafe.Pointer(&b[i]))
		dx := (*[8]uint64)(unsafe.Pointer(&dst[i]))
		for l := 0; l < 8; l++ {
			dx[l] = MulMod(ax[l], bx[l], q, u)
		}
	}
}

// multiplyMod52 is MultiplyMod's 52-bit-bounded path. Since b varies per
// element there is no single fixed multiplier to precondition up front;
// instead each element's b[i] is turned into a one-shot MultiplyFactor
// and reduced through MulModLazy52, the same primitive the inverse NTT's
// simd52 kernel uses for its per-layer twiddle (ntt_simd.go). Only ever
// reached when q is within inverseIFMABound (dispatch.go's
// selectKernel/latchBitShift), so the lazy bound holds automatically.
func multiplyMod52(dst, a, b []uint64, q uint64) {
	u := BRedParams(q)
	n := len(a)
	for i := 0; i < n; i++ {
		aRed := BRedAdd(a[i], q, u)
		bRed := BRedAdd(b[i], q, u)
		factor := NewMultiplyFactor(bRed, q, 52)
		dst[i] = CRed(MulModLazy52(aRed, factor.Y, factor.Precon, q), q)
	}
}

// BarrettFactor is a caller-precomputed two-word Barrett reduction
// parameter for a fixed modulus q, equivalent to HEXL's BarrettFactor<64>
// (see _examples/original_source/test/test-poly-mult.cpp's
// `BarrettFactor<64> bf(modulus)` feeding `bf.Hi()`/`bf.Lo()` into
// MultiplyModInPlaceNative). Building one costs a 128-bit division; reuse
// it across many MultiplyModWithFactor calls against the same q instead
// of letting each call recompute BRedParams(q).
type BarrettFactor struct {
	Hi, Lo uint64
}

// NewBarrettFactor computes the BarrettFactor for modulus q.
func NewBarrettFactor(q uint64) BarrettFactor {
	u := BRedParams(q)
	return BarrettFactor{Hi: u[0], Lo: u[1]}
}

// MultiplyModWithFactor computes dst[i] = a[i]*b[i] mod q element-wise
// using a caller-supplied BarrettFactor instead of recomputing
// BRedParams(q) inside the call. This is the real vec-vec
// MultiplyMod/BarrettFactor overload (HEXL's
// EltwiseMultModBarrettFactor / MultiplyModInPlace(op1, op2, n, bf.Hi(),
// bf.Lo(), mod), spec §4.3 / SPEC_FULL §1.3 & §4). a and b need not be
// pre-reduced below q.
func MultiplyModWithFactor(dst, a, b []uint64, bf BarrettFactor, q uint64) {
	u := []uint64{bf.Hi, bf.Lo}
	n := len(a)
	head := n % 8
	for i := 0; i < head; i++ {
		dst[i] = MulMod(a[i], b[i], q, u)
	}
	for i := head; i < n; i += 8 {
		ax := (*[8]uint64)(unsafe.Pointer(&a[i]))
		bx := (*[8]uint64)(unsafe.Pointer(&b[i]))
		dx := (*[8]uint64)(unsafe.Pointer(&dst[i]))
		for l := 0; l < 8; l++ {
			dx[l] = MulMod(ax[l], bx[l], q, u)
		}
	}
}

// MultiplyModScalarFactor computes dst[i] = a[i]*factor.Y mod q using
// factor's precomputed Shoup preconditioner for the fixed multiplier
// factor.Y, instead of a full Barrett reduction per element. This is the
// vec-scalar sibling of MultiplyMod/MultiplyModWithFactor, not HEXL's
// BarrettFactor overload: factor preconditions one multiplier value, not
// the modulus. factor must have been built at bit width 64; a[i] must be
// in [0, 4q).
func MultiplyModScalarFactor(dst, a []uint64, factor MultiplyFactor, q uint64) {
	if factor.BitSize != 64 {
		panic(newPrecondition("MultiplyModScalarFactor", "factor must be built at bit width 64, got %d", factor.BitSize))
	}
	n := len(a)
	head := n % 8
	for i := 0; i < head; i++ {
		dst[i] = CRed(MulModLazy64(a[i], factor.Y, factor.Precon, q), q)
	}
	for i := head; i < n; i += 8 {
		ax := (*[8]uint64)(unsafe.Pointer(&a[i]))
		dx := (*[8]uint64)(unsafe.Pointer(&dst[i]))
		for l := 0; l < 8; l++ {
			dx[l] = CRed(MulModLazy64(ax[l], factor.Y, factor.Precon, q), q)
		}
	}
}
