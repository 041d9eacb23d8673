package ring

import "unsafe"

// forwardSimd64 is the 8-lane-unrolled Harvey forward butterfly (spec
// §4.5 "SIMD variants"), ported from the teacher's ntt.go butterfly
// loops (ntttStandardLazy's *[8]uint64 unsafe-pointer blocks) but driven
// by the Barrett lazy multiply instead of the teacher's Montgomery
// MRedLazy. Groups of width 8 or more are processed 8 lanes at a time;
// groups narrower than 8 (the last few layers, where t has halved down
// to 4, 2, or 1) fall back to a per-element loop that is bit-identical
// to forwardScalar, since there is no full lane to vectorize.
func forwardSimd64(e []uint64, t *NTTTables, inputModFactor, outputModFactor int) {
	forwardSimdGeneric(e, t, t.P64, MulModLazy64)
	finalizeForward(e, t.Q, outputModFactor)
	_ = inputModFactor
}

// forwardSimd52 is the IFMA-bound-width analogue of forwardSimd64, using
// the table's 52-bit preconditioned shadow and MulModLazy52. It is only
// ever dispatched when NTTTables latched bit_shift=52 at construction,
// which guarantees q is within ifma52Bound (spec §4.7).
func forwardSimd52(e []uint64, t *NTTTables, inputModFactor, outputModFactor int) {
	forwardSimdGeneric(e, t, t.P52, MulModLazy52)
	finalizeForward(e, t.Q, outputModFactor)
	_ = inputModFactor
}

func forwardSimdGeneric(e []uint64, t *NTTTables, precon []uint64, mulLazy func(y, w, wPre, q uint64) uint64) {
	n := t.N
	q := t.Q
	twoQ := 2 * q

	tt := n / 2
	for m := 1; m < n; m <<= 1 {
		j1 := 0
		for i := 0; i < m; i++ {
			w := t.R[m+i]
			wPre := precon[m+i]
			j2 := j1 + tt

			j := j1
			for ; j+8 <= j2; j += 8 {
				x := (*[8]uint64)(unsafe.Pointer(&e[j]))
				y := (*[8]uint64)(unsafe.Pointer(&e[j+tt]))
				for l := 0; l < 8; l++ {
					xv := x[l]
					if xv >= twoQ {
						xv -= twoQ
					}
					tv := mulLazy(y[l], w, wPre, q)
					x[l] = xv + tv
					y[l] = xv + twoQ - tv
				}
			}
			for ; j < j2; j++ {
				xv := e[j]
				if xv >= twoQ {
					xv -= twoQ
				}
				tv := mulLazy(e[j+tt], w, wPre, q)
				e[j] = xv + tv
				e[j+tt] = xv + twoQ - tv
			}
			j1 += 2 * tt
		}
		tt /= 2
	}
}

func finalizeForward(e []uint64, q uint64, outputModFactor int) {
	if outputModFactor != 1 {
		return
	}
	twoQ := 2 * q
	n := len(e)
	i := 0
	for ; i+8 <= n; i += 8 {
		x := (*[8]uint64)(unsafe.Pointer(&e[i]))
		for l := 0; l < 8; l++ {
			if x[l] >= twoQ {
				x[l] -= twoQ
			}
			if x[l] >= q {
				x[l] -= q
			}
		}
	}
	for ; i < n; i++ {
		if e[i] >= twoQ {
			e[i] -= twoQ
		}
		if e[i] >= q {
			e[i] -= q
		}
	}
}

// inverseSimd64 is the 8-lane-unrolled Gentleman-Sande inverse butterfly
// with the fused 1/n scaling (spec §4.6), mirroring forwardSimd64's
// lane-width strategy.
func inverseSimd64(e []uint64, t *NTTTables, inputModFactor, outputModFactor int) {
	inverseSimdGeneric(e, t, t.PInv64, t.NInvFactor, t.NInvWFactor, MulModLazy64)
	finalizeInverse(e, t.Q, outputModFactor)
	_ = inputModFactor
}

func inverseSimd52(e []uint64, t *NTTTables, inputModFactor, outputModFactor int) {
	nInvF := NewMultiplyFactor(t.NInv, t.Q, 52)
	nInvWF := NewMultiplyFactor(t.NInvW, t.Q, 52)
	inverseSimdGeneric(e, t, t.PInv52, nInvF, nInvWF, MulModLazy52)
	finalizeInverse(e, t.Q, outputModFactor)
	_ = inputModFactor
}

func inverseSimdGeneric(e []uint64, t *NTTTables, precon []uint64, nInvF, nInvWF MultiplyFactor, mulLazy func(y, w, wPre, q uint64) uint64) {
	n := t.N
	q := t.Q
	twoQ := 2 * q

	tt := 1
	rootIdx := 1
	for m := n / 2; m >= 2; m >>= 1 {
		j1 := 0
		for i := 0; i < m; i++ {
			w := t.RInv[rootIdx]
			wPre := precon[rootIdx]
			rootIdx++
			j2 := j1 + tt

			j := j1
			for ; j+8 <= j2; j += 8 {
				x := (*[8]uint64)(unsafe.Pointer(&e[j]))
				y := (*[8]uint64)(unsafe.Pointer(&e[j+tt]))
				for l := 0; l < 8; l++ {
					xv := x[l]
					yv := y[l]
					tx := xv + yv
					if tx >= twoQ {
						tx -= twoQ
					}
					ty := xv + twoQ - yv
					x[l] = tx
					y[l] = mulLazy(ty, w, wPre, q)
				}
			}
			for ; j < j2; j++ {
				xv := e[j]
				yv := e[j+tt]
				tx := xv + yv
				if tx >= twoQ {
					tx -= twoQ
				}
				ty := xv + twoQ - yv
				e[j] = tx
				e[j+tt] = mulLazy(ty, w, wPre, q)
			}
			j1 += 2 * tt
		}
		tt <<= 1
	}

	half := n / 2
	i := 0
	for ; i+8 <= half; i += 8 {
		x := (*[8]uint64)(unsafe.Pointer(&e[i]))
		y := (*[8]uint64)(unsafe.Pointer(&e[i+half]))
		for l := 0; l < 8; l++ {
			xv := x[l]
			yv := y[l]
			tx := xv + yv
			if tx >= twoQ {
				tx -= twoQ
			}
			ty := xv + twoQ - yv
			x[l] = mulLazy(tx, nInvF.Y, nInvF.Precon, q)
			y[l] = mulLazy(ty, nInvWF.Y, nInvWF.Precon, q)
		}
	}
	for ; i < half; i++ {
		xv := e[i]
		yv := e[i+half]
		tx := xv + yv
		if tx >= twoQ {
			tx -= twoQ
		}
		ty := xv + twoQ - yv
		e[i] = mulLazy(tx, nInvF.Y, nInvF.Precon, q)
		e[i+half] = mulLazy(ty, nInvWF.Y, nInvWF.Precon, q)
	}
}

func finalizeInverse(e []uint64, q uint64, outputModFactor int) {
	if outputModFactor != 1 {
		return
	}
	n := len(e)
	i := 0
	for ; i+8 <= n; i += 8 {
		x := (*[8]uint64)(unsafe.Pointer(&e[i]))
		for l := 0; l < 8; l++ {
			if x[l] >= q {
				x[l] -= q
			}
		}
	}
	for ; i < n; i++ {
		if e[i] >= q {
			e[i] -= q
		}
	}
}
