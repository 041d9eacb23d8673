package ring

// forwardScalar implements the Harvey decimation-in-time butterfly (spec
// §4.5) over the scalar reference path, always using the table's 64-bit
// preconditioned shadow regardless of the latched bit_shift (the scalar
// path gains nothing from the narrower width).
func forwardScalar(e []uint64, t *NTTTables, inputModFactor, outputModFactor int) {
	n := t.N
	q := t.Q
	twoQ := 2 * q
	fourQ := 4 * q

	tt := n / 2
	for m := 1; m < n; m <<= 1 {
		j1 := 0
		for i := 0; i < m; i++ {
			w := t.R[m+i]
			wPre := t.P64[m+i]
			j2 := j1 + tt
			for j := j1; j < j2; j++ {
				x := e[j]
				y := e[j+tt]
				if x >= twoQ {
					x -= twoQ
				}
				tVal := MulModLazy64(y, w, wPre, q)
				e[j] = x + tVal
				e[j+tt] = x + twoQ - tVal
			}
			j1 += 2 * tt
		}
		tt /= 2
	}

	if outputModFactor == 1 {
		for i := 0; i < n; i++ {
			if e[i] >= twoQ {
				e[i] -= twoQ
			}
			if e[i] >= q {
				e[i] -= q
			}
		}
	}
	_ = inputModFactor
	_ = fourQ
}

// inverseScalar implements the Gentleman-Sande inverse butterfly with the
// 1/n scaling fused into the final layer (spec §4.6).
func inverseScalar(e []uint64, t *NTTTables, inputModFactor, outputModFactor int) {
	n := t.N
	q := t.Q
	twoQ := 2 * q

	tt := 1
	rootIdx := 1
	for m := n / 2; m >= 2; m >>= 1 {
		j1 := 0
		for i := 0; i < m; i++ {
			w := t.RInv[rootIdx]
			wPre := t.PInv64[rootIdx]
			rootIdx++
			j2 := j1 + tt
			for j := j1; j < j2; j++ {
				x := e[j]
				y := e[j+tt]
				tx := x + y
				if tx >= twoQ {
					tx -= twoQ
				}
				ty := x + twoQ - y
				e[j] = tx
				e[j+tt] = MulModLazy64(ty, w, wPre, q)
			}
			j1 += 2 * tt
		}
		tt <<= 1
	}

	half := n / 2
	for j := 0; j < half; j++ {
		x := e[j]
		y := e[j+half]
		tx := x + y
		if tx >= twoQ {
			tx -= twoQ
		}
		ty := x + twoQ - y
		e[j] = MulModLazy64(tx, t.NInvFactor.Y, t.NInvFactor.Precon, q)
		e[j+half] = MulModLazy64(ty, t.NInvWFactor.Y, t.NInvWFactor.Precon, q)
	}

	if outputModFactor == 1 {
		for i := 0; i < n; i++ {
			if e[i] >= q {
				e[i] -= q
			}
		}
	}
	_ = inputModFactor
}

// referenceForward is the non-lazy forward transform used by tests
// (spec §4.5's last paragraph / HEXL's ReferenceForwardTransformToBitReverse):
// every butterfly fully reduces mod q via BRed/CRed instead of carrying a
// lazy [0,4q) representative.
func referenceForward(e []uint64, t *NTTTables) {
	n := t.N
	q := t.Q
	u := t.bred

	tt := n / 2
	for m := 1; m < n; m <<= 1 {
		j1 := 0
		for i := 0; i < m; i++ {
			w := t.R[m+i]
			j2 := j1 + tt
			for j := j1; j < j2; j++ {
				x := e[j]
				y := BRed(e[j+tt], w, q, u)
				e[j] = CRed(x+y, q)
				e[j+tt] = CRed(x+q-y, q)
			}
			j1 += 2 * tt
		}
		tt /= 2
	}
}

// referenceInverse is the non-lazy inverse transform used by tests.
func referenceInverse(e []uint64, t *NTTTables) {
	n := t.N
	q := t.Q
	u := t.bred

	tt := 1
	rootIdx := 1
	for m := n / 2; m >= 2; m >>= 1 {
		j1 := 0
		for i := 0; i < m; i++ {
			w := t.RInv[rootIdx]
			rootIdx++
			j2 := j1 + tt
			for j := j1; j < j2; j++ {
				x := e[j]
				y := e[j+tt]
				e[j] = CRed(x+y, q)
				e[j+tt] = BRed(CRed(x+q-y, q), w, q, u)
			}
			j1 += 2 * tt
		}
		tt <<= 1
	}

	half := n / 2
	w := t.RInv[n-1]
	invN := t.NInv
	invNW := BRed(invN, w, q, u)
	for j := 0; j < half; j++ {
		x := e[j]
		y := e[j+half]
		sum := CRed(x+y, q)
		diff := CRed(x+q-y, q)
		e[j] = BRed(sum, invN, q, u)
		e[j+half] = BRed(diff, invNW, q, u)
	}
}
