package ring

import (
	"math/big"
	"math/bits"
)

// BRedParams computes the two-word Barrett reduction parameter
// floor(2^128 / q), returned as {hi, lo}. It is the precomputed constant
// consumed by BRed/BRedAdd for a fixed modulus q.
func BRedParams(q uint64) []uint64 {
	r := new(big.Int).Lsh(big.NewInt(1), 128)
	r.Div(r, new(big.Int).SetUint64(q))

	hi := new(big.Int).Rsh(r, 64).Uint64()
	lo := r.Uint64()

	return []uint64{hi, lo}
}

// BRedAdd reduces a 64-bit value modulo q using the precomputed Barrett
// parameters. The input may be any uint64; the result is in [0, q).
func BRedAdd(x, q uint64, u []uint64) uint64 {
	s0, _ := bits.Mul64(x, u[0])
	r := x - s0*q
	if r >= q {
		r -= q
	}
	return r
}

// BRedAddLazy is identical to BRedAdd except it returns a value in
// [0, 2q).
func BRedAddLazy(x, q uint64, u []uint64) uint64 {
	s0, _ := bits.Mul64(x, u[0])
	return x - s0*q
}

// BRed computes x*y mod q via a full 128-bit product followed by Barrett
// reduction. This is the scalar reference multiply described in ModArith
// (spec §4.1): x, y must satisfy x, y < q.
func BRed(x, y, q uint64, u []uint64) uint64 {
	var lhi, mhi, mlo, s0, s1, carry uint64

	ahi, alo := bits.Mul64(x, y)

	lhi, _ = bits.Mul64(alo, u[1])

	mhi, mlo = bits.Mul64(alo, u[0])
	s0, carry = bits.Add64(mlo, lhi, 0)
	s1 = mhi + carry

	mhi, mlo = bits.Mul64(ahi, u[1])
	_, carry = bits.Add64(mlo, s0, 0)
	lhi = mhi + carry

	s0 = ahi*u[0] + s1 + lhi

	r := alo - s0*q
	if r >= q {
		r -= q
	}
	return r
}

// CRed reduces a in [0, 2q) to [0, q).
func CRed(a, q uint64) uint64 {
	if a >= q {
		return a - q
	}
	return a
}

// MulMod returns x*y mod q. x and y need not be pre-reduced below q; BRed
// above requires reduced operands, so MulMod reduces first via BRedAdd.
func MulMod(x, y, q uint64, u []uint64) uint64 {
	return BRed(BRedAdd(x, q, u), BRedAdd(y, q, u), q, u)
}

// PowMod returns base^exp mod q via right-to-left repeated squaring.
func PowMod(base, exp, q uint64) uint64 {
	u := BRedParams(q)
	base = BRedAdd(base, q, u)
	result := uint64(1) % q
	for exp > 0 {
		if exp&1 == 1 {
			result = BRed(result, base, q, u)
		}
		base = BRed(base, base, q, u)
		exp >>= 1
	}
	return result
}

// InvMod returns a^-1 mod q via the extended Euclidean algorithm. It
// panics if gcd(a, q) != 1, which a correct caller never triggers since
// q is prime and 0 < a < q.
func InvMod(a, q uint64) uint64 {
	if q == 1 {
		return 0
	}

	a %= q
	if a == 0 {
		panic(newPrecondition("InvMod", "%d has no inverse mod %d", a, q))
	}

	m0 := int64(q)
	y, x := int64(0), int64(1)
	m := int64(q)
	av := int64(a)

	for av > 1 {
		qq := av / m
		m, av = av%m, m
		y, x = x-qq*y, y
	}

	if x < 0 {
		x += m0
	}
	return uint64(x)
}

// ReverseBits reverses the low-order w bits of x.
func ReverseBits(x uint64, w int) uint64 {
	var rev uint64
	for i := 0; i < w; i++ {
		rev |= ((x >> i) & 1) << (w - 1 - i)
	}
	return rev
}

// IsPrimitiveRoot reports whether r is a primitive d-th root of unity mod
// q: d must be a power of two.
func IsPrimitiveRoot(r, d, q uint64) bool {
	if r == 0 {
		return false
	}
	return PowMod(r, d/2, q) == q-1
}

// GeneratePrimitiveRoot draws random candidates in [0, q), projects each
// into the order-d subgroup by raising it to (q-1)/d, and returns the
// first candidate that lands on a primitive d-th root. It retries up to
// 1000 times before giving up, matching the bound HEXL uses (spec §4.1).
func GeneratePrimitiveRoot(d, q uint64, src Source) (uint64, error) {
	sizeQuotientGroup := (q - 1) / d

	for trial := 0; trial < 1000; trial++ {
		root := src.Uint64N(q)
		root = PowMod(root, sizeQuotientGroup, q)
		if IsPrimitiveRoot(root, d, q) {
			return root, nil
		}
	}
	return 0, newResource("GeneratePrimitiveRoot", "no primitive %d-th root of unity found mod %d after 1000 attempts", d, q)
}

// MinimalPrimitiveRoot returns the numerically smallest primitive d-th
// root of unity mod q. It draws one primitive root via
// GeneratePrimitiveRoot, then walks the odd powers of that root (by
// repeated multiplication by root^2), which are exactly the primitive d-th
// roots, and keeps the smallest (spec §4.1). Because every primitive root
// yields the same set of odd powers, the returned value is the same for
// any src; src only decides which root the search starts from and
// whether GeneratePrimitiveRoot exhausts its 1000 attempts.
func MinimalPrimitiveRoot(d, q uint64, src Source) (uint64, error) {
	root, err := GeneratePrimitiveRoot(d, q, src)
	if err != nil {
		return 0, err
	}

	u := BRedParams(q)
	generatorSq := BRed(root, root, q, u)
	current := root
	min := root

	for i := uint64(0); i < d; i++ {
		if current < min {
			min = current
		}
		current = BRed(current, generatorSq, q, u)
	}

	return min, nil
}

// IsPrime reports whether n is prime using deterministic Miller-Rabin
// with the witness set {2,3,5,7,11,13,17,19,23,29,31,37}, which is exact
// for every n < 2^64 (spec §4.1).
func IsPrime(n uint64) bool {
	witnesses := [...]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

	if n < 2 {
		return false
	}
	for _, a := range witnesses {
		if n == a {
			return true
		}
		if n%a == 0 {
			return false
		}
	}

	// n - 1 = 2^r * d, d odd.
	d := n - 1
	r := 0
	for d&1 == 0 {
		d >>= 1
		r++
	}

	u := BRedParams(n)

outer:
	for _, a := range witnesses {
		x := PowMod(a, d, n)
		if x == 1 || x == n-1 {
			continue
		}
		for i := 0; i < r-1; i++ {
			x = BRed(x, x, n, u)
			if x == n-1 {
				continue outer
			}
		}
		return false
	}
	return true
}

// GeneratePrimes enumerates v = 2^bits + 1 + k*2*ntt_size for
// k = 0, 1, 2, ... until count primes below 2^(bits+1) are found. Every
// value enumerated satisfies v ≡ 1 (mod 2*ntt_size) by construction
// (spec §4.1).
func GeneratePrimes(count, bits, nttSize int) ([]uint64, error) {
	if count <= 0 {
		return nil, newPrecondition("GeneratePrimes", "count must be positive, got %d", count)
	}
	if nttSize <= 0 || nttSize&(nttSize-1) != 0 {
		return nil, newPrecondition("GeneratePrimes", "ntt_size %d must be a power of two", nttSize)
	}

	upper := uint64(1) << uint(bits+1)
	value := (uint64(1) << uint(bits)) + 1
	step := uint64(2 * nttSize)

	primes := make([]uint64, 0, count)
	for value < upper {
		if IsPrime(value) {
			primes = append(primes, value)
			if len(primes) == count {
				return primes, nil
			}
		}
		value += step
	}

	return nil, newResource("GeneratePrimes", "found only %d of %d requested %d-bit primes congruent to 1 mod %d", len(primes), count, bits, 2*nttSize)
}

// NextNTTFriendlyPrime returns the next prime above q congruent to
// 1 mod 2n, where q is itself assumed to already satisfy that
// congruence. This supplements GeneratePrimes with the HEXL/teacher
// "step to the adjacent NTT-friendly prime" idiom (see
// ring/primes.go in the teacher and hexl's prime search).
func NextNTTFriendlyPrime(q uint64, n int) (uint64, error) {
	step := uint64(2 * n)
	next := q + step
	for !IsPrime(next) {
		if next > ^uint64(0)-step {
			return 0, newResource("NextNTTFriendlyPrime", "exhausted uint64 range before finding a prime")
		}
		next += step
	}
	return next, nil
}

// PreviousNTTFriendlyPrime returns the previous prime below q congruent
// to 1 mod 2n.
func PreviousNTTFriendlyPrime(q uint64, n int) (uint64, error) {
	step := uint64(2 * n)
	if q < step {
		return 0, newResource("PreviousNTTFriendlyPrime", "no smaller NTT-friendly prime exists")
	}
	prev := q - step
	for !IsPrime(prev) {
		if prev < step {
			return 0, newResource("PreviousNTTFriendlyPrime", "no smaller NTT-friendly prime exists")
		}
		prev -= step
	}
	return prev, nil
}

// ValidateParameters checks the preconditions shared by every NTTTables
// constructor: n must be a power of two within range, and q must be a
// prime congruent to 1 mod 2n. It is exported so callers can validate a
// candidate (n, q) pair before paying for table construction (HEXL's
// CheckNTTArguments).
func ValidateParameters(n int, q uint64) error {
	if n < 2 || n&(n-1) != 0 {
		return newPrecondition("ValidateParameters", "degree %d is not a power of two", n)
	}
	if n > 1<<MaxDegreeBits {
		return newPrecondition("ValidateParameters", "degree %d exceeds the maximum of 2^%d", n, MaxDegreeBits)
	}
	if q < 2 || q >= 1<<62 {
		return newPrecondition("ValidateParameters", "modulus %d must satisfy 2 <= q < 2^62", q)
	}
	if !IsPrime(q) {
		return newPrecondition("ValidateParameters", "modulus %d is not prime", q)
	}
	nthRoot := uint64(2 * n)
	if (q-1)%nthRoot != 0 {
		return newPrecondition("ValidateParameters", "modulus %d is not congruent to 1 mod 2n=%d", q, nthRoot)
	}
	return nil
}

// MaxDegreeBits is s_max_degree_bits from spec §3: the library accepts
// degrees up to 2^MaxDegreeBits.
const MaxDegreeBits = 17
