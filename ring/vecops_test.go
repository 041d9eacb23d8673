package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubModSeedScenarioS3(t *testing.T) {
	q := uint64(10)
	a := []uint64{1, 2, 3, 4, 5, 6, 7, 8}
	b := []uint64{1, 3, 5, 7, 9, 4, 4, 6}
	want := []uint64{0, 9, 8, 7, 6, 2, 3, 2}

	dst := make([]uint64, len(a))
	SubMod(dst, a, b, q)
	require.Equal(t, want, dst)
}

func TestFMAModScalarSeedScenarioS4(t *testing.T) {
	q := uint64(101)
	a := make([]uint64, 16)
	c := make([]uint64, 16)
	for i := range a {
		a[i] = uint64(i + 1)
		c[i] = uint64(i + 2)
	}
	b := uint64(3)

	want := make([]uint64, len(a))
	for i, v := range a {
		want[i] = (b*v + c[i]) % q
	}

	dst := make([]uint64, len(a))
	FMAModScalar(dst, a, b, c, q)
	require.Equal(t, want, dst)
}

func TestFMAModScalarWithNilAccumulator(t *testing.T) {
	q := uint64(101)
	a := []uint64{1, 2, 3}
	b := uint64(7)

	dst := make([]uint64, len(a))
	FMAModScalar(dst, a, b, nil, q)
	for i, v := range a {
		require.Equal(t, (v*b)%q, dst[i])
	}
}

// TestMultiplyModTailPath exercises a length not a multiple of 8 (spec §8
// property 4), making sure the scalar head and unrolled body produce
// results identical to a fully scalar computation.
func TestMultiplyModTailPath(t *testing.T) {
	q := uint64(1099511627791)
	u := BRedParams(q)
	n := 173

	a := make([]uint64, n)
	b := make([]uint64, n)
	UniformVector(a, q, DefaultSource)
	UniformVector(b, q, DefaultSource)

	want := make([]uint64, n)
	for i := range a {
		want[i] = MulMod(a[i], b[i], q, u)
	}

	dst := make([]uint64, n)
	MultiplyMod(dst, a, b, q)
	require.Equal(t, want, dst)
}

func TestMultiplyModScalarFactorMatchesMultiplyMod(t *testing.T) {
	q := uint64(1099511627791)
	u := BRedParams(q)
	n := 37

	a := make([]uint64, n)
	UniformVector(a, q, DefaultSource)
	y := uint64(123456789)
	factor := NewMultiplyFactor(y, q, 64)

	want := make([]uint64, n)
	for i := range a {
		want[i] = MulMod(a[i], y, q, u)
	}

	dst := make([]uint64, n)
	MultiplyModScalarFactor(dst, a, factor, q)
	require.Equal(t, want, dst)
}

// TestMultiplyModWithFactorMatchesMultiplyMod exercises the real
// BarrettFactor vec-vec overload (spec §4.3 / SPEC_FULL §1.3 & §4):
// MultiplyModWithFactor with a caller-supplied BarrettFactor must agree
// with the internally-computed reference for every element.
func TestMultiplyModWithFactorMatchesMultiplyMod(t *testing.T) {
	q := uint64(1099511627791)
	u := BRedParams(q)
	n := 41

	a := make([]uint64, n)
	b := make([]uint64, n)
	UniformVector(a, q, DefaultSource)
	UniformVector(b, q, DefaultSource)

	want := make([]uint64, n)
	for i := range a {
		want[i] = MulMod(a[i], b[i], q, u)
	}

	bf := NewBarrettFactor(q)
	require.Equal(t, u[0], bf.Hi)
	require.Equal(t, u[1], bf.Lo)

	dst := make([]uint64, n)
	MultiplyModWithFactor(dst, a, b, bf, q)
	require.Equal(t, want, dst)
}

// TestMultiplyMod52BitPath forces a modulus small enough to latch the
// 52-bit kernel and checks MultiplyMod still agrees with the plain
// Barrett reference, regardless of which path the Dispatcher picks on
// the host running the test (spec §4.7).
func TestMultiplyMod52BitPath(t *testing.T) {
	primes, err := GeneratePrimes(1, 40, 1024)
	require.NoError(t, err)
	q := primes[0]
	u := BRedParams(q)
	n := 64

	a := make([]uint64, n)
	b := make([]uint64, n)
	UniformVector(a, q, DefaultSource)
	UniformVector(b, q, DefaultSource)

	want := make([]uint64, n)
	for i := range a {
		want[i] = MulMod(a[i], b[i], q, u)
	}

	dst := make([]uint64, n)
	MultiplyMod(dst, a, b, q)
	require.Equal(t, want, dst)
}

// TestMultiplyMod52Kernel calls the unexported 52-bit kernel directly so
// the test exercises it deterministically instead of depending on the
// host's AVX512-IFMA feature bit (spec §4.7's dispatch is otherwise
// opaque from outside the package).
func TestMultiplyMod52Kernel(t *testing.T) {
	primes, err := GeneratePrimes(1, 40, 1024)
	require.NoError(t, err)
	q := primes[0]
	u := BRedParams(q)
	n := 29

	a := make([]uint64, n)
	b := make([]uint64, n)
	UniformVector(a, q, DefaultSource)
	UniformVector(b, q, DefaultSource)

	want := make([]uint64, n)
	for i := range a {
		want[i] = MulMod(a[i], b[i], q, u)
	}

	dst := make([]uint64, n)
	multiplyMod52(dst, a, b, q)
	require.Equal(t, want, dst)
}

func TestSubModScalar(t *testing.T) {
	q := uint64(10)
	a := []uint64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	want := []uint64{7, 8, 9, 0, 1, 2, 3, 4, 5, 6}

	dst := make([]uint64, len(a))
	SubModScalar(dst, a, 3, q)
	require.Equal(t, want, dst)
}
