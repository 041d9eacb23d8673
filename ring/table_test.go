package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewNTTTablesRootIsPrimitive(t *testing.T) {
	n := 8
	q := uint64(769) // 769-1 = 768 = 16*48, so q is congruent to 1 mod 2n.

	tbl, err := NewNTTTables(n, q)
	require.NoError(t, err)
	require.True(t, IsPrimitiveRoot(tbl.Root, uint64(2*n), q))
	require.Equal(t, uint64(1), BRedAdd(tbl.Root*tbl.RootInv, q, tbl.bred))
}

func TestNTTTablesRejectsBadParameters(t *testing.T) {
	_, err := NewNTTTables(100, 769) // not power of two
	require.Error(t, err)

	_, err = NewNTTTables(8, 1033) // not congruent to 1 mod 2n
	require.Error(t, err)
}

func TestNewNTTTablesWithRootRejectsNonPrimitiveRoot(t *testing.T) {
	_, err := NewNTTTablesWithRoot(8, 769, 2)
	require.Error(t, err)
	var precondErr *PreconditionError
	require.ErrorAs(t, err, &precondErr)
}

func TestRInvLastEntryMatchesFinalLayerRoot(t *testing.T) {
	for _, n := range []int{2, 4, 16, 256} {
		q, err := NextNTTFriendlyPrime(1, n)
		require.NoError(t, err)
		tbl, err := NewNTTTables(n, q)
		require.NoError(t, err)

		invN := InvMod(uint64(n)%q, q)
		want := BRed(invN, tbl.RInv[n-1], q, tbl.bred)
		require.Equal(t, want, tbl.NInvW)
	}
}

func TestDeterministicTablesWithKeyedSource(t *testing.T) {
	src1, err := NewKeyedSource([]byte("fixed-test-key"))
	require.NoError(t, err)
	src2, err := NewKeyedSource([]byte("fixed-test-key"))
	require.NoError(t, err)

	t1, err := NewNTTTablesWithSource(8, 769, src1)
	require.NoError(t, err)
	t2, err := NewNTTTablesWithSource(8, 769, src2)
	require.NoError(t, err)

	require.Equal(t, t1.Root, t2.Root)
}
