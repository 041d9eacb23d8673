package ring

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/bits"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// Source supplies the randomness GeneratePrimitiveRoot/MinimalPrimitiveRoot
// draw candidates from. Which root GeneratePrimitiveRoot returns depends
// on the Source; MinimalPrimitiveRoot returns the same root for every
// Source (spec §9's open question on deterministic root selection).
type Source interface {
	// Uint64N returns a uniformly distributed value in [0, n).
	Uint64N(n uint64) uint64
}

// cryptoSource is the package's non-deterministic default Source,
// backed by crypto/rand with rejection sampling to avoid modulo bias.
type cryptoSource struct{}

// DefaultSource is the non-deterministic Source used when a caller does
// not need reproducible root selection.
var DefaultSource Source = cryptoSource{}

func (cryptoSource) Uint64N(n uint64) uint64 {
	return rejectionSample(n, func(b []byte) {
		if _, err := cryptorand.Read(b); err != nil {
			panic(err)
		}
	})
}

// KeyedSource is a deterministic Source seeded from a fixed key, built
// on blake2b's extendable-output function the same way the teacher's
// utils/sampling.KeyedPRNG derives deterministic byte streams for
// reproducible sampling. Two KeyedSource values constructed with the
// same key produce the same sequence of draws, so GeneratePrimitiveRoot
// returns the same root for the same key (spec §9's "an implementation
// may seed the RNG deterministically" remark). Tables built through
// MinimalPrimitiveRoot are the same whichever Source is used.
type KeyedSource struct {
	mu  sync.Mutex
	xof blake2b.XOF
}

// NewKeyedSource builds a KeyedSource from an arbitrary-length key. A
// nil or empty key is accepted but is not secure randomness; it exists
// only to make reproducible test vectors convenient.
func NewKeyedSource(key []byte) (*KeyedSource, error) {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	if err != nil {
		return nil, err
	}
	return &KeyedSource{xof: xof}, nil
}

func (k *KeyedSource) Uint64N(n uint64) uint64 {
	return rejectionSample(n, func(b []byte) {
		k.mu.Lock()
		defer k.mu.Unlock()
		if _, err := k.xof.Read(b); err != nil {
			panic(err)
		}
	})
}

// rejectionSample draws uniformly from [0, n) by rejection sampling
// against the smallest power-of-two mask covering n, using fill to
// produce each 8-byte candidate.
func rejectionSample(n uint64, fill func([]byte)) uint64 {
	if n == 0 {
		return 0
	}
	mask := uint64(1)<<uint(bits.Len64(n-1)) - 1
	buf := make([]byte, 8)
	for {
		fill(buf)
		v := binary.BigEndian.Uint64(buf) & mask
		if v < n {
			return v
		}
	}
}
