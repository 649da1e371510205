// Package random provides seeding helpers for the gauges' random sources.
//
// Seeds are drawn from crypto/rand; the generators built from them are
// deterministic PCG streams, so a widget can be rebuilt from its snapshot.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// New returns a deterministic generator for the given seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// SeedFunc produces seeds. Hosts inject a fixed one in tests.
type SeedFunc func() (int64, error)

// Fixed returns a SeedFunc that always yields seed.
func Fixed(seed int64) SeedFunc {
	return func() (int64, error) { return seed, nil }
}
