// Package random draws the seeds that root genome generation. Everything
// downstream of a seed is deterministic.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// entropy is swapped in tests.
var entropy io.Reader = crand.Reader

// NewSeed draws a seed from the system CSPRNG. Any int64, negative ones
// included, is a valid seed.
func NewSeed() (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(entropy, buf[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

// ResolveSeed prefers requested and otherwise calls draw (NewSeed when nil).
// drawn is true when the seed did not come from the caller.
func ResolveSeed(requested *int64, draw func() (int64, error)) (seed int64, drawn bool, err error) {
	if requested != nil {
		return *requested, false, nil
	}
	if draw == nil {
		draw = NewSeed
	}
	if seed, err = draw(); err != nil {
		return 0, false, err
	}
	return seed, true, nil
}
