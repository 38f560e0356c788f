// Package seedstream derives independent deterministic random streams from a
// root seed and a decision label.
//
// # Determinism
//
// A stream is a pure function of (seed, label). Two streams with the same seed
// and different labels share no state, so pinning or re-drawing one decision
// never perturbs another. There is no package-level generator.
//
// # Algorithm
//
// The stream state is the first eight bytes of SHA-256(seed || 0x00 || label),
// with the seed encoded big-endian. Values are produced by splitmix64 and
// floats use the top 53 bits, so every output is reproducible on any platform.
package seedstream

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// ErrNoOptions indicates a weighted draw had nothing to choose from.
var ErrNoOptions = errors.New("weighted draw requires at least one positive weight")

// Stream is a deterministic splitmix64 sequence bound to one decision label.
type Stream struct {
	state uint64
}

// New returns the stream for label under seed.
func New(seed int64, label string) *Stream {
	var seedBytes [8]byte
	binary.BigEndian.PutUint64(seedBytes[:], uint64(seed))

	h := sha256.New()
	h.Write(seedBytes[:])
	h.Write([]byte{0})
	h.Write([]byte(label))
	sum := h.Sum(nil)

	return &Stream{state: binary.BigEndian.Uint64(sum[:8])}
}

// Uint64 advances the stream and returns the next value.
func (s *Stream) Uint64() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Float64 returns the next value in [0,1).
func (s *Stream) Float64() float64 {
	return float64(s.Uint64()>>11) / (1 << 53)
}

// Intn returns the next value in [0,n). It panics if n <= 0.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		panic("seedstream: Intn requires n > 0")
	}
	return int(s.Float64() * float64(n))
}

// Float64 returns the first value of the stream for label under seed.
func Float64(seed int64, label string) float64 {
	return New(seed, label).Float64()
}

// Weighted pairs an option with its relative draw weight.
type Weighted[T any] struct {
	Value  T
	Weight int
}

// Pick draws one option from s, proportionally to the option weights.
// Options with a non-positive weight are never drawn.
func Pick[T any](s *Stream, options []Weighted[T]) (T, error) {
	var zero T
	total := 0
	for _, option := range options {
		if option.Weight > 0 {
			total += option.Weight
		}
	}
	if total == 0 {
		return zero, ErrNoOptions
	}

	target := int(s.Float64() * float64(total))
	cumulative := 0
	for _, option := range options {
		if option.Weight <= 0 {
			continue
		}
		cumulative += option.Weight
		if target < cumulative {
			return option.Value, nil
		}
	}
	// Float64 is strictly below 1, so the loop always returns.
	return zero, ErrNoOptions
}

// Choose draws one weighted option from the stream for label under seed.
func Choose[T any](seed int64, label string, options []Weighted[T]) (T, error) {
	value, err := Pick(New(seed, label), options)
	if err != nil {
		return value, fmt.Errorf("choose %s: %w", label, err)
	}
	return value, nil
}

// Uniform draws one option with equal weights from the stream for label under seed.
func Uniform[T any](seed int64, label string, options []T) (T, error) {
	var zero T
	if len(options) == 0 {
		return zero, fmt.Errorf("choose %s: %w", label, ErrNoOptions)
	}
	return options[New(seed, label).Intn(len(options))], nil
}

// Label joins decision path segments into one stream label.
func Label(parts ...string) string {
	return strings.Join(parts, ".")
}

// Attempt returns the label for the n-th retry of a decision.
func Attempt(label string, n int) string {
	return fmt.Sprintf("%s#%d", label, n)
}
