package hll

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// MinPrecision is the smallest supported precision. Below 4 bits the
	// register count is too small for the bias constants to be meaningful.
	MinPrecision = 4
	// MaxPrecision is the largest supported precision. Above 16 bits memory
	// grows without a meaningful accuracy gain for realistic use.
	MaxPrecision = 16
)

// Seed is the pair of 64-bit keys that parameterizes a sketch's hash
// function. Sketches built from configs with different seeds produce
// unrelated register patterns for the same input and cannot be merged.
type Seed struct {
	K0 uint64
	K1 uint64
}

// Config represents the configuration for a HyperLogLog sketch. A single
// Config may be shared by several sketches; sketches built from the same
// Config hash identically and can be merged.
type Config struct {
	// Precision is the number of low-order hash bits used to select a
	// register, in [MinPrecision, MaxPrecision].
	Precision int
	// NumRegisters is the number of registers in the sketch, 2^Precision.
	NumRegisters int
	// Alpha is the bias correction factor for Precision.
	Alpha float64
	// Seed holds the hash keys.
	Seed Seed

	indexMask uint64
}

// NewConfig creates a configuration for the given precision, drawing the
// hash seed from the operating system's secure randomness source.
func NewConfig(precision int) (*Config, error) {
	return NewConfigWithRand(precision, rand.Reader)
}

// NewConfigWithRand is like NewConfig but draws the hash seed from r.
// Passing a fixed reader makes sketch construction deterministic, which is
// useful in tests.
func NewConfigWithRand(precision int, r io.Reader) (*Config, error) {
	alpha, err := AlphaForPrecision(precision)
	if err != nil {
		return nil, err
	}

	seed, err := drawSeed(r)
	if err != nil {
		return nil, err
	}

	return newConfig(precision, alpha, seed), nil
}

// NewConfigWithSeed creates a configuration with an explicit hash seed and
// no randomness dependency.
func NewConfigWithSeed(precision int, seed Seed) (*Config, error) {
	alpha, err := AlphaForPrecision(precision)
	if err != nil {
		return nil, err
	}

	return newConfig(precision, alpha, seed), nil
}

func newConfig(precision int, alpha float64, seed Seed) *Config {
	numRegisters := 1 << precision

	return &Config{
		Precision:    precision,
		NumRegisters: numRegisters,
		Alpha:        alpha,
		Seed:         seed,
		indexMask:    uint64(numRegisters - 1),
	}
}

// AlphaForPrecision returns the bias correction factor for the given
// precision. The three smallest precisions use empirically tuned constants
// because the asymptotic formula is inaccurate at very small register
// counts.
func AlphaForPrecision(precision int) (float64, error) {
	if precision < MinPrecision || precision > MaxPrecision {
		return 0, fmt.Errorf("%w, got %d", ErrInvalidPrecision, precision)
	}

	switch precision {
	case 4:
		return 0.673, nil
	case 5:
		return 0.697, nil
	case 6:
		return 0.709, nil
	default:
		return 0.7213 / (1.0 + 1.079/float64(int(1)<<precision)), nil
	}
}

func drawSeed(r io.Reader) (Seed, error) {
	var b [16]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return Seed{}, fmt.Errorf("%w: %v", ErrRandomnessUnavailable, err)
	}

	return Seed{
		K0: binary.LittleEndian.Uint64(b[:8]),
		K1: binary.LittleEndian.Uint64(b[8:]),
	}, nil
}
