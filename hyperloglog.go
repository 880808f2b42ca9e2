package hll

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/twmb/murmur3"
)

// EstimatorKind identifies which formula produced an estimate.
type EstimatorKind int

const (
	// EstimatorHyperLogLog is the raw harmonic-mean estimate.
	EstimatorHyperLogLog EstimatorKind = iota
	// EstimatorLinearCounting is the Linear Counting estimate, used while
	// many registers are still empty.
	EstimatorLinearCounting
)

func (k EstimatorKind) String() string {
	switch k {
	case EstimatorHyperLogLog:
		return "HyperLogLog"
	case EstimatorLinearCounting:
		return "LinearCounting"
	default:
		return fmt.Sprintf("EstimatorKind(%d)", int(k))
	}
}

// Below 2.5x the register count the raw estimate is biased and Linear
// Counting takes over whenever empty registers remain.
const smallRangeFactor = 2.5

// Sketch is a HyperLogLog cardinality estimator. It implements the
// CardinalitySketch interface.
//
// A Sketch is not safe for concurrent use.
type Sketch[T comparable] struct {
	config    *Config
	registers []uint8
}

// New creates a sketch with the given precision and a freshly drawn hash
// seed. Sketches that must be mergeable should instead share a single
// Config via NewSketch.
func New[T comparable](precision int) (*Sketch[T], error) {
	config, err := NewConfig(precision)
	if err != nil {
		return nil, err
	}

	return NewSketch[T](config), nil
}

// NewSketch creates a sketch from an existing configuration. All registers
// start at zero.
func NewSketch[T comparable](config *Config) *Sketch[T] {
	return &Sketch[T]{
		config:    config,
		registers: make([]uint8, config.NumRegisters),
	}
}

// Insert adds an item to the sketch. Inserting the same item again never
// changes the sketch's state.
func (s *Sketch[T]) Insert(item T) {
	hash := s.hashItem(item)

	// The low Precision bits select a register; the remaining bits carry
	// the rank. Each register keeps the maximum rank observed for its index.
	j := hash & s.config.indexMask
	w := hash >> uint(s.config.Precision)

	r := rank(w, 64-s.config.Precision)
	if r > s.registers[j] {
		s.registers[j] = r
	}
}

// Estimate returns the estimated number of distinct items inserted so far
// and the formula that produced it. It reads every register on each call.
func (s *Sketch[T]) Estimate() (float64, EstimatorKind) {
	inverseSum := float64(0)
	zeros := 0

	for _, val := range s.registers {
		inverseSum += math.Pow(2.0, -float64(val))
		if val == 0 {
			zeros++
		}
	}

	m := float64(s.config.NumRegisters)
	raw := s.config.Alpha * m * m / inverseSum

	// Small range correction: while empty registers remain, Linear Counting
	// is more accurate than the raw estimate.
	if raw < smallRangeFactor*m && zeros > 0 {
		return linearCounting(s.config.NumRegisters, zeros), EstimatorLinearCounting
	}

	// Large range correction is deliberately not applied: with a 64-bit
	// hash the collisions it compensates for do not materialize.
	return raw, EstimatorHyperLogLog
}

// Cardinality returns the estimate rounded to the nearest integer.
func (s *Sketch[T]) Cardinality() uint64 {
	estimate, _ := s.Estimate()
	return uint64(math.Round(estimate))
}

// TypicalErrorRate returns the expected relative error of the sketch,
// 1.04/sqrt(NumRegisters). It is informational and plays no part in the
// estimate itself.
func (s *Sketch[T]) TypicalErrorRate() float64 {
	return 1.04 / math.Sqrt(float64(s.config.NumRegisters))
}

// Merge combines this sketch with another sketch built from the same
// configuration, taking the pairwise maximum of their registers. Afterwards
// the sketch estimates the cardinality of the union of both input streams.
func (s *Sketch[T]) Merge(other CardinalitySketch[T]) error {
	otherSketch, ok := other.(*Sketch[T])
	if !ok {
		return errors.New("can only merge with another HyperLogLog sketch")
	}

	if s.config.NumRegisters != otherSketch.config.NumRegisters {
		return errors.New("config mismatch: different number of registers")
	}

	// Differently seeded sketches hash the same item to unrelated
	// registers, so their union is meaningless.
	if s.config.Seed != otherSketch.config.Seed {
		return errors.New("config mismatch: different hash seeds")
	}

	for i, val := range otherSketch.registers {
		if val > s.registers[i] {
			s.registers[i] = val
		}
	}

	return nil
}

// Clear resets all registers to zero. The configuration, including the
// hash seed, is retained.
func (s *Sketch[T]) Clear() {
	for i := range s.registers {
		s.registers[i] = 0
	}
}

// Precision returns the number of hash bits used for register selection.
func (s *Sketch[T]) Precision() int {
	return s.config.Precision
}

// NumRegisters returns the number of registers in the sketch.
func (s *Sketch[T]) NumRegisters() int {
	return s.config.NumRegisters
}

// ZeroRegisters returns the number of registers still at zero.
func (s *Sketch[T]) ZeroRegisters() int {
	zeros := 0
	for _, val := range s.registers {
		if val == 0 {
			zeros++
		}
	}

	return zeros
}

// Registers returns a copy of the current register contents.
func (s *Sketch[T]) Registers() []uint8 {
	registers := make([]uint8, len(s.registers))
	copy(registers, s.registers)
	return registers
}

// RegisterHistogram returns how many registers currently hold each rank
// value. The slice is indexed by rank; index 0 counts empty registers.
func (s *Sketch[T]) RegisterHistogram() []uint64 {
	histogram := make([]uint64, 65-s.config.Precision)
	for _, val := range s.registers {
		histogram[val]++
	}

	return histogram
}

// hashItem hashes an item with the sketch's seeded hash function. The
// 128-bit murmur3 variant is the one keyed by a pair of 64-bit seeds; only
// the first word of its output is used.
func (s *Sketch[T]) hashItem(item T) uint64 {
	hasher := murmur3.SeedNew128(s.config.Seed.K0, s.config.Seed.K1)
	fmt.Fprintf(hasher, "%v", item)
	h1, _ := hasher.Sum128()
	return h1
}

// rank returns the 1-indexed position of the leftmost set bit of w within a
// window of the given width. A w that is zero within the window yields the
// maximal rank, width.
func rank(w uint64, width int) uint8 {
	if w == 0 {
		return uint8(width)
	}

	// w comes from a right shift, so leading zeros outside the window are
	// discounted.
	return uint8(bits.LeadingZeros64(w)-(64-width)) + 1
}

// linearCounting estimates small cardinalities from the fraction of
// registers that are still empty.
func linearCounting(m, zeros int) float64 {
	return float64(m) * math.Log(float64(m)/float64(zeros))
}
