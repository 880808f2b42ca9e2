package hll

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("Valid Precisions", func(t *testing.T) {
		for precision := MinPrecision; precision <= MaxPrecision; precision++ {
			config, err := NewConfig(precision)
			require.NoError(t, err, "precision %d", precision)
			require.Equal(t, precision, config.Precision)
			require.Equal(t, 1<<precision, config.NumRegisters)
			require.Equal(t, uint64(config.NumRegisters-1), config.indexMask)

			alpha, err := AlphaForPrecision(precision)
			require.NoError(t, err)
			require.Equal(t, alpha, config.Alpha)
		}
	})

	t.Run("Invalid Precisions", func(t *testing.T) {
		for _, precision := range []int{-1, 0, 3, 17, 64} {
			_, err := NewConfig(precision)
			require.ErrorIs(t, err, ErrInvalidPrecision, "precision %d", precision)
		}
	})

	t.Run("Distinct Seeds Per Config", func(t *testing.T) {
		first, err := NewConfig(10)
		require.NoError(t, err)

		second, err := NewConfig(10)
		require.NoError(t, err)

		require.NotEqual(t, first.Seed, second.Seed)
	})
}

func TestNewConfigWithRand(t *testing.T) {
	t.Run("Deterministic Seed", func(t *testing.T) {
		source := bytes.NewReader([]byte{
			0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
			0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
		})

		config, err := NewConfigWithRand(8, source)
		require.NoError(t, err)
		require.Equal(t, Seed{K0: 0x0807060504030201, K1: 0x100f0e0d0c0b0a09}, config.Seed)
	})

	t.Run("Unavailable Source", func(t *testing.T) {
		_, err := NewConfigWithRand(8, iotest.ErrReader(errors.New("entropy pool closed")))
		require.ErrorIs(t, err, ErrRandomnessUnavailable)
	})

	t.Run("Exhausted Source", func(t *testing.T) {
		_, err := NewConfigWithRand(8, bytes.NewReader([]byte{0x01, 0x02}))
		require.ErrorIs(t, err, ErrRandomnessUnavailable)
	})

	t.Run("Validation Precedes Randomness", func(t *testing.T) {
		_, err := NewConfigWithRand(3, iotest.ErrReader(errors.New("entropy pool closed")))
		require.ErrorIs(t, err, ErrInvalidPrecision)
	})
}

func TestNewConfigWithSeed(t *testing.T) {
	seed := Seed{K0: 42, K1: 43}

	config, err := NewConfigWithSeed(12, seed)
	require.NoError(t, err)
	require.Equal(t, seed, config.Seed)
	require.Equal(t, 4096, config.NumRegisters)

	_, err = NewConfigWithSeed(17, seed)
	require.ErrorIs(t, err, ErrInvalidPrecision)
}

func TestAlphaForPrecision(t *testing.T) {
	tests := []struct {
		precision int
		want      float64
	}{
		{precision: 4, want: 0.673},
		{precision: 5, want: 0.697},
		{precision: 6, want: 0.709},
		{precision: 7, want: 0.7213 / (1.0 + 1.079/128.0)},
		{precision: 12, want: 0.7213 / (1.0 + 1.079/4096.0)},
		{precision: 16, want: 0.7213 / (1.0 + 1.079/65536.0)},
	}

	for _, tt := range tests {
		alpha, err := AlphaForPrecision(tt.precision)
		require.NoError(t, err, "precision %d", tt.precision)

		// The computed cases fold the expectation as an untyped constant,
		// which can differ from the runtime float64 result in the last ulp.
		require.InEpsilon(t, tt.want, alpha, 1e-15, "precision %d", tt.precision)
	}

	for _, precision := range []int{3, 17} {
		_, err := AlphaForPrecision(precision)
		require.ErrorIs(t, err, ErrInvalidPrecision, "precision %d", precision)
	}
}
