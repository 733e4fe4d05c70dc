package linkquality

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveThresholds(t *testing.T) {
	set, err := DeriveThresholds([]int{-60, -80, -70})
	require.NoError(t, err)
	assert.Equal(t, ThresholdSet{-128, -80, -70, -60, 127}, set)
}

func TestDeriveThresholdsRejectsOutOfRange(t *testing.T) {
	for _, v := range []int{-129, 128, 1000} {
		_, err := DeriveThresholds([]int{-70, v})
		assert.ErrorIs(t, err, ErrThresholdOutOfRange, "value %d", v)
	}
}

func TestDeriveThresholdsEmptyInput(t *testing.T) {
	set, err := DeriveThresholds(nil)
	require.NoError(t, err)
	assert.Equal(t, ThresholdSet{-128, 127}, set)
}

func TestDeriveThresholdsIsStrictlyAscendingAndBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 500; run++ {
		raw := make([]int, rng.Intn(10))
		for i := range raw {
			raw[i] = rng.Intn(256) - 128
		}
		set, err := DeriveThresholds(raw)
		require.NoError(t, err)

		require.GreaterOrEqual(t, len(set), 2)
		assert.Equal(t, ThresholdMin, set[0])
		assert.Equal(t, ThresholdMax, set[len(set)-1])
		for i := 1; i < len(set); i++ {
			assert.Less(t, set[i-1], set[i], "raw %v -> %v", raw, set)
		}
	}
}

func TestBracket(t *testing.T) {
	set := ThresholdSet{-128, -80, -70, -60, 127}

	tests := []struct {
		rssi   int
		lo, hi int8
		ok     bool
	}{
		{-75, -80, -70, true},
		{-80, -80, -70, true},
		{-90, -128, -80, true},
		{-60, -60, 127, true},
		{-30, -60, 127, true},
		{127, 0, 0, false},
	}
	for _, tt := range tests {
		lo, hi, ok := set.Bracket(tt.rssi)
		assert.Equal(t, tt.ok, ok, "rssi %d", tt.rssi)
		assert.Equal(t, tt.lo, lo, "rssi %d", tt.rssi)
		assert.Equal(t, tt.hi, hi, "rssi %d", tt.rssi)
	}
}

func TestSignalLevel(t *testing.T) {
	assert.Equal(t, 0, SignalLevel(-110, 5))
	assert.Equal(t, 0, SignalLevel(-100, 5))
	assert.Equal(t, 4, SignalLevel(-55, 5))
	assert.Equal(t, 4, SignalLevel(-20, 5))
	assert.Equal(t, 2, SignalLevel(-75, 5))
	assert.Equal(t, 0, SignalLevel(-60, 1))
}
