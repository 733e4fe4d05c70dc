package linkquality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reasons = []SuspendReason{SuspendDHCP, SuspendHighPerf, SuspendScreen}

// Enabled iff no bit is set and the user allows it, over all 16 combinations.
func TestSuspendArbiterTruthTable(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		for _, pref := range []bool{false, true} {
			a := NewSuspendArbiter(pref)
			for i, r := range reasons {
				require.NoError(t, a.Set(r, mask&(1<<i) != 0))
			}
			assert.Equal(t, mask == 0 && pref, a.Enabled(), "mask %03b pref %v", mask, pref)
			assert.Equal(t, SuspendReason(mask), a.Mask())
		}
	}
}

func TestSuspendArbiterBitsAreIndependent(t *testing.T) {
	a := NewSuspendArbiter(true)
	require.NoError(t, a.Inhibit(SuspendDHCP))
	require.NoError(t, a.Inhibit(SuspendScreen))

	require.NoError(t, a.Allow(SuspendDHCP))
	assert.Equal(t, SuspendScreen, a.Mask())
	assert.False(t, a.Enabled())

	require.NoError(t, a.Allow(SuspendHighPerf))
	assert.Equal(t, SuspendScreen, a.Mask(), "clearing an unset bit changes nothing")

	require.NoError(t, a.Allow(SuspendScreen))
	assert.True(t, a.Enabled())

	a.SetUserPreference(false)
	assert.False(t, a.Enabled())
}

func TestSuspendArbiterRejectsCompositeReasons(t *testing.T) {
	a := NewSuspendArbiter(true)
	assert.ErrorIs(t, a.Inhibit(SuspendDHCP|SuspendScreen), ErrInvalidSuspendReason)
	assert.ErrorIs(t, a.Allow(0), ErrInvalidSuspendReason)
	assert.Equal(t, SuspendReason(0), a.Mask())
}

func TestSuspendReasonString(t *testing.T) {
	assert.Equal(t, "NONE", SuspendReason(0).String())
	assert.Equal(t, "DHCP|SCREEN", (SuspendDHCP | SuspendScreen).String())
}
