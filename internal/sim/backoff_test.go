package sim_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stactl/stactl-go/internal/sim"
)

func TestBackoffSequence(t *testing.T) {
	b := sim.NewBackoff(sim.BackoffConfig{Seed: 1})
	want := []time.Duration{1, 2, 4, 8, 16, 32, 60, 60}
	for i, w := range want {
		assert.Equal(t, w*time.Second, b.Next(), "step %d", i)
	}
	assert.Equal(t, len(want), b.Attempts())

	b.Reset()
	assert.Equal(t, 0, b.Attempts())
	assert.Equal(t, sim.InitialBackoff, b.Current())
}

func TestBackoffJitterBounds(t *testing.T) {
	b := sim.NewBackoff(sim.BackoffConfig{Initial: 10 * time.Second, Max: 10 * time.Second, Jitter: sim.JitterFactor, Seed: 3})
	for range 100 {
		d := b.Next()
		assert.GreaterOrEqual(t, d, 10*time.Second)
		assert.LessOrEqual(t, d, 12500*time.Millisecond)
	}
}

func TestBackoffDefaults(t *testing.T) {
	b := sim.NewBackoff(sim.BackoffConfig{Multiplier: 0.5, Jitter: -1})
	assert.Equal(t, sim.InitialBackoff, b.Next())
	assert.Equal(t, 2*sim.InitialBackoff, b.Next())
}
