package attempt

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	started []Attempt
	ended   []Outcome
}

func (r *recorder) AttemptStarted(a Attempt) { r.started = append(r.started, a) }
func (r *recorder) AttemptEnded(o Outcome)   { r.ended = append(r.ended, o) }

func fixedClock() func() time.Time {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func TestBeginEnd(t *testing.T) {
	rec := &recorder{}
	guarded := 0
	released := 0
	tr := NewTracker(Config{
		Reporters: []Reporter{rec},
		Guard:     func(Attempt) { guarded++ },
		Release:   func(Outcome) { released++ },
		Now:       fixedClock(),
	})

	a, err := tr.Begin(Target{NetworkID: 5, SSID: "home", BSSID: "any"})
	require.NoError(t, err)
	assert.Equal(t, 5, a.NetworkID)
	assert.NotEqual(t, a.ID.String(), "00000000-0000-0000-0000-000000000000")

	open, ok := tr.Open()
	require.True(t, ok)
	assert.Equal(t, a.ID, open.ID)

	o, ok := tr.End(FailureNone)
	require.True(t, ok)
	assert.Equal(t, a.ID, o.ID)
	assert.Equal(t, time.Second, o.Duration())
	assert.True(t, o.Code.Succeeded())

	assert.Len(t, rec.started, 1)
	assert.Len(t, rec.ended, 1)
	assert.Equal(t, 1, guarded)
	assert.Equal(t, 1, released)
}

func TestBeginWhileOpenIsRefused(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(Config{Reporters: []Reporter{rec}})

	first, err := tr.Begin(Target{NetworkID: 1})
	require.NoError(t, err)

	_, err = tr.Begin(Target{NetworkID: 2})
	assert.ErrorIs(t, err, ErrAttemptOpen)

	open, _ := tr.Open()
	assert.Equal(t, first.ID, open.ID, "open attempt is untouched")
	assert.Len(t, rec.started, 1)
}

func TestEndWithoutOpenIsNoop(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(Config{Reporters: []Reporter{rec}})

	_, ok := tr.End(FailureDHCPFailed)
	assert.False(t, ok)
	assert.Empty(t, rec.ended)
}

func TestDoubleEndReportsOnce(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(Config{Reporters: []Reporter{rec}})

	_, err := tr.Begin(Target{NetworkID: 1})
	require.NoError(t, err)
	tr.End(FailureAuthenticationFailed)
	tr.End(FailureNetworkDisconnectedDuringSetup)

	require.Len(t, rec.ended, 1)
	assert.Equal(t, FailureAuthenticationFailed, rec.ended[0].Code)
}

// Random begin/end sequences never produce more ends than begins, and
// never two begins without an end in between.
func TestPairingHoldsForRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		rec := &recorder{}
		tr := NewTracker(Config{Reporters: []Reporter{rec}})
		var trace []string

		for step := 0; step < 50; step++ {
			if rng.Intn(2) == 0 {
				if _, err := tr.Begin(Target{NetworkID: rng.Intn(3)}); err == nil {
					trace = append(trace, "B")
				}
			} else {
				if _, ok := tr.End(FailureCode(rng.Intn(8))); ok {
					trace = append(trace, "E")
				}
			}
		}

		begun, ended := tr.Counts()
		assert.LessOrEqual(t, ended, begun)
		assert.LessOrEqual(t, begun-ended, uint64(1))
		for i := 1; i < len(trace); i++ {
			assert.NotEqual(t, trace[i-1], trace[i], "run %d: %v", run, trace)
		}
		assert.Len(t, rec.started, int(begun))
		assert.Len(t, rec.ended, int(ended))
	}
}

func TestCodeStrings(t *testing.T) {
	assert.Equal(t, "NONE", FailureNone.String())
	assert.Equal(t, "ROAM_TIMEOUT", FailureRoamTimeout.String())
	assert.Equal(t, "REDUNDANT_OR_REJECTED_BY_DRIVER", FailureRedundantOrRejectedByDriver.String())
	assert.Equal(t, "UNKNOWN", FailureCode(99).String())
	assert.Equal(t, "ENTERPRISE", RoamEnterprise.String())
}
