package watchdog_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stactl/stactl-go/pkg/watchdog"
	"github.com/stactl/stactl-go/pkg/watchdog/watchdogtest"
)

type fired struct {
	mu     sync.Mutex
	tokens []watchdog.Token
}

func (f *fired) record(tok watchdog.Token) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, tok)
}

func (f *fired) all() []watchdog.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]watchdog.Token(nil), f.tokens...)
}

func newRegistry(t *testing.T) (*watchdog.Registry, *watchdogtest.Scheduler, *fired) {
	t.Helper()
	sched := watchdogtest.NewScheduler(time.Unix(1_700_000_000, 0))
	f := &fired{}
	return watchdog.NewRegistry(sched, f.record), sched, f
}

func TestArmFiresWithToken(t *testing.T) {
	reg, sched, f := newRegistry(t)

	tok := reg.Arm(watchdog.PurposeRoam, 15*time.Second)
	assert.Equal(t, uint64(1), tok.Counter)
	assert.Equal(t, watchdog.PurposeRoam, tok.Purpose)

	sched.Advance(14 * time.Second)
	assert.Empty(t, f.all())

	sched.Advance(time.Second)
	require.Len(t, f.all(), 1)
	assert.Equal(t, tok, f.all()[0])
	assert.True(t, reg.IsLive(tok))
}

func TestRearmMakesPreviousTokenStale(t *testing.T) {
	reg, sched, f := newRegistry(t)

	first := reg.Arm(watchdog.PurposeDisconnecting, 5*time.Second)
	second := reg.Arm(watchdog.PurposeDisconnecting, 5*time.Second)

	assert.False(t, reg.IsLive(first))
	assert.True(t, reg.IsLive(second))

	sched.Advance(5 * time.Second)
	require.Len(t, f.all(), 1, "stopped timer does not fire")
	assert.Equal(t, second, f.all()[0])
}

func TestStaleFireIsDetectable(t *testing.T) {
	// Stop lost the race: both timers fire, only the newest token is live.
	reg, sched, f := newRegistry(t)

	first := reg.Arm(watchdog.PurposeRoam, time.Second)
	second := reg.Arm(watchdog.PurposeRoam, time.Second)
	sched.FireAll()

	tokens := f.all()
	require.Len(t, tokens, 2)
	live := 0
	for _, tok := range tokens {
		if reg.IsLive(tok) {
			live++
			assert.Equal(t, second, tok)
		}
	}
	assert.Equal(t, 1, live)
	assert.False(t, reg.IsLive(first))
}

func TestPurposesAreIndependent(t *testing.T) {
	reg, _, _ := newRegistry(t)

	roam := reg.Arm(watchdog.PurposeRoam, time.Second)
	disc := reg.Arm(watchdog.PurposeDisconnecting, time.Second)
	reg.Invalidate(watchdog.PurposeDisconnecting)

	assert.True(t, reg.IsLive(roam))
	assert.False(t, reg.IsLive(disc))
	assert.Equal(t, uint64(2), reg.Current(watchdog.PurposeDisconnecting).Counter)
	assert.Equal(t, uint64(1), reg.Current(watchdog.PurposeRoam).Counter)
}

func TestMintWithoutTimer(t *testing.T) {
	reg, sched, f := newRegistry(t)

	tok := reg.Mint(watchdog.PurposeRSSIPoll)
	assert.True(t, reg.IsLive(tok))
	assert.Equal(t, 0, sched.Pending())
	sched.Advance(time.Hour)
	assert.Empty(t, f.all())
}

func TestStopInvalidatesEverything(t *testing.T) {
	reg, sched, _ := newRegistry(t)

	roam := reg.Arm(watchdog.PurposeRoam, time.Second)
	poll := reg.Arm(watchdog.PurposeRSSIPoll, time.Second)
	reg.Stop()

	assert.False(t, reg.IsLive(roam))
	assert.False(t, reg.IsLive(poll))
	assert.Equal(t, 0, sched.Pending())
}

func TestUnknownPurposeIsNeverLive(t *testing.T) {
	reg, _, _ := newRegistry(t)
	assert.False(t, reg.IsLive(watchdog.Token{Counter: 0, Purpose: watchdog.Purpose(200)}))
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "ROAM#7", watchdog.Token{Counter: 7, Purpose: watchdog.PurposeRoam}.String())
}
