package sim_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stactl/stactl-go/internal/sim"
	"github.com/stactl/stactl-go/pkg/watchdog/watchdogtest"
	"github.com/stactl/stactl-go/pkg/wifi"
)

func newPolicy(t *testing.T, nets ...wifi.NetworkConfig) (*sim.Policy, *sim.Profiles, *watchdogtest.Scheduler) {
	t.Helper()
	sched := watchdogtest.NewScheduler(epoch)
	profiles := sim.NewProfiles(sim.ProfilesConfig{Now: sched.Now})
	for _, n := range nets {
		profiles.Save(n)
	}
	p := sim.NewPolicy(sim.PolicyConfig{
		World:     sim.NewWorld(accessPoints()...),
		Profiles:  profiles,
		Scheduler: sched,
		Backoff:   sim.BackoffConfig{Seed: 7},
	})
	return p, profiles, sched
}

func TestTrackBSSIDBlocklistsAfterThreshold(t *testing.T) {
	p, _, _ := newPolicy(t)

	for i := 1; i < sim.DefaultBlocklistThreshold; i++ {
		assert.False(t, p.TrackBSSID(homeStrong, false, wifi.ReasonUnspecified))
	}
	assert.True(t, p.TrackBSSID(homeStrong, false, wifi.ReasonUnspecified))
	assert.True(t, p.Blocklisted(homeStrong))
	assert.Equal(t, []string{homeStrong}, p.Blocklist())

	assert.False(t, p.TrackBSSID(homeStrong, true, 0))
	assert.False(t, p.Blocklisted(homeStrong))

	assert.False(t, p.TrackBSSID(wifi.BSSIDAny, false, wifi.ReasonUnspecified))
}

func TestSuccessResetsFailureCount(t *testing.T) {
	p, _, _ := newPolicy(t)
	for i := 1; i < sim.DefaultBlocklistThreshold; i++ {
		p.TrackBSSID(homeStrong, false, wifi.ReasonUnspecified)
	}
	p.TrackBSSID(homeStrong, true, 0)
	assert.False(t, p.TrackBSSID(homeStrong, false, wifi.ReasonUnspecified))
}

func TestSelect(t *testing.T) {
	t.Run("strongest selectable", func(t *testing.T) {
		p, _, _ := newPolicy(t, savedNetworks()...)
		c, ok := p.Select()
		require.True(t, ok)
		assert.Equal(t, sim.Candidate{NetworkID: homeID, BSSID: homeStrong, RSSI: -50}, c)
	})

	t.Run("skips blocklisted bssid", func(t *testing.T) {
		p, _, _ := newPolicy(t, savedNetworks()...)
		for i := 0; i < sim.DefaultBlocklistThreshold; i++ {
			p.TrackBSSID(homeStrong, false, wifi.ReasonUnspecified)
		}
		c, ok := p.Select()
		require.True(t, ok)
		assert.Equal(t, corpBSSID, c.BSSID)
	})

	t.Run("skips disabled network", func(t *testing.T) {
		p, profiles, _ := newPolicy(t, savedNetworks()...)
		profiles.UpdateSelectionStatus(homeID, wifi.DisableByUser)
		profiles.UpdateSelectionStatus(corpID, wifi.DisableWrongPassword)
		c, ok := p.Select()
		require.True(t, ok)
		assert.Equal(t, cafeID, c.NetworkID)
	})

	t.Run("ephemeral needs untrusted", func(t *testing.T) {
		cafe := savedNetworks()[1]
		cafe.Ephemeral = true
		p, _, _ := newPolicy(t, cafe)
		_, ok := p.Select()
		assert.False(t, ok)

		p.SetUntrustedAllowed(true)
		c, ok := p.Select()
		require.True(t, ok)
		assert.Equal(t, cafeID, c.NetworkID)
	})

	t.Run("security must match", func(t *testing.T) {
		home := savedNetworks()[0]
		home.Security = wifi.SecurityWPA3SAE
		p, _, _ := newPolicy(t, home)
		_, ok := p.Select()
		assert.False(t, ok)
	})
}

func TestAutoJoinSchedulesWithBackoff(t *testing.T) {
	p, _, sched := newPolicy(t)
	conn := &fakeConnector{}
	p.SetConnector(conn)
	p.SetWifiEnabled(true)
	p.SetAutoJoinEnabled(true)

	st := p.State()
	require.True(t, st.RetryScheduled)
	assert.Equal(t, 2*time.Second, st.NextDelay)

	// Nothing saved, so each pass finds no candidate and backs off.
	sched.Advance(time.Second)
	assert.Equal(t, 4*time.Second, p.State().NextDelay)
	sched.Advance(2 * time.Second)
	assert.Equal(t, 8*time.Second, p.State().NextDelay)
	assert.Empty(t, conn.calls)
}

func TestAutoJoinConnectsToCandidate(t *testing.T) {
	p, profiles, sched := newPolicy(t)
	conn := &fakeConnector{}
	p.SetConnector(conn)
	p.SetWifiEnabled(true)
	p.SetAutoJoinEnabled(true)

	profiles.Save(savedNetworks()[0])
	sched.Advance(time.Second)
	assert.Equal(t, []connectCall{{homeID, homeStrong}}, conn.calls)
	assert.False(t, p.State().RetryScheduled)
}

func TestAutoJoinStopsWhenDisabled(t *testing.T) {
	p, _, sched := newPolicy(t, savedNetworks()...)
	conn := &fakeConnector{}
	p.SetConnector(conn)
	p.SetWifiEnabled(true)
	p.SetAutoJoinEnabled(true)
	p.SetAutoJoinEnabled(false)

	sched.Advance(time.Minute)
	assert.Empty(t, conn.calls)
	assert.Zero(t, sched.Pending())
}

func TestConnectedResetsBackoff(t *testing.T) {
	p, _, sched := newPolicy(t)
	p.SetConnector(&fakeConnector{})
	p.SetWifiEnabled(true)
	p.SetAutoJoinEnabled(true)
	sched.Advance(time.Second)
	require.Equal(t, 4*time.Second, p.State().NextDelay)

	p.ConnectionStateChanged(wifi.ConnectionStateConnected)
	st := p.State()
	assert.False(t, st.RetryScheduled)
	assert.Equal(t, sim.InitialBackoff, st.NextDelay)
}

func TestForceConnectivityScan(t *testing.T) {
	p, _, _ := newPolicy(t, savedNetworks()...)
	conn := &fakeConnector{}
	p.SetConnector(conn)

	p.ForceConnectivityScan()
	assert.Empty(t, conn.calls, "auto-join disabled")

	p.SetWifiEnabled(true)
	p.SetAutoJoinEnabled(true)
	p.ForceConnectivityScan()
	assert.Equal(t, []connectCall{{homeID, homeStrong}}, conn.calls)
	assert.Equal(t, 2, p.State().Scans)
}
