package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stactl/stactl-go/internal/sim"
	"github.com/stactl/stactl-go/pkg/clientmode"
	"github.com/stactl/stactl-go/pkg/config"
	"github.com/stactl/stactl-go/pkg/watchdog/watchdogtest"
	"github.com/stactl/stactl-go/pkg/wifi"
)

type consoleRig struct {
	t     *testing.T
	con   *Console
	out   *bytes.Buffer
	m     *clientmode.Machine
	env   *sim.Environment
	sched *watchdogtest.Scheduler
}

func newConsoleRig(t *testing.T) *consoleRig {
	t.Helper()
	cfg, err := config.Load(filepath.Join("testdata", "demo.yaml"))
	require.NoError(t, err)

	sched := watchdogtest.NewScheduler(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	logger := slog.New(slog.DiscardHandler)
	sc, err := simConfig(cfg, sched, logger)
	require.NoError(t, err)
	sc.Backoff.Seed = 1
	env := sim.New(sc)

	mc := cfg.ClientMode()
	mc.Scheduler = sched
	mc.Logger = logger
	m, err := clientmode.New(mc, env.Collaborators())
	require.NoError(t, err)
	env.Attach(m)
	t.Cleanup(m.Shutdown)

	out := &bytes.Buffer{}
	con := &Console{
		m:       m,
		env:     env,
		out:     out,
		handles: make(map[clientmode.RequestKind]*clientmode.Handle),
	}
	return &consoleRig{t: t, con: con, out: out, m: m, env: env, sched: sched}
}

func (r *consoleRig) exec(lines ...string) {
	r.t.Helper()
	for _, l := range lines {
		require.True(r.t, r.con.Exec(context.Background(), l), l)
		r.m.Drain()
	}
}

func TestSimConfigFromDemo(t *testing.T) {
	cfg, err := config.Load(filepath.Join("testdata", "demo.yaml"))
	require.NoError(t, err)

	sc, err := simConfig(cfg, watchdogtest.NewScheduler(time.Time{}), nil)
	require.NoError(t, err)
	assert.Len(t, sc.AccessPoints, 4)
	assert.Len(t, sc.Networks, 3)
	assert.Equal(t, wifi.SecurityEAP, sc.AccessPoints[3].Security)
	assert.Contains(t, sc.SIMIdentities, 3)
	assert.Equal(t, 3, sc.Profiles.DHCPFailureThreshold)
}

func TestConsoleConnectAndRoam(t *testing.T) {
	r := newConsoleRig(t)
	r.exec("mode connect", "connect 1")
	require.Equal(t, clientmode.StateConnected, r.m.Status().State)

	r.exec("roam 1 AA:AA:AA:AA:AA:02")
	st := r.m.Status()
	assert.Equal(t, clientmode.StateConnected, st.State)
	assert.Equal(t, "aa:aa:aa:aa:aa:02", st.CurrentBSSID)

	r.out.Reset()
	r.exec("status")
	assert.Contains(t, r.out.String(), "L2Connected > Connected")
	assert.Contains(t, r.out.String(), "192.168.42.2")

	r.exec("disconnect")
	assert.Equal(t, clientmode.StateDisconnected, r.m.Status().State)
}

func TestConsoleRequestsEnableAutoJoin(t *testing.T) {
	r := newConsoleRig(t)
	r.exec("mode connect", "request connection on")
	assert.True(t, r.env.Policy.State().AutoJoin)
	assert.True(t, r.m.Requests().Active(clientmode.RequestConnection))

	// A second "on" does not take another handle.
	r.exec("request connection on", "request connection off")
	assert.False(t, r.m.Requests().Active(clientmode.RequestConnection))
}

func TestConsoleWorldCommands(t *testing.T) {
	r := newConsoleRig(t)
	r.exec("mode connect", "connect 1")

	r.exec("rssi aa:aa:aa:aa:aa:01 -80")
	ap, ok := r.env.World.AP("aa:aa:aa:aa:aa:01")
	require.True(t, ok)
	assert.Equal(t, -80, ap.RSSI)

	r.exec("ifdown")
	assert.NotEmpty(t, r.env.Recovery.Triggers())

	r.out.Reset()
	r.exec("networks")
	assert.Contains(t, r.out.String(), "home")
	assert.Contains(t, r.out.String(), "corp")

	r.out.Reset()
	r.exec("scan")
	assert.Contains(t, r.out.String(), "cc:cc:cc:cc:cc:01")
}

func TestConsoleReportsErrors(t *testing.T) {
	r := newConsoleRig(t)
	for _, line := range []string{
		"connect",
		"connect one",
		"roam 1 not-a-mac",
		"mode sideways",
		"screen maybe",
		"thresholds loud",
		"request everything on",
	} {
		r.out.Reset()
		r.exec(line)
		assert.Contains(t, r.out.String(), "Error:", line)
	}

	r.out.Reset()
	r.exec("frobnicate")
	assert.Contains(t, r.out.String(), "Unknown command")
}

func TestConsoleQuit(t *testing.T) {
	r := newConsoleRig(t)
	assert.False(t, r.con.Exec(context.Background(), "quit"))
}

func TestRunScript(t *testing.T) {
	r := newConsoleRig(t)
	path := filepath.Join(t.TempDir(), "script.txt")
	require.NoError(t, os.WriteFile(path, []byte("# comment\n\nhelp\nnetworks\nquit\nstatus\n"), 0o600))

	require.NoError(t, r.con.RunScript(context.Background(), path))
	out := r.out.String()
	assert.Contains(t, out, "> networks")
	assert.NotContains(t, out, "> status", "script stops at quit")
}
