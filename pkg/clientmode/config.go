package clientmode

import (
	"log/slog"
	"time"

	"github.com/stactl/stactl-go/pkg/linkquality"
	"github.com/stactl/stactl-go/pkg/log"
	"github.com/stactl/stactl-go/pkg/watchdog"
)

// Default guard intervals.
const (
	DefaultRoamGuard          = 15 * time.Second
	DefaultDisconnectingGuard = 5 * time.Second
	DefaultP2PDisableGuard    = 2 * time.Second
	DefaultConnectTimeout     = 60 * time.Second
	DefaultLastSelectedExpiry = 30 * time.Second
)

// Config tunes a Machine.
type Config struct {
	// Interface is the wireless interface name, used in logs and traces.
	Interface string

	RoamGuard          time.Duration
	DisconnectingGuard time.Duration
	P2PDisableGuard    time.Duration

	// ConnectTimeout bounds a whole connection attempt.
	ConnectTimeout time.Duration

	PollInterval    time.Duration
	RSSIPollEnabled bool

	// SuspendOptimizations is the user preference for driver suspend
	// optimizations.
	SuspendOptimizations bool

	// DisconnectOnReachabilityLoss makes an IP reachability loss tear the
	// link down.
	DisconnectOnReachabilityLoss bool

	// ConnectedMACRandomization enables per-network randomized MACs for
	// profiles that ask for it.
	ConnectedMACRandomization bool

	// LastSelectedExpiry is how long a user selection shields a network
	// from being disabled for failed validation.
	LastSelectedExpiry time.Duration

	// BugReportInterval throttles automatic bug reports; negative disables
	// throttling.
	BugReportInterval time.Duration

	// Scheduler drives guard timers. Defaults to watchdog.RealScheduler.
	Scheduler watchdog.Scheduler

	Logger *slog.Logger

	// Trace receives the structured event trace. Defaults to no tracing.
	Trace log.Logger
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Interface:                 "wlan0",
		RoamGuard:                 DefaultRoamGuard,
		DisconnectingGuard:        DefaultDisconnectingGuard,
		P2PDisableGuard:           DefaultP2PDisableGuard,
		ConnectTimeout:            DefaultConnectTimeout,
		PollInterval:              linkquality.DefaultPollInterval,
		RSSIPollEnabled:           true,
		SuspendOptimizations:      true,
		ConnectedMACRandomization: true,
		LastSelectedExpiry:        DefaultLastSelectedExpiry,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Interface == "" {
		c.Interface = d.Interface
	}
	if c.RoamGuard <= 0 {
		c.RoamGuard = d.RoamGuard
	}
	if c.DisconnectingGuard <= 0 {
		c.DisconnectingGuard = d.DisconnectingGuard
	}
	if c.P2PDisableGuard <= 0 {
		c.P2PDisableGuard = d.P2PDisableGuard
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = d.ConnectTimeout
	}
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	if c.LastSelectedExpiry <= 0 {
		c.LastSelectedExpiry = d.LastSelectedExpiry
	}
	if c.Scheduler == nil {
		c.Scheduler = watchdog.RealScheduler{}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Trace == nil {
		c.Trace = log.NoopLogger{}
	}
	return c
}
