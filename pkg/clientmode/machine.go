package clientmode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/stactl/stactl-go/pkg/attempt"
	"github.com/stactl/stactl-go/pkg/capability"
	"github.com/stactl/stactl-go/pkg/failure"
	"github.com/stactl/stactl-go/pkg/hsm"
	"github.com/stactl/stactl-go/pkg/linkquality"
	"github.com/stactl/stactl-go/pkg/log"
	"github.com/stactl/stactl-go/pkg/mailbox"
	"github.com/stactl/stactl-go/pkg/watchdog"
	"github.com/stactl/stactl-go/pkg/wifi"
)

// Machine is the client-mode connection state machine for one interface.
//
// All state is owned by the dispatch goroutine (Run, or the caller of
// Drain). Other goroutines interact only through the mailbox and the
// snapshot accessors.
type Machine struct {
	cfg Config
	c   Collaborators
	log *slog.Logger

	ctx context.Context

	box        *mailbox.Mailbox[Event]
	hsm        *hsm.Machine[StateID, Event]
	watchdogs  *watchdog.Registry
	tracker    *attempt.Tracker
	monitor    *linkquality.Monitor
	suspend    *linkquality.SuspendArbiter
	classifier *failure.Classifier
	publisher  *capability.Publisher
	requests   *Requests

	info      *wifi.Info
	conn      connectionContext
	linkProps capability.LinkProperties

	// outcome is how the event being dispatched was disposed of.
	outcome log.Outcome

	mu     sync.RWMutex
	status Status
}

// New builds a machine and enters the Default state. The machine does not
// process events until Run or Drain is called.
func New(cfg Config, c Collaborators) (*Machine, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	m := &Machine{
		cfg:  cfg,
		c:    c,
		log:  cfg.Logger.With("iface", cfg.Interface),
		ctx:  context.Background(),
		box:  mailbox.New[Event](),
		info: wifi.NewInfo(),
		conn: newConnectionContext(),
	}
	m.linkProps = capability.LinkProperties{InterfaceName: cfg.Interface}

	m.watchdogs = watchdog.NewRegistry(cfg.Scheduler, func(tok watchdog.Token) {
		_ = m.box.Post(WatchdogFired{Token: tok})
	})
	m.suspend = linkquality.NewSuspendArbiter(cfg.SuspendOptimizations)
	m.monitor = linkquality.NewMonitor(linkquality.MonitorConfig{
		Info:         m.info,
		Offloader:    c.Link,
		PollInterval: cfg.PollInterval,
		PollEnabled:  cfg.RSSIPollEnabled,
		Now:          m.watchdogs.Now,
		Logger:       m.log,
	})
	m.classifier = failure.NewClassifier(failure.Config{
		Tracker:           c.Policy,
		Profiles:          c.Profiles,
		Notifier:          c.Notifier,
		BugReports:        c.Diagnostics,
		Recovery:          c.Recovery,
		BugReportInterval: cfg.BugReportInterval,
		Now:               m.watchdogs.Now,
		Logger:            m.log,
	})
	m.publisher = capability.NewPublisher(capability.PublisherConfig{
		Factory:      c.Agents,
		Availability: c.Availability,
		Logger:       m.log,
	})

	reporters := []attempt.Reporter{traceReporter{m}, c.Policy, c.Diagnostics}
	reporters = append(reporters, c.Reporters...)
	m.tracker = attempt.NewTracker(attempt.Config{
		Reporters: reporters,
		Guard: func(attempt.Attempt) {
			m.watchdogs.Arm(watchdog.PurposeConnectTimeout, cfg.ConnectTimeout)
		},
		Release: func(attempt.Outcome) {
			m.watchdogs.Invalidate(watchdog.PurposeConnectTimeout)
		},
		Now:    m.watchdogs.Now,
		Logger: m.log,
	})
	m.requests = newRequests(func(kind RequestKind, active bool) {
		_ = m.box.Post(requestsChanged{Kind: kind, Active: active})
	})

	machine, err := hsm.New(m.definition(), StateDefault, hsm.Options[StateID, Event]{
		OnTransition: m.onTransition,
		OnUnhandled:  m.onUnhandled,
		Requeue:      m.requeue,
		Logger:       m.log,
	})
	if err != nil {
		return nil, fmt.Errorf("build state graph: %w", err)
	}
	m.hsm = machine
	m.hsm.Start()
	m.publishStatus()
	return m, nil
}

// Run dispatches events until ctx is cancelled or Close is called, then
// exits every state. It returns nil after Close.
func (m *Machine) Run(ctx context.Context) error {
	m.ctx = ctx
	defer m.Shutdown()

	m.log.Info("client mode machine running")
	for {
		ev, err := m.box.Next(ctx)
		if err != nil {
			if errors.Is(err, mailbox.ErrClosed) {
				return nil
			}
			return err
		}
		m.dispatch(ev)
	}
}

// Drain dispatches queued events on the caller's goroutine until the
// mailbox is empty and returns how many it processed. It must not be used
// while Run is active.
func (m *Machine) Drain() int {
	n := 0
	for {
		ev, ok := m.box.TryNext()
		if !ok {
			return n
		}
		m.dispatch(ev)
		n++
	}
}

// Close stops accepting events. Run returns once the queue is empty.
func (m *Machine) Close() {
	m.box.Close()
}

// Shutdown exits every active state, tearing down the link, and cancels all
// guard timers. Run calls it on return; Drain users call it themselves.
func (m *Machine) Shutdown() {
	m.ctx = context.WithoutCancel(m.ctx)
	m.hsm.Stop()
	m.watchdogs.Stop()
	m.publishStatus()
	m.log.Info("client mode machine stopped")
}

// Post queues ev behind everything already queued.
func (m *Machine) Post(ev Event) error {
	return m.box.Post(ev)
}

// SetOperationalMode queues a mode change ahead of every pending event.
func (m *Machine) SetOperationalMode(mode wifi.OperationalMode) error {
	return m.box.PostFront(SetOperationalMode{Mode: mode})
}

// Connect asks for a connection to a saved network.
func (m *Machine) Connect(networkID int, bssid string) error {
	if bssid == "" {
		bssid = wifi.BSSIDAny
	}
	return m.box.Post(StartConnect{NetworkID: networkID, BSSID: bssid})
}

// Roam asks for a roam to bssid.
func (m *Machine) Roam(networkID int, bssid string) error {
	return m.box.Post(StartRoam{NetworkID: networkID, BSSID: bssid})
}

// Disconnect asks for the link to be torn down.
func (m *Machine) Disconnect() error {
	return m.box.Post(Disconnect{})
}

// Requests returns the request handle registry.
func (m *Machine) Requests() *Requests {
	return m.requests
}

// ConnectionInfo returns a copy of the link identity, taken on the dispatch
// goroutine. It needs Run to be active.
func (m *Machine) ConnectionInfo(ctx context.Context) (wifi.Info, error) {
	reply := make(chan wifi.Info, 1)
	if err := m.box.Post(connectionInfoRequest{reply: reply}); err != nil {
		return wifi.Info{}, err
	}
	select {
	case info := <-reply:
		return info, nil
	case <-ctx.Done():
		return wifi.Info{}, ctx.Err()
	}
}

// QueueDepth returns the number of pending events.
func (m *Machine) QueueDepth() int {
	return m.box.Len()
}

func (m *Machine) dispatch(ev Event) {
	start := time.Now()
	from := m.hsm.Current()
	m.outcome = log.OutcomeHandled

	func() {
		defer func() {
			if r := recover(); r != nil {
				m.defect("handler panic", fmt.Sprintf("%v while handling %s in %s", r, whatOf(ev), from))
			}
		}()
		m.hsm.Dispatch(ev)
	}()

	elapsed := time.Since(start)
	what := whatOf(ev).String()
	m.log.Debug("event dispatched",
		"event", what,
		"state", from.String(),
		"outcome", m.outcome.String())
	m.emit(log.Event{
		Direction: log.DirectionIn,
		Layer:     layerOf(ev),
		Category:  log.CategoryDispatch,
		State:     from.String(),
		Dispatch: &log.DispatchEvent{
			What:           what,
			Outcome:        m.outcome,
			Detail:         detail(ev),
			ProcessingTime: &elapsed,
		},
	})
	m.c.Observer.EventDispatched(what, m.outcome.String(), elapsed)
	m.publishStatus()
}

func (m *Machine) onTransition(from, to StateID) {
	if from == to {
		return
	}
	m.log.Info("state changed", "from", from.String(), "to", to.String())
	m.emit(log.Event{
		Direction:   log.DirectionIn,
		Layer:       log.LayerCore,
		Category:    log.CategoryState,
		State:       to.String(),
		StateChange: &log.StateChangeEvent{Entity: log.StateEntityMachine, OldState: from.String(), NewState: to.String()},
	})
	m.c.Observer.StateChanged(from.String(), to.String())
}

func (m *Machine) onUnhandled(state StateID, ev Event) {
	m.outcome = log.OutcomeUnhandled
	m.defect("unhandled event", fmt.Sprintf("%s in %s", whatOf(ev), state))
}

func (m *Machine) requeue(deferred []Event) {
	if err := m.box.PostFrontAll(deferred); err != nil {
		m.log.Warn("deferred events dropped", "count", len(deferred), "error", err)
	}
}

// deferEvent holds ev until the next transition.
func (m *Machine) deferEvent(ev Event) hsm.Result {
	m.hsm.Defer(ev)
	m.outcome = log.OutcomeDeferred
	return hsm.Handled
}

// discard consumes ev without acting on it.
func (m *Machine) discard() hsm.Result {
	m.outcome = log.OutcomeDiscarded
	return hsm.Handled
}

// stale consumes a timer fire or callback that no longer applies.
func (m *Machine) stale() hsm.Result {
	m.outcome = log.OutcomeStale
	return hsm.Handled
}

// liveFire reports whether ev is a fire of a live token for purpose.
func (m *Machine) liveFire(ev WatchdogFired, purpose watchdog.Purpose) bool {
	return ev.Token.Purpose == purpose && m.watchdogs.IsLive(ev.Token)
}
