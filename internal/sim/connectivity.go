package sim

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/stactl/stactl-go/pkg/capability"
	"github.com/stactl/stactl-go/pkg/clientmode"
	"github.com/stactl/stactl-go/pkg/wifi"
)

// ErrNoAgent is returned when no network agent is registered.
var ErrNoAgent = errors.New("sim: no network agent")

// ConnectivityConfig configures the simulated connectivity stack.
type ConnectivityConfig struct {
	World  *World
	Sink   Sink
	Logger *slog.Logger
}

// Connectivity is a simulated connectivity stack. It hands out network
// agents and validates each network once its link is provisioned.
type Connectivity struct {
	cfg ConnectivityConfig
	log *slog.Logger

	mu        sync.Mutex
	available bool
	current   *Agent
	created   int
}

var (
	_ capability.AgentFactory     = (*Connectivity)(nil)
	_ capability.AvailabilitySink = (*Connectivity)(nil)
)

// NewConnectivity returns a stack with no agents.
func NewConnectivity(cfg ConnectivityConfig) *Connectivity {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Connectivity{cfg: cfg, log: cfg.Logger.With("component", "connectivity")}
}

// NewAgent registers a new agent. It replaces the previous one.
func (c *Connectivity) NewAgent(id uuid.UUID, caps capability.Capabilities, lp capability.LinkProperties) capability.NetworkAgent {
	a := &Agent{id: id, c: c, caps: caps, lp: lp.Clone()}
	c.mu.Lock()
	c.current = a
	c.created++
	c.mu.Unlock()
	c.log.Debug("agent registered", "agent_id", id.String(), "caps", caps.String())
	return a
}

func (c *Connectivity) SetNetworkAvailable(available bool) {
	c.mu.Lock()
	c.available = available
	c.mu.Unlock()
}

// Available reports the interface-wide availability flag.
func (c *Connectivity) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.available
}

// Agent returns the most recently registered agent.
func (c *Connectivity) Agent() (*Agent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.current != nil
}

// AgentsCreated returns how many agents were registered.
func (c *Connectivity) AgentsCreated() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.created
}

// Unwanted has the current agent declare its network unwanted. reason is
// the raw wire value and is passed through unchecked.
func (c *Connectivity) Unwanted(reason int) error {
	a, ok := c.Agent()
	if !ok {
		return ErrNoAgent
	}
	return c.cfg.Sink.Post(clientmode.NetworkUnwanted{AgentID: a.id, Reason: reason})
}

// AcceptUnvalidated answers the "stay connected without internet" prompt
// for the current agent.
func (c *Connectivity) AcceptUnvalidated(accept bool) error {
	a, ok := c.Agent()
	if !ok {
		return ErrNoAgent
	}
	return c.cfg.Sink.Post(clientmode.AcceptUnvalidated{AgentID: a.id, Accept: accept})
}

func (c *Connectivity) hasInternet(ssid string) bool {
	for _, ap := range c.cfg.World.BySSID(ssid) {
		if ap.Internet {
			return true
		}
	}
	return false
}

// Agent is one network's link to the connectivity stack.
type Agent struct {
	id uuid.UUID
	c  *Connectivity

	mu        sync.Mutex
	caps      capability.Capabilities
	lp        capability.LinkProperties
	state     capability.DetailedState
	info      wifi.Info
	score     int
	validated bool
}

// ID returns the agent's identity token.
func (a *Agent) ID() uuid.UUID { return a.id }

func (a *Agent) SendCapabilities(caps capability.Capabilities) {
	a.mu.Lock()
	a.caps = caps
	a.mu.Unlock()
}

// SendLinkProperties stores lp. The first provisioned link properties
// trigger validation, whose verdict is posted back to the machine.
func (a *Agent) SendLinkProperties(lp capability.LinkProperties) {
	a.mu.Lock()
	a.lp = lp.Clone()
	validate := lp.IsProvisioned() && !a.validated
	if validate {
		a.validated = true
	}
	ssid := a.caps.SSID
	if ssid == "" {
		ssid = a.info.SSID
	}
	a.mu.Unlock()
	if !validate {
		return
	}

	var ev clientmode.Event = clientmode.NetworkValidation{AgentID: a.id, Valid: true}
	if !a.c.hasInternet(ssid) {
		ev = clientmode.NetworkUnwanted{AgentID: a.id, Reason: int(capability.UnwantedValidationFailed)}
	}
	a.c.log.Info("network validated", "ssid", ssid, "event", ev.What().String())
	if err := a.c.cfg.Sink.Post(ev); err != nil {
		a.c.log.Debug("event dropped", "error", err)
	}
}

func (a *Agent) SendNetworkInfo(state capability.DetailedState, info wifi.Info) {
	a.mu.Lock()
	a.state = state
	a.info = info
	a.mu.Unlock()
}

func (a *Agent) SendScore(score int) {
	a.mu.Lock()
	a.score = score
	a.mu.Unlock()
}

// AgentState is a snapshot of an agent.
type AgentState struct {
	ID             uuid.UUID
	Capabilities   capability.Capabilities
	LinkProperties capability.LinkProperties
	State          capability.DetailedState
	Score          int
	Validated      bool
}

// State returns a snapshot of the agent.
func (a *Agent) State() AgentState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return AgentState{
		ID:             a.id,
		Capabilities:   a.caps,
		LinkProperties: a.lp.Clone(),
		State:          a.state,
		Score:          a.score,
		Validated:      a.validated,
	}
}
