package capability

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/stactl/stactl-go/pkg/wifi"
)

// NetworkAgent carries updates about one connected network to the
// connectivity stack.
type NetworkAgent interface {
	SendCapabilities(c Capabilities)
	SendLinkProperties(lp LinkProperties)
	SendNetworkInfo(state DetailedState, info wifi.Info)
	SendScore(score int)
}

// AgentFactory creates agents. id is the agent's identity token; the agent
// includes it in every callback it posts back.
type AgentFactory interface {
	NewAgent(id uuid.UUID, caps Capabilities, lp LinkProperties) NetworkAgent
}

// AvailabilitySink receives the interface-wide "network available" flag.
type AvailabilitySink interface {
	SetNetworkAvailable(available bool)
}

// PublisherConfig configures a Publisher.
type PublisherConfig struct {
	Factory      AgentFactory
	Availability AvailabilitySink
	Logger       *slog.Logger
}

// Publisher owns the current agent and deduplicates what is sent through it.
// It is owned by the dispatch goroutine.
type Publisher struct {
	cfg PublisherConfig

	agent   NetworkAgent
	agentID uuid.UUID

	last      Capabilities
	hasLast   bool
	available bool
	availSet  bool
}

// NewPublisher creates a publisher.
func NewPublisher(cfg PublisherConfig) *Publisher {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Publisher{cfg: cfg}
}

// SetAvailable publishes the availability flag if it changed.
func (p *Publisher) SetAvailable(available bool) {
	if p.availSet && p.available == available {
		return
	}
	p.available = available
	p.availSet = true
	if p.cfg.Availability != nil {
		p.cfg.Availability.SetNetworkAvailable(available)
	}
	p.cfg.Logger.Debug("network availability published", "available", available)
}

// Available returns the last published availability.
func (p *Publisher) Available() bool { return p.available }

// Register creates a new agent for a freshly connected link and returns its
// identity token. Any previous agent is dropped without a final update.
func (p *Publisher) Register(info wifi.Info, cfg *wifi.NetworkConfig, lp LinkProperties) uuid.UUID {
	caps := Compute(info, cfg)
	p.agentID = uuid.New()
	p.last = caps
	p.hasLast = true
	if p.cfg.Factory != nil {
		p.agent = p.cfg.Factory.NewAgent(p.agentID, caps, lp)
	}
	p.cfg.Logger.Debug("network agent registered", "agent_id", p.agentID.String(), "caps", caps.String())
	return p.agentID
}

// HasAgent reports whether an agent is live.
func (p *Publisher) HasAgent() bool { return p.agent != nil }

// AgentID returns the live agent's token, or uuid.Nil.
func (p *Publisher) AgentID() uuid.UUID {
	if p.agent == nil {
		return uuid.Nil
	}
	return p.agentID
}

// IsCurrent reports whether id belongs to the live agent.
func (p *Publisher) IsCurrent(id uuid.UUID) bool {
	return p.agent != nil && id == p.agentID
}

// Update recomputes the capability set and sends it if it changed. It
// returns whether anything was sent. Without an agent it does nothing.
func (p *Publisher) Update(info wifi.Info, cfg *wifi.NetworkConfig) bool {
	if p.agent == nil {
		return false
	}
	caps := Compute(info, cfg)
	if p.hasLast && caps == p.last {
		return false
	}
	p.last = caps
	p.hasLast = true
	p.agent.SendCapabilities(caps)
	return true
}

// Current returns the last capability set sent.
func (p *Publisher) Current() (Capabilities, bool) {
	return p.last, p.hasLast
}

// SendLinkProperties forwards lp to the live agent.
func (p *Publisher) SendLinkProperties(lp LinkProperties) {
	if p.agent != nil {
		p.agent.SendLinkProperties(lp.Clone())
	}
}

// SendNetworkInfo forwards a detailed state to the live agent.
func (p *Publisher) SendNetworkInfo(state DetailedState, info wifi.Info) {
	if p.agent != nil {
		p.agent.SendNetworkInfo(state, info)
	}
}

// SendScore forwards the link score to the live agent.
func (p *Publisher) SendScore(score int) {
	if p.agent != nil {
		p.agent.SendScore(score)
	}
}

// Disconnected reports DISCONNECTED through the live agent and drops it.
// Safe to call without an agent.
func (p *Publisher) Disconnected(info wifi.Info) {
	if p.agent == nil {
		return
	}
	p.agent.SendNetworkInfo(DetailedDisconnected, info)
	p.cfg.Logger.Debug("network agent dropped", "agent_id", p.agentID.String())
	p.agent = nil
	p.agentID = uuid.Nil
	p.hasLast = false
}
