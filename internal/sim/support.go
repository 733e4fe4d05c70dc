package sim

import (
	"log/slog"
	"sync"
	"time"

	"github.com/stactl/stactl-go/pkg/attempt"
	"github.com/stactl/stactl-go/pkg/clientmode"
	"github.com/stactl/stactl-go/pkg/failure"
	"github.com/stactl/stactl-go/pkg/watchdog"
)

// maxHistory bounds the outcomes Diagnostics keeps.
const maxHistory = 32

// BugReport is one captured report.
type BugReport struct {
	Title  string
	Detail string
	At     time.Time
}

// Diagnostics records attempt outcomes and bug reports.
type Diagnostics struct {
	now func() time.Time
	log *slog.Logger

	mu       sync.Mutex
	reports  []BugReport
	outcomes []attempt.Outcome
	open     *attempt.Attempt
}

var _ clientmode.Diagnostics = (*Diagnostics)(nil)

// NewDiagnostics returns an empty recorder.
func NewDiagnostics(now func() time.Time, logger *slog.Logger) *Diagnostics {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Diagnostics{now: now, log: logger.With("component", "diagnostics")}
}

func (d *Diagnostics) AttemptStarted(a attempt.Attempt) {
	d.mu.Lock()
	d.open = &a
	d.mu.Unlock()
}

func (d *Diagnostics) AttemptEnded(o attempt.Outcome) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = nil
	d.outcomes = append(d.outcomes, o)
	if len(d.outcomes) > maxHistory {
		d.outcomes = d.outcomes[len(d.outcomes)-maxHistory:]
	}
}

func (d *Diagnostics) CaptureBugReport(title, detail string) {
	d.mu.Lock()
	d.reports = append(d.reports, BugReport{Title: title, Detail: detail, At: d.now()})
	d.mu.Unlock()
	d.log.Warn("bug report captured", "title", title)
}

// Reports returns the captured bug reports.
func (d *Diagnostics) Reports() []BugReport {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]BugReport(nil), d.reports...)
}

// Outcomes returns the most recent attempt outcomes, oldest first.
func (d *Diagnostics) Outcomes() []attempt.Outcome {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]attempt.Outcome(nil), d.outcomes...)
}

// Recovery counts self-recovery requests. OnTrigger, when set, performs
// the restart.
type Recovery struct {
	OnTrigger func(failure.RecoveryReason)

	log *slog.Logger

	mu        sync.Mutex
	triggers  []failure.RecoveryReason
	connected bool
}

var _ clientmode.Recovery = (*Recovery)(nil)

// NewRecovery returns a recovery stub with no restart action.
func NewRecovery(logger *slog.Logger) *Recovery {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recovery{log: logger.With("component", "recovery")}
}

func (r *Recovery) Trigger(reason failure.RecoveryReason) {
	r.mu.Lock()
	r.triggers = append(r.triggers, reason)
	fn := r.OnTrigger
	r.mu.Unlock()
	r.log.Warn("self recovery requested", "reason", reason.String())
	if fn != nil {
		fn(reason)
	}
}

func (r *Recovery) ConnectedStateTransition(connected bool) {
	r.mu.Lock()
	r.connected = connected
	r.mu.Unlock()
}

// Triggers returns the reasons recovery was requested for.
func (r *Recovery) Triggers() []failure.RecoveryReason {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]failure.RecoveryReason(nil), r.triggers...)
}

// Connected reports the last connected-state transition.
func (r *Recovery) Connected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connected
}

// Notifier records wrong-password notifications.
type Notifier struct {
	log *slog.Logger

	mu    sync.Mutex
	shown []string
}

var _ failure.WrongPasswordNotifier = (*Notifier)(nil)

// NewNotifier returns a notifier that has shown nothing.
func NewNotifier(logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{log: logger.With("component", "notifier")}
}

func (n *Notifier) WrongPassword(ssid string) {
	n.mu.Lock()
	n.shown = append(n.shown, ssid)
	n.mu.Unlock()
	n.log.Warn("wrong password", "ssid", ssid)
}

// Shown returns the SSIDs notified about, in order.
func (n *Notifier) Shown() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.shown...)
}

// PeerToPeer is a simulated peer-to-peer stack. It answers Release after
// a delay unless it is stuck.
type PeerToPeer struct {
	delay time.Duration
	sched watchdog.Scheduler
	sink  Sink

	mu       sync.Mutex
	stuck    bool
	releases int
}

var _ clientmode.PeerToPeer = (*PeerToPeer)(nil)

// NewPeerToPeer returns a stack that releases the radio after delay.
func NewPeerToPeer(sched watchdog.Scheduler, sink Sink, delay time.Duration) *PeerToPeer {
	return &PeerToPeer{delay: delay, sched: sched, sink: sink}
}

// SetStuck makes the stack ignore release requests.
func (p *PeerToPeer) SetStuck(stuck bool) {
	p.mu.Lock()
	p.stuck = stuck
	p.mu.Unlock()
}

func (p *PeerToPeer) Release() {
	p.mu.Lock()
	p.releases++
	stuck := p.stuck
	p.mu.Unlock()
	if stuck {
		return
	}
	p.sched.AfterFunc(p.delay, func() {
		_ = p.sink.Post(clientmode.P2PReleased{})
	})
}

// Releases returns how many times the radio was requested.
func (p *PeerToPeer) Releases() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.releases
}
