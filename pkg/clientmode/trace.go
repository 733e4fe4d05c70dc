package clientmode

import (
	"github.com/stactl/stactl-go/pkg/attempt"
	"github.com/stactl/stactl-go/pkg/log"
	"github.com/stactl/stactl-go/pkg/wifi"
)

// emit fills in the common trace fields and forwards ev to the trace.
func (m *Machine) emit(ev log.Event) {
	ev.Timestamp = m.watchdogs.Now()
	ev.Interface = m.cfg.Interface
	if ev.State == "" && m.hsm != nil {
		ev.State = m.hsm.Current().String()
	}
	if m.tracker != nil {
		if a, ok := m.tracker.Open(); ok && ev.AttemptID == "" {
			ev.AttemptID = a.ID.String()
		}
	}
	netID := m.conn.currentNetworkID
	if netID == wifi.InvalidNetworkID {
		netID = m.conn.targetNetworkID
	}
	if netID != wifi.InvalidNetworkID {
		ev.NetworkID = &netID
	}
	if ev.BSSID == "" {
		ev.BSSID = m.conn.currentBSSID
	}
	m.cfg.Trace.Log(ev)
}

// issue records a command sent to a collaborator. It reports whether the
// command succeeded.
func (m *Machine) issue(layer log.Layer, name string, err error) bool {
	cmd := &log.CommandEvent{Name: name}
	if err != nil {
		cmd.Err = err.Error()
		m.log.Warn("command failed",
			"command", name,
			"state", m.hsm.Current().String(),
			"error", err)
	}
	m.emit(log.Event{
		Direction: log.DirectionOut,
		Layer:     layer,
		Category:  log.CategoryCommand,
		Command:   cmd,
	})
	return err == nil
}

// fail records a collaborator or input error that is not a defect.
func (m *Machine) fail(layer log.Layer, context string, err error) {
	m.log.Warn(context, "state", m.hsm.Current().String(), "error", err)
	m.emit(log.Event{
		Direction: log.DirectionIn,
		Layer:     layer,
		Category:  log.CategoryError,
		Error:     &log.ErrorEventData{Layer: layer, Message: err.Error(), Context: context},
	})
}

// defect records a programming or invariant violation. The machine keeps
// running.
func (m *Machine) defect(kind, msg string) {
	state := ""
	if m.hsm != nil {
		state = m.hsm.Current().String()
	}
	m.log.Error("defect", "kind", kind, "detail", msg, "state", state)
	m.emit(log.Event{
		Direction: log.DirectionIn,
		Layer:     log.LayerCore,
		Category:  log.CategoryError,
		Error:     &log.ErrorEventData{Layer: log.LayerCore, Message: msg, Context: kind, Defect: true},
	})
	m.c.Observer.Defect(kind)
}

// traceReporter puts attempt boundaries on the trace.
type traceReporter struct{ m *Machine }

func (r traceReporter) AttemptStarted(a attempt.Attempt) {
	r.m.emit(log.Event{
		Direction: log.DirectionIn,
		Layer:     log.LayerCore,
		Category:  log.CategoryAttempt,
		AttemptID: a.ID.String(),
		BSSID:     a.BSSID,
		Attempt: &log.AttemptEvent{
			Phase:    log.AttemptStarted,
			SSID:     a.SSID,
			RoamType: a.RoamType.String(),
		},
	})
}

func (r traceReporter) AttemptEnded(o attempt.Outcome) {
	d := o.Duration()
	r.m.emit(log.Event{
		Direction: log.DirectionIn,
		Layer:     log.LayerCore,
		Category:  log.CategoryAttempt,
		AttemptID: o.Attempt.ID.String(),
		BSSID:     o.Attempt.BSSID,
		Attempt: &log.AttemptEvent{
			Phase:    log.AttemptEnded,
			SSID:     o.Attempt.SSID,
			RoamType: o.Attempt.RoamType.String(),
			Code:     o.Code.String(),
			Duration: &d,
		},
	})
}
