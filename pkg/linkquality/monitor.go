package linkquality

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stactl/stactl-go/pkg/wifi"
)

// DefaultPollInterval is the software RSSI poll period.
const DefaultPollInterval = 3 * time.Second

// ErrNoBracket is returned when the current RSSI lies outside every
// bracket of the armed threshold set.
var ErrNoBracket = errors.New("rssi outside threshold set")

// SignalPoll is one measurement from the link layer.
type SignalPoll struct {
	RSSI          int
	LinkSpeedMbps int
	FrequencyMHz  int
}

// Poller fetches a fresh measurement.
type Poller interface {
	SignalPoll(ctx context.Context) (SignalPoll, error)
}

// Offloader arms the hardware RSSI monitor for one bracket.
type Offloader interface {
	StartRSSIMonitoring(lo, hi int8) error
	StopRSSIMonitoring() error
}

// Change describes what a measurement changed.
type Change struct {
	// RSSIValid is false when the reading was discarded as implausible.
	RSSIValid bool

	// LevelChanged is true when the coarse signal level moved to a new
	// bucket. Consumers republish capabilities only then.
	LevelChanged bool

	Level int
}

// MonitorConfig configures a Monitor.
type MonitorConfig struct {
	// Info is the live link identity the monitor updates in place.
	Info *wifi.Info

	Offloader Offloader

	// Levels defaults to DefaultLevels.
	Levels int

	// PollInterval defaults to DefaultPollInterval.
	PollInterval time.Duration

	// PollEnabled turns the software poll loop on initially.
	PollEnabled bool

	// Now defaults to time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// Monitor applies link quality measurements to the link identity. It is
// owned by the dispatch goroutine.
type Monitor struct {
	cfg MonitorConfig

	pollEnabled bool
	lastLevel   int

	thresholds    ThresholdSet
	offloadActive bool
}

// NewMonitor creates a monitor.
func NewMonitor(cfg MonitorConfig) *Monitor {
	if cfg.Levels == 0 {
		cfg.Levels = DefaultLevels
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Info == nil {
		cfg.Info = wifi.NewInfo()
	}
	return &Monitor{
		cfg:         cfg,
		pollEnabled: cfg.PollEnabled,
		lastLevel:   -1,
	}
}

// PollEnabled reports whether the software poll loop should run.
func (m *Monitor) PollEnabled() bool { return m.pollEnabled }

// SetPollEnabled turns the software poll loop on or off.
func (m *Monitor) SetPollEnabled(on bool) { m.pollEnabled = on }

// PollInterval returns the software poll period.
func (m *Monitor) PollInterval() time.Duration { return m.cfg.PollInterval }

// Level returns the last reported signal level, or -1 if none.
func (m *Monitor) Level() int { return m.lastLevel }

// Poll fetches a measurement from p and applies it.
func (m *Monitor) Poll(ctx context.Context, p Poller) (Change, error) {
	sp, err := p.SignalPoll(ctx)
	if err != nil {
		return Change{}, fmt.Errorf("signal poll: %w", err)
	}
	return m.Apply(sp), nil
}

// Apply updates the link identity from a measurement.
func (m *Monitor) Apply(sp SignalPoll) Change {
	info := m.cfg.Info
	rssi := wifi.NormalizeRSSI(sp.RSSI)
	if sp.LinkSpeedMbps > 0 {
		info.LinkSpeedMbps = sp.LinkSpeedMbps
	}
	if sp.FrequencyMHz > 0 {
		info.FrequencyMHz = sp.FrequencyMHz
	}
	info.UpdatedAt = m.cfg.Now()

	if !wifi.ValidRSSI(rssi) {
		info.RSSI = wifi.InvalidRSSI
		changed := m.lastLevel != -1
		m.lastLevel = -1
		return Change{RSSIValid: false, LevelChanged: changed, Level: -1}
	}

	info.RSSI = rssi
	level := SignalLevel(rssi, m.cfg.Levels)
	changed := level != m.lastLevel
	m.lastLevel = level
	return Change{RSSIValid: true, LevelChanged: changed, Level: level}
}

// ResetLevel forgets the last reported level so the next valid reading is
// reported as a change.
func (m *Monitor) ResetLevel() {
	m.lastLevel = -1
}

// StartOffload derives a threshold set from raw and arms the hardware for
// the bracket containing the current RSSI.
func (m *Monitor) StartOffload(raw []int) error {
	set, err := DeriveThresholds(raw)
	if err != nil {
		return err
	}
	m.thresholds = set
	return m.arm()
}

// Breach handles a hardware threshold crossing: the link identity takes the
// new RSSI and the hardware is re-armed for the bracket that contains it.
func (m *Monitor) Breach(rssi int) (lo, hi int8, err error) {
	m.Apply(SignalPoll{RSSI: rssi})
	if len(m.thresholds) == 0 {
		return 0, 0, ErrNoBracket
	}
	lo, hi, ok := m.thresholds.Bracket(m.cfg.Info.RSSI)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %d", ErrNoBracket, m.cfg.Info.RSSI)
	}
	if err := m.startHardware(lo, hi); err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

// StopOffload disarms the hardware monitor if it is armed. The threshold set
// is kept so a later re-arm uses the same brackets.
func (m *Monitor) StopOffload() error {
	if !m.offloadActive {
		return nil
	}
	m.offloadActive = false
	if m.cfg.Offloader == nil {
		return nil
	}
	return m.cfg.Offloader.StopRSSIMonitoring()
}

// OffloadActive reports whether the hardware monitor is armed.
func (m *Monitor) OffloadActive() bool { return m.offloadActive }

// Thresholds returns the armed threshold set.
func (m *Monitor) Thresholds() ThresholdSet { return m.thresholds }

func (m *Monitor) arm() error {
	lo, hi, ok := m.thresholds.Bracket(m.cfg.Info.RSSI)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoBracket, m.cfg.Info.RSSI)
	}
	return m.startHardware(lo, hi)
}

func (m *Monitor) startHardware(lo, hi int8) error {
	if m.cfg.Offloader == nil {
		m.offloadActive = true
		return nil
	}
	if err := m.cfg.Offloader.StartRSSIMonitoring(lo, hi); err != nil {
		m.offloadActive = false
		return fmt.Errorf("start rssi monitoring [%d,%d): %w", lo, hi, err)
	}
	m.offloadActive = true
	m.cfg.Logger.Debug("rssi monitoring armed", "min", lo, "max", hi)
	return nil
}
