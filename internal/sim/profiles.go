package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/stactl/stactl-go/pkg/clientmode"
	"github.com/stactl/stactl-go/pkg/persistence"
	"github.com/stactl/stactl-go/pkg/wifi"
)

// Errors returned by the profile store.
var (
	ErrNoSIM          = errors.New("sim: no sim identity")
	ErrUnknownProfile = errors.New("sim: unknown network")
)

// Default disable thresholds.
const (
	DefaultDHCPFailureThreshold  = 3
	DefaultAuthFailureThreshold  = 3
	DefaultAssocRejectThreshold  = 5
	DefaultTemporaryDisableAfter = 5 * time.Minute
)

// ProfilesConfig configures a profile store.
type ProfilesConfig struct {
	DHCPFailureThreshold int
	AuthFailureThreshold int
	AssocRejectThreshold int

	// TemporaryDisable is how long a temporarily disabled network stays
	// out of auto-join.
	TemporaryDisable time.Duration

	Now    func() time.Time
	Logger *slog.Logger
}

// Profile is a saved network and its selection status.
type Profile struct {
	Config wifi.NetworkConfig

	Disabled   wifi.DisableReason
	DisabledAt time.Time
	Failures   map[wifi.DisableReason]int

	ValidatedInternet  bool
	NoInternetReports  int
	LastConnectedBSSID string
	SIMIdentity        string
}

// Profiles is a simulated profile store. It implements
// clientmode.ProfileStore.
type Profiles struct {
	cfg ProfilesConfig
	log *slog.Logger

	mu     sync.RWMutex
	nets   map[int]*Profile
	lastID int
	lastAt time.Time
}

var _ clientmode.ProfileStore = (*Profiles)(nil)

// NewProfiles returns an empty store.
func NewProfiles(cfg ProfilesConfig) *Profiles {
	if cfg.DHCPFailureThreshold <= 0 {
		cfg.DHCPFailureThreshold = DefaultDHCPFailureThreshold
	}
	if cfg.AuthFailureThreshold <= 0 {
		cfg.AuthFailureThreshold = DefaultAuthFailureThreshold
	}
	if cfg.AssocRejectThreshold <= 0 {
		cfg.AssocRejectThreshold = DefaultAssocRejectThreshold
	}
	if cfg.TemporaryDisable <= 0 {
		cfg.TemporaryDisable = DefaultTemporaryDisableAfter
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Profiles{
		cfg:    cfg,
		log:    cfg.Logger.With("component", "profiles"),
		nets:   make(map[int]*Profile),
		lastID: wifi.InvalidNetworkID,
	}
}

// Save adds or replaces a network. The selection status of an existing
// network is kept.
func (p *Profiles) Save(cfg wifi.NetworkConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if prof, ok := p.nets[cfg.NetworkID]; ok {
		prof.Config = *cfg.Clone()
		return
	}
	p.nets[cfg.NetworkID] = &Profile{
		Config:   *cfg.Clone(),
		Failures: make(map[wifi.DisableReason]int),
	}
}

// Forget removes a network.
func (p *Profiles) Forget(id int) {
	p.mu.Lock()
	delete(p.nets, id)
	p.mu.Unlock()
}

// SetSIMIdentity records the identity answered for an EAP network.
func (p *Profiles) SetSIMIdentity(id int, identity string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	prof, ok := p.nets[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownProfile, id)
	}
	prof.SIMIdentity = identity
	return nil
}

// Select records a user choice of network.
func (p *Profiles) Select(id int) {
	p.mu.Lock()
	p.lastID = id
	p.lastAt = p.cfg.Now()
	p.mu.Unlock()
}

func (p *Profiles) Network(id int) (*wifi.NetworkConfig, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	prof, ok := p.nets[id]
	if !ok {
		return nil, false
	}
	return prof.Config.Clone(), true
}

// Profile returns a copy of the stored profile.
func (p *Profiles) Profile(id int) (Profile, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	prof, ok := p.nets[id]
	if !ok {
		return Profile{}, false
	}
	return prof.copy(), true
}

// List returns every profile ordered by network ID.
func (p *Profiles) List() []Profile {
	p.mu.RLock()
	out := make([]Profile, 0, len(p.nets))
	for _, prof := range p.nets {
		out = append(out, prof.copy())
	}
	p.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Config.NetworkID < out[j].Config.NetworkID })
	return out
}

// Selectable reports whether auto-join may pick the network. Temporary
// disables lapse after the configured interval.
func (p *Profiles) Selectable(id int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	prof, ok := p.nets[id]
	if !ok {
		return false
	}
	if prof.Disabled == wifi.DisableNone {
		return true
	}
	if prof.Disabled.Permanent() {
		return false
	}
	if p.cfg.Now().Sub(prof.DisabledAt) < p.cfg.TemporaryDisable {
		return false
	}
	prof.Disabled = wifi.DisableNone
	return true
}

// UpdateSelectionStatus counts reason against the network and disables it
// once the reason's threshold is reached. DisableNone re-enables.
func (p *Profiles) UpdateSelectionStatus(id int, reason wifi.DisableReason) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prof, ok := p.nets[id]
	if !ok {
		return
	}
	if reason == wifi.DisableNone {
		prof.enable()
		return
	}
	prof.Failures[reason]++
	if !reason.Permanent() && prof.Failures[reason] < p.threshold(reason) {
		return
	}
	if prof.Disabled.Permanent() && !reason.Permanent() {
		return
	}
	prof.Disabled = reason
	prof.DisabledAt = p.cfg.Now()
	p.log.Info("network disabled", "network_id", id, "reason", reason.String(), "count", prof.Failures[reason])
}

func (p *Profiles) threshold(reason wifi.DisableReason) int {
	switch reason {
	case wifi.DisableDHCPFailure:
		return p.cfg.DHCPFailureThreshold
	case wifi.DisableAuthenticationFailure:
		return p.cfg.AuthFailureThreshold
	case wifi.DisableAssociationRejection:
		return p.cfg.AssocRejectThreshold
	default:
		return 1
	}
}

func (p *Profiles) NoteConnected(id int, bssid string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prof, ok := p.nets[id]
	if !ok {
		return
	}
	prof.Config.HasEverConnected = true
	prof.LastConnectedBSSID = bssid
	clear(prof.Failures)
	if !prof.Disabled.Permanent() {
		prof.Disabled = wifi.DisableNone
	}
}

func (p *Profiles) EnableNetwork(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if prof, ok := p.nets[id]; ok {
		prof.enable()
	}
}

func (p *Profiles) SetValidatedInternetAccess(id int, validated bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if prof, ok := p.nets[id]; ok {
		prof.ValidatedInternet = validated
	}
}

func (p *Profiles) SetNoInternetAccessExpected(id int, expected bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if prof, ok := p.nets[id]; ok {
		prof.Config.NoInternetExpected = expected
	}
}

func (p *Profiles) ReportNoInternetAccess(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if prof, ok := p.nets[id]; ok {
		prof.NoInternetReports++
		prof.ValidatedInternet = false
	}
}

func (p *Profiles) LastSelected() (int, time.Time) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastID, p.lastAt
}

func (p *Profiles) SIMIdentity(id int) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	prof, ok := p.nets[id]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownProfile, id)
	}
	if prof.SIMIdentity == "" {
		return "", fmt.Errorf("%w for network %d", ErrNoSIM, id)
	}
	return prof.SIMIdentity, nil
}

// Snapshot returns the selection status of every network for saving.
func (p *Profiles) Snapshot() *persistence.SelectionState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	st := &persistence.SelectionState{}
	if p.lastID != wifi.InvalidNetworkID {
		id := p.lastID
		st.LastSelected = &id
		st.LastSelectedAt = p.lastAt
	}
	for _, prof := range p.nets {
		c := prof.copy()
		st.Networks = append(st.Networks, persistence.NetworkStatus{
			NetworkID:          c.Config.NetworkID,
			SSID:               c.Config.SSID,
			Disabled:           c.Disabled,
			DisabledAt:         c.DisabledAt,
			Failures:           c.Failures,
			HasEverConnected:   c.Config.HasEverConnected,
			ValidatedInternet:  c.ValidatedInternet,
			NoInternetExpected: c.Config.NoInternetExpected,
			LastConnectedBSSID: c.LastConnectedBSSID,
		})
	}
	sort.Slice(st.Networks, func(i, j int) bool { return st.Networks[i].NetworkID < st.Networks[j].NetworkID })
	return st
}

// Restore applies saved selection status to the networks already in the
// store. Entries for unknown networks, or whose SSID changed, are ignored.
// It returns the number of networks restored.
func (p *Profiles) Restore(st *persistence.SelectionState) int {
	if st == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for id, prof := range p.nets {
		saved, ok := st.Network(id, prof.Config.SSID)
		if !ok {
			continue
		}
		prof.Disabled = saved.Disabled
		prof.DisabledAt = saved.DisabledAt
		clear(prof.Failures)
		for k, v := range saved.Failures {
			prof.Failures[k] = v
		}
		prof.Config.HasEverConnected = prof.Config.HasEverConnected || saved.HasEverConnected
		prof.Config.NoInternetExpected = prof.Config.NoInternetExpected || saved.NoInternetExpected
		prof.ValidatedInternet = saved.ValidatedInternet
		prof.LastConnectedBSSID = saved.LastConnectedBSSID
		n++
	}
	if st.LastSelected != nil {
		if _, ok := p.nets[*st.LastSelected]; ok {
			p.lastID = *st.LastSelected
			p.lastAt = st.LastSelectedAt
		}
	}
	if n > 0 {
		p.log.Info("selection status restored", "networks", n)
	}
	return n
}

func (prof *Profile) enable() {
	prof.Disabled = wifi.DisableNone
	prof.DisabledAt = time.Time{}
	clear(prof.Failures)
}

func (prof *Profile) copy() Profile {
	out := *prof
	out.Config = *prof.Config.Clone()
	out.Failures = make(map[wifi.DisableReason]int, len(prof.Failures))
	for k, v := range prof.Failures {
		out.Failures[k] = v
	}
	return out
}
