package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/stactl/stactl-go/pkg/wifi"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// ErrVersion is returned by Load for a file written by a newer format.
var ErrVersion = errors.New("unsupported state file version")

// SelectionState is the runtime selection status of every saved network.
type SelectionState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// LastSelected is the network the user chose last, if any.
	LastSelected   *int      `json:"last_selected,omitempty"`
	LastSelectedAt time.Time `json:"last_selected_at,omitempty"`

	Networks []NetworkStatus `json:"networks,omitempty"`
}

// NetworkStatus is the selection status of one network.
type NetworkStatus struct {
	NetworkID int `json:"network_id"`

	// SSID guards against applying a status to a different network that
	// reuses the ID.
	SSID string `json:"ssid"`

	Disabled   wifi.DisableReason         `json:"disabled,omitempty"`
	DisabledAt time.Time                  `json:"disabled_at,omitempty"`
	Failures   map[wifi.DisableReason]int `json:"failures,omitempty"`

	HasEverConnected   bool   `json:"has_ever_connected,omitempty"`
	ValidatedInternet  bool   `json:"validated_internet,omitempty"`
	NoInternetExpected bool   `json:"no_internet_expected,omitempty"`
	LastConnectedBSSID string `json:"last_connected_bssid,omitempty"`
}

// Network returns the status saved for id, if its SSID still matches.
func (s *SelectionState) Network(id int, ssid string) (NetworkStatus, bool) {
	for _, n := range s.Networks {
		if n.NetworkID == id && n.SSID == ssid {
			return n, true
		}
	}
	return NetworkStatus{}, false
}

// Store manages persistence of selection state to a JSON file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Save persists the state to disk. SavedAt is set if zero.
func (s *Store) Save(state *SelectionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	// Write and rename so a crash never leaves a truncated file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load reads the state from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *Store) Load() (*SelectionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &SelectionState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	if state.Version > StateVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, state.Version)
	}
	return state, nil
}

// Clear removes the state file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
