package sim

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/stactl/stactl-go/pkg/wifi"
)

// ErrUnknownAP is returned for a BSSID that is not on the air.
var ErrUnknownAP = errors.New("sim: unknown access point")

// AccessPoint is one BSS on the air.
type AccessPoint struct {
	SSID       string
	BSSID      string
	Security   wifi.Security
	Passphrase string

	RSSI          int
	FrequencyMHz  int
	LinkSpeedMbps int

	// Internet reports whether validation succeeds behind this AP.
	Internet bool

	// DHCPBroken makes every lease request behind this AP fail.
	DHCPBroken bool
}

// World is the set of access points in range. It is safe for concurrent
// use.
type World struct {
	mu  sync.RWMutex
	aps map[string]AccessPoint
}

// NewWorld returns a world with the given access points on the air.
func NewWorld(aps ...AccessPoint) *World {
	w := &World{aps: make(map[string]AccessPoint, len(aps))}
	for _, ap := range aps {
		w.aps[ap.BSSID] = ap
	}
	return w
}

// Add puts ap on the air, replacing any AP with the same BSSID.
func (w *World) Add(ap AccessPoint) {
	w.mu.Lock()
	w.aps[ap.BSSID] = ap
	w.mu.Unlock()
}

// Remove takes an AP off the air.
func (w *World) Remove(bssid string) {
	w.mu.Lock()
	delete(w.aps, bssid)
	w.mu.Unlock()
}

// AP returns the access point with the given BSSID.
func (w *World) AP(bssid string) (AccessPoint, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	ap, ok := w.aps[bssid]
	return ap, ok
}

// SetRSSI changes the signal strength at which an AP is heard.
func (w *World) SetRSSI(bssid string, rssi int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	ap, ok := w.aps[bssid]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAP, bssid)
	}
	ap.RSSI = rssi
	w.aps[bssid] = ap
	return nil
}

// Update applies f to the AP with the given BSSID.
func (w *World) Update(bssid string, f func(*AccessPoint)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	ap, ok := w.aps[bssid]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAP, bssid)
	}
	f(&ap)
	ap.BSSID = bssid
	w.aps[bssid] = ap
	return nil
}

// Scan returns every AP, strongest first.
func (w *World) Scan() []AccessPoint {
	w.mu.RLock()
	out := make([]AccessPoint, 0, len(w.aps))
	for _, ap := range w.aps {
		out = append(out, ap)
	}
	w.mu.RUnlock()
	sortBySignal(out)
	return out
}

// BySSID returns the APs advertising ssid, strongest first.
func (w *World) BySSID(ssid string) []AccessPoint {
	w.mu.RLock()
	var out []AccessPoint
	for _, ap := range w.aps {
		if ap.SSID == ssid {
			out = append(out, ap)
		}
	}
	w.mu.RUnlock()
	sortBySignal(out)
	return out
}

func sortBySignal(aps []AccessPoint) {
	sort.Slice(aps, func(i, j int) bool {
		if aps[i].RSSI != aps[j].RSSI {
			return aps[i].RSSI > aps[j].RSSI
		}
		return aps[i].BSSID < aps[j].BSSID
	})
}
