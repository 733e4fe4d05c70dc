package main

import (
	"fmt"
	"log/slog"
	"net"

	"github.com/stactl/stactl-go/internal/sim"
	"github.com/stactl/stactl-go/pkg/config"
	"github.com/stactl/stactl-go/pkg/watchdog"
	"github.com/stactl/stactl-go/pkg/wifi"
)

// simConfig builds the simulated world described by cfg.
func simConfig(cfg *config.Config, sched watchdog.Scheduler, logger *slog.Logger) (sim.Config, error) {
	nets, err := cfg.NetworkConfigs()
	if err != nil {
		return sim.Config{}, err
	}
	aps := make([]sim.AccessPoint, 0, len(cfg.AccessPoints))
	for i, ap := range cfg.AccessPoints {
		mac, err := net.ParseMAC(ap.BSSID)
		if err != nil {
			return sim.Config{}, fmt.Errorf("access_points[%d]: %w", i, err)
		}
		sec, ok := wifi.ParseSecurity(ap.Security)
		if !ok {
			return sim.Config{}, fmt.Errorf("access_points[%d]: unknown security %q", i, ap.Security)
		}
		aps = append(aps, sim.AccessPoint{
			SSID:          ap.SSID,
			BSSID:         mac.String(),
			Security:      sec,
			Passphrase:    ap.Passphrase,
			RSSI:          ap.RSSI,
			FrequencyMHz:  ap.FrequencyMHz,
			LinkSpeedMbps: ap.LinkSpeedMbps,
			Internet:      ap.Internet,
			DHCPBroken:    ap.DHCPBroken,
		})
	}
	return sim.Config{
		Interface:     cfg.Interface,
		AccessPoints:  aps,
		Networks:      nets,
		SIMIdentities: cfg.SIMIdentities(),
		Profiles: sim.ProfilesConfig{
			DHCPFailureThreshold: cfg.Policy.DHCPFailureThreshold,
		},
		BlocklistThreshold: cfg.Policy.BlocklistThreshold,
		BlocklistTTL:       cfg.Policy.BlocklistTTL.Std(),
		BlocklistSize:      cfg.Policy.BlocklistSize,
		Backoff: sim.BackoffConfig{
			Initial: cfg.Policy.Backoff.Initial.Std(),
			Max:     cfg.Policy.Backoff.Max.Std(),
		},
		Scheduler: sched,
		Logger:    logger,
	}, nil
}
