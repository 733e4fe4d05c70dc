// Package config loads stactl settings from YAML.
//
// Load starts from the embedded defaults and applies the user's file on
// top, so a file only needs the keys it changes.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stactl/stactl-go/pkg/clientmode"
	"github.com/stactl/stactl-go/pkg/wifi"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Duration is a time.Duration written as a Go duration string.
type Duration time.Duration

// UnmarshalYAML parses strings such as "1m30s".
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("line %d: duration must be a string: %w", value.Line, err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML writes the duration string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full settings file.
type Config struct {
	Interface string `yaml:"interface"`

	Guards Guards `yaml:"guards"`
	RSSI   RSSI   `yaml:"rssi"`

	SuspendOptimizations         bool     `yaml:"suspend_optimizations"`
	DisconnectOnReachabilityLoss bool     `yaml:"disconnect_on_reachability_loss"`
	ConnectedMACRandomization    bool     `yaml:"connected_mac_randomization"`
	LastSelectedExpiry           Duration `yaml:"last_selected_expiry"`

	// BugReportInterval throttles automatic bug reports. "0s" disables
	// throttling.
	BugReportInterval Duration `yaml:"bug_report_interval"`

	Policy  Policy  `yaml:"policy"`
	Metrics Metrics `yaml:"metrics"`
	Trace   Trace   `yaml:"trace"`
	State   State   `yaml:"state"`
	Log     Log     `yaml:"log"`

	Networks     []Network     `yaml:"networks"`
	AccessPoints []AccessPoint `yaml:"access_points"`
}

// Guards are the machine's watchdog intervals.
type Guards struct {
	Roam           Duration `yaml:"roam"`
	Disconnecting  Duration `yaml:"disconnecting"`
	P2PDisable     Duration `yaml:"p2p_disable"`
	ConnectTimeout Duration `yaml:"connect_timeout"`
}

type RSSI struct {
	PollInterval Duration `yaml:"poll_interval"`
	PollEnabled  bool     `yaml:"poll_enabled"`
}

// Policy tunes network selection and profile disabling.
type Policy struct {
	AutoJoin             bool     `yaml:"auto_join"`
	DHCPFailureThreshold int      `yaml:"dhcp_failure_threshold"`
	BlocklistThreshold   int      `yaml:"blocklist_threshold"`
	BlocklistTTL         Duration `yaml:"blocklist_ttl"`
	BlocklistSize        int      `yaml:"blocklist_size"`
	Backoff              Backoff  `yaml:"backoff"`
}

type Backoff struct {
	Initial Duration `yaml:"initial"`
	Max     Duration `yaml:"max"`
}

type Metrics struct {
	// Listen is the address of the /metrics endpoint. Empty disables it.
	Listen string `yaml:"listen"`
}

type Trace struct {
	// Path of the CBOR event trace. Empty disables tracing.
	Path string `yaml:"path"`
}

type State struct {
	// Path of the JSON file holding network selection status between runs.
	// Empty keeps it in memory only.
	Path string `yaml:"path"`
}

type Log struct {
	Level string `yaml:"level"`
}

// Network is a saved network profile.
type Network struct {
	ID           int     `yaml:"id"`
	SSID         string  `yaml:"ssid"`
	Security     string  `yaml:"security"`
	Passphrase   string  `yaml:"passphrase"`
	Hidden       bool    `yaml:"hidden"`
	Static       *Static `yaml:"static"`
	Proxy        string  `yaml:"proxy"`
	Metered      bool    `yaml:"metered"`
	Ephemeral    bool    `yaml:"ephemeral"`
	RandomizeMAC bool    `yaml:"randomize_mac"`
	SIMIdentity  string  `yaml:"sim_identity"`
}

// Static is a static IP assignment.
type Static struct {
	Address string   `yaml:"address"`
	Gateway string   `yaml:"gateway"`
	DNS     []string `yaml:"dns"`
}

// AccessPoint is a simulated BSS.
type AccessPoint struct {
	SSID          string `yaml:"ssid"`
	BSSID         string `yaml:"bssid"`
	Security      string `yaml:"security"`
	Passphrase    string `yaml:"passphrase"`
	RSSI          int    `yaml:"rssi"`
	FrequencyMHz  int    `yaml:"frequency"`
	LinkSpeedMbps int    `yaml:"link_speed"`
	Internet      bool   `yaml:"internet"`
	DHCPBroken    bool   `yaml:"dhcp_broken"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := parseOnto(&Config{}, defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Parse applies data on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg, err := parseOnto(Default(), data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func parseOnto(cfg *Config, data []byte) (*Config, error) {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	if c.Interface == "" {
		return fmt.Errorf("%w: interface is empty", ErrInvalid)
	}
	for name, d := range map[string]Duration{
		"guards.roam":            c.Guards.Roam,
		"guards.disconnecting":   c.Guards.Disconnecting,
		"guards.p2p_disable":     c.Guards.P2PDisable,
		"guards.connect_timeout": c.Guards.ConnectTimeout,
		"rssi.poll_interval":     c.RSSI.PollInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalid, name)
		}
	}
	if c.BugReportInterval < 0 {
		return fmt.Errorf("%w: bug_report_interval is negative", ErrInvalid)
	}
	if c.Policy.DHCPFailureThreshold < 1 || c.Policy.BlocklistThreshold < 1 || c.Policy.BlocklistSize < 1 {
		return fmt.Errorf("%w: policy thresholds and sizes must be at least 1", ErrInvalid)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}

	ids := make(map[int]struct{}, len(c.Networks))
	for i, n := range c.Networks {
		if _, dup := ids[n.ID]; dup {
			return fmt.Errorf("%w: networks[%d]: duplicate id %d", ErrInvalid, i, n.ID)
		}
		ids[n.ID] = struct{}{}
		if _, err := n.WifiConfig(); err != nil {
			return fmt.Errorf("networks[%d]: %w", i, err)
		}
	}
	bssids := make(map[string]struct{}, len(c.AccessPoints))
	for i, ap := range c.AccessPoints {
		mac, err := net.ParseMAC(ap.BSSID)
		if err != nil {
			return fmt.Errorf("%w: access_points[%d]: bssid: %v", ErrInvalid, i, err)
		}
		if _, dup := bssids[mac.String()]; dup {
			return fmt.Errorf("%w: access_points[%d]: duplicate bssid %s", ErrInvalid, i, ap.BSSID)
		}
		bssids[mac.String()] = struct{}{}
		if ap.SSID == "" {
			return fmt.Errorf("%w: access_points[%d]: ssid is empty", ErrInvalid, i)
		}
		if _, ok := wifi.ParseSecurity(ap.Security); !ok {
			return fmt.Errorf("%w: access_points[%d]: unknown security %q", ErrInvalid, i, ap.Security)
		}
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return lvl, nil
}

// ClientMode maps the settings onto a machine configuration. Scheduler,
// Logger and Trace are left for the caller.
func (c *Config) ClientMode() clientmode.Config {
	bugReports := c.BugReportInterval.Std()
	if bugReports == 0 {
		bugReports = -1
	}
	return clientmode.Config{
		Interface:                    c.Interface,
		RoamGuard:                    c.Guards.Roam.Std(),
		DisconnectingGuard:           c.Guards.Disconnecting.Std(),
		P2PDisableGuard:              c.Guards.P2PDisable.Std(),
		ConnectTimeout:               c.Guards.ConnectTimeout.Std(),
		PollInterval:                 c.RSSI.PollInterval.Std(),
		RSSIPollEnabled:              c.RSSI.PollEnabled,
		SuspendOptimizations:         c.SuspendOptimizations,
		DisconnectOnReachabilityLoss: c.DisconnectOnReachabilityLoss,
		ConnectedMACRandomization:    c.ConnectedMACRandomization,
		LastSelectedExpiry:           c.LastSelectedExpiry.Std(),
		BugReportInterval:            bugReports,
	}
}

// NetworkConfigs converts the saved networks.
func (c *Config) NetworkConfigs() ([]wifi.NetworkConfig, error) {
	out := make([]wifi.NetworkConfig, 0, len(c.Networks))
	for i, n := range c.Networks {
		wc, err := n.WifiConfig()
		if err != nil {
			return nil, fmt.Errorf("networks[%d]: %w", i, err)
		}
		out = append(out, wc)
	}
	return out, nil
}

// WifiConfig converts n into a profile.
func (n Network) WifiConfig() (wifi.NetworkConfig, error) {
	if n.ID < 0 {
		return wifi.NetworkConfig{}, fmt.Errorf("%w: negative id %d", ErrInvalid, n.ID)
	}
	if n.SSID == "" {
		return wifi.NetworkConfig{}, fmt.Errorf("%w: ssid is empty", ErrInvalid)
	}
	sec, ok := wifi.ParseSecurity(n.Security)
	if !ok {
		return wifi.NetworkConfig{}, fmt.Errorf("%w: unknown security %q", ErrInvalid, n.Security)
	}
	if sec == wifi.SecurityWPA2PSK || sec == wifi.SecurityWPA3SAE {
		if l := len(n.Passphrase); l < 8 || l > 63 {
			return wifi.NetworkConfig{}, fmt.Errorf("%w: passphrase must be 8 to 63 characters", ErrInvalid)
		}
	}
	wc := wifi.NetworkConfig{
		NetworkID:    n.ID,
		SSID:         n.SSID,
		Security:     sec,
		Passphrase:   n.Passphrase,
		Hidden:       n.Hidden,
		HTTPProxy:    n.Proxy,
		Metered:      n.Metered,
		Ephemeral:    n.Ephemeral,
		RandomizeMAC: n.RandomizeMAC,
	}
	if n.Static != nil {
		st, err := n.Static.parse()
		if err != nil {
			return wifi.NetworkConfig{}, err
		}
		wc.IPAssignment = wifi.IPAssignmentStatic
		wc.Static = st
	}
	return wc, nil
}

func (s *Static) parse() (*wifi.StaticIPConfig, error) {
	addr, err := netip.ParsePrefix(s.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: static.address: %v", ErrInvalid, err)
	}
	gw, err := netip.ParseAddr(s.Gateway)
	if err != nil {
		return nil, fmt.Errorf("%w: static.gateway: %v", ErrInvalid, err)
	}
	out := &wifi.StaticIPConfig{Address: addr, Gateway: gw}
	for _, d := range s.DNS {
		a, err := netip.ParseAddr(d)
		if err != nil {
			return nil, fmt.Errorf("%w: static.dns: %v", ErrInvalid, err)
		}
		out.DNS = append(out.DNS, a)
	}
	return out, nil
}

// SIMIdentities returns the configured EAP identities by network ID.
func (c *Config) SIMIdentities() map[int]string {
	out := make(map[int]string)
	for _, n := range c.Networks {
		if n.SIMIdentity != "" {
			out[n.ID] = n.SIMIdentity
		}
	}
	return out
}
