package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/stactl/stactl-go/internal/sim"
	"github.com/stactl/stactl-go/pkg/clientmode"
	"github.com/stactl/stactl-go/pkg/wifi"
)

func newReadline() (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "stactl> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return rl, nil
}

// Console turns text commands into machine requests and simulated world
// changes.
type Console struct {
	m   *clientmode.Machine
	env *sim.Environment
	out io.Writer
	rl  *readline.Instance

	handles map[clientmode.RequestKind]*clientmode.Handle
}

// Run reads commands until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context) {
	defer c.rl.Close()
	go func() {
		<-ctx.Done()
		c.rl.Close()
	}()

	c.printHelp()
	for {
		line, err := c.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			return
		}
		if !c.Exec(ctx, line) {
			return
		}
	}
}

// RunScript executes each line of the file at path. Blank lines and lines
// starting with # are skipped.
func (c *Console) RunScript(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fmt.Fprintf(c.out, "> %s\n", line)
		if !c.Exec(ctx, line) {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
	return sc.Err()
}

// Exec runs one command line. It returns false when the console should
// stop.
func (c *Console) Exec(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		c.printHelp()
	case "status", "s":
		c.cmdStatus()
	case "mode":
		err = c.cmdMode(args)
	case "connect", "c":
		err = c.cmdConnect(args)
	case "disconnect", "d":
		err = c.m.Disconnect()
	case "reconnect":
		err = c.m.Post(clientmode.Reconnect{})
	case "roam":
		err = c.cmdRoam(args)
	case "rssi":
		err = c.cmdRSSI(args)
	case "thresholds":
		err = c.cmdThresholds(args)
	case "poll":
		err = c.onOff(args, func(on bool) clientmode.Event { return clientmode.EnableRSSIPoll{On: on} })
	case "screen":
		err = c.onOff(args, func(on bool) clientmode.Event { return clientmode.ScreenStateChanged{On: on} })
	case "highperf":
		err = c.onOff(args, func(on bool) clientmode.Event { return clientmode.SetHighPerfMode{On: on} })
	case "suspend":
		err = c.onOff(args, func(on bool) clientmode.Event { return clientmode.SetSuspendPreference{Allow: on} })
	case "request":
		err = c.cmdRequest(args)
	case "unwanted":
		err = c.cmdUnwanted(args)
	case "accept":
		err = c.onOffErr(args, c.env.Connectivity.AcceptUnvalidated)
	case "kick":
		err = c.cmdKick(args)
	case "ifdown":
		c.env.Radio.InterfaceDown()
	case "unreachable":
		c.env.DHCP.LoseReachability(strings.Join(args, " "))
	case "networks", "n":
		c.cmdNetworks()
	case "scan":
		c.cmdScan()
	case "sleep":
		err = c.cmdSleep(ctx, args)
	case "quit", "exit", "q":
		fmt.Fprintln(c.out, "Exiting...")
		return false
	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
	return true
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
stactl commands:
  Machine:
    status                    - Show state, link and attempt
    mode <connect|scan|off>   - Set the operational mode
    connect <id> [bssid]      - Connect to a saved network
    disconnect                - Tear down the link
    reconnect                 - Reconnect to the current network
    roam <id> <bssid>         - Roam to another access point
    thresholds <dBm...>|off   - Arm or stop the firmware RSSI monitor
    poll <on|off>             - Enable or disable RSSI polling
    screen <on|off>           - Report a screen state change
    highperf <on|off>         - Request high performance mode
    suspend <on|off>          - Set the user's suspend optimization preference
    request <connection|untrusted> <on|off>
                              - Hold or release a request handle

  Simulated world:
    rssi <bssid> <dBm>        - Move the device relative to an access point
    kick [reason]             - Deauthenticate from the access point
    ifdown                    - Remove the wireless interface
    unreachable [detail]      - Lose IP reachability
    unwanted <reason>         - Have the agent declare the network unwanted
    accept <on|off>           - Answer the no-internet prompt
    networks                  - List saved networks
    scan                      - List access points in range

  General:
    sleep <duration>          - Wait, e.g. sleep 500ms
    help                      - Show this help
    quit                      - Exit`)
}

func (c *Console) cmdStatus() {
	s := c.m.Status()
	path := make([]string, len(s.Path))
	for i, id := range s.Path {
		path[i] = id.String()
	}
	fmt.Fprintf(c.out, "State:       %s\n", strings.Join(path, " > "))
	fmt.Fprintf(c.out, "Mode:        %s\n", s.Mode)
	if s.CurrentNetworkID != wifi.InvalidNetworkID {
		fmt.Fprintf(c.out, "Network:     %d (%s) via %s\n", s.CurrentNetworkID, s.Info.SSID, s.CurrentBSSID)
		fmt.Fprintf(c.out, "Signal:      %d dBm, level %d, %d MHz, %d Mbps\n",
			s.Info.RSSI, s.SignalLevel, s.Info.FrequencyMHz, s.Info.LinkSpeedMbps)
	}
	if s.Info.IPAddress.IsValid() {
		fmt.Fprintf(c.out, "Address:     %s\n", s.Info.IPAddress)
	}
	fmt.Fprintf(c.out, "Supplicant:  %s\n", s.Info.SupplicantState)
	fmt.Fprintf(c.out, "Suspend:     enabled=%t inhibited=%s\n", s.SuspendEnabled, s.SuspendMask)
	fmt.Fprintf(c.out, "RSSI:        poll=%t offload=%t thresholds=%v\n", s.PollEnabled, s.OffloadActive, s.Thresholds)
	if s.Attempt != nil {
		fmt.Fprintf(c.out, "Attempt:     %s network %d (%s)\n", s.Attempt.ID, s.Attempt.NetworkID, s.Attempt.RoamType)
	}
	if d := c.m.DisconnectedDuration(); d > 0 {
		fmt.Fprintf(c.out, "Disconnected for %s\n", d.Round(time.Millisecond))
	}
	ps := c.env.Policy.State()
	fmt.Fprintf(c.out, "Auto-join:   %t (retry scheduled=%t, next delay %s)\n", ps.AutoJoin, ps.RetryScheduled, ps.NextDelay)
	if bl := c.env.Policy.Blocklist(); len(bl) > 0 {
		fmt.Fprintf(c.out, "Blocklist:   %s\n", strings.Join(bl, ", "))
	}
}

func (c *Console) cmdMode(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: mode <connect|scan|off>")
	}
	mode, ok := wifi.ParseOperationalMode(args[0])
	if !ok {
		return fmt.Errorf("unknown mode %q", args[0])
	}
	return c.m.SetOperationalMode(mode)
}

func (c *Console) cmdConnect(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: connect <id> [bssid]")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid network id: %w", err)
	}
	bssid := ""
	if len(args) == 2 {
		if bssid, err = parseBSSID(args[1]); err != nil {
			return err
		}
	}
	c.env.Profiles.Select(id)
	return c.m.Connect(id, bssid)
}

func (c *Console) cmdRoam(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: roam <id> <bssid>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid network id: %w", err)
	}
	bssid, err := parseBSSID(args[1])
	if err != nil {
		return err
	}
	return c.m.Roam(id, bssid)
}

func (c *Console) cmdRSSI(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: rssi <bssid> <dBm>")
	}
	bssid, err := parseBSSID(args[0])
	if err != nil {
		return err
	}
	rssi, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid rssi: %w", err)
	}
	return c.env.Radio.SetRSSI(bssid, rssi)
}

func (c *Console) cmdThresholds(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: thresholds <dBm...>|off")
	}
	if len(args) == 1 && strings.EqualFold(args[0], "off") {
		return c.m.Post(clientmode.StopRSSIMonitoring{})
	}
	ts := make([]int, 0, len(args))
	for _, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("invalid threshold %q", a)
		}
		ts = append(ts, v)
	}
	out := c.out
	return c.m.Post(clientmode.StartRSSIMonitoring{
		Thresholds: ts,
		Reply: func(err error) {
			if err != nil {
				fmt.Fprintf(out, "RSSI monitoring: %v\n", err)
			}
		},
	})
}

func (c *Console) cmdRequest(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: request <connection|untrusted> <on|off>")
	}
	var kind clientmode.RequestKind
	switch strings.ToLower(args[0]) {
	case "connection":
		kind = clientmode.RequestConnection
	case "untrusted":
		kind = clientmode.RequestUntrusted
	default:
		return fmt.Errorf("unknown request %q", args[0])
	}
	on, err := parseOnOff(args[1])
	if err != nil {
		return err
	}
	c.request(kind, on)
	return nil
}

// request holds at most one handle per kind.
func (c *Console) request(kind clientmode.RequestKind, on bool) {
	h, held := c.handles[kind]
	switch {
	case on && !held:
		c.handles[kind] = c.m.Requests().Acquire(kind)
	case !on && held:
		h.Release()
		delete(c.handles, kind)
	}
}

func (c *Console) cmdUnwanted(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: unwanted <reason>")
	}
	reason, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid reason: %w", err)
	}
	return c.env.Connectivity.Unwanted(reason)
}

func (c *Console) cmdKick(args []string) error {
	reason := wifi.ReasonDeauthLeaving
	if len(args) > 0 {
		v, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil {
			return fmt.Errorf("invalid reason: %w", err)
		}
		reason = wifi.ReasonCode(v)
	}
	return c.env.Radio.Kick(reason)
}

func (c *Console) cmdNetworks() {
	for _, p := range c.env.Profiles.List() {
		status := "enabled"
		if p.Disabled != wifi.DisableNone {
			status = "disabled: " + p.Disabled.String()
		}
		fmt.Fprintf(c.out, "  %3d  %-20s %-10s %s\n", p.Config.NetworkID, p.Config.SSID, p.Config.Security, status)
	}
}

func (c *Console) cmdScan() {
	for _, ap := range c.env.World.Scan() {
		mark := " "
		if c.env.Policy.Blocklisted(ap.BSSID) {
			mark = "x"
		}
		fmt.Fprintf(c.out, "%s %s  %4d dBm  %4d MHz  %-20s %s\n",
			mark, ap.BSSID, ap.RSSI, ap.FrequencyMHz, ap.SSID, ap.Security)
	}
}

func (c *Console) cmdSleep(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: sleep <duration>")
	}
	d, err := time.ParseDuration(args[0])
	if err != nil {
		return err
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
	return nil
}

func (c *Console) onOff(args []string, ev func(bool) clientmode.Event) error {
	return c.onOffErr(args, func(on bool) error { return c.m.Post(ev(on)) })
}

func (c *Console) onOffErr(args []string, f func(bool) error) error {
	if len(args) != 1 {
		return errors.New("expected on or off")
	}
	on, err := parseOnOff(args[0])
	if err != nil {
		return err
	}
	return f(on)
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func parseBSSID(s string) (string, error) {
	mac, err := net.ParseMAC(s)
	if err != nil {
		return "", fmt.Errorf("invalid bssid: %w", err)
	}
	return mac.String(), nil
}
