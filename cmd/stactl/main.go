// Command stactl runs the client-mode connection machine against a
// simulated radio, DHCP server and connectivity stack.
//
// The simulated world (access points and saved networks) comes from the
// YAML config. An interactive console drives the machine; --script runs a
// file of console commands instead.
//
// Usage:
//
//	stactl [flags]
//
// Flags:
//
//	--config string        Configuration file path
//	--iface string         Interface name (overrides config)
//	--trace string         CBOR event trace file (overrides config)
//	--state string         Network selection state file (overrides config)
//	--metrics-addr string  Prometheus listen address, e.g. :9110
//	--log-level string     debug, info, warn, error
//	--script string        Run console commands from a file and exit
//	--p2p                  Simulate a peer-to-peer stack sharing the radio
//
// Examples:
//
//	# Interactive session with the demo world
//	stactl --config cmd/stactl/testdata/demo.yaml
//
//	# Scripted run with a trace for stactl-log
//	stactl --config demo.yaml --script roam.txt --trace /tmp/wlan0.cbor
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/stactl/stactl-go/internal/sim"
	"github.com/stactl/stactl-go/pkg/clientmode"
	"github.com/stactl/stactl-go/pkg/config"
	"github.com/stactl/stactl-go/pkg/failure"
	tracelog "github.com/stactl/stactl-go/pkg/log"
	"github.com/stactl/stactl-go/pkg/metrics"
	"github.com/stactl/stactl-go/pkg/persistence"
	"github.com/stactl/stactl-go/pkg/watchdog"
	"github.com/stactl/stactl-go/pkg/wifi"
)

type options struct {
	configFile  string
	iface       string
	trace       string
	state       string
	metricsAddr string
	logLevel    string
	script      string
	p2p         bool
}

func main() {
	var opts options
	fs := flag.NewFlagSet("stactl", flag.ExitOnError)
	fs.StringVar(&opts.configFile, "config", "", "Configuration file path")
	fs.StringVar(&opts.iface, "iface", "", "Interface name")
	fs.StringVar(&opts.trace, "trace", "", "CBOR event trace file")
	fs.StringVar(&opts.state, "state", "", "Network selection state file")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "Prometheus listen address")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&opts.script, "script", "", "Run console commands from a file and exit")
	fs.BoolVar(&opts.p2p, "p2p", false, "Simulate a peer-to-peer stack")
	_ = fs.Parse(os.Args[1:])

	cfg, err := loadConfig(fs, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stactl: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "stactl: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(fs *flag.FlagSet, opts options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		var err error
		if cfg, err = config.Load(opts.configFile); err != nil {
			return nil, err
		}
	}
	if fs.Changed("iface") {
		cfg.Interface = opts.iface
	}
	if fs.Changed("trace") {
		cfg.Trace.Path = opts.trace
	}
	if fs.Changed("state") {
		cfg.State.Path = opts.state
	}
	if fs.Changed("metrics-addr") {
		cfg.Metrics.Listen = opts.metricsAddr
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, opts options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var out, errOut io.Writer = os.Stdout, os.Stderr
	var con *Console
	if opts.script == "" {
		rl, err := newReadline()
		if err != nil {
			return err
		}
		out, errOut = rl.Stdout(), rl.Stderr()
		con = &Console{rl: rl}
	}

	lvl, _ := cfg.LogLevel()
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	var traces []tracelog.Logger
	if cfg.Trace.Path != "" {
		fl, err := tracelog.NewFileLogger(cfg.Trace.Path)
		if err != nil {
			return fmt.Errorf("opening trace: %w", err)
		}
		defer func() {
			if n := fl.Dropped(); n > 0 {
				logger.Warn("trace events dropped", "count", n)
			}
			fl.Close()
		}()
		traces = append(traces, fl)
	}
	if lvl <= slog.LevelDebug {
		traces = append(traces, tracelog.NewSlogAdapter(logger))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	col := metrics.New(reg, cfg.Interface)

	sched := watchdog.RealScheduler{}
	sc, err := simConfig(cfg, sched, logger)
	if err != nil {
		return err
	}
	sc.P2P = opts.p2p
	env := sim.New(sc)

	if cfg.State.Path != "" {
		store := persistence.NewStore(cfg.State.Path)
		st, err := store.Load()
		if err != nil {
			// A bad state file must not keep the station offline.
			logger.Warn("ignoring selection state", "path", store.Path(), "error", err)
		}
		env.Profiles.Restore(st)
		defer func() {
			if err := store.Save(env.Profiles.Snapshot()); err != nil {
				logger.Error("saving selection state", "path", store.Path(), "error", err)
			}
		}()
	}

	collab := env.Collaborators()
	collab.Observer = col
	collab.Broadcaster = col
	collab.Reporters = append(collab.Reporters, col)

	mc := cfg.ClientMode()
	mc.Scheduler = sched
	mc.Logger = logger
	if len(traces) > 0 {
		mc.Trace = tracelog.NewMultiLogger(traces...)
	}
	m, err := clientmode.New(mc, collab)
	if err != nil {
		return err
	}
	env.Attach(m)

	// The simulated stack recovers by cycling the mode. Disabled jumps the
	// queue; Connect follows whatever is already pending.
	env.Recovery.OnTrigger = func(failure.RecoveryReason) {
		_ = m.SetOperationalMode(wifi.ModeDisabled)
		_ = m.Post(clientmode.SetOperationalMode{Mode: wifi.ModeConnect})
	}

	if con == nil {
		con = &Console{}
	}
	con.m = m
	con.env = env
	con.out = out
	con.handles = make(map[clientmode.RequestKind]*clientmode.Handle)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := m.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if cfg.Metrics.Listen != "" {
		srv := &http.Server{
			Addr:              cfg.Metrics.Listen,
			Handler:           metricsMux(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("metrics listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, done := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
			defer done()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if err := m.SetOperationalMode(wifi.ModeConnect); err != nil {
		return err
	}
	if cfg.Policy.AutoJoin {
		con.request(clientmode.RequestConnection, true)
	}

	g.Go(func() error {
		defer cancel()
		defer m.Close()
		if opts.script != "" {
			return con.RunScript(ctx, opts.script)
		}
		con.Run(ctx)
		return nil
	})

	return g.Wait()
}

func metricsMux(reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return mux
}
