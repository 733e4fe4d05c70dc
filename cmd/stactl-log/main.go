// Command stactl-log views and analyzes client-mode trace files.
//
// Traces are written by stactl with --trace (or trace.path in the config):
// a stream of CBOR events covering dispatched events, state changes,
// attempts, collaborator commands and defects.
//
// Usage:
//
//	stactl-log <command> [flags] <trace.cbor>
//
// Commands:
//
//	view     View a trace in human-readable format
//	export   Export a trace to JSON lines or CSV
//	filter   Filter a trace and write to a new file
//	stats    Show statistics about a trace
//
// Examples:
//
//	# View all events
//	stactl-log view wlan0.cbor
//
//	# View only link-layer commands
//	stactl-log view --layer link --category command wlan0.cbor
//
//	# Keep one attempt
//	stactl-log filter --attempt 7d9f5a52-... -o attempt.cbor wlan0.cbor
//
//	# Show statistics
//	stactl-log stats wlan0.cbor
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/stactl/stactl-go/cmd/stactl-log/commands"
)

const usage = `stactl-log - client-mode trace analyzer

Usage:
  stactl-log <command> [flags] <trace.cbor>

Commands:
  view     View a trace in human-readable format
  export   Export a trace to JSON lines or CSV
  filter   Filter a trace and write to a new file
  stats    Show statistics about a trace

Use "stactl-log <command> --help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "view":
		err = runView(args)
	case "export":
		err = runExport(args)
	case "filter":
		err = runFilter(args)
	case "stats":
		err = runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newFlagSet(name, summary string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "stactl-log %s - %s\n\nUsage:\n  stactl-log %s [flags] <trace.cbor>\n\nFlags:\n", name, summary, name)
		fs.PrintDefaults()
	}
	return fs
}

// tracePath returns the single positional argument.
func tracePath(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func runView(args []string) error {
	fs := newFlagSet("view", "view a trace in human-readable format")
	layer := fs.String("layer", "", "Filter by layer (core, link, ip, connectivity, policy)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (dispatch, state, attempt, command, error)")
	attemptID := fs.String("attempt", "", "Filter by attempt ID")
	_ = fs.Parse(args)
	path := tracePath(fs)

	filter := commands.ViewFilter{AttemptID: *attemptID}
	if *layer != "" {
		l, err := commands.ParseLayerFlag(*layer)
		if err != nil {
			return err
		}
		filter.Layer = &l
	}
	if *direction != "" {
		d, err := commands.ParseDirectionFlag(*direction)
		if err != nil {
			return err
		}
		filter.Direction = &d
	}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			return err
		}
		filter.Category = &c
	}
	return commands.RunView(path, filter, os.Stdout)
}

func runExport(args []string) error {
	fs := newFlagSet("export", "export a trace to JSON lines or CSV")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.StringP("output", "o", "", "Output file (default: stdout)")
	_ = fs.Parse(args)
	return commands.RunExport(tracePath(fs), *format, *output)
}

func runFilter(args []string) error {
	fs := newFlagSet("filter", "filter a trace and write to a new file")
	var opts commands.FilterOptions
	fs.StringVarP(&opts.Output, "output", "o", "", "Output file (required)")
	fs.StringVar(&opts.Interface, "iface", "", "Filter by interface")
	fs.StringVar(&opts.AttemptID, "attempt", "", "Filter by attempt ID")
	fs.StringVar(&opts.State, "state", "", "Filter by active state")
	fs.IntVar(&opts.NetworkID, "network", 0, "Filter by network ID")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&opts.Layer, "layer", "", "Filter by layer (core, link, ip, connectivity, policy)")
	fs.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (dispatch, state, attempt, command, error)")
	fs.BoolVar(&opts.DefectsOnly, "defects", false, "Keep only defects")
	_ = fs.Parse(args)
	path := tracePath(fs)

	if opts.Output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}
	opts.HasNetwork = fs.Changed("network")

	n, err := commands.RunFilter(path, opts)
	if err != nil {
		return err
	}
	fmt.Printf("Filtered %d events to %s\n", n, opts.Output)
	return nil
}

func runStats(args []string) error {
	fs := newFlagSet("stats", "show statistics about a trace")
	_ = fs.Parse(args)
	return commands.RunStats(tracePath(fs), os.Stdout)
}
