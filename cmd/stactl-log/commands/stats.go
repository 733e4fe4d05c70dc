package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/stactl/stactl-go/pkg/log"
)

// Stats holds aggregate statistics about a trace.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	EventsByOutcome   map[log.Outcome]int
	Transitions       map[string]int
	Attempts          map[string]*AttemptStats
	Errors            int
	Defects           int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// AttemptStats summarizes one connection attempt.
type AttemptStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	SSID      string
	RoamType  string
	Code      string
	Duration  time.Duration
	Ended     bool
}

// RunStats analyzes the trace at path and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	defer reader.Close()

	stats := newStats()
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func newStats() *Stats {
	return &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		EventsByOutcome:   make(map[log.Outcome]int),
		Transitions:       make(map[string]int),
		Attempts:          make(map[string]*AttemptStats),
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	if event.Dispatch != nil {
		s.EventsByOutcome[event.Dispatch.Outcome]++
	}
	if sc := event.StateChange; sc != nil && sc.Entity == log.StateEntityMachine {
		s.Transitions[sc.OldState+" -> "+sc.NewState]++
	}
	if event.Error != nil {
		s.Errors++
		if event.Error.Defect {
			s.Defects++
		}
	}

	if event.AttemptID == "" {
		return
	}
	a, ok := s.Attempts[event.AttemptID]
	if !ok {
		a = &AttemptStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Attempts[event.AttemptID] = a
	}
	a.Events++
	if event.Timestamp.After(a.LastSeen) {
		a.LastSeen = event.Timestamp
	}
	if ae := event.Attempt; ae != nil {
		if ae.SSID != "" {
			a.SSID = ae.SSID
		}
		if ae.RoamType != "" {
			a.RoamType = ae.RoamType
		}
		if ae.Phase == log.AttemptEnded {
			a.Ended = true
			a.Code = ae.Code
			if ae.Duration != nil {
				a.Duration = *ae.Duration
			}
		}
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Client Mode Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerCore, log.LayerLink, log.LayerIP, log.LayerConnectivity, log.LayerPolicy} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryDispatch, log.CategoryState, log.CategoryAttempt, log.CategoryCommand, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.EventsByOutcome) > 0 {
		fmt.Fprintln(w, "Dispatch Outcomes:")
		for _, o := range []log.Outcome{log.OutcomeHandled, log.OutcomeDeferred, log.OutcomeDiscarded, log.OutcomeUnhandled, log.OutcomeStale} {
			if count := stats.EventsByOutcome[o]; count > 0 {
				fmt.Fprintf(w, "  %-14s %d\n", o.String()+":", count)
			}
		}
		fmt.Fprintln(w)
	}

	if len(stats.Transitions) > 0 {
		fmt.Fprintln(w, "Transitions:")
		keys := make([]string, 0, len(stats.Transitions))
		for k := range stats.Transitions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %-40s %d\n", k, stats.Transitions[k])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Attempts: %d\n", len(stats.Attempts))
	if len(stats.Attempts) > 0 {
		type attemptInfo struct {
			id    string
			stats *AttemptStats
		}
		list := make([]attemptInfo, 0, len(stats.Attempts))
		for id, as := range stats.Attempts {
			list = append(list, attemptInfo{id, as})
		}
		sort.Slice(list, func(i, j int) bool {
			return list[i].stats.FirstSeen.Before(list[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, a := range list {
			fmt.Fprintf(w, "  [%s] %d events", shortenID(a.id), a.stats.Events)
			if a.stats.SSID != "" {
				fmt.Fprintf(w, ", ssid %s", a.stats.SSID)
			}
			if a.stats.RoamType != "" {
				fmt.Fprintf(w, ", %s", a.stats.RoamType)
			}
			if a.stats.Ended {
				fmt.Fprintf(w, ", %s after %s", a.stats.Code, formatDuration(a.stats.Duration))
			} else {
				fmt.Fprint(w, ", open")
			}
			fmt.Fprintln(w)
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d (defects: %d)\n", stats.Errors, stats.Defects)
	}
}
