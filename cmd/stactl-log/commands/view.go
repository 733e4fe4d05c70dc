// Package commands implements the stactl-log CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/stactl/stactl-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Layer     *log.Layer
	Direction *log.Direction
	Category  *log.Category
	AttemptID string
}

func (f ViewFilter) trace() log.Filter {
	return log.Filter{
		Layer:     f.Layer,
		Direction: f.Direction,
		Category:  f.Category,
		AttemptID: f.AttemptID,
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [iface:state] DIRECTION LAYER Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [%s:%s] %-3s %s %s\n",
		ts, event.Interface, event.State, event.Direction, event.Layer, typeLabel(event))

	if event.AttemptID != "" {
		fmt.Fprintf(w, "  Attempt: %s\n", shortenID(event.AttemptID))
	}
	if event.NetworkID != nil || event.BSSID != "" {
		fmt.Fprint(w, "  Network:")
		if event.NetworkID != nil {
			fmt.Fprintf(w, " %d", *event.NetworkID)
		}
		if event.BSSID != "" {
			fmt.Fprintf(w, " %s", event.BSSID)
		}
		fmt.Fprintln(w)
	}

	switch {
	case event.Dispatch != nil:
		formatDispatchDetails(w, event.Dispatch)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Attempt != nil:
		formatAttemptDetails(w, event.Attempt)
	case event.Command != nil:
		formatCommandDetails(w, event.Command)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

func typeLabel(event log.Event) string {
	switch {
	case event.Dispatch != nil:
		return event.Dispatch.What
	case event.StateChange != nil:
		return "State"
	case event.Attempt != nil:
		return "Attempt " + event.Attempt.Phase.String()
	case event.Command != nil:
		return event.Command.Name
	case event.Error != nil:
		if event.Error.Defect {
			return "Defect"
		}
		return "Error"
	default:
		return "Unknown"
	}
}

// shortenID returns the first 8 characters of an attempt ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatDispatchDetails(w io.Writer, d *log.DispatchEvent) {
	fmt.Fprintf(w, "  Outcome: %s\n", d.Outcome)
	if d.Detail != "" {
		fmt.Fprintf(w, "  Detail: %s\n", d.Detail)
	}
	if d.ProcessingTime != nil {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*d.ProcessingTime))
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity)
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatAttemptDetails(w io.Writer, a *log.AttemptEvent) {
	if a.SSID != "" {
		fmt.Fprintf(w, "  SSID: %s\n", a.SSID)
	}
	if a.RoamType != "" {
		fmt.Fprintf(w, "  Roam: %s\n", a.RoamType)
	}
	if a.Code != "" {
		fmt.Fprintf(w, "  Code: %s\n", a.Code)
	}
	if a.Duration != nil {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*a.Duration))
	}
}

func formatCommandDetails(w io.Writer, c *log.CommandEvent) {
	if c.Detail != "" {
		fmt.Fprintf(w, "  Detail: %s\n", c.Detail)
	}
	if c.Err != "" {
		fmt.Fprintf(w, "  Error: %s\n", c.Err)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer)
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Code != nil {
		fmt.Fprintf(w, "  Code: %d\n", *err.Code)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseLayerFlag parses a layer name (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "core":
		return log.LayerCore, nil
	case "link":
		return log.LayerLink, nil
	case "ip":
		return log.LayerIP, nil
	case "connectivity":
		return log.LayerConnectivity, nil
	case "policy":
		return log.LayerPolicy, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be core, link, ip, connectivity, or policy)", s)
	}
}

// ParseDirectionFlag parses a direction name (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category name (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "dispatch":
		return log.CategoryDispatch, nil
	case "state":
		return log.CategoryState, nil
	case "attempt":
		return log.CategoryAttempt, nil
	case "command":
		return log.CategoryCommand, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be dispatch, state, attempt, command, or error)", s)
	}
}

// RunView prints every matching event in path.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.trace())
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
}
