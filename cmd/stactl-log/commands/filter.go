package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/stactl/stactl-go/pkg/log"
)

// FilterOptions specifies filtering criteria for the filter command.
type FilterOptions struct {
	Output      string
	Interface   string
	AttemptID   string
	State       string
	NetworkID   int
	HasNetwork  bool
	TimeStart   string
	TimeEnd     string
	Layer       string
	Direction   string
	Category    string
	DefectsOnly bool
}

// BuildFilter turns the options into a trace filter.
func BuildFilter(opts FilterOptions) (log.Filter, error) {
	filter := log.Filter{
		Interface:   opts.Interface,
		AttemptID:   opts.AttemptID,
		State:       opts.State,
		DefectsOnly: opts.DefectsOnly,
	}
	if opts.HasNetwork {
		id := opts.NetworkID
		filter.NetworkID = &id
	}
	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}
	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}
	if opts.Layer != "" {
		l, err := ParseLayerFlag(opts.Layer)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Layer = &l
	}
	if opts.Direction != "" {
		d, err := ParseDirectionFlag(opts.Direction)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Direction = &d
	}
	if opts.Category != "" {
		c, err := ParseCategoryFlag(opts.Category)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Category = &c
	}
	return filter, nil
}

// RunFilter writes the events of path matching opts to opts.Output and
// returns how many were written.
func RunFilter(path string, opts FilterOptions) (int, error) {
	filter, err := BuildFilter(opts)
	if err != nil {
		return 0, err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open trace: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output trace: %w", err)
	}
	defer logger.Close()

	count := 0
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("failed to read event: %w", err)
		}
		logger.Log(event)
		count++
	}
}
