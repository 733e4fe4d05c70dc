package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger at Debug level.
// Defects are logged at Error level so they are never filtered out.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("iface", event.Interface),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}
	if event.State != "" {
		attrs = append(attrs, slog.String("state", event.State))
	}
	if event.AttemptID != "" {
		attrs = append(attrs, slog.String("attempt_id", event.AttemptID))
	}
	if event.NetworkID != nil {
		attrs = append(attrs, slog.Int("network_id", *event.NetworkID))
	}
	if event.BSSID != "" {
		attrs = append(attrs, slog.String("bssid", event.BSSID))
	}

	level := slog.LevelDebug
	switch {
	case event.Dispatch != nil:
		attrs = append(attrs,
			slog.String("what", event.Dispatch.What),
			slog.String("outcome", event.Dispatch.Outcome.String()),
		)
		if event.Dispatch.Detail != "" {
			attrs = append(attrs, slog.String("detail", event.Dispatch.Detail))
		}
		if event.Dispatch.ProcessingTime != nil {
			attrs = append(attrs, slog.Duration("processing_time", *event.Dispatch.ProcessingTime))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Attempt != nil:
		attrs = append(attrs, slog.String("phase", event.Attempt.Phase.String()))
		if event.Attempt.Code != "" {
			attrs = append(attrs, slog.String("code", event.Attempt.Code))
		}
		if event.Attempt.Duration != nil {
			attrs = append(attrs, slog.Duration("duration", *event.Attempt.Duration))
		}
	case event.Command != nil:
		attrs = append(attrs, slog.String("command", event.Command.Name))
		if event.Command.Detail != "" {
			attrs = append(attrs, slog.String("detail", event.Command.Detail))
		}
		if event.Command.Err != "" {
			attrs = append(attrs, slog.String("error", event.Command.Err))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Code != nil {
			attrs = append(attrs, slog.Int("error_code", *event.Error.Code))
		}
		if event.Error.Defect {
			level = slog.LevelError
			attrs = append(attrs, slog.Bool("defect", true))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "trace", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
