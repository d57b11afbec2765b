package advisor

import (
	"io"
	"log/slog"
)

// CallEvent records metadata about a single advisor call.
type CallEvent struct {
	Endpoint  Endpoint
	Sessions  int
	Attempts  int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about advisor calls for logging.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes advisor call events as structured log lines.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"endpoint", string(event.Endpoint),
		"sessions", event.Sessions,
		"attempts", event.Attempts,
		"latency_ms", event.LatencyMs,
	}
	if !event.Success {
		o.logger.Warn("advisor_call", append(attrs, "status", "err:"+event.ErrorCode)...)
		return
	}
	o.logger.Info("advisor_call", append(attrs, "status", "ok")...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
