package checks

import (
	"context"
	"time"
)

// Pinger is a source that can verify it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SourceReport is the result of a source reachability check.
type SourceReport struct {
	Reachable bool   `json:"reachable"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// CheckSource pings the source within timeout.
func CheckSource(ctx context.Context, source Pinger, timeout time.Duration) SourceReport {
	if source == nil {
		return SourceReport{Error: "no source configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := source.Ping(ctx)
	report := SourceReport{Reachable: err == nil, LatencyMs: time.Since(start).Milliseconds()}
	if err != nil {
		report.Error = err.Error()
	}
	return report
}
