package sync

import (
	"fmt"
	"time"
)

// Progress is an advisory snapshot emitted after each ticket. The ETA is a
// rolling-average estimate, not an authoritative completion signal.
type Progress struct {
	Processed int
	Total     int
	TicketID  string
	ETA       time.Duration
}

// ProgressFunc receives progress snapshots during a run.
type ProgressFunc func(Progress)

// etaTracker keeps a rolling window of per-ticket durations and estimates
// the remaining time from their average.
type etaTracker struct {
	window []time.Duration
	size   int
}

func newETATracker(size int) *etaTracker {
	return &etaTracker{size: size}
}

func (t *etaTracker) observe(d time.Duration) {
	t.window = append(t.window, d)
	if len(t.window) > t.size {
		t.window = t.window[1:]
	}
}

func (t *etaTracker) estimate(remaining int) time.Duration {
	if len(t.window) == 0 || remaining <= 0 {
		return 0
	}
	var total time.Duration
	for _, d := range t.window {
		total += d
	}
	avg := total / time.Duration(len(t.window))
	return avg * time.Duration(remaining)
}

// FormatDuration renders a duration as "1h 2m 3s", omitting leading zero
// units.
func FormatDuration(d time.Duration) string {
	seconds := int(d.Round(time.Second).Seconds())
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
