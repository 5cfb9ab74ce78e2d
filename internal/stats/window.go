// Package stats derives dashboard figures from raw monitoring records:
// uptime percentage, online state, speed aggregates, recent disconnects
// and hourly success-rate buckets. Every function is pure; callers sample
// the clock once and pass the same instant through a whole computation so
// all figures describe one moment.
package stats

import (
	"time"

	"github.com/akarlsen/connwatch/internal/domain"
)

// DefaultWindowHours is the trailing window applied when a caller passes
// a non-positive span.
const DefaultWindowHours = 24

func cutoff(now time.Time, hours float64) time.Time {
	if hours <= 0 {
		hours = DefaultWindowHours
	}
	return now.Add(-time.Duration(hours * float64(time.Hour)))
}

// inWindow is the single boundary rule for all record types: the cutoff
// itself is included, zero (unparsable) timestamps are not.
func inWindow(ts, cut time.Time) bool {
	return !ts.IsZero() && !ts.Before(cut)
}

// RecentConnectivity filters to records inside the trailing window,
// keeping storage order.
func RecentConnectivity(records []domain.ConnectivityRecord, now time.Time, hours float64) []domain.ConnectivityRecord {
	cut := cutoff(now, hours)
	out := make([]domain.ConnectivityRecord, 0, len(records))
	for _, r := range records {
		if inWindow(r.Timestamp, cut) {
			out = append(out, r)
		}
	}
	return out
}

// RecentSpeedTests filters to records inside the trailing window,
// keeping storage order.
func RecentSpeedTests(records []domain.SpeedTestRecord, now time.Time, hours float64) []domain.SpeedTestRecord {
	cut := cutoff(now, hours)
	out := make([]domain.SpeedTestRecord, 0, len(records))
	for _, r := range records {
		if inWindow(r.Timestamp, cut) {
			out = append(out, r)
		}
	}
	return out
}

// RecentEvents filters to events inside the trailing window, keeping
// storage order.
func RecentEvents(events []domain.DisconnectEvent, now time.Time, hours float64) []domain.DisconnectEvent {
	cut := cutoff(now, hours)
	out := make([]domain.DisconnectEvent, 0, len(events))
	for _, e := range events {
		if inWindow(e.Timestamp, cut) {
			out = append(out, e)
		}
	}
	return out
}
