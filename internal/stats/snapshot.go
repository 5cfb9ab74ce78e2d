package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/akarlsen/connwatch/internal/domain"
	"github.com/akarlsen/connwatch/internal/repo"
)

// Snapshot composes the dashboard view: current state plus trailing-24h
// figures, all computed against the same now. Metadata trouble degrades
// to an empty location; a failing record source is a real error and
// propagates, so callers can tell "no data yet" from "backend down".
func Snapshot(ctx context.Context, src repo.RecordSource, meta repo.MetadataSource, now time.Time) (domain.StatusSnapshot, error) {
	conns, err := src.Connectivity(ctx)
	if err != nil {
		return domain.StatusSnapshot{}, fmt.Errorf("read connectivity records: %w", err)
	}
	speeds, err := src.SpeedTests(ctx)
	if err != nil {
		return domain.StatusSnapshot{}, fmt.Errorf("read speed test records: %w", err)
	}
	events, err := src.Events(ctx)
	if err != nil {
		return domain.StatusSnapshot{}, fmt.Errorf("read connection events: %w", err)
	}

	snap := domain.StatusSnapshot{GeneratedAt: now}
	if meta != nil {
		if m, err := meta.Metadata(ctx); err == nil {
			snap.Location = m.Location
		}
	}

	recent := RecentConnectivity(conns, now, DefaultWindowHours)
	snap.Online = Online(recent)
	snap.UptimePct = Uptime(recent)
	snap.Speed = Speed(RecentSpeedTests(speeds, now, DefaultWindowHours))
	snap.Disconnects = DisconnectCount(events, now, DefaultWindowHours)
	snap.LastUpdate = lastUpdate(conns, speeds, events)
	return snap, nil
}

// lastUpdate is the newest timestamp across the full record history of
// every type. It reports data freshness, so it deliberately ignores the
// 24h health window.
func lastUpdate(conns []domain.ConnectivityRecord, speeds []domain.SpeedTestRecord, events []domain.DisconnectEvent) *time.Time {
	var max time.Time
	for _, r := range conns {
		if r.Timestamp.After(max) {
			max = r.Timestamp
		}
	}
	for _, r := range speeds {
		if r.Timestamp.After(max) {
			max = r.Timestamp
		}
	}
	for _, e := range events {
		if e.Timestamp.After(max) {
			max = e.Timestamp
		}
	}
	if max.IsZero() {
		return nil
	}
	return &max
}
