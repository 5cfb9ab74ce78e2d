package watch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/akarlsen/connwatch/internal/domain"
	"github.com/akarlsen/connwatch/internal/notify"
	"github.com/akarlsen/connwatch/internal/repo"
)

// Watcher polls the record source for fresh disconnect events and pushes
// a notification for each batch. It only reads; the prober owns the log.
type Watcher struct {
	Logger   *zap.Logger
	Records  repo.RecordSource
	Notifier notify.Notifier
	Location string
	Interval time.Duration
	Cooldown time.Duration

	lastSeen time.Time // newest event timestamp already handled
	lastSent time.Time
	primed   bool
}

func New(logger *zap.Logger, records repo.RecordSource, notifier notify.Notifier, location string, interval, cooldown time.Duration) *Watcher {
	if interval <= 0 {
		interval = time.Minute
	}
	if cooldown < 0 {
		cooldown = 0
	}
	return &Watcher{
		Logger:   logger,
		Records:  records,
		Notifier: notifier,
		Location: location,
		Interval: interval,
		Cooldown: cooldown,
	}
}

// Run starts the loop. It does an immediate pass, then runs each tick.
// Stops when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	if w.Notifier == nil {
		w.Logger.Info("watcher_disabled")
		return
	}
	t := time.NewTicker(w.Interval)
	defer t.Stop()

	w.scanOnce(ctx, time.Now())

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("watcher_stopped")
			return
		case <-t.C:
			w.scanOnce(ctx, time.Now())
		}
	}
}

func (w *Watcher) scanOnce(ctx context.Context, now time.Time) {
	events, err := w.Records.Events(ctx)
	if err != nil {
		w.Logger.Warn("watcher_read_error", zap.Error(err))
		return
	}

	// First pass only baselines: outages that predate this process are
	// history, not news.
	if !w.primed {
		w.primed = true
		for _, e := range events {
			if e.Timestamp.After(w.lastSeen) {
				w.lastSeen = e.Timestamp
			}
		}
		return
	}

	var fresh []domain.DisconnectEvent
	newest := w.lastSeen
	for _, e := range events {
		if !e.Timestamp.After(w.lastSeen) {
			continue
		}
		if e.Timestamp.After(newest) {
			newest = e.Timestamp
		}
		if e.EventType == domain.EventDisconnect {
			fresh = append(fresh, e)
		}
	}
	w.lastSeen = newest
	if len(fresh) == 0 {
		return
	}

	if !w.lastSent.IsZero() && now.Sub(w.lastSent) < w.Cooldown {
		w.Logger.Info("outage_notification_suppressed",
			zap.Int("events", len(fresh)),
			zap.Duration("cooldown", w.Cooldown))
		return
	}

	latest := fresh[len(fresh)-1]
	title, text := notify.OutageMessage(latest, w.Location)
	if len(fresh) > 1 {
		text += fmt.Sprintf("\n(%d outages since the last scan)", len(fresh))
	}
	if err := w.Notifier.Send(ctx, title, text); err != nil {
		w.Logger.Warn("outage_notification_failed", zap.Error(err))
		return
	}
	w.lastSent = now
	w.Logger.Info("outage_notified",
		zap.Time("event_ts", latest.Timestamp),
		zap.Int("events", len(fresh)))
}
