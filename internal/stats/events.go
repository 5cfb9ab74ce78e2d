package stats

import (
	"sort"
	"time"

	"github.com/akarlsen/connwatch/internal/domain"
)

// DefaultEventLimit caps a disconnect listing when the caller does not
// say how many they want.
const DefaultEventLimit = 10

// RecentDisconnects lists disconnect events inside the trailing window,
// newest first. The cap applies before the presentation sort: the last
// `limit` qualifying events in storage order are kept, then flipped to
// descending timestamps. With out-of-order logs that is not the same as
// "the newest by timestamp", and downstream consumers rely on it.
func RecentDisconnects(events []domain.DisconnectEvent, now time.Time, hours float64, limit int) []domain.DisconnectEvent {
	if limit <= 0 {
		limit = DefaultEventLimit
	}
	recent := RecentEvents(events, now, hours)
	n := 0
	for _, e := range recent {
		if e.EventType == domain.EventDisconnect {
			recent[n] = e
			n++
		}
	}
	disconnects := recent[:n]
	if len(disconnects) > limit {
		disconnects = disconnects[len(disconnects)-limit:]
	}
	out := make([]domain.DisconnectEvent, len(disconnects))
	copy(out, disconnects)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// DisconnectCount counts disconnect events inside the trailing window,
// uncapped. Order does not matter for a count, so this skips the
// truncation and sort that RecentDisconnects applies.
func DisconnectCount(events []domain.DisconnectEvent, now time.Time, hours float64) int {
	cut := cutoff(now, hours)
	n := 0
	for _, e := range events {
		if e.EventType == domain.EventDisconnect && inWindow(e.Timestamp, cut) {
			n++
		}
	}
	return n
}
