package watch

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/akarlsen/connwatch/internal/domain"
	"github.com/akarlsen/connwatch/internal/repo/memory"
)

// ---- shared helpers ----

type memNotifier struct {
	n    int
	last string
}

func (m *memNotifier) Send(ctx context.Context, title, text string) error {
	m.n++
	m.last = title + "\n" + text
	return nil
}

func disconnect(ts time.Time, details string) domain.DisconnectEvent {
	return domain.DisconnectEvent{
		Timestamp:       ts,
		EventType:       domain.EventDisconnect,
		DurationSeconds: 30,
		Details:         details,
	}
}

// ---- tests ----

func TestWatcher_FirstScanBaselinesWithoutNotifying(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := memory.New()
	store.AddEvents(disconnect(now.Add(-2*time.Hour), "old outage"))
	nt := &memNotifier{}
	w := New(zap.NewNop(), store, nt, "Cabin", time.Minute, 10*time.Minute)

	w.scanOnce(context.Background(), now)
	if nt.n != 0 {
		t.Fatalf("baseline scan must not notify, got %d", nt.n)
	}

	// Nothing new: still quiet.
	w.scanOnce(context.Background(), now.Add(time.Minute))
	if nt.n != 0 {
		t.Fatalf("no new events, got %d notifications", nt.n)
	}
}

func TestWatcher_NotifiesOnNewDisconnect(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := memory.New()
	nt := &memNotifier{}
	w := New(zap.NewNop(), store, nt, "Cabin", time.Minute, 0)

	w.scanOnce(context.Background(), now) // baseline on empty log

	store.AddEvents(disconnect(now.Add(time.Minute), "fiber cut"))
	w.scanOnce(context.Background(), now.Add(2*time.Minute))
	if nt.n != 1 {
		t.Fatalf("want 1 notification, got %d", nt.n)
	}
	if !strings.Contains(nt.last, "Cabin") || !strings.Contains(nt.last, "fiber cut") {
		t.Fatalf("notification text wrong: %q", nt.last)
	}

	// Same events again: already seen.
	w.scanOnce(context.Background(), now.Add(3*time.Minute))
	if nt.n != 1 {
		t.Fatalf("reprocessed seen events: %d", nt.n)
	}
}

func TestWatcher_CooldownSuppressesButMarksSeen(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := memory.New()
	nt := &memNotifier{}
	w := New(zap.NewNop(), store, nt, "", time.Minute, 10*time.Minute)

	w.scanOnce(context.Background(), now)

	store.AddEvents(disconnect(now.Add(1*time.Minute), "first"))
	w.scanOnce(context.Background(), now.Add(2*time.Minute))
	if nt.n != 1 {
		t.Fatalf("want first notification, got %d", nt.n)
	}

	// A second outage inside the cooldown is suppressed.
	store.AddEvents(disconnect(now.Add(3*time.Minute), "second"))
	w.scanOnce(context.Background(), now.Add(4*time.Minute))
	if nt.n != 1 {
		t.Fatalf("cooldown should suppress, got %d", nt.n)
	}

	// After the cooldown the suppressed event is not replayed; only
	// genuinely new outages notify.
	w.scanOnce(context.Background(), now.Add(20*time.Minute))
	if nt.n != 1 {
		t.Fatalf("suppressed event must not replay, got %d", nt.n)
	}
	store.AddEvents(disconnect(now.Add(21*time.Minute), "third"))
	w.scanOnce(context.Background(), now.Add(22*time.Minute))
	if nt.n != 2 {
		t.Fatalf("post-cooldown outage should notify, got %d", nt.n)
	}
}

func TestWatcher_IgnoresReconnects(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := memory.New()
	nt := &memNotifier{}
	w := New(zap.NewNop(), store, nt, "", time.Minute, 0)

	w.scanOnce(context.Background(), now)

	store.AddEvents(domain.DisconnectEvent{
		Timestamp: now.Add(time.Minute),
		EventType: domain.EventReconnect,
		Details:   "back online",
	})
	w.scanOnce(context.Background(), now.Add(2*time.Minute))
	if nt.n != 0 {
		t.Fatalf("reconnects must not notify, got %d", nt.n)
	}
}

func TestWatcher_BatchMentionsCount(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := memory.New()
	nt := &memNotifier{}
	w := New(zap.NewNop(), store, nt, "", time.Minute, 0)

	w.scanOnce(context.Background(), now)

	store.AddEvents(
		disconnect(now.Add(1*time.Minute), "a"),
		disconnect(now.Add(2*time.Minute), "b"),
		disconnect(now.Add(3*time.Minute), "c"),
	)
	w.scanOnce(context.Background(), now.Add(4*time.Minute))
	if nt.n != 1 {
		t.Fatalf("a batch is one notification, got %d", nt.n)
	}
	if !strings.Contains(nt.last, "3 outages") {
		t.Fatalf("batch count missing: %q", nt.last)
	}
	if !strings.Contains(nt.last, "Details: c") {
		t.Fatalf("should describe the newest outage: %q", nt.last)
	}
}
