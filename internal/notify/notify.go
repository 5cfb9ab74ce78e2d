package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/akarlsen/connwatch/internal/domain"
)

// Notifier delivers a short alert somewhere a human will see it.
type Notifier interface {
	Send(ctx context.Context, title, text string) error
}

// Multi fans out to every configured notifier and reports the first
// failure. Nil entries are skipped so callers can append optional
// channels without checking.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, title, text string) error {
	var firstErr error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Send(ctx, title, text); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// OutageMessage renders a disconnect event as a notification. The
// duration is rounded to whole seconds; nobody reads microseconds in an
// outage alert.
func OutageMessage(e domain.DisconnectEvent, location string) (title, text string) {
	title = "Internet outage"
	if location != "" {
		title = "Internet outage at " + location
	}
	dur := time.Duration(e.DurationSeconds * float64(time.Second)).Round(time.Second)
	text = fmt.Sprintf("Start: %s\nDuration: %s", e.Timestamp.Format(time.RFC3339), dur)
	if e.Details != "" {
		text += "\nDetails: " + e.Details
	}
	return title, text
}
