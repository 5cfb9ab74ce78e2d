package stats

import (
	"time"

	"github.com/akarlsen/connwatch/internal/domain"
)

// MaxHourlySpan caps a span taken from user input. Hourly allocates one
// bucket per requested hour, so callers clamp before passing a request
// or flag value through.
const MaxHourlySpan = 24 * 14

// HourStart truncates t to its containing UTC hour. Bucket initialisation
// and record assignment must both go through this function: two truncation
// rules would make records silently miss their bucket.
func HourStart(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}

// Hourly groups connectivity checks into per-hour success-rate buckets
// covering the last `hours` clock hours up to and including the hour
// containing now, oldest first. Every hour in the span gets a bucket;
// hours with no records report a 100% success rate. Records outside the
// span (and records with unparsable, zeroed timestamps) are dropped.
func Hourly(records []domain.ConnectivityRecord, now time.Time, hours int) []domain.HourlyBucket {
	if hours <= 0 {
		hours = DefaultWindowHours
	}
	buckets := make([]domain.HourlyBucket, hours)
	index := make(map[int64]int, hours)
	for i := range buckets {
		start := HourStart(now.Add(-time.Duration(hours-1-i) * time.Hour))
		buckets[i] = domain.HourlyBucket{BucketStart: start, SuccessRate: 100}
		index[start.Unix()] = i
	}

	for _, r := range records {
		i, ok := index[HourStart(r.Timestamp).Unix()]
		if !ok {
			continue
		}
		buckets[i].TotalTests++
		if r.Connected() {
			buckets[i].SuccessfulTests++
		}
	}

	for i := range buckets {
		if b := &buckets[i]; b.TotalTests > 0 {
			b.SuccessRate = float64(b.SuccessfulTests) / float64(b.TotalTests) * 100
		}
	}
	return buckets
}
