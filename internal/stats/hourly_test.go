package stats

import (
	"testing"
	"time"

	"github.com/akarlsen/connwatch/internal/domain"
)

func TestHourlyEmptyInputIsAllHealthy(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)

	got := Hourly(nil, now, 24)
	if len(got) != 24 {
		t.Fatalf("expected 24 buckets, got %d", len(got))
	}
	for i, b := range got {
		if b.TotalTests != 0 || b.SuccessfulTests != 0 {
			t.Errorf("bucket %d should be empty: %+v", i, b)
		}
		if b.SuccessRate != 100 {
			t.Errorf("empty bucket %d should read 100%%, got %v", i, b.SuccessRate)
		}
	}
}

func TestHourlySpanAndOrder(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)

	got := Hourly(nil, now, 6)
	if len(got) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(got))
	}
	// Oldest first, one hour apart, ending at the hour containing now.
	wantLast := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if !got[5].BucketStart.Equal(wantLast) {
		t.Fatalf("last bucket starts %v, want %v", got[5].BucketStart, wantLast)
	}
	for i := 1; i < len(got); i++ {
		if got[i].BucketStart.Sub(got[i-1].BucketStart) != time.Hour {
			t.Fatalf("buckets not contiguous at %d: %v then %v", i, got[i-1].BucketStart, got[i].BucketStart)
		}
	}
}

func TestHourlyAssignsRecordsToTheirHour(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	records := []domain.ConnectivityRecord{
		connAt(time.Date(2025, 3, 1, 10, 5, 0, 0, time.UTC), domain.StatusConnected),
		connAt(time.Date(2025, 3, 1, 10, 35, 0, 0, time.UTC), domain.StatusDisconnected),
		connAt(time.Date(2025, 3, 1, 12, 1, 0, 0, time.UTC), domain.StatusConnected),
	}

	got := Hourly(records, now, 6)
	byStart := map[time.Time]domain.HourlyBucket{}
	for _, b := range got {
		byStart[b.BucketStart] = b
	}

	ten := byStart[time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)]
	if ten.TotalTests != 2 || ten.SuccessfulTests != 1 || ten.SuccessRate != 50 {
		t.Fatalf("10:00 bucket wrong: %+v", ten)
	}
	noon := byStart[time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)]
	if noon.TotalTests != 1 || noon.SuccessRate != 100 {
		t.Fatalf("12:00 bucket wrong: %+v", noon)
	}
}

// A record exactly on the hour belongs to the bucket it opens.
func TestHourlyExactHourBoundary(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	records := []domain.ConnectivityRecord{
		connAt(time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC), domain.StatusDisconnected),
	}

	got := Hourly(records, now, 6)
	for _, b := range got {
		switch {
		case b.BucketStart.Equal(time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC)):
			if b.TotalTests != 1 || b.SuccessRate != 0 {
				t.Fatalf("11:00 bucket wrong: %+v", b)
			}
		case b.TotalTests != 0:
			t.Fatalf("record leaked into %v: %+v", b.BucketStart, b)
		}
	}
}

func TestHourlyDropsRecordsOutsideSpan(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	records := []domain.ConnectivityRecord{
		connAt(now.Add(-10*time.Hour), domain.StatusDisconnected), // before the 6h span
		connAt(time.Time{}, domain.StatusDisconnected),            // unparsable timestamp
		connAt(now.Add(time.Hour), domain.StatusDisconnected),     // future hour
	}

	got := Hourly(records, now, 6)
	for _, b := range got {
		if b.TotalTests != 0 {
			t.Fatalf("out-of-span record counted in %v: %+v", b.BucketStart, b)
		}
	}
}

func TestHourlyDefaultSpan(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	if got := Hourly(nil, now, 0); len(got) != DefaultWindowHours {
		t.Fatalf("expected %d buckets for the default span, got %d", DefaultWindowHours, len(got))
	}
}

func TestHourStartSharedTruncation(t *testing.T) {
	oslo, err := time.LoadLocation("Europe/Oslo")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	local := time.Date(2025, 3, 1, 13, 45, 12, 0, oslo) // 12:45:12 UTC
	want := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if got := HourStart(local); !got.Equal(want) {
		t.Fatalf("HourStart(%v) = %v, want %v", local, got, want)
	}
}
