package stats

import (
	"math"
	"testing"
	"time"

	"github.com/akarlsen/connwatch/internal/domain"
)

func speedAt(ts time.Time, down, up float64, status string) domain.SpeedTestRecord {
	return domain.SpeedTestRecord{Timestamp: ts, DownloadMbps: down, UploadMbps: up, Status: status}
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSpeedEmptyInput(t *testing.T) {
	got := Speed(nil)
	if got != (domain.SpeedStats{}) {
		t.Fatalf("empty input should yield the zero stats, got %+v", got)
	}
}

func TestSpeedIgnoresFailedRuns(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []domain.SpeedTestRecord{
		speedAt(base, 100, 10, domain.SpeedSuccess),
		speedAt(base.Add(time.Hour), 0, 0, "failed: timeout"),
		speedAt(base.Add(2*time.Hour), 50, 20, domain.SpeedSuccess),
	}

	got := Speed(records)
	if got.Samples != 2 {
		t.Fatalf("Samples = %d, want 2", got.Samples)
	}
	if !almostEqual(got.AvgDownloadMbps, 75) {
		t.Errorf("AvgDownloadMbps = %v, want 75", got.AvgDownloadMbps)
	}
	if !almostEqual(got.AvgUploadMbps, 15) {
		t.Errorf("AvgUploadMbps = %v, want 15", got.AvgUploadMbps)
	}
	if got.MinDownloadMbps != 50 || got.MaxDownloadMbps != 100 {
		t.Errorf("min/max = %v/%v, want 50/100", got.MinDownloadMbps, got.MaxDownloadMbps)
	}
}

func TestSpeedAllFailed(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []domain.SpeedTestRecord{
		speedAt(base, 0, 0, "failed: dns"),
		speedAt(base.Add(time.Hour), 0, 0, "failed: timeout"),
	}

	got := Speed(records)
	if got != (domain.SpeedStats{}) {
		t.Fatalf("all-failed input should yield the zero stats, got %+v", got)
	}
}

func TestSpeedSingleSampleMinEqualsMax(t *testing.T) {
	got := Speed([]domain.SpeedTestRecord{
		speedAt(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), 80, 8, domain.SpeedSuccess),
	})
	if got.MinDownloadMbps != 80 || got.MaxDownloadMbps != 80 {
		t.Fatalf("single sample min/max = %v/%v, want 80/80", got.MinDownloadMbps, got.MaxDownloadMbps)
	}
	if got.AvgDownloadMbps != 80 || got.AvgUploadMbps != 8 {
		t.Fatalf("single sample averages = %v/%v, want 80/8", got.AvgDownloadMbps, got.AvgUploadMbps)
	}
}
