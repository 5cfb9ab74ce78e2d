package domain

import "time"

// SpeedStats aggregates throughput over the successful speed test runs in
// a window. Samples is the number of successful runs that contributed; when
// it is zero every other field is zero as well.
type SpeedStats struct {
	AvgDownloadMbps float64 `json:"avg_download_mbps"`
	AvgUploadMbps   float64 `json:"avg_upload_mbps"`
	MinDownloadMbps float64 `json:"min_download_mbps"`
	MaxDownloadMbps float64 `json:"max_download_mbps"`
	Samples         int     `json:"samples"`
}

// HourlyBucket is the per-hour connectivity success rate for one clock
// hour. BucketStart is the start of the hour in UTC. An hour with no
// records reports a 100% success rate.
type HourlyBucket struct {
	BucketStart     time.Time `json:"bucket_start"`
	TotalTests      int       `json:"total_tests"`
	SuccessfulTests int       `json:"successful_tests"`
	SuccessRate     float64   `json:"success_rate"`
}

// StatusSnapshot is the composed dashboard view: current state plus the
// trailing 24h health figures, all derived from the same instant.
// LastUpdate is nil until at least one record of any kind exists.
type StatusSnapshot struct {
	Location    string     `json:"location"`
	Online      bool       `json:"online"`
	UptimePct   float64    `json:"uptime_24h"`
	Disconnects int        `json:"disconnects_24h"`
	Speed       SpeedStats `json:"speed"`
	LastUpdate  *time.Time `json:"last_update"`
	GeneratedAt time.Time  `json:"generated_at"`
}
