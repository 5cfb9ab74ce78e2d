package stats

import "github.com/akarlsen/connwatch/internal/domain"

// Speed aggregates throughput over the successful runs in records. Failed
// runs carry no usable numbers and are ignored. With no successful runs
// the result is all zeros and Samples says why. Min and max cover the
// download side only; upload gets an average.
func Speed(records []domain.SpeedTestRecord) domain.SpeedStats {
	var (
		s       domain.SpeedStats
		sumDown float64
		sumUp   float64
	)
	for _, r := range records {
		if !r.Succeeded() {
			continue
		}
		if s.Samples == 0 || r.DownloadMbps < s.MinDownloadMbps {
			s.MinDownloadMbps = r.DownloadMbps
		}
		if s.Samples == 0 || r.DownloadMbps > s.MaxDownloadMbps {
			s.MaxDownloadMbps = r.DownloadMbps
		}
		sumDown += r.DownloadMbps
		sumUp += r.UploadMbps
		s.Samples++
	}
	if s.Samples == 0 {
		return s
	}
	s.AvgDownloadMbps = sumDown / float64(s.Samples)
	s.AvgUploadMbps = sumUp / float64(s.Samples)
	return s
}
