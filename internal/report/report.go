package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/akarlsen/connwatch/internal/domain"
	"github.com/akarlsen/connwatch/internal/stats"
)

// Summary holds the figures the text report prints. Unlike the live
// dashboard it covers the full log history, and an empty connectivity
// log reports a 0% success rate: a report over nothing is not "all
// good", it is "nothing measured".
type Summary struct {
	GeneratedAt time.Time
	Location    string

	TotalChecks  int
	FailedChecks int
	SuccessRate  float64

	Disconnections int
	TotalDowntime  time.Duration
	AvgOutage      time.Duration

	TotalSpeedTests int
	Speed           domain.SpeedStats
}

// Build derives the report figures from the full record history.
func Build(conns []domain.ConnectivityRecord, speeds []domain.SpeedTestRecord, events []domain.DisconnectEvent, location string, now time.Time) Summary {
	s := Summary{
		GeneratedAt:     now,
		Location:        location,
		TotalChecks:     len(conns),
		TotalSpeedTests: len(speeds),
		Speed:           stats.Speed(speeds),
	}

	for _, r := range conns {
		if !r.Connected() {
			s.FailedChecks++
		}
	}
	if s.TotalChecks > 0 {
		s.SuccessRate = float64(s.TotalChecks-s.FailedChecks) / float64(s.TotalChecks) * 100
	}

	var downtime float64
	for _, e := range events {
		if e.EventType != domain.EventDisconnect {
			continue
		}
		s.Disconnections++
		downtime += e.DurationSeconds
	}
	s.TotalDowntime = time.Duration(downtime * float64(time.Second))
	if s.Disconnections > 0 {
		s.AvgOutage = s.TotalDowntime / time.Duration(s.Disconnections)
	}
	return s
}

// Render writes the plain-text report.
func Render(w io.Writer, s Summary) error {
	var b strings.Builder
	b.WriteString("Internet Connection Monitoring Report\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", s.GeneratedAt.Format("2006-01-02 15:04:05"))
	if s.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", s.Location)
	}
	b.WriteString("\n")

	b.WriteString("Connectivity Summary:\n")
	fmt.Fprintf(&b, "- Total tests: %d\n", s.TotalChecks)
	fmt.Fprintf(&b, "- Failed tests: %d\n", s.FailedChecks)
	fmt.Fprintf(&b, "- Success rate: %.1f%%\n", s.SuccessRate)
	b.WriteString("\n")

	b.WriteString("Disconnection Summary:\n")
	fmt.Fprintf(&b, "- Total disconnections: %d\n", s.Disconnections)
	fmt.Fprintf(&b, "- Total downtime: %.1f seconds (%.1f minutes)\n",
		s.TotalDowntime.Seconds(), s.TotalDowntime.Minutes())
	fmt.Fprintf(&b, "- Average disconnect duration: %.1f seconds\n", s.AvgOutage.Seconds())
	b.WriteString("\n")

	b.WriteString("Speed Test Summary:\n")
	fmt.Fprintf(&b, "- Total speed tests: %d\n", s.TotalSpeedTests)
	fmt.Fprintf(&b, "- Successful tests: %d\n", s.Speed.Samples)
	fmt.Fprintf(&b, "- Average download: %.1f Mbps\n", s.Speed.AvgDownloadMbps)
	fmt.Fprintf(&b, "- Average upload: %.1f Mbps\n", s.Speed.AvgUploadMbps)
	fmt.Fprintf(&b, "- Min download: %.1f Mbps\n", s.Speed.MinDownloadMbps)
	fmt.Fprintf(&b, "- Max download: %.1f Mbps\n", s.Speed.MaxDownloadMbps)

	_, err := io.WriteString(w, b.String())
	return err
}

// FileName is the conventional report name inside the log directory.
func FileName(now time.Time) string {
	return "report_" + now.Format("20060102_150405") + ".txt"
}
