package stats

import "github.com/akarlsen/connwatch/internal/domain"

// stateWindow is how many trailing records vote on the current state.
const stateWindow = 5

// Uptime returns the percentage of connectivity checks that succeeded.
// No records means no observed failures, which reads as 100%.
func Uptime(records []domain.ConnectivityRecord) float64 {
	if len(records) == 0 {
		return 100
	}
	connected := 0
	for _, r := range records {
		if r.Connected() {
			connected++
		}
	}
	return float64(connected) / float64(len(records)) * 100
}

// Online derives the current state from the tail of the sequence in
// storage order: one successful check among the last five keeps the state
// online, so a single flaky probe does not flip the dashboard. Fewer than
// five records vote with what exists; none at all reads as offline.
func Online(records []domain.ConnectivityRecord) bool {
	tail := records
	if len(tail) > stateWindow {
		tail = tail[len(tail)-stateWindow:]
	}
	for _, r := range tail {
		if r.Connected() {
			return true
		}
	}
	return false
}
