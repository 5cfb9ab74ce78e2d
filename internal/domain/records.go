package domain

import "time"

// ConnStatus is the outcome of a single connectivity check.
type ConnStatus string

const (
	StatusConnected    ConnStatus = "connected"
	StatusDisconnected ConnStatus = "disconnected"
)

// ConnectivityRecord is one probe result from the connectivity log.
// Records arrive in append order; a zero Timestamp marks a row whose
// timestamp column could not be parsed.
type ConnectivityRecord struct {
	Timestamp      time.Time  `json:"timestamp"`
	Status         ConnStatus `json:"status"`
	Target         string     `json:"target"`
	ResponseTimeMS *float64   `json:"response_time_ms,omitempty"`
	Method         string     `json:"method"`
}

func (r ConnectivityRecord) Connected() bool { return r.Status == StatusConnected }

// SpeedSuccess marks a speed test run that produced usable numbers.
// Failed runs keep their error text in Status and zeroed measurements.
const SpeedSuccess = "success"

// SpeedTestRecord is one speed test run from the speed test log.
type SpeedTestRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	DownloadMbps float64   `json:"download_mbps"`
	UploadMbps   float64   `json:"upload_mbps"`
	PingMS       float64   `json:"ping_ms"`
	Server       string    `json:"server"`
	Status       string    `json:"status"`
}

func (r SpeedTestRecord) Succeeded() bool { return r.Status == SpeedSuccess }

// EventType classifies connection events.
type EventType string

const (
	EventDisconnect EventType = "disconnect"
	EventReconnect  EventType = "reconnect"
)

// DisconnectEvent is one entry from the connection event log. Reconnect
// entries share the shape; DurationSeconds is only meaningful on
// disconnect entries, where it holds the measured outage length.
type DisconnectEvent struct {
	Timestamp       time.Time `json:"timestamp"`
	EventType       EventType `json:"event_type"`
	DurationSeconds float64   `json:"duration_seconds"`
	Details         string    `json:"details"`
}

// Metadata describes the monitored site. Display only, never used in
// calculations.
type Metadata struct {
	Location string `json:"location"`
	Timezone string `json:"timezone"`
}
