package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestConnectivityRecordJSONRoundTrip(t *testing.T) {
	rt := 12.5
	rec := ConnectivityRecord{
		Timestamp:      time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Status:         StatusConnected,
		Target:         "8.8.8.8",
		ResponseTimeMS: &rt,
		Method:         "ping",
	}

	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got ConnectivityRecord
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Timestamp.Equal(rec.Timestamp) || got.Status != rec.Status || got.Target != rec.Target {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.ResponseTimeMS == nil || *got.ResponseTimeMS != rt {
		t.Fatalf("response time lost: %+v", got.ResponseTimeMS)
	}
}

func TestConnectivityRecordOmitsMissingResponseTime(t *testing.T) {
	rec := ConnectivityRecord{
		Timestamp: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Status:    StatusDisconnected,
		Target:    "8.8.8.8",
		Method:    "ping",
	}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "response_time_ms") {
		t.Fatalf("expected response_time_ms omitted, got %s", b)
	}
}

func TestSpeedTestRecordSucceeded(t *testing.T) {
	ok := SpeedTestRecord{Status: SpeedSuccess}
	if !ok.Succeeded() {
		t.Fatal("success row should report Succeeded")
	}
	failed := SpeedTestRecord{Status: "failed: timeout"}
	if failed.Succeeded() {
		t.Fatal("failed row should not report Succeeded")
	}
}

func TestStatusSnapshotLastUpdateNull(t *testing.T) {
	b, err := json.Marshal(StatusSnapshot{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"last_update":null`) {
		t.Fatalf("expected explicit null last_update, got %s", b)
	}
}
