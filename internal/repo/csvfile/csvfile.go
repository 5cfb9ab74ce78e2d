package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/akarlsen/connwatch/internal/domain"
)

// Log file names inside the monitor directory. The external prober appends
// to these; this store only ever reads.
const (
	connectivityFile = "connectivity.csv"
	speedtestFile    = "speedtest.csv"
	eventsFile       = "events.csv"
)

// Timestamp layouts seen in the logs. The prober writes local naive
// timestamps without a zone; those are taken as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Store reads monitoring records from the CSV logs in one directory.
// Files are re-read on every call so freshly appended rows show up
// without any cache invalidation.
type Store struct {
	dir  string
	meta domain.Metadata
	log  *zap.Logger
}

func New(dir string, meta domain.Metadata, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{dir: dir, meta: meta, log: log}
}

func (s *Store) Connectivity(ctx context.Context) ([]domain.ConnectivityRecord, error) {
	rows, err := s.readFile(connectivityFile)
	if err != nil {
		return nil, err
	}
	records := make([]domain.ConnectivityRecord, 0, len(rows))
	malformed := 0
	for _, row := range rows {
		if len(row) < 5 {
			malformed++
			continue
		}
		records = append(records, domain.ConnectivityRecord{
			Timestamp:      parseTime(row[0]),
			Status:         domain.ConnStatus(strings.TrimSpace(row[1])),
			Target:         row[2],
			ResponseTimeMS: parseOptionalFloat(row[3]),
			Method:         row[4],
		})
	}
	s.warnMalformed(connectivityFile, malformed)
	return records, nil
}

func (s *Store) SpeedTests(ctx context.Context) ([]domain.SpeedTestRecord, error) {
	rows, err := s.readFile(speedtestFile)
	if err != nil {
		return nil, err
	}
	records := make([]domain.SpeedTestRecord, 0, len(rows))
	malformed := 0
	for _, row := range rows {
		if len(row) < 6 {
			malformed++
			continue
		}
		records = append(records, domain.SpeedTestRecord{
			Timestamp:    parseTime(row[0]),
			DownloadMbps: parseFloat(row[1]),
			UploadMbps:   parseFloat(row[2]),
			PingMS:       parseFloat(row[3]),
			Server:       row[4],
			Status:       row[5],
		})
	}
	s.warnMalformed(speedtestFile, malformed)
	return records, nil
}

func (s *Store) Events(ctx context.Context) ([]domain.DisconnectEvent, error) {
	rows, err := s.readFile(eventsFile)
	if err != nil {
		return nil, err
	}
	events := make([]domain.DisconnectEvent, 0, len(rows))
	malformed := 0
	for _, row := range rows {
		if len(row) < 4 {
			malformed++
			continue
		}
		events = append(events, domain.DisconnectEvent{
			Timestamp:       parseTime(row[0]),
			EventType:       domain.EventType(strings.TrimSpace(row[1])),
			DurationSeconds: parseFloat(row[2]),
			Details:         row[3],
		})
	}
	s.warnMalformed(eventsFile, malformed)
	return events, nil
}

func (s *Store) Metadata(ctx context.Context) (domain.Metadata, error) {
	return s.meta, nil
}

// readFile returns the data rows of one log, header stripped. A missing
// file is not an error: the prober simply has not written it yet.
func (s *Store) readFile(name string) ([][]string, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	broken := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// Torn or garbled line, likely a partial append. Keep going.
				broken++
				continue
			}
			// Anything else repeats on every read; surface it.
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if len(row) > 0 && row[0] == "timestamp" {
			continue
		}
		rows = append(rows, row)
	}
	if broken > 0 {
		s.log.Warn("unreadable csv lines skipped",
			zap.String("file", name), zap.Int("lines", broken))
	}
	return rows, nil
}

func (s *Store) warnMalformed(name string, n int) {
	if n > 0 {
		s.log.Warn("malformed rows skipped",
			zap.String("file", name), zap.Int("rows", n))
	}
}

// parseTime returns the zero time when no layout matches. Zero-stamped
// records stay in the sequence; window filters exclude them.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseOptionalFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}
