package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/akarlsen/connwatch/internal/domain"
	"github.com/akarlsen/connwatch/internal/repo"
)

var _ repo.RecordSource = (*Store)(nil)
var _ repo.MetadataSource = (*Store)(nil)

// Store reads monitoring records mirrored into postgres. The prober (or a
// log shipper) owns the writes; this adapter only selects, in insert order
// via ts, which matches the append order of the CSV logs.
type Store struct {
	pool *pgxpool.Pool
	meta domain.Metadata
	log  *zap.Logger
}

func New(ctx context.Context, dsn string, meta domain.Metadata, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	log.Debug("postgres_connected")
	return &Store{pool: pool, meta: meta, log: log}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) Connectivity(ctx context.Context) ([]domain.ConnectivityRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT ts, status, target, response_time_ms, method
		   FROM connectivity_checks
		  ORDER BY ts, id`)
	if err != nil {
		return nil, fmt.Errorf("select connectivity: %w", err)
	}
	defer rows.Close()

	var out []domain.ConnectivityRecord
	for rows.Next() {
		var (
			ts       time.Time
			status   string
			target   string
			respNull sql.NullFloat64
			method   string
		)
		if err := rows.Scan(&ts, &status, &target, &respNull, &method); err != nil {
			return nil, fmt.Errorf("scan connectivity: %w", err)
		}
		var resp *float64
		if respNull.Valid {
			v := respNull.Float64
			resp = &v
		}
		out = append(out, domain.ConnectivityRecord{
			Timestamp:      ts.UTC(),
			Status:         domain.ConnStatus(status),
			Target:         target,
			ResponseTimeMS: resp,
			Method:         method,
		})
	}
	return out, rows.Err()
}

func (s *Store) SpeedTests(ctx context.Context) ([]domain.SpeedTestRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT ts, download_mbps, upload_mbps, ping_ms, server, status
		   FROM speedtest_results
		  ORDER BY ts, id`)
	if err != nil {
		return nil, fmt.Errorf("select speedtests: %w", err)
	}
	defer rows.Close()

	var out []domain.SpeedTestRecord
	for rows.Next() {
		var (
			ts     time.Time
			down   sql.NullFloat64
			up     sql.NullFloat64
			ping   sql.NullFloat64
			server string
			status string
		)
		if err := rows.Scan(&ts, &down, &up, &ping, &server, &status); err != nil {
			return nil, fmt.Errorf("scan speedtest: %w", err)
		}
		out = append(out, domain.SpeedTestRecord{
			Timestamp:    ts.UTC(),
			DownloadMbps: down.Float64,
			UploadMbps:   up.Float64,
			PingMS:       ping.Float64,
			Server:       server,
			Status:       status,
		})
	}
	return out, rows.Err()
}

func (s *Store) Events(ctx context.Context) ([]domain.DisconnectEvent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT ts, event_type, duration_seconds, details
		   FROM connection_events
		  ORDER BY ts, id`)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer rows.Close()

	var out []domain.DisconnectEvent
	for rows.Next() {
		var (
			ts      time.Time
			etype   string
			dur     sql.NullFloat64
			details string
		)
		if err := rows.Scan(&ts, &etype, &dur, &details); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, domain.DisconnectEvent{
			Timestamp:       ts.UTC(),
			EventType:       domain.EventType(etype),
			DurationSeconds: dur.Float64,
			Details:         details,
		})
	}
	return out, rows.Err()
}

func (s *Store) Metadata(ctx context.Context) (domain.Metadata, error) {
	return s.meta, nil
}
