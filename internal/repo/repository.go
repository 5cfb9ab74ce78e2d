package repo

import (
	"context"

	"github.com/akarlsen/connwatch/internal/domain"
)

// Ports (interfaces) — the aggregation core reads through these; any
// backing store (CSV logs, postgres, memory) can sit behind them.
//
// Adapters return records in storage order: the order rows were appended
// by the prober. Several aggregations depend on that order, so adapters
// must not re-sort.
type RecordSource interface {
	Connectivity(ctx context.Context) ([]domain.ConnectivityRecord, error)
	SpeedTests(ctx context.Context) ([]domain.SpeedTestRecord, error)
	Events(ctx context.Context) ([]domain.DisconnectEvent, error)
}

// MetadataSource supplies site metadata for display.
type MetadataSource interface {
	Metadata(ctx context.Context) (domain.Metadata, error)
}
