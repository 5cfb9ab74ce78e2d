package memory

import (
	"context"
	"sync"

	"github.com/akarlsen/connwatch/internal/domain"
)

// Store keeps records in memory. Used by tests and as a seedable source
// when no log directory exists yet. Append order is storage order.
type Store struct {
	mu     sync.RWMutex
	conn   []domain.ConnectivityRecord
	speed  []domain.SpeedTestRecord
	events []domain.DisconnectEvent
	meta   domain.Metadata
}

func New() *Store {
	return &Store{
		conn:   make([]domain.ConnectivityRecord, 0, 128),
		speed:  make([]domain.SpeedTestRecord, 0, 16),
		events: make([]domain.DisconnectEvent, 0, 16),
	}
}

func (m *Store) AddConnectivity(recs ...domain.ConnectivityRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conn = append(m.conn, recs...)
}

func (m *Store) AddSpeedTests(recs ...domain.SpeedTestRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speed = append(m.speed, recs...)
}

func (m *Store) AddEvents(evs ...domain.DisconnectEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evs...)
}

func (m *Store) SetMetadata(meta domain.Metadata) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meta = meta
}

func (m *Store) Connectivity(ctx context.Context) ([]domain.ConnectivityRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.ConnectivityRecord, len(m.conn))
	copy(out, m.conn)
	return out, nil
}

func (m *Store) SpeedTests(ctx context.Context) ([]domain.SpeedTestRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.SpeedTestRecord, len(m.speed))
	copy(out, m.speed)
	return out, nil
}

func (m *Store) Events(ctx context.Context) ([]domain.DisconnectEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.DisconnectEvent, len(m.events))
	copy(out, m.events)
	return out, nil
}

func (m *Store) Metadata(ctx context.Context) (domain.Metadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.meta, nil
}
