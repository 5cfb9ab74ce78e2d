package httpapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/akarlsen/connwatch/internal/stats"
)

const liveWriteTimeout = 10 * time.Second

var liveUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     sameOrigin,
}

// sameOrigin accepts requests with no Origin header (non-browser
// clients) or an Origin host matching the request host. Cross-origin
// dashboards go through the CORS-configured plain endpoints instead.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// handleLive upgrades to a websocket and pushes a fresh status snapshot
// immediately and then on every tick, so the dashboard needs no polling
// loop. The connection closes when the client goes away or a write
// fails; a failing record source also closes it and the client's
// reconnect gets a fresh start.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := liveUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Logger.Warn("live_upgrade_failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if err := s.pushSnapshot(conn); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	interval := s.PushInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := s.pushSnapshot(conn); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (s *Server) pushSnapshot(conn *websocket.Conn) error {
	snap, err := stats.Snapshot(context.Background(), s.Records, s.Meta, s.now())
	if err != nil {
		s.Logger.Warn("live_snapshot_failed", zap.Error(err))
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	return conn.WriteJSON(snap)
}
