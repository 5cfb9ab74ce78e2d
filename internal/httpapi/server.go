package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/akarlsen/connwatch/internal/domain"
	"github.com/akarlsen/connwatch/internal/httpapi/middleware"
	"github.com/akarlsen/connwatch/internal/repo"
	"github.com/akarlsen/connwatch/internal/stats"
)

// Server serves the aggregated monitoring figures to the dashboard. It
// owns no data: every request reads through the record source so fresh
// log rows show up immediately.
type Server struct {
	Logger  *zap.Logger
	Records repo.RecordSource
	Meta    repo.MetadataSource

	// Now is the clock; tests pin it. nil means time.Now.
	Now func() time.Time

	// PushInterval is the /api/live refresh period.
	PushInterval time.Duration
}

func NewServer(l *zap.Logger, records repo.RecordSource, meta repo.MetadataSource) *Server {
	return &Server{
		Logger:       l,
		Records:      records,
		Meta:         meta,
		PushInterval: 30 * time.Second,
	}
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RouterOptions carries the middleware knobs from configuration.
type RouterOptions struct {
	APIKeys        []string
	AllowedOrigins []string
	RateLimitRPM   int
	RateLimitBurst int
}

func (s *Server) Router(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "X-API-Key", "Content-Type"},
		}))
	} else {
		r.Use(cors.AllowAll().Handler)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.RateLimit(opts.RateLimitRPM, opts.RateLimitBurst))
		api.Use(middleware.RequireKey(opts.APIKeys))
		api.Get("/status", s.handleStatus)
		api.Get("/uptime", s.handleUptime)
		api.Get("/speed", s.handleSpeed)
		api.Get("/events", s.handleEvents)
		api.Get("/hourly", s.handleHourly)
		api.Get("/live", s.handleLive)
	})

	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap, err := stats.Snapshot(r.Context(), s.Records, s.Meta, s.now())
	if err != nil {
		s.sourceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type uptimeResponse struct {
	UptimePct float64 `json:"uptime_pct"`
	Online    bool    `json:"online"`
	Samples   int     `json:"samples"`
	Hours     float64 `json:"hours"`
}

func (s *Server) handleUptime(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	hours := parseHours(r, stats.DefaultWindowHours)
	records, err := s.Records.Connectivity(r.Context())
	if err != nil {
		s.sourceError(w, err)
		return
	}
	recent := stats.RecentConnectivity(records, now, hours)
	writeJSON(w, http.StatusOK, uptimeResponse{
		UptimePct: stats.Uptime(recent),
		Online:    stats.Online(recent),
		Samples:   len(recent),
		Hours:     hours,
	})
}

type speedResponse struct {
	domain.SpeedStats
	Hours float64 `json:"hours"`
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	hours := parseHours(r, stats.DefaultWindowHours)
	records, err := s.Records.SpeedTests(r.Context())
	if err != nil {
		s.sourceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, speedResponse{
		SpeedStats: stats.Speed(stats.RecentSpeedTests(records, now, hours)),
		Hours:      hours,
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	hours := parseHours(r, stats.DefaultWindowHours)
	limit := parseIntParam(r, "limit", stats.DefaultEventLimit)
	events, err := s.Records.Events(r.Context())
	if err != nil {
		s.sourceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats.RecentDisconnects(events, now, hours, limit))
}

func (s *Server) handleHourly(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	hours := parseIntParam(r, "hours", stats.DefaultWindowHours)
	if hours > stats.MaxHourlySpan {
		hours = stats.MaxHourlySpan
	}
	records, err := s.Records.Connectivity(r.Context())
	if err != nil {
		s.sourceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats.Hourly(records, now, hours))
}

// sourceError maps a failing record source to 502: the API itself is
// fine, its backend is not.
func (s *Server) sourceError(w http.ResponseWriter, err error) {
	s.Logger.Error("record_source_failed", zap.Error(err))
	writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func parseHours(r *http.Request, def float64) float64 {
	v := r.URL.Query().Get("hours")
	if v == "" {
		return def
	}
	h, err := strconv.ParseFloat(v, 64)
	if err != nil || h <= 0 {
		return def
	}
	return h
}

func parseIntParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
