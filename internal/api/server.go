// Package api exposes the availability engine and reservation write path
// over HTTP JSON.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"seatwise/internal/db"
	"seatwise/internal/guard"
	"seatwise/internal/metrics"
)

// HTTPServer serves the public API.
type HTTPServer struct {
	server  *http.Server
	db      *db.DB
	guard   *guard.Guard
	log     *zerolog.Logger
	limiter *rate.Limiter
	now     func() time.Time
}

// Options tunes the server; zero values get sensible defaults.
type Options struct {
	Port           int
	RequestTimeout time.Duration
	RateLimitRPS   int
	RateLimitBurst int
}

func NewHTTPServer(database *db.DB, g *guard.Guard, logger *zerolog.Logger, opts Options) *HTTPServer {
	if opts.Port == 0 {
		opts.Port = 8080
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	s := &HTTPServer{
		db:    database,
		guard: g,
		log:   logger,
		now:   time.Now,
	}
	if opts.RateLimitRPS > 0 {
		burst := opts.RateLimitBurst
		if burst <= 0 {
			burst = opts.RateLimitRPS
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/availability", s.handleAvailability)
	mux.HandleFunc("/api/venues/", s.handleVenues)
	mux.HandleFunc("/api/reservations", s.handleCreateReservation)
	mux.HandleFunc("/api/reservations/", s.handleCancelReservation)
	mux.HandleFunc("/api/blocks", s.handleCreateBlock)
	mux.HandleFunc("/api/blocks/", s.handleDeleteBlock)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      s.rateLimit(mux),
		ReadTimeout:  opts.RequestTimeout,
		WriteTimeout: opts.RequestTimeout,
	}
	return s
}

// Start blocks until the listener fails or Shutdown is called.
func (s *HTTPServer) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routing tree for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			metrics.IncHTTPRequest("rate_limited", "429")
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleVenues dispatches the /api/venues/{id}/... subtree.
func (s *HTTPServer) handleVenues(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/venues/")
	parts := strings.Split(rest, "/")
	venueID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || venueID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid venue id")
		return
	}

	tail := strings.Join(parts[1:], "/")
	switch {
	case tail == "status":
		s.handleVenueStatus(w, r, venueID)
	case tail == "hours":
		s.handleSetManualHours(w, r, venueID)
	case tail == "hours/import":
		s.handleImportHours(w, r, venueID)
	case tail == "reservations/export":
		s.handleExportReservations(w, r, venueID)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
