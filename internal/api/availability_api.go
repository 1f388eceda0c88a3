package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"seatwise/internal/availability"
	"seatwise/internal/db"
	"seatwise/internal/hours"
	"seatwise/internal/metrics"
)

// AvailabilityRequest is the request body for POST /api/availability. Window
// mode uses start_at/end_at; date mode uses date. The two are exclusive.
type AvailabilityRequest struct {
	VenueID   int64  `json:"venue_id"`
	StartAt   string `json:"start_at,omitempty"` // RFC3339
	EndAt     string `json:"end_at,omitempty"`   // RFC3339
	Date      string `json:"date,omitempty"`     // YYYY-MM-DD, venue-local
	SeatCount int    `json:"seat_count,omitempty"`
}

// AvailabilityError is the in-band business rejection. Transport stays 200;
// only an unknown venue is a 404.
type AvailabilityError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	PauseMessage string `json:"pause_message,omitempty"`
}

// WindowAvailabilityResponse is the window-mode response.
type WindowAvailabilityResponse struct {
	Error *AvailabilityError   `json:"error,omitempty"`
	Data  *availability.Result `json:"data,omitempty"`
}

// DayAvailabilityResponse is the date/slot-mode response.
type DayAvailabilityResponse struct {
	Error *AvailabilityError      `json:"error,omitempty"`
	Date  string                  `json:"date,omitempty"`
	Data  *availability.DayResult `json:"data,omitempty"`
}

// handleAvailability answers both availability modes.
// POST /api/availability
func (s *HTTPServer) handleAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req AvailabilityRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		metrics.IncHTTPRequest("availability", "400")
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.VenueID <= 0 {
		metrics.IncHTTPRequest("availability", "400")
		writeError(w, http.StatusBadRequest, "venue_id is required")
		return
	}

	switch {
	case req.Date != "" && (req.StartAt != "" || req.EndAt != ""):
		metrics.IncHTTPRequest("availability", "400")
		writeError(w, http.StatusBadRequest, "use either date or start_at/end_at, not both")
	case req.Date != "":
		s.answerDayAvailability(w, r, &req)
	case req.StartAt != "" && req.EndAt != "":
		s.answerWindowAvailability(w, r, &req)
	default:
		metrics.IncHTTPRequest("availability", "400")
		writeError(w, http.StatusBadRequest, "start_at and end_at, or date, are required")
	}
}

func (s *HTTPServer) answerWindowAvailability(w http.ResponseWriter, r *http.Request, req *AvailabilityRequest) {
	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		metrics.IncHTTPRequest("availability", "400")
		writeError(w, http.StatusBadRequest, "invalid start_at; expected RFC3339")
		return
	}
	endAt, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		metrics.IncHTTPRequest("availability", "400")
		writeError(w, http.StatusBadRequest, "invalid end_at; expected RFC3339")
		return
	}

	snap, err := s.db.LoadSnapshot(r.Context(), req.VenueID, startAt, endAt)
	if err != nil {
		s.availabilityStorageError(w, err, req.VenueID)
		return
	}

	result, qerr := availability.Calculate(snap, startAt, endAt, req.SeatCount)
	if qerr != nil {
		s.answerQueryError(w, qerr)
		return
	}

	metrics.IncAvailabilityQuery("ok")
	metrics.IncHTTPRequest("availability", "200")
	writeJSON(w, http.StatusOK, WindowAvailabilityResponse{Data: result})
}

func (s *HTTPServer) answerDayAvailability(w http.ResponseWriter, r *http.Request, req *AvailabilityRequest) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		metrics.IncHTTPRequest("availability", "400")
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}

	// The snapshot window pads a day on both sides so the venue-local day is
	// fully covered regardless of its UTC offset.
	from := date.Add(-24 * time.Hour)
	to := date.Add(48 * time.Hour)
	snap, err := s.db.LoadSnapshot(r.Context(), req.VenueID, from, to)
	if err != nil {
		s.availabilityStorageError(w, err, req.VenueID)
		return
	}

	localDate := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, snap.Hours.Location)
	result, qerr := availability.CalculateDay(snap, localDate)
	if qerr != nil {
		s.answerQueryError(w, qerr)
		return
	}

	metrics.IncAvailabilityQuery("ok")
	metrics.IncHTTPRequest("availability", "200")
	writeJSON(w, http.StatusOK, DayAvailabilityResponse{Date: req.Date, Data: result})
}

func (s *HTTPServer) availabilityStorageError(w http.ResponseWriter, err error, venueID int64) {
	if errors.Is(err, db.ErrNotFound) {
		metrics.IncAvailabilityQuery("venue_not_found")
		metrics.IncHTTPRequest("availability", "404")
		writeError(w, http.StatusNotFound, "venue not found")
		return
	}
	s.log.Error().Err(err).Int64("venue_id", venueID).Msg("availability snapshot load failed")
	metrics.IncHTTPRequest("availability", "500")
	writeError(w, http.StatusInternalServerError, "failed to load availability")
}

func (s *HTTPServer) answerQueryError(w http.ResponseWriter, qerr *availability.QueryError) {
	metrics.IncAvailabilityQuery(string(qerr.Kind))
	if qerr.Kind == availability.KindNotFound {
		metrics.IncHTTPRequest("availability", "404")
		writeError(w, http.StatusNotFound, qerr.Message)
		return
	}
	metrics.IncHTTPRequest("availability", "200")
	writeJSON(w, http.StatusOK, WindowAvailabilityResponse{Error: &AvailabilityError{
		Code:         string(qerr.Kind),
		Message:      qerr.Message,
		PauseMessage: qerr.PauseMessage,
	}})
}

// VenueStatusResponse reports whether a venue is open at an instant.
type VenueStatusResponse struct {
	VenueID int64 `json:"venue_id"`
	hours.OpenStatus
}

// handleVenueStatus evaluates the venue's schedule at a given instant.
// GET /api/venues/{id}/status?at=RFC3339 (default: now)
func (s *HTTPServer) handleVenueStatus(w http.ResponseWriter, r *http.Request, venueID int64) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	at := s.now()
	if atStr := r.URL.Query().Get("at"); atStr != "" {
		parsed, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			metrics.IncHTTPRequest("venue_status", "400")
			writeError(w, http.StatusBadRequest, "invalid at; expected RFC3339")
			return
		}
		at = parsed
	}

	venue, err := s.db.GetVenue(r.Context(), venueID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			metrics.IncHTTPRequest("venue_status", "404")
			writeError(w, http.StatusNotFound, "venue not found")
			return
		}
		s.log.Error().Err(err).Int64("venue_id", venueID).Msg("venue load failed")
		writeError(w, http.StatusInternalServerError, "failed to load venue")
		return
	}

	hoursRows, err := s.db.GetWeeklyHours(r.Context(), venueID)
	if err != nil {
		s.log.Error().Err(err).Int64("venue_id", venueID).Msg("hours load failed")
		writeError(w, http.StatusInternalServerError, "failed to load hours")
		return
	}

	status := hours.Status(hours.Resolve(venue, hoursRows), at)
	metrics.IncHTTPRequest("venue_status", "200")
	writeJSON(w, http.StatusOK, VenueStatusResponse{VenueID: venueID, OpenStatus: status})
}
