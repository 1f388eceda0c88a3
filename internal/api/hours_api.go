package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"seatwise/internal/db"
	"seatwise/internal/hours"
	"seatwise/internal/metrics"
	"seatwise/internal/model"
)

// WeeklyHoursPayload is one day of a schedule write. Weekday runs 0=Sunday
// through 6=Saturday; times are venue-local "HH:MM" with "23:59" meaning
// end of day.
type WeeklyHoursPayload struct {
	Weekday   int    `json:"weekday"`
	IsClosed  bool   `json:"is_closed"`
	OpenTime  string `json:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty"`
}

// SetHoursRequest carries a full weekly schedule.
type SetHoursRequest struct {
	Days []WeeklyHoursPayload `json:"days"`
}

// handleSetManualHours writes the manual weekly schedule and makes manual
// the venue's active source.
// PUT /api/venues/{id}/hours
func (s *HTTPServer) handleSetManualHours(w http.ResponseWriter, r *http.Request, venueID int64) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use PUT")
		return
	}
	s.replaceHours(w, r, venueID, model.HoursSourceManual, "set_manual_hours")
}

// handleImportHours replaces the imported schedule wholesale, the full
// re-sync shape an external hours provider pushes.
// POST /api/venues/{id}/hours/import
func (s *HTTPServer) handleImportHours(w http.ResponseWriter, r *http.Request, venueID int64) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}
	s.replaceHours(w, r, venueID, model.HoursSourceImported, "import_hours")
}

func (s *HTTPServer) replaceHours(w http.ResponseWriter, r *http.Request, venueID int64, source model.HoursSource, handler string) {
	var req SetHoursRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		metrics.IncHTTPRequest(handler, "400")
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Days) == 0 {
		metrics.IncHTTPRequest(handler, "400")
		writeError(w, http.StatusBadRequest, "days is required")
		return
	}

	rows := make([]model.WeeklyHoursRow, 0, len(req.Days))
	for _, day := range req.Days {
		if err := validateHoursPayload(&day); err != nil {
			metrics.IncHTTPRequest(handler, "400")
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		rows = append(rows, model.WeeklyHoursRow{
			Weekday:   day.Weekday,
			IsClosed:  day.IsClosed,
			OpenTime:  day.OpenTime,
			CloseTime: day.CloseTime,
		})
	}

	if err := s.db.ReplaceHours(r.Context(), venueID, source, rows); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			metrics.IncHTTPRequest(handler, "404")
			writeError(w, http.StatusNotFound, "venue not found")
			return
		}
		s.log.Error().Err(err).Int64("venue_id", venueID).Str("source", string(source)).Msg("hours replace failed")
		writeError(w, http.StatusInternalServerError, "failed to save hours")
		return
	}

	s.log.Info().Int64("venue_id", venueID).Str("source", string(source)).Int("days", len(rows)).Msg("hours replaced")
	metrics.IncHTTPRequest(handler, "200")
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "source": source})
}

func validateHoursPayload(day *WeeklyHoursPayload) error {
	if day.Weekday < 0 || day.Weekday > 6 {
		return fmt.Errorf("weekday %d out of range 0..6", day.Weekday)
	}
	if day.IsClosed {
		return nil
	}
	openMin, err := hours.ParseClock(day.OpenTime)
	if err != nil {
		return fmt.Errorf("weekday %d: invalid open_time %q", day.Weekday, day.OpenTime)
	}
	closeMin, err := hours.CloseMinutes(day.CloseTime)
	if err != nil {
		return fmt.Errorf("weekday %d: invalid close_time %q", day.Weekday, day.CloseTime)
	}
	if closeMin <= openMin {
		return fmt.Errorf("weekday %d: close_time must be after open_time", day.Weekday)
	}
	return nil
}
