package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"seatwise/internal/db"
	"seatwise/internal/metrics"
	"seatwise/internal/report"
)

// handleExportReservations streams a venue's reservations as an .xlsx file.
// GET /api/venues/{id}/reservations/export?from=YYYY-MM-DD&to=YYYY-MM-DD
func (s *HTTPServer) handleExportReservations(w http.ResponseWriter, r *http.Request, venueID int64) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	now := s.now()
	from := now.AddDate(0, -1, 0)
	to := now.AddDate(0, 1, 0)
	var err error
	if v := r.URL.Query().Get("from"); v != "" {
		if from, err = time.Parse("2006-01-02", v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid from; expected YYYY-MM-DD")
			return
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if to, err = time.Parse("2006-01-02", v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid to; expected YYYY-MM-DD")
			return
		}
		to = to.AddDate(0, 0, 1) // inclusive end date
	}
	if !to.After(from) {
		writeError(w, http.StatusBadRequest, "to must be after from")
		return
	}

	venue, err := s.db.GetVenue(r.Context(), venueID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			metrics.IncHTTPRequest("export_reservations", "404")
			writeError(w, http.StatusNotFound, "venue not found")
			return
		}
		s.log.Error().Err(err).Int64("venue_id", venueID).Msg("venue load failed")
		writeError(w, http.StatusInternalServerError, "failed to load venue")
		return
	}

	reservations, err := s.db.GetReservationsBetween(r.Context(), venueID, from, to)
	if err != nil {
		s.log.Error().Err(err).Int64("venue_id", venueID).Msg("reservations load failed")
		writeError(w, http.StatusInternalServerError, "failed to load reservations")
		return
	}

	loc, err := time.LoadLocation(venue.Timezone)
	if err != nil {
		loc = time.UTC
	}

	var buf bytes.Buffer
	if err := report.WriteReservations(&buf, venue.Name, loc, reservations); err != nil {
		s.log.Error().Err(err).Int64("venue_id", venueID).Msg("export render failed")
		writeError(w, http.StatusInternalServerError, "failed to render export")
		return
	}

	metrics.IncHTTPRequest("export_reservations", "200")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=reservations-%d-%s.xlsx", venueID, now.Format("2006-01-02")))
	_, _ = w.Write(buf.Bytes())
}
