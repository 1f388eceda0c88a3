package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"seatwise/internal/availability"
	"seatwise/internal/db"
	"seatwise/internal/metrics"
	"seatwise/internal/model"
	"seatwise/internal/slots"
)

// CreateReservationRequest books either specific seats or one group table
// for a window. seat_ids and table_id are mutually exclusive.
type CreateReservationRequest struct {
	VenueID   int64   `json:"venue_id"`
	SeatIDs   []int64 `json:"seat_ids,omitempty"`
	TableID   *int64  `json:"table_id,omitempty"`
	SeatCount int     `json:"seat_count,omitempty"`
	StartAt   string  `json:"start_at"` // RFC3339
	EndAt     string  `json:"end_at"`   // RFC3339
}

// ReservationResponse echoes one created reservation.
type ReservationResponse struct {
	PublicID  string    `json:"id"`
	SeatID    *int64    `json:"seat_id,omitempty"`
	TableID   *int64    `json:"table_id,omitempty"`
	SeatCount int       `json:"seat_count"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Status    string    `json:"status"`
}

// CreateReservationResponse is the response for POST /api/reservations.
type CreateReservationResponse struct {
	Reservations []ReservationResponse `json:"reservations,omitempty"`
	Code         string                `json:"code,omitempty"`
	Error        string                `json:"error,omitempty"`
}

// handleCreateReservation books resources after re-validating the window
// and re-running the conflict check inside the storage transaction.
// POST /api/reservations
func (s *HTTPServer) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req CreateReservationRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		metrics.IncHTTPRequest("create_reservation", "400")
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.VenueID <= 0 {
		s.rejectReservation(w, http.StatusBadRequest, "invalid_request", "venue_id is required")
		return
	}
	if len(req.SeatIDs) == 0 && req.TableID == nil {
		s.rejectReservation(w, http.StatusBadRequest, "invalid_request", "seat_ids or table_id is required")
		return
	}
	if len(req.SeatIDs) > 0 && req.TableID != nil {
		s.rejectReservation(w, http.StatusBadRequest, "invalid_request", "seat_ids and table_id are mutually exclusive")
		return
	}

	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		s.rejectReservation(w, http.StatusBadRequest, "invalid_request", "invalid start_at; expected RFC3339")
		return
	}
	endAt, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		s.rejectReservation(w, http.StatusBadRequest, "invalid_request", "invalid end_at; expected RFC3339")
		return
	}

	snap, err := s.db.LoadSnapshot(r.Context(), req.VenueID, startAt, endAt)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.rejectReservation(w, http.StatusNotFound, "venue_not_found", "venue not found")
			return
		}
		s.log.Error().Err(err).Int64("venue_id", req.VenueID).Msg("reservation snapshot load failed")
		writeError(w, http.StatusInternalServerError, "failed to load venue")
		return
	}

	if snap.Venue.Status == model.VenueDeleted {
		s.rejectReservation(w, http.StatusNotFound, "venue_not_found", "venue not found")
		return
	}
	if snap.Venue.BookingDisabled() {
		s.rejectReservation(w, http.StatusConflict, "venue_paused", "the venue is not taking reservations right now")
		return
	}

	if werr := slots.ValidateWindow(snap.Hours, startAt, endAt); werr != nil {
		s.rejectReservation(w, http.StatusBadRequest, string(werr.Code), werr.Message)
		return
	}

	if msg := validateResources(snap, &req); msg != "" {
		s.rejectReservation(w, http.StatusBadRequest, "invalid_resource", msg)
		return
	}

	release, ok := s.guard.AcquireSeats(r.Context(), req.SeatIDs, req.TableID)
	if !ok {
		metrics.IncReservationConflict()
		s.rejectReservation(w, http.StatusConflict, "conflict", "a concurrent booking holds the requested resources")
		return
	}
	defer release()

	created, err := s.db.CreateReservations(r.Context(), &db.ReservationRequest{
		VenueID:   req.VenueID,
		SeatIDs:   req.SeatIDs,
		TableID:   req.TableID,
		SeatCount: req.SeatCount,
		StartAt:   startAt,
		EndAt:     endAt,
	}, s.now())
	switch {
	case errors.Is(err, db.ErrPastTime):
		s.rejectReservation(w, http.StatusBadRequest, "past_time", "reservation starts in the past")
		return
	case errors.Is(err, db.ErrConflict):
		metrics.IncReservationConflict()
		s.rejectReservation(w, http.StatusConflict, "conflict", "the requested resources are already booked")
		return
	case err != nil:
		s.log.Error().Err(err).Int64("venue_id", req.VenueID).Msg("reservation insert failed")
		writeError(w, http.StatusInternalServerError, "failed to create reservation")
		return
	}

	kind := "seat"
	if req.TableID != nil {
		kind = "group_table"
	}
	metrics.IncReservationCreated(kind)
	metrics.IncHTTPRequest("create_reservation", "201")

	out := make([]ReservationResponse, 0, len(created))
	for i := range created {
		out = append(out, ReservationResponse{
			PublicID:  created[i].PublicID,
			SeatID:    created[i].SeatID,
			TableID:   created[i].TableID,
			SeatCount: created[i].SeatCount,
			StartAt:   created[i].StartAt,
			EndAt:     created[i].EndAt,
			Status:    string(created[i].Status),
		})
	}
	writeJSON(w, http.StatusCreated, CreateReservationResponse{Reservations: out})
}

// validateResources checks the requested seats or table against the loaded
// inventory. It returns an empty string when everything checks out.
func validateResources(snap *availability.Snapshot, req *CreateReservationRequest) string {
	seats := make(map[int64]bool)
	groupTables := make(map[int64]int)
	for i := range snap.Tables {
		table := &snap.Tables[i]
		if !table.IsActive {
			continue
		}
		if list, ok := table.IndividualSeats(); ok {
			for _, seat := range list {
				if seat.IsActive {
					seats[seat.ID] = true
				}
			}
			continue
		}
		if count, _, ok := table.GroupUnit(); ok {
			groupTables[table.ID] = count
		}
	}

	for _, id := range req.SeatIDs {
		if !seats[id] {
			return "unknown or inactive seat requested"
		}
	}
	if req.TableID != nil {
		count, ok := groupTables[*req.TableID]
		if !ok {
			return "unknown or inactive group table requested"
		}
		if req.SeatCount > count {
			return "seat_count exceeds the table's capacity"
		}
	}
	return ""
}

func (s *HTTPServer) rejectReservation(w http.ResponseWriter, status int, code, msg string) {
	metrics.IncHTTPRequest("create_reservation", strconv.Itoa(status))
	writeJSON(w, status, CreateReservationResponse{Code: code, Error: msg})
}

// handleCancelReservation flips a reservation to cancelled; rows are never
// deleted.
// DELETE /api/reservations/{id}
func (s *HTTPServer) handleCancelReservation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	publicID := strings.TrimPrefix(r.URL.Path, "/api/reservations/")
	if publicID == "" || strings.Contains(publicID, "/") {
		writeError(w, http.StatusBadRequest, "reservation id is required")
		return
	}

	if err := s.db.CancelReservation(r.Context(), publicID, s.now()); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			metrics.IncHTTPRequest("cancel_reservation", "404")
			writeError(w, http.StatusNotFound, "reservation not found or already cancelled")
			return
		}
		s.log.Error().Err(err).Str("public_id", publicID).Msg("cancel failed")
		writeError(w, http.StatusInternalServerError, "failed to cancel reservation")
		return
	}

	metrics.IncReservationCancelled()
	metrics.IncHTTPRequest("cancel_reservation", "200")
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
