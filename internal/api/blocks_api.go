package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"seatwise/internal/db"
	"seatwise/internal/metrics"
	"seatwise/internal/model"
)

// CreateBlockRequest places an operator hold on one seat or, with a nil
// seat_id, on the whole venue.
type CreateBlockRequest struct {
	VenueID int64  `json:"venue_id"`
	SeatID  *int64 `json:"seat_id,omitempty"`
	StartAt string `json:"start_at"` // RFC3339
	EndAt   string `json:"end_at"`   // RFC3339
	Reason  string `json:"reason,omitempty"`
}

// handleCreateBlock creates an operator hold.
// POST /api/blocks
func (s *HTTPServer) handleCreateBlock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req CreateBlockRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		metrics.IncHTTPRequest("create_block", "400")
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.VenueID <= 0 {
		metrics.IncHTTPRequest("create_block", "400")
		writeError(w, http.StatusBadRequest, "venue_id is required")
		return
	}

	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		metrics.IncHTTPRequest("create_block", "400")
		writeError(w, http.StatusBadRequest, "invalid start_at; expected RFC3339")
		return
	}
	endAt, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil || !endAt.After(startAt) {
		metrics.IncHTTPRequest("create_block", "400")
		writeError(w, http.StatusBadRequest, "end_at must be RFC3339 and after start_at")
		return
	}

	if _, err := s.db.GetVenue(r.Context(), req.VenueID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			metrics.IncHTTPRequest("create_block", "404")
			writeError(w, http.StatusNotFound, "venue not found")
			return
		}
		s.log.Error().Err(err).Int64("venue_id", req.VenueID).Msg("venue load failed")
		writeError(w, http.StatusInternalServerError, "failed to load venue")
		return
	}

	id, err := s.db.CreateBlock(r.Context(), &model.SeatBlock{
		VenueID: req.VenueID,
		SeatID:  req.SeatID,
		StartAt: startAt,
		EndAt:   endAt,
		Reason:  req.Reason,
	})
	if err != nil {
		s.log.Error().Err(err).Int64("venue_id", req.VenueID).Msg("block create failed")
		writeError(w, http.StatusInternalServerError, "failed to create block")
		return
	}

	metrics.IncHTTPRequest("create_block", "201")
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

// handleDeleteBlock lifts a hold.
// DELETE /api/blocks/{id}?venue_id=
func (s *HTTPServer) handleDeleteBlock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/blocks/")
	blockID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || blockID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid block id")
		return
	}
	venueID, err := strconv.ParseInt(r.URL.Query().Get("venue_id"), 10, 64)
	if err != nil || venueID <= 0 {
		writeError(w, http.StatusBadRequest, "venue_id query parameter is required")
		return
	}

	if err := s.db.DeleteBlock(r.Context(), venueID, blockID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			metrics.IncHTTPRequest("delete_block", "404")
			writeError(w, http.StatusNotFound, "block not found")
			return
		}
		s.log.Error().Err(err).Int64("block_id", blockID).Msg("block delete failed")
		writeError(w, http.StatusInternalServerError, "failed to delete block")
		return
	}

	metrics.IncHTTPRequest("delete_block", "200")
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
