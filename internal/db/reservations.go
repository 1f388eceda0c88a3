package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"seatwise/internal/model"
)

// ReservationRequest describes one booking attempt. Either SeatIDs holds the
// individual seats to book (one reservation row per seat) or TableID names a
// group table booked whole. The two are mutually exclusive.
type ReservationRequest struct {
	VenueID   int64
	SeatIDs   []int64
	TableID   *int64
	SeatCount int
	StartAt   time.Time
	EndAt     time.Time
}

// CreateReservations books the requested resources atomically. The overlap
// check runs inside the same transaction as the inserts, so two concurrent
// attempts on the same seat cannot both pass: the second one either sees the
// first one's committed row or waits on the write lock and then sees it.
// Returns ErrPastTime when the window starts before now and ErrConflict when
// any requested resource is already taken.
func (db *DB) CreateReservations(ctx context.Context, req *ReservationRequest, now time.Time) ([]model.Reservation, error) {
	if req.StartAt.Before(now) {
		return nil, ErrPastTime
	}
	if len(req.SeatIDs) == 0 && req.TableID == nil {
		return nil, fmt.Errorf("reservation request names no resources")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, seatID := range req.SeatIDs {
		taken, err := seatTaken(ctx, tx, req.VenueID, seatID, req.StartAt, req.EndAt)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrConflict
		}
	}
	if req.TableID != nil {
		taken, err := tableTaken(ctx, tx, req.VenueID, *req.TableID, req.StartAt, req.EndAt)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrConflict
		}
	}

	created := make([]model.Reservation, 0, len(req.SeatIDs)+1)
	insert := func(seatID, tableID *int64, seatCount int) error {
		r := model.Reservation{
			PublicID:  uuid.New().String(),
			VenueID:   req.VenueID,
			SeatID:    seatID,
			TableID:   tableID,
			SeatCount: seatCount,
			StartAt:   req.StartAt.UTC(),
			EndAt:     req.EndAt.UTC(),
			Status:    model.ReservationActive,
			CreatedAt: now.UTC(),
			UpdatedAt: now.UTC(),
		}
		result, err := tx.ExecContext(ctx, `
			INSERT INTO reservations (public_id, venue_id, seat_id, table_id, seat_count,
				start_at, end_at, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.PublicID, r.VenueID, nullableID(r.SeatID), nullableID(r.TableID), r.SeatCount,
			r.StartAt, r.EndAt, r.Status, r.CreatedAt, r.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}
		r.ID, err = result.LastInsertId()
		if err != nil {
			return err
		}
		created = append(created, r)
		return nil
	}

	for _, seatID := range req.SeatIDs {
		id := seatID
		if err := insert(&id, nil, 1); err != nil {
			return nil, err
		}
	}
	if req.TableID != nil {
		if err := insert(nil, req.TableID, req.SeatCount); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	db.logger.Info().
		Int64("venue_id", req.VenueID).
		Int("reservations", len(created)).
		Time("start_at", req.StartAt).
		Msg("reservations created")
	return created, nil
}

// seatTaken checks one seat against active reservations (the seat's own and
// any group booking of its table) and against blocks (the seat's own and
// venue-wide). All comparisons are half-open: touching windows do not clash.
func seatTaken(ctx context.Context, tx *sql.Tx, venueID, seatID int64, start, end time.Time) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM reservations
		WHERE venue_id = ? AND status = ?
		  AND start_at < ? AND end_at > ?
		  AND (seat_id = ? OR table_id = (SELECT table_id FROM seats WHERE id = ?))`,
		venueID, model.ReservationActive, end.UTC(), start.UTC(), seatID, seatID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check seat reservations: %w", err)
	}
	if n > 0 {
		return true, nil
	}
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM seat_blocks
		WHERE venue_id = ? AND start_at < ? AND end_at > ?
		  AND (seat_id IS NULL OR seat_id = ?)`,
		venueID, end.UTC(), start.UTC(), seatID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check seat blocks: %w", err)
	}
	return n > 0, nil
}

// tableTaken checks a group table against its own bookings, any per-seat
// booking of its children, and blocks on the venue or on any of its seats.
func tableTaken(ctx context.Context, tx *sql.Tx, venueID, tableID int64, start, end time.Time) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM reservations
		WHERE venue_id = ? AND status = ?
		  AND start_at < ? AND end_at > ?
		  AND (table_id = ? OR seat_id IN (SELECT id FROM seats WHERE table_id = ?))`,
		venueID, model.ReservationActive, end.UTC(), start.UTC(), tableID, tableID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check table reservations: %w", err)
	}
	if n > 0 {
		return true, nil
	}
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM seat_blocks
		WHERE venue_id = ? AND start_at < ? AND end_at > ?
		  AND (seat_id IS NULL OR seat_id IN (SELECT id FROM seats WHERE table_id = ?))`,
		venueID, end.UTC(), start.UTC(), tableID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check table blocks: %w", err)
	}
	return n > 0, nil
}

// CancelReservation flips an active reservation to cancelled by its public
// id. Cancelling an unknown or already cancelled reservation is ErrNotFound.
func (db *DB) CancelReservation(ctx context.Context, publicID string, now time.Time) error {
	result, err := db.ExecContext(ctx, `
		UPDATE reservations SET status = ?, updated_at = ?
		WHERE public_id = ? AND status = ?`,
		model.ReservationCancelled, now.UTC(), publicID, model.ReservationActive,
	)
	if err != nil {
		return fmt.Errorf("cancel reservation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	db.logger.Info().Str("public_id", publicID).Msg("reservation cancelled")
	return nil
}

// GetOverlappingReservations returns the venue's active reservations that
// intersect [start, end).
func (db *DB) GetOverlappingReservations(ctx context.Context, venueID int64, start, end time.Time) ([]model.Reservation, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, public_id, venue_id, seat_id, table_id, seat_count,
		       start_at, end_at, status, created_at, updated_at
		FROM reservations
		WHERE venue_id = ? AND status = ?
		  AND start_at < ? AND end_at > ?
		ORDER BY start_at, id`,
		venueID, model.ReservationActive, end.UTC(), start.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("query reservations: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

// GetReservationsBetween returns all of a venue's reservations, cancelled
// ones included, that intersect [from, to). Used for exports.
func (db *DB) GetReservationsBetween(ctx context.Context, venueID int64, from, to time.Time) ([]model.Reservation, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, public_id, venue_id, seat_id, table_id, seat_count,
		       start_at, end_at, status, created_at, updated_at
		FROM reservations
		WHERE venue_id = ? AND start_at < ? AND end_at > ?
		ORDER BY start_at, id`,
		venueID, to.UTC(), from.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("query reservations: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

func scanReservations(rows *sql.Rows) ([]model.Reservation, error) {
	var out []model.Reservation
	for rows.Next() {
		var r model.Reservation
		var seatID, tableID sql.NullInt64
		if err := rows.Scan(&r.ID, &r.PublicID, &r.VenueID, &seatID, &tableID,
			&r.SeatCount, &r.StartAt, &r.EndAt, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		if seatID.Valid {
			r.SeatID = &seatID.Int64
		}
		if tableID.Valid {
			r.TableID = &tableID.Int64
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
