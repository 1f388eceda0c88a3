package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"seatwise/internal/model"
)

// CreateBlock inserts an operator hold. A nil SeatID blocks the whole venue.
func (db *DB) CreateBlock(ctx context.Context, b *model.SeatBlock) (int64, error) {
	if !b.EndAt.After(b.StartAt) {
		return 0, fmt.Errorf("block window is empty or inverted")
	}
	result, err := db.ExecContext(ctx, `
		INSERT INTO seat_blocks (venue_id, seat_id, start_at, end_at, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.VenueID, nullableID(b.SeatID), b.StartAt.UTC(), b.EndAt.UTC(), b.Reason, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert block: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	db.logger.Info().Int64("venue_id", b.VenueID).Int64("block_id", id).Msg("block created")
	return id, nil
}

// DeleteBlock removes a hold by id. Unknown ids are ErrNotFound.
func (db *DB) DeleteBlock(ctx context.Context, venueID, blockID int64) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM seat_blocks WHERE id = ? AND venue_id = ?`, blockID, venueID)
	if err != nil {
		return fmt.Errorf("delete block: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetOverlappingBlocks returns the venue's blocks intersecting [start, end).
func (db *DB) GetOverlappingBlocks(ctx context.Context, venueID int64, start, end time.Time) ([]model.SeatBlock, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, venue_id, seat_id, start_at, end_at, reason, created_at
		FROM seat_blocks
		WHERE venue_id = ? AND start_at < ? AND end_at > ?
		ORDER BY start_at, id`,
		venueID, end.UTC(), start.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("query blocks: %w", err)
	}
	defer rows.Close()

	var out []model.SeatBlock
	for rows.Next() {
		var b model.SeatBlock
		var seatID sql.NullInt64
		if err := rows.Scan(&b.ID, &b.VenueID, &seatID, &b.StartAt, &b.EndAt,
			&b.Reason, &b.CreatedAt); err != nil {
			return nil, err
		}
		if seatID.Valid {
			b.SeatID = &seatID.Int64
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
