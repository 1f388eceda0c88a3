package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"seatwise/internal/model"
)

// GetVenue returns a venue by id, or ErrNotFound.
func (db *DB) GetVenue(ctx context.Context, id int64) (*model.Venue, error) {
	var v model.Venue
	err := db.QueryRowContext(ctx, `
		SELECT id, name, timezone, hours_source, status, pause_message, tags,
		       created_at, updated_at
		FROM venues WHERE id = ?`,
		id,
	).Scan(
		&v.ID, &v.Name, &v.Timezone, &v.HoursSource, &v.Status,
		&v.PauseMessage, &v.Tags, &v.CreatedAt, &v.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get venue %d: %w", id, err)
	}
	return &v, nil
}

// CreateVenue inserts a venue and returns its id.
func (db *DB) CreateVenue(ctx context.Context, v *model.Venue) (int64, error) {
	if v.Status == "" {
		v.Status = model.VenueActive
	}
	if v.HoursSource == "" {
		v.HoursSource = model.HoursSourceManual
	}
	now := time.Now().UTC()
	tags, err := v.Tags.Value()
	if err != nil {
		return 0, fmt.Errorf("encode tags: %w", err)
	}
	result, err := db.ExecContext(ctx, `
		INSERT INTO venues (name, timezone, hours_source, status, pause_message, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.Name, v.Timezone, v.HoursSource, v.Status, v.PauseMessage, tags, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert venue: %w", err)
	}
	return result.LastInsertId()
}

// SetVenueStatus changes a venue's operational status and pause message.
func (db *DB) SetVenueStatus(ctx context.Context, id int64, status model.VenueStatus, pauseMessage string) error {
	result, err := db.ExecContext(ctx, `
		UPDATE venues SET status = ?, pause_message = ?, updated_at = ? WHERE id = ?`,
		status, pauseMessage, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("set venue status: %w", err)
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
