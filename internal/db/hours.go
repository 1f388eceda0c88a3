package db

import (
	"context"
	"fmt"
	"time"

	"seatwise/internal/model"
)

// GetWeeklyHours returns every weekly hours row for a venue, both sources
// included; precedence is applied by the hours resolver, not here.
func (db *DB) GetWeeklyHours(ctx context.Context, venueID int64) ([]model.WeeklyHoursRow, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, venue_id, weekday, is_closed, open_time, close_time, source
		FROM venue_hours
		WHERE venue_id = ?
		ORDER BY weekday, source`,
		venueID,
	)
	if err != nil {
		return nil, fmt.Errorf("query weekly hours: %w", err)
	}
	defer rows.Close()

	var out []model.WeeklyHoursRow
	for rows.Next() {
		var r model.WeeklyHoursRow
		if err := rows.Scan(&r.ID, &r.VenueID, &r.Weekday, &r.IsClosed,
			&r.OpenTime, &r.CloseTime, &r.Source); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplaceHours swaps out all rows of one source for a venue with the given
// schedule and points the venue's hours source at it, in one transaction.
// This is the full re-sync shape both write paths use: a manual edit and a
// schedule import only differ in the source tag.
func (db *DB) ReplaceHours(ctx context.Context, venueID int64, source model.HoursSource, rows []model.WeeklyHoursRow) error {
	if !source.Valid() {
		return fmt.Errorf("unknown hours source %q", source)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM venue_hours WHERE venue_id = ? AND source = ?`,
		venueID, source,
	); err != nil {
		return fmt.Errorf("clear %s hours: %w", source, err)
	}

	for _, r := range rows {
		if r.Weekday < 0 || r.Weekday > 6 {
			return fmt.Errorf("weekday %d out of range", r.Weekday)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO venue_hours (venue_id, weekday, is_closed, open_time, close_time, source)
			VALUES (?, ?, ?, ?, ?, ?)`,
			venueID, r.Weekday, r.IsClosed, r.OpenTime, r.CloseTime, source,
		); err != nil {
			return fmt.Errorf("insert hours row: %w", err)
		}
	}

	// Keep the precedence flag coherent with the rows just written.
	result, err := tx.ExecContext(ctx,
		`UPDATE venues SET hours_source = ?, updated_at = ? WHERE id = ?`,
		source, time.Now().UTC(), venueID,
	)
	if err != nil {
		return fmt.Errorf("update hours source: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}
