package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"seatwise/internal/model"
)

// GetTables returns all tables of a venue with their seats attached,
// inactive ones included; the calculator decides what to skip.
func (db *DB) GetTables(ctx context.Context, venueID int64) ([]model.Table, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, venue_id, label, booking_mode, seat_count, table_price_per_hour,
		       is_active, created_at, updated_at
		FROM venue_tables
		WHERE venue_id = ?
		ORDER BY id`,
		venueID,
	)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var tables []model.Table
	index := make(map[int64]int)
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.ID, &t.VenueID, &t.Label, &t.Mode, &t.SeatCount,
			&t.TablePricePerHour, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		index[t.ID] = len(tables)
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, nil
	}

	seatRows, err := db.QueryContext(ctx, `
		SELECT s.id, s.table_id, s.label, s.position, s.price_per_hour, s.is_active,
		       s.created_at, s.updated_at
		FROM seats s
		JOIN venue_tables t ON t.id = s.table_id
		WHERE t.venue_id = ?
		ORDER BY s.table_id, s.position, s.id`,
		venueID,
	)
	if err != nil {
		return nil, fmt.Errorf("query seats: %w", err)
	}
	defer seatRows.Close()

	for seatRows.Next() {
		var s model.Seat
		var position sql.NullInt64
		if err := seatRows.Scan(&s.ID, &s.TableID, &s.Label, &position,
			&s.PricePerHour, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if position.Valid {
			p := int(position.Int64)
			s.Position = &p
		}
		if i, ok := index[s.TableID]; ok {
			tables[i].Seats = append(tables[i].Seats, s)
		}
	}
	return tables, seatRows.Err()
}

// CreateTable inserts a table and returns its id.
func (db *DB) CreateTable(ctx context.Context, t *model.Table) (int64, error) {
	if !t.Mode.Valid() {
		return 0, fmt.Errorf("unknown booking mode %q", t.Mode)
	}
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, `
		INSERT INTO venue_tables (venue_id, label, booking_mode, seat_count,
			table_price_per_hour, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.VenueID, t.Label, t.Mode, t.SeatCount, t.TablePricePerHour, t.IsActive, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert table: %w", err)
	}
	return result.LastInsertId()
}

// CreateSeat inserts a seat and returns its id.
func (db *DB) CreateSeat(ctx context.Context, s *model.Seat) (int64, error) {
	now := time.Now().UTC()
	var position any
	if s.Position != nil {
		position = *s.Position
	}
	result, err := db.ExecContext(ctx, `
		INSERT INTO seats (table_id, label, position, price_per_hour, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.TableID, s.Label, position, s.PricePerHour, s.IsActive, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert seat: %w", err)
	}
	return result.LastInsertId()
}
