package db

import (
	"context"
	"time"

	"seatwise/internal/availability"
	"seatwise/internal/hours"
)

// LoadSnapshot assembles everything the availability calculator needs for
// one venue and one query window: the venue row, its resolved weekly hours,
// the full table and seat inventory, and every reservation and block that
// intersects [start, end). Returns ErrNotFound when the venue does not
// exist; a deleted venue is still loaded so the calculator can report it.
func (db *DB) LoadSnapshot(ctx context.Context, venueID int64, start, end time.Time) (*availability.Snapshot, error) {
	venue, err := db.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	hoursRows, err := db.GetWeeklyHours(ctx, venueID)
	if err != nil {
		return nil, err
	}
	tables, err := db.GetTables(ctx, venueID)
	if err != nil {
		return nil, err
	}
	reservations, err := db.GetOverlappingReservations(ctx, venueID, start, end)
	if err != nil {
		return nil, err
	}
	blocks, err := db.GetOverlappingBlocks(ctx, venueID, start, end)
	if err != nil {
		return nil, err
	}
	return &availability.Snapshot{
		Venue:        *venue,
		Hours:        hours.Resolve(venue, hoursRows),
		Tables:       tables,
		Reservations: reservations,
		Blocks:       blocks,
	}, nil
}
