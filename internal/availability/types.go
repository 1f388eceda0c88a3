package availability

import (
	"time"

	"seatwise/internal/model"
)

// ErrorKind classifies why an availability query could not be answered.
// These are business results, not transport failures.
type ErrorKind string

const (
	KindNotFound    ErrorKind = "venue_not_found"
	KindVenuePaused ErrorKind = "venue_paused"
	KindCapacity    ErrorKind = "seat_count_exceeds_capacity"
	KindWindow      ErrorKind = "invalid_window"
)

// QueryError is a structured availability rejection.
type QueryError struct {
	Kind         ErrorKind `json:"kind"`
	Message      string    `json:"message"`
	PauseMessage string    `json:"pause_message,omitempty"`
}

func (e *QueryError) Error() string { return e.Message }

// SeatInfo describes a bookable seat of an individual-mode table.
type SeatInfo struct {
	ID           int64   `json:"id"`
	TableID      int64   `json:"table_id"`
	Label        string  `json:"label"`
	PricePerHour float64 `json:"price_per_hour"`
}

// UnavailableSeat is a seat blocked for the requested window, with the
// estimated instant it frees up (nil when no estimate beats "now").
type UnavailableSeat struct {
	SeatInfo
	NextAvailableAt *time.Time `json:"next_available_at"`
}

// SeatGroup is a run of adjacent seats inside one individual-mode table
// that together satisfy a multi-seat request. PricePerHour is the sum of
// the member seats' hourly prices.
type SeatGroup struct {
	TableID      int64   `json:"table_id"`
	TableLabel   string  `json:"table_label"`
	SeatIDs      []int64 `json:"seat_ids"`
	PricePerHour float64 `json:"price_per_hour"`
}

// GroupTableInfo describes a group-mode table offered as one unit.
type GroupTableInfo struct {
	ID           int64   `json:"id"`
	Label        string  `json:"label"`
	SeatCount    int     `json:"seat_count"`
	PricePerHour float64 `json:"price_per_hour"`
}

// UnavailableGroupTable is a conflicting group table with its free-up
// estimate.
type UnavailableGroupTable struct {
	GroupTableInfo
	NextAvailableAt *time.Time `json:"next_available_at"`
}

// Result is the partition of a venue's inventory for one requested window
// and seat count.
type Result struct {
	AvailableSeats         []SeatInfo              `json:"available_seats"`
	UnavailableSeats       []UnavailableSeat       `json:"unavailable_seats"`
	AvailableSeatGroups    []SeatGroup             `json:"available_seat_groups"`
	AvailableGroupTables   []GroupTableInfo        `json:"available_group_tables"`
	UnavailableGroupTables []UnavailableGroupTable `json:"unavailable_group_tables"`
	UnavailableSeatIDs     []int64                 `json:"unavailable_seat_ids"`
}

// Snapshot is everything the calculator needs, read once from storage.
// Cancelled reservations may appear in Reservations; the conflict predicate
// ignores them.
type Snapshot struct {
	Venue        model.Venue
	Hours        model.CanonicalHours
	Tables       []model.Table
	Reservations []model.Reservation
	Blocks       []model.SeatBlock
}

// TotalActiveCapacity sums active seats of individual tables and declared
// seat counts of active group tables.
func (s *Snapshot) TotalActiveCapacity() int {
	total := 0
	for i := range s.Tables {
		total += s.Tables[i].ActiveSeatCount()
	}
	return total
}
