package model

import "time"

// BookingMode distinguishes how a table is booked: per-seat or as one unit.
type BookingMode string

const (
	BookingIndividual BookingMode = "individual"
	BookingGroup      BookingMode = "group"
)

// Valid reports whether m is a known booking mode.
func (m BookingMode) Valid() bool {
	return m == BookingIndividual || m == BookingGroup
}

// Table is a physical table at a venue. An individual-mode table exposes its
// child seats for per-seat booking; a group-mode table is booked whole and
// its seats are never offered individually.
type Table struct {
	ID                int64       `json:"id"`
	VenueID           int64       `json:"venue_id"`
	Label             string      `json:"label"`
	Mode              BookingMode `json:"booking_mode"`
	SeatCount         int         `json:"seat_count"`
	TablePricePerHour float64     `json:"table_price_per_hour,omitempty"` // group mode only
	IsActive          bool        `json:"is_active"`
	Seats             []Seat      `json:"seats,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// IndividualSeats returns the table's seats when it is individually
// bookable. The second result is false for group tables, whose seats must
// never leak into per-seat availability.
func (t *Table) IndividualSeats() ([]Seat, bool) {
	if t.Mode != BookingIndividual {
		return nil, false
	}
	return t.Seats, true
}

// GroupUnit returns the seat count and hourly price of a group table. The
// second result is false for individual tables.
func (t *Table) GroupUnit() (seatCount int, pricePerHour float64, ok bool) {
	if t.Mode != BookingGroup {
		return 0, 0, false
	}
	return t.SeatCount, t.TablePricePerHour, true
}

// ActiveSeatCount is the number of active seats of an individual table, or
// the declared seat count of an active group table.
func (t *Table) ActiveSeatCount() int {
	if !t.IsActive {
		return 0
	}
	if t.Mode == BookingGroup {
		return t.SeatCount
	}
	n := 0
	for _, s := range t.Seats {
		if s.IsActive {
			n++
		}
	}
	return n
}

// Seat belongs to exactly one table. Position, when set, places the seat in
// the table's linear order for adjacency matching; seats without a position
// never participate in multi-seat runs.
type Seat struct {
	ID           int64     `json:"id"`
	TableID      int64     `json:"table_id"`
	Label        string    `json:"label"`
	Position     *int      `json:"position,omitempty"`
	PricePerHour float64   `json:"price_per_hour"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
