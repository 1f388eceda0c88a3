package model

import "time"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect. This is the
// single conflict predicate: it is applied identically to reservations and
// seat blocks, in queries and in memory.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// IsEmpty reports whether the interval contains no instants.
func (iv Interval) IsEmpty() bool {
	return !iv.End.After(iv.Start)
}

// Duration of the interval; zero for empty or inverted intervals.
func (iv Interval) Duration() time.Duration {
	if iv.IsEmpty() {
		return 0
	}
	return iv.End.Sub(iv.Start)
}

// ReservationStatus is the lifecycle state of a reservation. Reservations
// are never physically deleted; cancellation is the only mutation.
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation occupies either one seat (SeatID set) or one whole group
// table (TableID set, SeatID nil) for [StartAt, EndAt). Cancelled rows
// never contribute to conflicts.
type Reservation struct {
	ID        int64             `json:"id"`
	PublicID  string            `json:"public_id"` // uuid handed to callers
	VenueID   int64             `json:"venue_id"`
	SeatID    *int64            `json:"seat_id,omitempty"`
	TableID   *int64            `json:"table_id,omitempty"`
	SeatCount int               `json:"seat_count"`
	StartAt   time.Time         `json:"start_at"`
	EndAt     time.Time         `json:"end_at"`
	Status    ReservationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Window returns the reservation's occupied interval.
func (r *Reservation) Window() Interval {
	return Interval{Start: r.StartAt, End: r.EndAt}
}

// IsGroup reports whether this is a whole-table booking.
func (r *Reservation) IsGroup() bool {
	return r.TableID != nil && r.SeatID == nil
}

// ConflictsWith reports whether the reservation occupies any instant of
// [start, end). Cancelled reservations never conflict.
func (r *Reservation) ConflictsWith(start, end time.Time) bool {
	if r.Status == ReservationCancelled {
		return false
	}
	return r.Window().Overlaps(Interval{Start: start, End: end})
}

// SeatBlock is an operator-imposed hold. A nil SeatID blocks the entire
// venue. Blocks have no status: presence inside the window is the conflict.
type SeatBlock struct {
	ID        int64     `json:"id"`
	VenueID   int64     `json:"venue_id"`
	SeatID    *int64    `json:"seat_id,omitempty"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Window returns the block's interval.
func (b *SeatBlock) Window() Interval {
	return Interval{Start: b.StartAt, End: b.EndAt}
}

// BlocksVenue reports whether the block covers every seat of the venue.
func (b *SeatBlock) BlocksVenue() bool {
	return b.SeatID == nil
}
