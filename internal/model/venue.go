package model

import "time"

// DefaultTimezone is used when a venue has no timezone configured or the
// configured zone cannot be loaded.
const DefaultTimezone = "UTC"

// HoursSource identifies which schedule source a venue (or a single weekly
// row) belongs to. It is a closed set; anything else is a data error.
type HoursSource string

const (
	HoursSourceManual   HoursSource = "manual"
	HoursSourceImported HoursSource = "imported"
)

// Valid reports whether s is one of the known sources.
func (s HoursSource) Valid() bool {
	return s == HoursSourceManual || s == HoursSourceImported
}

// VenueStatus is the operational state of a venue.
type VenueStatus string

const (
	VenueActive  VenueStatus = "active"
	VenuePaused  VenueStatus = "paused"
	VenueDeleted VenueStatus = "deleted"
)

// Venue is a bookable location. It owns tables (and through them, seats).
type Venue struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Timezone     string      `json:"timezone"` // IANA zone name, may be empty
	HoursSource  HoursSource `json:"hours_source"`
	Status       VenueStatus `json:"status"`
	PauseMessage string      `json:"pause_message,omitempty"`
	Tags         StringList  `json:"tags,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// BookingDisabled reports whether reservations are currently rejected for
// this venue regardless of availability.
func (v *Venue) BookingDisabled() bool {
	return v.Status != VenueActive
}

// EndOfDay is the close-time string treated as "open until midnight".
const EndOfDay = "23:59"

// WeeklyHoursRow is one day's opening hours for a venue. At most one row
// exists per (venue, weekday, source); a weekday without any surviving row
// after precedence is implicitly closed.
type WeeklyHoursRow struct {
	ID        int64       `json:"id"`
	VenueID   int64       `json:"venue_id"`
	Weekday   int         `json:"weekday"` // 0=Sunday .. 6=Saturday
	IsClosed  bool        `json:"is_closed"`
	OpenTime  string      `json:"open_time"`  // "HH:MM" venue-local
	CloseTime string      `json:"close_time"` // "HH:MM"; "23:59" means end of day
	Source    HoursSource `json:"source"`
}

// CanonicalHours is the resolved weekly schedule for a venue after source
// precedence has been applied. Days[w] is nil when weekday w has no row.
type CanonicalHours struct {
	Timezone string
	Location *time.Location
	Days     [7]*WeeklyHoursRow
}

// Day returns the resolved row for a weekday, or nil.
func (h *CanonicalHours) Day(weekday time.Weekday) *WeeklyHoursRow {
	return h.Days[int(weekday)]
}
