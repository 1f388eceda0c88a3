package slots

import (
	"time"

	"seatwise/internal/hours"
	"seatwise/internal/model"
)

// SlotMinutes is the fixed booking granularity. Every bookable start and
// end is aligned to a 15-minute boundary.
const SlotMinutes = 15

// SlotDuration is SlotMinutes as a time.Duration.
const SlotDuration = SlotMinutes * time.Minute

// Slot is one bookable [Start, End) window at slot granularity.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Generate returns the ordered 15-minute slots inside the open interval of
// the given venue-local calendar day. Only the year, month and day of date
// are used. A closed or malformed day yields no slots. Pure: no state is
// kept between calls.
func Generate(h model.CanonicalHours, date time.Time) []Slot {
	loc := h.Location
	if loc == nil {
		loc = time.UTC
	}
	local := date.In(loc)
	year, month, day := local.Date()

	weekday := time.Date(year, month, day, 0, 0, 0, 0, loc).Weekday()
	row := h.Day(weekday)
	if row == nil || row.IsClosed {
		return nil
	}

	openMin, err := hours.ParseClock(row.OpenTime)
	if err != nil {
		return nil
	}
	closeMin, err := hours.CloseMinutes(row.CloseTime)
	if err != nil || closeMin <= openMin {
		return nil
	}

	// Align the first slot to the next boundary at or after opening.
	cursor := openMin
	if rem := cursor % SlotMinutes; rem != 0 {
		cursor += SlotMinutes - rem
	}

	var out []Slot
	for ; cursor+SlotMinutes <= closeMin; cursor += SlotMinutes {
		out = append(out, Slot{
			Start: hours.InstantAt(loc, year, month, day, cursor),
			End:   hours.InstantAt(loc, year, month, day, cursor+SlotMinutes),
		})
	}
	return out
}

// RoundUpToSlot advances t to the next 15-minute boundary. The rounding is
// inclusive-forward: an instant already on a boundary still moves to the
// following one.
func RoundUpToSlot(t time.Time) time.Time {
	truncated := t.Truncate(SlotDuration)
	return truncated.Add(SlotDuration)
}
