package hours

import (
	"time"

	"seatwise/internal/model"
)

// Resolve merges a venue's weekly hours rows into the canonical schedule.
// When both a manual and an imported row exist for the same weekday, the
// row matching the venue's hours source wins; a lone row of either source
// is kept; a weekday with no surviving row is implicitly closed.
//
// Resolution is a pure merge over the rows passed in. It runs once per
// venue per query and caches nothing.
func Resolve(venue *model.Venue, rows []model.WeeklyHoursRow) model.CanonicalHours {
	tz := venue.Timezone
	if tz == "" {
		tz = model.DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		tz = model.DefaultTimezone
		loc = time.UTC
	}

	h := model.CanonicalHours{Timezone: tz, Location: loc}

	preferred := venue.HoursSource
	if !preferred.Valid() {
		preferred = model.HoursSourceManual
	}

	for i := range rows {
		row := rows[i]
		if row.Weekday < 0 || row.Weekday > 6 || !row.Source.Valid() {
			continue
		}
		current := h.Days[row.Weekday]
		switch {
		case current == nil:
			h.Days[row.Weekday] = &row
		case current.Source != row.Source:
			// Both sources present for this day: precedence decides.
			if row.Source == preferred {
				h.Days[row.Weekday] = &row
			}
		}
	}

	return h
}
