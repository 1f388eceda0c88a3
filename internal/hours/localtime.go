package hours

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the synthetic end-of-day boundary: a close time of
// "23:59" maps to 1440 ("open until midnight").
const MinutesPerDay = 24 * 60

// ParseClock parses an "HH:MM" wall-clock string into minutes since local
// midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid time format: %s", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time out of range: %s", s)
	}
	return hour*60 + minute, nil
}

// CloseMinutes parses a close time, mapping "23:59" to the end-of-day
// boundary of 1440 minutes.
func CloseMinutes(s string) (int, error) {
	m, err := ParseClock(s)
	if err != nil {
		return 0, err
	}
	if m == MinutesPerDay-1 {
		return MinutesPerDay, nil
	}
	return m, nil
}

// InstantAt maps a venue-local wall-clock time on a calendar day to an
// absolute instant. time.Date resolves the zone offset for the requested
// wall clock; when the requested time falls inside a DST spring-forward gap
// the result drifts, so we walk forward minute by minute until the mapping
// round-trips. A fixed UTC offset is never assumed.
func InstantAt(loc *time.Location, year int, month time.Month, day, minuteOfDay int) time.Time {
	if minuteOfDay >= MinutesPerDay {
		// End-of-day boundary: local midnight of the following day.
		return time.Date(year, month, day+1, 0, 0, 0, 0, loc)
	}
	hour, minute := minuteOfDay/60, minuteOfDay%60
	t := time.Date(year, month, day, hour, minute, 0, 0, loc)
	if t.Hour() == hour && t.Minute() == minute {
		return t
	}
	// Inside a gap: find the first wall-clock minute at or after the
	// requested one that actually exists on this day.
	for probe := minuteOfDay; probe < MinutesPerDay; probe++ {
		t = time.Date(year, month, day, probe/60, probe%60, 0, 0, loc)
		if t.Hour() == probe/60 && t.Minute() == probe%60 {
			return t
		}
	}
	// Whole remainder of the day is gapped (cannot happen for real zones);
	// fall back to local midnight of the next day.
	return time.Date(year, month, day+1, 0, 0, 0, 0, loc)
}

// LocalMinutes returns the wall-clock minutes since midnight of t in loc.
func LocalMinutes(t time.Time, loc *time.Location) int {
	lt := t.In(loc)
	return lt.Hour()*60 + lt.Minute()
}

// StartOfDay returns local midnight of the day containing t in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}
