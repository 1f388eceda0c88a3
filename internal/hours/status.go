package hours

import (
	"fmt"
	"time"

	"seatwise/internal/model"
)

// OpenState classifies a venue's relation to its opening hours at an instant.
type OpenState string

const (
	StateOpenNow     OpenState = "OPEN_NOW"
	StateClosedNow   OpenState = "CLOSED_NOW"
	StateOpensLater  OpenState = "OPENS_LATER"
	StateClosedToday OpenState = "CLOSED_TODAY"
)

// OpenStatus is the evaluated open/closed view of a venue at one instant.
// A malformed schedule row degrades to closed and surfaces Diagnostic; it
// is never silently treated as open.
type OpenStatus struct {
	IsOpen         bool       `json:"is_open"`
	State          OpenState  `json:"status"`
	TodayLabel     string     `json:"today_label"`
	TodayHoursText string     `json:"today_hours_text"`
	NextOpenAt     *time.Time `json:"next_open_at,omitempty"`
	Diagnostic     string     `json:"diagnostic_message,omitempty"`
}

// Status evaluates the canonical schedule at the given instant. All
// comparisons use venue-local wall-clock time.
func Status(h model.CanonicalHours, at time.Time) OpenStatus {
	loc := h.Location
	if loc == nil {
		loc = time.UTC
	}
	local := at.In(loc)
	row := h.Day(local.Weekday())

	st := OpenStatus{
		TodayLabel:     local.Weekday().String(),
		TodayHoursText: "Closed",
	}

	if row == nil || row.IsClosed {
		st.State = StateClosedToday
		st.NextOpenAt = nextOpenAfter(h, local)
		return st
	}

	openMin, openErr := ParseClock(row.OpenTime)
	closeMin, closeErr := CloseMinutes(row.CloseTime)
	if openErr != nil || closeErr != nil {
		st.State = StateClosedToday
		st.Diagnostic = fmt.Sprintf("malformed hours for %s: open=%q close=%q",
			st.TodayLabel, row.OpenTime, row.CloseTime)
		st.NextOpenAt = nextOpenAfter(h, local)
		return st
	}
	if closeMin <= openMin {
		st.State = StateClosedToday
		st.Diagnostic = fmt.Sprintf("close time %q is not after open time %q for %s",
			row.CloseTime, row.OpenTime, st.TodayLabel)
		st.NextOpenAt = nextOpenAfter(h, local)
		return st
	}

	st.TodayHoursText = fmt.Sprintf("%s-%s", row.OpenTime, row.CloseTime)

	nowMin := local.Hour()*60 + local.Minute()
	switch {
	case nowMin >= openMin && nowMin < closeMin:
		st.IsOpen = true
		st.State = StateOpenNow
	case nowMin < openMin:
		st.State = StateOpensLater
		openAt := InstantAt(loc, local.Year(), local.Month(), local.Day(), openMin)
		st.NextOpenAt = &openAt
	default:
		st.State = StateClosedNow
		st.NextOpenAt = nextOpenAfter(h, local)
	}
	return st
}

// nextOpenAfter scans forward up to seven days from the day after local for
// the first weekday with a usable open time, and maps that open time back
// to an absolute instant.
func nextOpenAfter(h model.CanonicalHours, local time.Time) *time.Time {
	loc := h.Location
	if loc == nil {
		loc = time.UTC
	}
	for offset := 1; offset <= 7; offset++ {
		day := time.Date(local.Year(), local.Month(), local.Day()+offset, 0, 0, 0, 0, loc)
		row := h.Day(day.Weekday())
		if row == nil || row.IsClosed {
			continue
		}
		openMin, err := ParseClock(row.OpenTime)
		if err != nil {
			continue
		}
		closeMin, err := CloseMinutes(row.CloseTime)
		if err != nil || closeMin <= openMin {
			continue
		}
		at := InstantAt(loc, day.Year(), day.Month(), day.Day(), openMin)
		return &at
	}
	return nil
}
