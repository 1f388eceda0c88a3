package slots

import (
	"time"

	"seatwise/internal/hours"
	"seatwise/internal/model"
)

// MaxWindow is the longest reservation the engine accepts.
const MaxWindow = 24 * time.Hour

// WindowErrorCode distinguishes the user-facing rejection reasons of a
// proposed reservation window.
type WindowErrorCode string

const (
	WindowInverted     WindowErrorCode = "invalid_window"
	WindowTooLong      WindowErrorCode = "exceeds_max_duration"
	WindowTooManyDays  WindowErrorCode = "spans_too_many_days"
	WindowOutsideHours WindowErrorCode = "outside_opening_hours"
)

// WindowError explains why a window was rejected.
type WindowError struct {
	Code    WindowErrorCode `json:"code"`
	Message string          `json:"message"`
}

func (e *WindowError) Error() string { return e.Message }

func windowErr(code WindowErrorCode, msg string) *WindowError {
	return &WindowError{Code: code, Message: msg}
}

// ValidateWindow checks a proposed [startAt, endAt) against the venue's
// canonical hours. A same-day window must lie inside that day's open
// interval. A window crossing one midnight is valid only when the venue is
// open continuously across the crossing: day one open through end of day
// and day two open from start of day. Longer spans are rejected outright.
func ValidateWindow(h model.CanonicalHours, startAt, endAt time.Time) *WindowError {
	if !endAt.After(startAt) {
		return windowErr(WindowInverted, "end time must be after start time")
	}
	if endAt.Sub(startAt) > MaxWindow {
		return windowErr(WindowTooLong, "reservations cannot be longer than 24 hours")
	}

	loc := h.Location
	if loc == nil {
		loc = time.UTC
	}
	startDay := hours.StartOfDay(startAt, loc)
	endDay := hours.StartOfDay(endAt, loc)

	startMin := hours.LocalMinutes(startAt, loc)
	endMin := hours.LocalMinutes(endAt, loc)

	// An end at exactly local midnight belongs to the previous day as the
	// 1440 boundary.
	if endMin == 0 && endDay.After(startDay) {
		endDay = endDay.AddDate(0, 0, -1)
		endMin = hours.MinutesPerDay
	}

	switch {
	case endDay.Equal(startDay):
		open, close, ok := dayInterval(h, startDay.Weekday())
		if !ok || startMin < open || endMin > close {
			return windowErr(WindowOutsideHours, "the venue is not open at this time")
		}
		return nil

	case endDay.Equal(startDay.AddDate(0, 0, 1)):
		// Crossing one midnight: day one must stay open until end of day
		// and day two must open at midnight.
		open1, close1, ok1 := dayInterval(h, startDay.Weekday())
		open2, _, ok2 := dayInterval(h, endDay.Weekday())
		if !ok1 || !ok2 ||
			startMin < open1 || close1 != hours.MinutesPerDay ||
			open2 != 0 {
			return windowErr(WindowOutsideHours, "the venue is not open across this time")
		}
		_, close2, _ := dayInterval(h, endDay.Weekday())
		if endMin > close2 {
			return windowErr(WindowOutsideHours, "the venue is not open across this time")
		}
		return nil

	default:
		return windowErr(WindowTooManyDays, "reservations cannot span more than two days")
	}
}

// dayInterval returns the [open, close) minutes of a weekday. ok is false
// for closed, missing or malformed days.
func dayInterval(h model.CanonicalHours, weekday time.Weekday) (open, close int, ok bool) {
	row := h.Day(weekday)
	if row == nil || row.IsClosed {
		return 0, 0, false
	}
	open, err := hours.ParseClock(row.OpenTime)
	if err != nil {
		return 0, 0, false
	}
	close, err = hours.CloseMinutes(row.CloseTime)
	if err != nil || close <= open {
		return 0, 0, false
	}
	return open, close, true
}
