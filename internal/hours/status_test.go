package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatwise/internal/model"
)

// weekdayHours builds a schedule open the same hours every day of the week.
func weekdayHours(tz, open, close string) model.CanonicalHours {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		panic(err)
	}
	h := model.CanonicalHours{Timezone: tz, Location: loc}
	for wd := 0; wd < 7; wd++ {
		h.Days[wd] = &model.WeeklyHoursRow{
			Weekday:   wd,
			OpenTime:  open,
			CloseTime: close,
			Source:    model.HoursSourceManual,
		}
	}
	return h
}

func TestStatus_OpenNow(t *testing.T) {
	h := weekdayHours("UTC", "09:00", "17:00")
	// Monday 2026-03-02 10:00 UTC
	st := Status(h, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	assert.True(t, st.IsOpen)
	assert.Equal(t, StateOpenNow, st.State)
	assert.Equal(t, "Monday", st.TodayLabel)
	assert.Equal(t, "09:00-17:00", st.TodayHoursText)
	assert.Nil(t, st.NextOpenAt)
}

func TestStatus_OpensLater(t *testing.T) {
	h := weekdayHours("UTC", "09:00", "17:00")
	st := Status(h, time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC))

	assert.False(t, st.IsOpen)
	assert.Equal(t, StateOpensLater, st.State)
	require.NotNil(t, st.NextOpenAt)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), *st.NextOpenAt)
}

func TestStatus_ClosedNow(t *testing.T) {
	h := weekdayHours("UTC", "09:00", "17:00")
	st := Status(h, time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC))

	assert.False(t, st.IsOpen)
	assert.Equal(t, StateClosedNow, st.State)
	require.NotNil(t, st.NextOpenAt)
	assert.Equal(t, time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC), *st.NextOpenAt)
}

func TestStatus_ClosedToday(t *testing.T) {
	h := weekdayHours("UTC", "09:00", "17:00")
	h.Days[1] = &model.WeeklyHoursRow{Weekday: 1, IsClosed: true}

	st := Status(h, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	assert.False(t, st.IsOpen)
	assert.Equal(t, StateClosedToday, st.State)
	assert.Equal(t, "Closed", st.TodayHoursText)
	require.NotNil(t, st.NextOpenAt)
	// Next open is Tuesday 09:00.
	assert.Equal(t, time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC), *st.NextOpenAt)
}

func TestStatus_MissingDayScansForward(t *testing.T) {
	loc := time.UTC
	h := model.CanonicalHours{Timezone: "UTC", Location: loc}
	// Only Thursday has hours.
	h.Days[4] = &model.WeeklyHoursRow{Weekday: 4, OpenTime: "12:00", CloseTime: "20:00"}

	st := Status(h, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)) // Monday

	assert.Equal(t, StateClosedToday, st.State)
	require.NotNil(t, st.NextOpenAt)
	assert.Equal(t, time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC), *st.NextOpenAt)
}

func TestStatus_AlwaysClosedHasNoNextOpen(t *testing.T) {
	h := model.CanonicalHours{Timezone: "UTC", Location: time.UTC}
	st := Status(h, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, StateClosedToday, st.State)
	assert.Nil(t, st.NextOpenAt)
}

func TestStatus_MalformedHoursNeverOpen(t *testing.T) {
	h := weekdayHours("UTC", "banana", "17:00")
	st := Status(h, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	assert.False(t, st.IsOpen)
	assert.Equal(t, StateClosedToday, st.State)
	assert.NotEmpty(t, st.Diagnostic)
}

func TestStatus_CloseNotAfterOpenNeverOpen(t *testing.T) {
	h := weekdayHours("UTC", "17:00", "09:00")
	st := Status(h, time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC))

	assert.False(t, st.IsOpen)
	assert.Equal(t, StateClosedToday, st.State)
	assert.NotEmpty(t, st.Diagnostic)
}

func TestStatus_EndOfDayClose(t *testing.T) {
	h := weekdayHours("UTC", "18:00", "23:59")
	st := Status(h, time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC))

	assert.True(t, st.IsOpen)
	assert.Equal(t, StateOpenNow, st.State)
}

func TestStatus_UsesVenueLocalTime(t *testing.T) {
	h := weekdayHours("America/New_York", "09:00", "17:00")
	// 15:00 UTC on 2026-03-02 is 10:00 in New York (EST, UTC-5).
	st := Status(h, time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC))
	assert.True(t, st.IsOpen)

	// 03:00 UTC is 22:00 the previous evening in New York.
	st = Status(h, time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC))
	assert.False(t, st.IsOpen)
	assert.Equal(t, "Sunday", st.TodayLabel)
}

func TestInstantAt_DSTSpringForwardGap(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-03-08 02:30 does not exist in New York; the first existing
	// wall-clock minute at or after it is 03:00 EDT.
	got := InstantAt(loc, 2026, time.March, 8, 2*60+30)
	assert.Equal(t, 3, got.Hour())
	assert.Equal(t, 0, got.Minute())

	// A normal time maps exactly.
	got = InstantAt(loc, 2026, time.March, 8, 9*60)
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 0, got.Minute())
}

func TestInstantAt_DSTFallBack(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-11-01 01:30 occurs twice; the mapping must return an instant
	// whose wall clock reads 01:30.
	got := InstantAt(loc, 2026, time.November, 1, 1*60+30)
	assert.Equal(t, 1, got.Hour())
	assert.Equal(t, 30, got.Minute())
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9", 0, true},
		{"", 0, true},
		{"aa:bb", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
		} else {
			assert.NoError(t, err, tt.in)
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestCloseMinutes_EndOfDay(t *testing.T) {
	got, err := CloseMinutes("23:59")
	assert.NoError(t, err)
	assert.Equal(t, 1440, got)

	got, err = CloseMinutes("17:00")
	assert.NoError(t, err)
	assert.Equal(t, 1020, got)
}
