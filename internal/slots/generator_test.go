package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatwise/internal/model"
)

func scheduleFor(tz string, days map[time.Weekday][2]string) model.CanonicalHours {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		panic(err)
	}
	h := model.CanonicalHours{Timezone: tz, Location: loc}
	for wd, oc := range days {
		h.Days[int(wd)] = &model.WeeklyHoursRow{
			Weekday:   int(wd),
			OpenTime:  oc[0],
			CloseTime: oc[1],
			Source:    model.HoursSourceManual,
		}
	}
	return h
}

func TestGenerate_FullDay(t *testing.T) {
	h := scheduleFor("UTC", map[time.Weekday][2]string{
		time.Monday: {"09:00", "17:00"},
	})
	got := Generate(h, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	// Eight open hours at 15-minute granularity.
	require.Len(t, got, 32)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), got[0].Start)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC), got[0].End)
	assert.Equal(t, time.Date(2026, 3, 2, 16, 45, 0, 0, time.UTC), got[31].Start)
	assert.Equal(t, time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC), got[31].End)
}

func TestGenerate_ClosedDay(t *testing.T) {
	h := scheduleFor("UTC", map[time.Weekday][2]string{
		time.Monday: {"09:00", "17:00"},
	})
	// Tuesday has no row.
	assert.Nil(t, Generate(h, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)))

	h.Days[int(time.Monday)].IsClosed = true
	assert.Nil(t, Generate(h, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
}

func TestGenerate_EndOfDayClose(t *testing.T) {
	h := scheduleFor("UTC", map[time.Weekday][2]string{
		time.Monday: {"22:00", "23:59"},
	})
	got := Generate(h, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	// 22:00 through midnight is two hours.
	require.Len(t, got, 8)
	last := got[7]
	assert.Equal(t, time.Date(2026, 3, 2, 23, 45, 0, 0, time.UTC), last.Start)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), last.End)
}

func TestGenerate_UnalignedOpenRoundsForward(t *testing.T) {
	h := scheduleFor("UTC", map[time.Weekday][2]string{
		time.Monday: {"09:10", "10:00"},
	})
	got := Generate(h, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	require.Len(t, got, 3)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC), got[0].Start)
}

func TestGenerate_MalformedDayYieldsNothing(t *testing.T) {
	h := scheduleFor("UTC", map[time.Weekday][2]string{
		time.Monday: {"17:00", "09:00"},
	})
	assert.Nil(t, Generate(h, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
}

func TestGenerate_VenueLocalInstants(t *testing.T) {
	h := scheduleFor("America/New_York", map[time.Weekday][2]string{
		time.Monday: {"09:00", "10:00"},
	})
	got := Generate(h, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	require.Len(t, got, 4)
	// 09:00 New York is 14:00 UTC in winter.
	assert.Equal(t, time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC), got[0].Start.UTC())
}

func TestGenerate_Pure(t *testing.T) {
	h := scheduleFor("UTC", map[time.Weekday][2]string{
		time.Monday: {"09:00", "17:00"},
	})
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, Generate(h, date), Generate(h, date))
}

func TestRoundUpToSlot(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"mid-slot rounds up",
			time.Date(2026, 3, 2, 14, 7, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 14, 15, 0, 0, time.UTC),
		},
		{
			"exact boundary still advances",
			time.Date(2026, 3, 2, 14, 15, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC),
		},
		{
			"just before boundary",
			time.Date(2026, 3, 2, 14, 14, 59, 0, time.UTC),
			time.Date(2026, 3, 2, 14, 15, 0, 0, time.UTC),
		},
		{
			"end of hour",
			time.Date(2026, 3, 2, 14, 59, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundUpToSlot(tt.in))
		})
	}
}
