package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func datetime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func interval(startHour, startMin, endHour, endMin int) Interval {
	return Interval{
		Start: datetime(2026, 3, 2, startHour, startMin),
		End:   datetime(2026, 3, 2, endHour, endMin),
	}
}

func TestInterval_Overlaps(t *testing.T) {
	base := interval(10, 0, 14, 0)

	assert.False(t, base.Overlaps(interval(8, 0, 10, 0)), "touching before")
	assert.False(t, base.Overlaps(interval(14, 0, 16, 0)), "touching after")
	assert.True(t, base.Overlaps(interval(12, 0, 16, 0)), "starts during")
	assert.True(t, base.Overlaps(interval(8, 0, 12, 0)), "ends during")
	assert.True(t, base.Overlaps(interval(11, 0, 13, 0)), "contained")
	assert.True(t, base.Overlaps(interval(9, 0, 15, 0)), "containing")
}

func TestInterval_OverlapsSymmetric(t *testing.T) {
	pairs := []struct {
		a, b Interval
	}{
		{interval(10, 0, 14, 0), interval(12, 0, 16, 0)},
		{interval(10, 0, 14, 0), interval(14, 0, 16, 0)},
		{interval(10, 0, 14, 0), interval(8, 0, 9, 0)},
	}
	for _, p := range pairs {
		assert.Equal(t, p.a.Overlaps(p.b), p.b.Overlaps(p.a))
	}
}

func TestInterval_OverlapsSelf(t *testing.T) {
	iv := interval(10, 0, 11, 0)
	assert.True(t, iv.Overlaps(iv))

	empty := interval(10, 0, 10, 0)
	assert.False(t, empty.Overlaps(empty), "empty interval never overlaps")
	assert.True(t, empty.IsEmpty())
}

func TestReservation_ConflictsWith(t *testing.T) {
	r := Reservation{
		StartAt: datetime(2026, 3, 2, 10, 30),
		EndAt:   datetime(2026, 3, 2, 11, 30),
		Status:  ReservationActive,
	}

	assert.True(t, r.ConflictsWith(datetime(2026, 3, 2, 10, 0), datetime(2026, 3, 2, 11, 0)))
	assert.False(t, r.ConflictsWith(datetime(2026, 3, 2, 9, 0), datetime(2026, 3, 2, 10, 30)))

	r.Status = ReservationCancelled
	assert.False(t, r.ConflictsWith(datetime(2026, 3, 2, 10, 0), datetime(2026, 3, 2, 11, 0)),
		"cancelled reservations never conflict")
}

func TestReservation_IsGroup(t *testing.T) {
	tableID := int64(7)
	seatID := int64(12)

	group := Reservation{TableID: &tableID}
	assert.True(t, group.IsGroup())

	individual := Reservation{SeatID: &seatID}
	assert.False(t, individual.IsGroup())
}

func TestTable_ModeAccessors(t *testing.T) {
	group := Table{Mode: BookingGroup, SeatCount: 4, TablePricePerHour: 40}
	_, ok := group.IndividualSeats()
	assert.False(t, ok, "group table must not expose seats")
	n, price, ok := group.GroupUnit()
	assert.True(t, ok)
	assert.Equal(t, 4, n)
	assert.Equal(t, 40.0, price)

	individual := Table{Mode: BookingIndividual, Seats: []Seat{{ID: 1}, {ID: 2}}}
	seats, ok := individual.IndividualSeats()
	assert.True(t, ok)
	assert.Len(t, seats, 2)
	_, _, ok = individual.GroupUnit()
	assert.False(t, ok)
}

func TestTable_ActiveSeatCount(t *testing.T) {
	individual := Table{
		Mode:     BookingIndividual,
		IsActive: true,
		Seats: []Seat{
			{ID: 1, IsActive: true},
			{ID: 2, IsActive: false},
			{ID: 3, IsActive: true},
		},
	}
	assert.Equal(t, 2, individual.ActiveSeatCount())

	group := Table{Mode: BookingGroup, IsActive: true, SeatCount: 6}
	assert.Equal(t, 6, group.ActiveSeatCount())

	inactive := Table{Mode: BookingGroup, IsActive: false, SeatCount: 6}
	assert.Equal(t, 0, inactive.ActiveSeatCount())
}
