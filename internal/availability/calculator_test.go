package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatwise/internal/model"
)

// Fixtures: venue open Monday 09:00-17:00 UTC; Monday 2026-03-02.

func mondayAt(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func testHours() model.CanonicalHours {
	h := model.CanonicalHours{Timezone: "UTC", Location: time.UTC}
	h.Days[int(time.Monday)] = &model.WeeklyHoursRow{
		Weekday:   int(time.Monday),
		OpenTime:  "09:00",
		CloseTime: "17:00",
		Source:    model.HoursSourceManual,
	}
	return h
}

func pos(p int) *int { return &p }

func individualTable(id int64, seatIDs ...int64) model.Table {
	t := model.Table{ID: id, VenueID: 1, Label: "table", Mode: model.BookingIndividual, IsActive: true}
	for i, sid := range seatIDs {
		t.Seats = append(t.Seats, model.Seat{
			ID: sid, TableID: id, Position: pos(i + 1), PricePerHour: 5, IsActive: true,
		})
	}
	t.SeatCount = len(seatIDs)
	return t
}

func groupTable(id int64, seats int) model.Table {
	return model.Table{
		ID: id, VenueID: 1, Label: "group table", Mode: model.BookingGroup,
		SeatCount: seats, TablePricePerHour: 40, IsActive: true,
	}
}

func seatReservation(seatID int64, start, end time.Time) model.Reservation {
	return model.Reservation{
		VenueID: 1, SeatID: &seatID, SeatCount: 1,
		StartAt: start, EndAt: end, Status: model.ReservationActive,
	}
}

func tableReservation(tableID int64, seats int, start, end time.Time) model.Reservation {
	return model.Reservation{
		VenueID: 1, TableID: &tableID, SeatCount: seats,
		StartAt: start, EndAt: end, Status: model.ReservationActive,
	}
}

func baseSnapshot(tables ...model.Table) *Snapshot {
	return &Snapshot{
		Venue:  model.Venue{ID: 1, Status: model.VenueActive, Timezone: "UTC"},
		Hours:  testHours(),
		Tables: tables,
	}
}

func TestCalculate_AllSeatsFree(t *testing.T) {
	snap := baseSnapshot(individualTable(1, 11, 12))

	res, qerr := Calculate(snap, mondayAt(10, 0), mondayAt(11, 0), 1)
	require.Nil(t, qerr)
	assert.Len(t, res.AvailableSeats, 2)
	assert.Empty(t, res.UnavailableSeats)
	assert.Empty(t, res.UnavailableSeatIDs)
}

func TestCalculate_ReservedSeatWithNextAvailable(t *testing.T) {
	snap := baseSnapshot(individualTable(1, 11, 12))
	snap.Reservations = []model.Reservation{
		seatReservation(11, mondayAt(10, 30), mondayAt(11, 30)),
	}

	res, qerr := Calculate(snap, mondayAt(10, 0), mondayAt(11, 0), 1)
	require.Nil(t, qerr)

	require.Len(t, res.AvailableSeats, 1)
	assert.Equal(t, int64(12), res.AvailableSeats[0].ID)

	require.Len(t, res.UnavailableSeats, 1)
	assert.Equal(t, int64(11), res.UnavailableSeats[0].ID)
	require.NotNil(t, res.UnavailableSeats[0].NextAvailableAt)
	assert.Equal(t, mondayAt(11, 45), *res.UnavailableSeats[0].NextAvailableAt)
	assert.Equal(t, []int64{11}, res.UnavailableSeatIDs)
}

func TestCalculate_CancelledReservationIgnored(t *testing.T) {
	snap := baseSnapshot(individualTable(1, 11))
	r := seatReservation(11, mondayAt(10, 0), mondayAt(11, 0))
	r.Status = model.ReservationCancelled
	snap.Reservations = []model.Reservation{r}

	res, qerr := Calculate(snap, mondayAt(10, 0), mondayAt(11, 0), 1)
	require.Nil(t, qerr)
	assert.Len(t, res.AvailableSeats, 1)
	assert.Empty(t, res.UnavailableSeats)
}

func TestCalculate_GroupReservationLocksTable(t *testing.T) {
	snap := baseSnapshot(groupTable(2, 4))
	snap.Reservations = []model.Reservation{
		tableReservation(2, 4, mondayAt(9, 0), mondayAt(12, 0)),
	}

	res, qerr := Calculate(snap, mondayAt(10, 0), mondayAt(11, 0), 1)
	require.Nil(t, qerr)

	assert.Empty(t, res.AvailableSeats, "group tables expose no per-seat booking")
	assert.Empty(t, res.AvailableGroupTables)
	require.Len(t, res.UnavailableGroupTables, 1)
	got := res.UnavailableGroupTables[0]
	assert.Equal(t, int64(2), got.ID)
	require.NotNil(t, got.NextAvailableAt)
	assert.Equal(t, mondayAt(12, 15), *got.NextAvailableAt)
}

func TestCalculate_GroupReservationLocksSeatsOfItsTable(t *testing.T) {
	// An individual table booked whole (legacy group booking) locks all of
	// its seats out of per-seat booking.
	table := individualTable(1, 11, 12)
	snap := baseSnapshot(table)
	snap.Reservations = []model.Reservation{
		tableReservation(1, 2, mondayAt(10, 0), mondayAt(12, 0)),
	}

	res, qerr := Calculate(snap, mondayAt(10, 0), mondayAt(11, 0), 1)
	require.Nil(t, qerr)
	assert.Empty(t, res.AvailableSeats)
	assert.Len(t, res.UnavailableSeats, 2)
}

func TestCalculate_SeatBlock(t *testing.T) {
	snap := baseSnapshot(individualTable(1, 11, 12))
	seatID := int64(11)
	snap.Blocks = []model.SeatBlock{
		{VenueID: 1, SeatID: &seatID, StartAt: mondayAt(9, 0), EndAt: mondayAt(13, 0)},
	}

	res, qerr := Calculate(snap, mondayAt(10, 0), mondayAt(11, 0), 1)
	require.Nil(t, qerr)
	require.Len(t, res.UnavailableSeats, 1)
	assert.Equal(t, int64(11), res.UnavailableSeats[0].ID)
	require.NotNil(t, res.UnavailableSeats[0].NextAvailableAt)
	assert.Equal(t, mondayAt(13, 15), *res.UnavailableSeats[0].NextAvailableAt)
}

func TestCalculate_VenueWideBlock(t *testing.T) {
	snap := baseSnapshot(individualTable(1, 11, 12), groupTable(2, 4))
	snap.Blocks = []model.SeatBlock{
		{VenueID: 1, StartAt: mondayAt(9, 0), EndAt: mondayAt(17, 0)},
	}

	res, qerr := Calculate(snap, mondayAt(10, 0), mondayAt(11, 0), 1)
	require.Nil(t, qerr)
	assert.Empty(t, res.AvailableSeats)
	assert.Len(t, res.UnavailableSeats, 2)
	assert.Empty(t, res.AvailableGroupTables)
	assert.Len(t, res.UnavailableGroupTables, 1)
}

func TestCalculate_AdjacentSeatGroup(t *testing.T) {
	table := model.Table{ID: 1, VenueID: 1, Label: "bar", Mode: model.BookingIndividual, IsActive: true}
	for _, p := range []int{1, 2, 3, 5, 6} {
		table.Seats = append(table.Seats, model.Seat{
			ID: int64(10 + p), TableID: 1, Position: pos(p), PricePerHour: 5, IsActive: true,
		})
	}
	snap := baseSnapshot(table)

	res, qerr := Calculate(snap, mondayAt(10, 0), mondayAt(11, 0), 2)
	require.Nil(t, qerr)
	require.Len(t, res.AvailableSeatGroups, 1)
	group := res.AvailableSeatGroups[0]
	assert.Equal(t, []int64{11, 12}, group.SeatIDs, "lowest-position run wins")
	assert.Equal(t, 10.0, group.PricePerHour)
}

func TestCalculate_SeatGroupSkipsReservedSeats(t *testing.T) {
	snap := baseSnapshot(individualTable(1, 11, 12, 13))
	snap.Reservations = []model.Reservation{
		seatReservation(12, mondayAt(10, 0), mondayAt(11, 0)),
	}

	// Seats 11 and 13 remain but positions 1 and 3 are not adjacent.
	res, qerr := Calculate(snap, mondayAt(10, 0), mondayAt(11, 0), 2)
	require.Nil(t, qerr)
	assert.Empty(t, res.AvailableSeatGroups)
}

func TestCalculate_GroupTableSeatCountRule(t *testing.T) {
	snap := baseSnapshot(groupTable(2, 4), groupTable(3, 2))

	// A larger group table satisfies a smaller request.
	res, qerr := Calculate(snap, mondayAt(10, 0), mondayAt(11, 0), 3)
	require.Nil(t, qerr)
	require.Len(t, res.AvailableGroupTables, 1)
	assert.Equal(t, int64(2), res.AvailableGroupTables[0].ID)
}

func TestCalculate_SingleSeatSurfacesGroupTables(t *testing.T) {
	snap := baseSnapshot(individualTable(1, 11), groupTable(2, 4))

	res, qerr := Calculate(snap, mondayAt(10, 0), mondayAt(11, 0), 1)
	require.Nil(t, qerr)
	assert.Len(t, res.AvailableSeats, 1)
	assert.Len(t, res.AvailableGroupTables, 1)
}

func TestCalculate_InactiveInventorySkipped(t *testing.T) {
	table := individualTable(1, 11, 12)
	table.Seats[1].IsActive = false
	inactiveTable := individualTable(9, 91)
	inactiveTable.IsActive = false
	snap := baseSnapshot(table, inactiveTable)

	res, qerr := Calculate(snap, mondayAt(10, 0), mondayAt(11, 0), 1)
	require.Nil(t, qerr)
	require.Len(t, res.AvailableSeats, 1)
	assert.Equal(t, int64(11), res.AvailableSeats[0].ID)
}

func TestCalculate_CapacityExceeded(t *testing.T) {
	snap := baseSnapshot(individualTable(1, 11, 12), groupTable(2, 4))
	// Capacity is 6; asking for 10 fails before any overlap work.
	snap.Reservations = []model.Reservation{
		seatReservation(11, mondayAt(10, 0), mondayAt(11, 0)),
	}

	_, qerr := Calculate(snap, mondayAt(10, 0), mondayAt(11, 0), 10)
	require.NotNil(t, qerr)
	assert.Equal(t, KindCapacity, qerr.Kind)
}

func TestCalculate_OutsideHours(t *testing.T) {
	snap := baseSnapshot(individualTable(1, 11))

	_, qerr := Calculate(snap, mondayAt(16, 30), mondayAt(18, 0), 1)
	require.NotNil(t, qerr)
	assert.Equal(t, KindWindow, qerr.Kind)
}

func TestCalculate_PausedVenue(t *testing.T) {
	snap := baseSnapshot(individualTable(1, 11))
	snap.Venue.Status = model.VenuePaused
	snap.Venue.PauseMessage = "closed for renovation"

	_, qerr := Calculate(snap, mondayAt(10, 0), mondayAt(11, 0), 1)
	require.NotNil(t, qerr)
	assert.Equal(t, KindVenuePaused, qerr.Kind)
	assert.Equal(t, "closed for renovation", qerr.PauseMessage)
}

func TestCalculate_DeletedVenue(t *testing.T) {
	snap := baseSnapshot(individualTable(1, 11))
	snap.Venue.Status = model.VenueDeleted

	_, qerr := Calculate(snap, mondayAt(10, 0), mondayAt(11, 0), 1)
	require.NotNil(t, qerr)
	assert.Equal(t, KindNotFound, qerr.Kind)
}

func TestCalculateDay_SlotCounts(t *testing.T) {
	snap := baseSnapshot(individualTable(1, 11, 12))
	snap.Reservations = []model.Reservation{
		seatReservation(11, mondayAt(9, 0), mondayAt(17, 0)),
	}

	day, qerr := CalculateDay(snap, mondayAt(0, 0))
	require.Nil(t, qerr)
	assert.Equal(t, 2, day.Capacity)
	require.Len(t, day.Slots, 32)
	for _, slot := range day.Slots {
		assert.Equal(t, 1, slot.AvailableSeats)
		assert.False(t, slot.IsFullyBooked)
	}
}

func TestCalculateDay_FullyBookedSlot(t *testing.T) {
	snap := baseSnapshot(individualTable(1, 11, 12))
	snap.Reservations = []model.Reservation{
		seatReservation(11, mondayAt(10, 0), mondayAt(11, 0)),
		seatReservation(12, mondayAt(10, 0), mondayAt(11, 0)),
	}

	day, qerr := CalculateDay(snap, mondayAt(0, 0))
	require.Nil(t, qerr)

	booked := 0
	for _, slot := range day.Slots {
		if slot.IsFullyBooked {
			booked++
			assert.True(t, !slot.Start.Before(mondayAt(10, 0)) && slot.Start.Before(mondayAt(11, 0)))
		}
	}
	assert.Equal(t, 4, booked)
}

func TestCalculateDay_ClosedDay(t *testing.T) {
	snap := baseSnapshot(individualTable(1, 11))

	day, qerr := CalculateDay(snap, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
	require.Nil(t, qerr)
	assert.Empty(t, day.Slots)
}
