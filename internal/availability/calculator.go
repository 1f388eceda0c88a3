package availability

import (
	"fmt"
	"time"

	"seatwise/internal/model"
	"seatwise/internal/slots"
)

// Calculate partitions a venue's inventory for the requested window and
// seat count. It is a pure function of the snapshot: nothing is cached or
// mutated, and the same snapshot always yields the same result.
//
// Validation order: operational status, then the window against canonical
// hours, then total capacity. All overlap work happens only after every
// rejection path has been cleared.
func Calculate(snap *Snapshot, startAt, endAt time.Time, seatCount int) (*Result, *QueryError) {
	if seatCount < 1 {
		seatCount = 1
	}

	switch snap.Venue.Status {
	case model.VenueDeleted:
		return nil, &QueryError{Kind: KindNotFound, Message: "venue not found"}
	case model.VenuePaused:
		return nil, &QueryError{
			Kind:         KindVenuePaused,
			Message:      "the venue is not taking reservations right now",
			PauseMessage: snap.Venue.PauseMessage,
		}
	}

	if werr := slots.ValidateWindow(snap.Hours, startAt, endAt); werr != nil {
		return nil, &QueryError{Kind: KindWindow, Message: werr.Message}
	}

	if capacity := snap.TotalActiveCapacity(); seatCount > capacity {
		return nil, &QueryError{
			Kind:    KindCapacity,
			Message: fmt.Sprintf("requested %d seats but only %d are available in total", seatCount, capacity),
		}
	}

	window := model.Interval{Start: startAt, End: endAt}
	conflicts := collectConflicts(snap, window)

	res := &Result{
		AvailableSeats:         []SeatInfo{},
		UnavailableSeats:       []UnavailableSeat{},
		AvailableSeatGroups:    []SeatGroup{},
		AvailableGroupTables:   []GroupTableInfo{},
		UnavailableGroupTables: []UnavailableGroupTable{},
		UnavailableSeatIDs:     []int64{},
	}

	for i := range snap.Tables {
		table := &snap.Tables[i]
		if !table.IsActive {
			continue
		}
		if seats, ok := table.IndividualSeats(); ok {
			partitionSeats(res, table, seats, conflicts, startAt, seatCount)
			continue
		}
		if count, price, ok := table.GroupUnit(); ok && count >= seatCount {
			partitionGroupTable(res, table, count, price, conflicts, startAt)
		}
	}

	return res, nil
}

// resourceConflicts indexes every conflicting interval by resource.
// Venue-wide blocks apply to all seats and all group tables.
type resourceConflicts struct {
	seat      map[int64][]model.Interval
	table     map[int64][]model.Interval
	venueWide []model.Interval
}

func (c *resourceConflicts) forSeat(id int64) []model.Interval {
	return append(c.seat[id], c.venueWide...)
}

func (c *resourceConflicts) forTable(id int64) []model.Interval {
	return append(c.table[id], c.venueWide...)
}

// collectConflicts walks reservations and blocks overlapping the window.
// A group reservation locks out every seat of its table from individual
// booking, so its interval is fanned out to those seats as well.
func collectConflicts(snap *Snapshot, window model.Interval) *resourceConflicts {
	c := &resourceConflicts{
		seat:  make(map[int64][]model.Interval),
		table: make(map[int64][]model.Interval),
	}

	seatsByTable := make(map[int64][]int64)
	for i := range snap.Tables {
		t := &snap.Tables[i]
		for _, s := range t.Seats {
			seatsByTable[t.ID] = append(seatsByTable[t.ID], s.ID)
		}
	}

	for i := range snap.Reservations {
		r := &snap.Reservations[i]
		if !r.ConflictsWith(window.Start, window.End) {
			continue
		}
		iv := r.Window()
		switch {
		case r.SeatID != nil:
			c.seat[*r.SeatID] = append(c.seat[*r.SeatID], iv)
		case r.TableID != nil:
			c.table[*r.TableID] = append(c.table[*r.TableID], iv)
			for _, seatID := range seatsByTable[*r.TableID] {
				c.seat[seatID] = append(c.seat[seatID], iv)
			}
		}
	}

	for i := range snap.Blocks {
		b := &snap.Blocks[i]
		if !b.Window().Overlaps(window) {
			continue
		}
		if b.BlocksVenue() {
			c.venueWide = append(c.venueWide, b.Window())
			continue
		}
		c.seat[*b.SeatID] = append(c.seat[*b.SeatID], b.Window())
	}

	return c
}

func partitionSeats(res *Result, table *model.Table, seats []model.Seat, conflicts *resourceConflicts, startAt time.Time, seatCount int) {
	var free []model.Seat
	for _, seat := range seats {
		if !seat.IsActive {
			continue
		}
		info := SeatInfo{
			ID:           seat.ID,
			TableID:      table.ID,
			Label:        seat.Label,
			PricePerHour: seat.PricePerHour,
		}
		seatConflicts := conflicts.forSeat(seat.ID)
		if len(seatConflicts) == 0 {
			res.AvailableSeats = append(res.AvailableSeats, info)
			free = append(free, seat)
			continue
		}
		res.UnavailableSeats = append(res.UnavailableSeats, UnavailableSeat{
			SeatInfo:        info,
			NextAvailableAt: slots.NextAvailable(seatConflicts, startAt),
		})
		res.UnavailableSeatIDs = append(res.UnavailableSeatIDs, seat.ID)
	}

	if seatCount > 1 {
		if run := findAdjacentRun(free, seatCount); run != nil {
			group := SeatGroup{TableID: table.ID, TableLabel: table.Label}
			for _, seat := range run {
				group.SeatIDs = append(group.SeatIDs, seat.ID)
				group.PricePerHour += seat.PricePerHour
			}
			res.AvailableSeatGroups = append(res.AvailableSeatGroups, group)
		}
	}
}

func partitionGroupTable(res *Result, table *model.Table, seatCount int, price float64, conflicts *resourceConflicts, startAt time.Time) {
	info := GroupTableInfo{
		ID:           table.ID,
		Label:        table.Label,
		SeatCount:    seatCount,
		PricePerHour: price,
	}
	tableConflicts := conflicts.forTable(table.ID)
	if len(tableConflicts) == 0 {
		res.AvailableGroupTables = append(res.AvailableGroupTables, info)
		return
	}
	res.UnavailableGroupTables = append(res.UnavailableGroupTables, UnavailableGroupTable{
		GroupTableInfo:  info,
		NextAvailableAt: slots.NextAvailable(tableConflicts, startAt),
	})
}

// SlotAvailability is one 15-minute slot of the date/slot listing with the
// number of seats free during it.
type SlotAvailability struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	AvailableSeats int       `json:"available_seats"`
	IsFullyBooked  bool      `json:"is_fully_booked"`
}

// DayResult is the date/slot listing: per-slot free-seat counts across the
// venue-local calendar day.
type DayResult struct {
	Capacity int                `json:"capacity"`
	Slots    []SlotAvailability `json:"slots"`
}

// CalculateDay lists each open 15-minute slot of a venue-local calendar
// day with how many seats are free during it. Group tables contribute
// their declared seat counts.
func CalculateDay(snap *Snapshot, date time.Time) (*DayResult, *QueryError) {
	switch snap.Venue.Status {
	case model.VenueDeleted:
		return nil, &QueryError{Kind: KindNotFound, Message: "venue not found"}
	case model.VenuePaused:
		return nil, &QueryError{
			Kind:         KindVenuePaused,
			Message:      "the venue is not taking reservations right now",
			PauseMessage: snap.Venue.PauseMessage,
		}
	}

	capacity := snap.TotalActiveCapacity()
	out := &DayResult{Capacity: capacity, Slots: []SlotAvailability{}}

	for _, slot := range slots.Generate(snap.Hours, date) {
		window := model.Interval{Start: slot.Start, End: slot.End}
		conflicts := collectConflicts(snap, window)

		freeSeats := 0
		for i := range snap.Tables {
			table := &snap.Tables[i]
			if !table.IsActive {
				continue
			}
			if seats, ok := table.IndividualSeats(); ok {
				for _, seat := range seats {
					if seat.IsActive && len(conflicts.forSeat(seat.ID)) == 0 {
						freeSeats++
					}
				}
				continue
			}
			if count, _, ok := table.GroupUnit(); ok && len(conflicts.forTable(table.ID)) == 0 {
				freeSeats += count
			}
		}

		out.Slots = append(out.Slots, SlotAvailability{
			Start:          slot.Start,
			End:            slot.End,
			AvailableSeats: freeSeats,
			IsFullyBooked:  freeSeats == 0,
		})
	}

	return out, nil
}
