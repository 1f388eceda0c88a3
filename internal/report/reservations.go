package report

import (
	"fmt"
	"io"
	"time"

	"seatwise/internal/model"
)

var reservationColumns = []string{
	"Reservation ID", "Resource", "Resource ID", "Seats",
	"Start", "End", "Duration", "Status", "Created",
}

// WriteReservations renders a venue's reservations to one xlsx sheet. Times
// are formatted in the venue's timezone.
func WriteReservations(out io.Writer, venueName string, loc *time.Location, reservations []model.Reservation) error {
	if loc == nil {
		loc = time.UTC
	}

	w := NewExcelizeWriter()
	defer w.Close()

	if err := w.AddSheet(venueName); err != nil {
		return err
	}
	if err := w.WriteHeader(reservationColumns); err != nil {
		return err
	}

	for i := range reservations {
		r := &reservations[i]
		resource, resourceID := "seat", int64(0)
		if r.IsGroup() {
			resource = "group table"
			resourceID = *r.TableID
		} else if r.SeatID != nil {
			resourceID = *r.SeatID
		}

		row := []interface{}{
			r.PublicID,
			resource,
			resourceID,
			r.SeatCount,
			r.StartAt.In(loc).Format("2006-01-02 15:04"),
			r.EndAt.In(loc).Format("2006-01-02 15:04"),
			r.Window().Duration().String(),
			string(r.Status),
			r.CreatedAt.In(loc).Format("2006-01-02 15:04"),
		}
		if err := w.WriteRow(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	return w.Save(out)
}
