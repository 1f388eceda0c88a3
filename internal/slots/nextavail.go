package slots

import (
	"time"

	"seatwise/internal/model"
)

// NextAvailable estimates when a blocked resource frees up: the latest end
// among its conflicting intervals, rounded up to the next 15-minute
// boundary. The round-up is inclusive-forward, so an end already on a
// boundary still advances one slot. Returns nil when the estimate would not
// be strictly after the requested start, i.e. there is no better answer
// than "now".
func NextAvailable(conflicts []model.Interval, windowStart time.Time) *time.Time {
	var latest time.Time
	for _, c := range conflicts {
		if c.End.After(latest) {
			latest = c.End
		}
	}
	if latest.IsZero() {
		return nil
	}

	at := RoundUpToSlot(latest)
	if !at.After(windowStart) {
		return nil
	}
	return &at
}
