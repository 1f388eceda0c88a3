package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	availabilityQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "seatwise",
			Name:      "availability_queries_total",
			Help:      "Count of availability queries by outcome.",
		},
		[]string{"outcome"},
	)

	reservationCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "seatwise",
			Name:      "reservation_created_total",
			Help:      "Count of reservations created by kind.",
		},
		[]string{"kind"},
	)

	reservationConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "seatwise",
			Name:      "reservation_conflicts_total",
			Help:      "Count of reservation attempts rejected by the conflict check.",
		},
	)

	reservationCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "seatwise",
			Name:      "reservation_cancelled_total",
			Help:      "Count of reservations cancelled.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "seatwise",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by handler and status code.",
		},
		[]string{"handler", "code"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(availabilityQueries, reservationCreated,
			reservationConflicts, reservationCancelled, httpRequests)
	})
}

func IncAvailabilityQuery(outcome string) {
	availabilityQueries.WithLabelValues(outcome).Inc()
}

func IncReservationCreated(kind string) {
	reservationCreated.WithLabelValues(kind).Inc()
}

func IncReservationConflict() {
	reservationConflicts.Inc()
}

func IncReservationCancelled() {
	reservationCancelled.Inc()
}

func IncHTTPRequest(handler, code string) {
	httpRequests.WithLabelValues(handler, code).Inc()
}
