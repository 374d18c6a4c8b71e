// Package metrics exposes the service's Prometheus counters.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Store labels for StoreFailure.
const (
	StoreCatalog  = "catalog"
	StoreBookings = "bookings"
)

// Metrics owns a private registry so tests can build as many as they like.
// All methods are safe on a nil receiver.
type Metrics struct {
	registry        *prometheus.Registry
	invoices        *prometheus.CounterVec
	bookings        prometheus.Counter
	storeFailures   *prometheus.CounterVec
	publishFailures prometheus.Counter
	catalogWrites   *prometheus.CounterVec
}

// New registers every counter plus the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		invoices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "badminton_invoices_calculated_total",
			Help: "Invoices calculated, by whether the selection was complete.",
		}, []string{"complete"}),
		bookings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "badminton_bookings_recorded_total",
			Help: "Bookings appended to the booking log.",
		}),
		storeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "badminton_store_failures_total",
			Help: "Persistence failures seen at the HTTP boundary.",
		}, []string{"store", "op"}),
		publishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "badminton_event_publish_failures_total",
			Help: "Booking events that could not be published.",
		}),
		catalogWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "badminton_catalog_replacements_total",
			Help: "Successful full catalog replacements, by catalog.",
		}, []string{"catalog"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.invoices, m.bookings, m.storeFailures, m.publishFailures, m.catalogWrites,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) InvoiceCalculated(complete bool) {
	if m == nil {
		return
	}
	m.invoices.WithLabelValues(strconv.FormatBool(complete)).Inc()
}

func (m *Metrics) BookingRecorded() {
	if m == nil {
		return
	}
	m.bookings.Inc()
}

func (m *Metrics) StoreFailure(store, op string) {
	if m == nil {
		return
	}
	m.storeFailures.WithLabelValues(store, op).Inc()
}

func (m *Metrics) PublishFailed() {
	if m == nil {
		return
	}
	m.publishFailures.Inc()
}

func (m *Metrics) CatalogReplaced(catalog string) {
	if m == nil {
		return
	}
	m.catalogWrites.WithLabelValues(catalog).Inc()
}
