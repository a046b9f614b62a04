package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus metrics of the application and the registry they live in
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	SalaryRaises        prometheus.Counter
	BulkRaisedSalaries  prometheus.Counter
	InstructorsCreated  prometheus.Counter
	InstructorsDeleted  prometheus.Counter
}

// New creates a registry with the Go and process collectors and registers every metric on it
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fietsen_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fietsen_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method and route",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route"}),
		SalaryRaises: factory.NewCounter(prometheus.CounterOpts{
			Name: "fietsen_salary_raises_total",
			Help: "Total number of single instructor salary raises",
		}),
		BulkRaisedSalaries: factory.NewCounter(prometheus.CounterOpts{
			Name: "fietsen_bulk_raised_salaries_total",
			Help: "Total number of salaries updated by bulk raises",
		}),
		InstructorsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "fietsen_instructors_created_total",
			Help: "Total number of instructors created",
		}),
		InstructorsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "fietsen_instructors_deleted_total",
			Help: "Total number of instructors deleted",
		}),
	}
}

// ObserveRequest records one served HTTP request.
// Call with time.Now() taken before the handler chain ran.
func (m *Metrics) ObserveRequest(method, route, status string, start time.Time) {
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

// IncrementSalaryRaises records a successful single salary raise
func (m *Metrics) IncrementSalaryRaises() {
	m.SalaryRaises.Inc()
}

// AddBulkRaisedSalaries records the number of salaries a bulk raise updated
func (m *Metrics) AddBulkRaisedSalaries(n int64) {
	m.BulkRaisedSalaries.Add(float64(n))
}

// IncrementInstructorsCreated records a successful instructor creation
func (m *Metrics) IncrementInstructorsCreated() {
	m.InstructorsCreated.Inc()
}

// IncrementInstructorsDeleted records a deleted instructor
func (m *Metrics) IncrementInstructorsDeleted() {
	m.InstructorsDeleted.Inc()
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer returns the registry, mainly for tests
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
