package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	BookingsCreated       *prometheus.CounterVec
	BookingsCancelled     prometheus.Counter
	CancellationsRefused  *prometheus.CounterVec
	RecommendationsServed *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики и регистрирует их в переданном registry
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of created bookings",
			ConstLabels: constLabels,
		}, []string{"service_id"}),
		BookingsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Total number of cancelled bookings",
			ConstLabels: constLabels,
		}),
		CancellationsRefused: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_cancellations_refused_total",
			Help:        "Total number of refused cancellation attempts",
			ConstLabels: constLabels,
		}, []string{"reason"}),
		RecommendationsServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "style_recommendations_total",
			Help:        "Total number of served style recommendations",
			ConstLabels: constLabels,
		}, []string{"source"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.BookingsCreated,
		m.BookingsCancelled,
		m.CancellationsRefused,
		m.RecommendationsServed,
	)

	return m
}

// BookingCreated учитывает созданное бронирование
func (m *Metrics) BookingCreated(serviceID string) {
	m.BookingsCreated.WithLabelValues(serviceID).Inc()
}

// BookingCancelled учитывает отмененное бронирование
func (m *Metrics) BookingCancelled() {
	m.BookingsCancelled.Inc()
}

// CancellationRefused учитывает отказ в отмене с указанием причины
func (m *Metrics) CancellationRefused(reason string) {
	m.CancellationsRefused.WithLabelValues(reason).Inc()
}

// RecommendationServed учитывает выданную рекомендацию (source: provider | fallback)
func (m *Metrics) RecommendationServed(source string) {
	m.RecommendationsServed.WithLabelValues(source).Inc()
}

// Nop реализация бизнес-метрик, которая ничего не делает (метрики выключены)
type Nop struct{}

func (Nop) BookingCreated(string)       {}
func (Nop) BookingCancelled()           {}
func (Nop) CancellationRefused(string)  {}
func (Nop) RecommendationServed(string) {}
