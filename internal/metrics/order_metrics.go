package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vladislavdragonenkov/order-service/internal/service/product"
)

// Причины неуспешного создания заказа.
const (
	ReasonInvalidRequest      = "invalid_request"
	ReasonProductNotFound     = "product_not_found"
	ReasonUpstreamUnavailable = "upstream_unavailable"
	ReasonInternal            = "internal"
)

// OrderMetrics содержит метрики обработки заказов.
type OrderMetrics struct {
	ordersCreated  prometheus.Counter
	createFailures *prometheus.CounterVec

	productLookups        *prometheus.CounterVec
	productLookupDuration prometheus.Histogram

	eventPublish *prometheus.CounterVec

	httpDuration *prometheus.HistogramVec
}

// NewOrderMetrics регистрирует метрики в prometheus.DefaultRegisterer.
func NewOrderMetrics() *OrderMetrics {
	return NewOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewOrderMetricsWithRegisterer регистрирует метрики в переданном registerer.
// Повторная регистрация переиспользует уже существующие коллекторы.
func NewOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders persisted",
		}),
		createFailures: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orders_create_failures_total",
			Help: "Total number of rejected or failed create order requests",
		}, []string{"reason"}),
		productLookups: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orders_product_lookup_total",
			Help: "Product service lookups by outcome",
		}, []string{"outcome"}),
		productLookupDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "orders_product_lookup_duration_seconds",
			Help:    "Duration of product service lookups in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}),
		eventPublish: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orders_event_publish_total",
			Help: "ORDER_CREATED publish attempts by result",
		}, []string{"result"}),
		httpDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "orders_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderCreated увеличивает счётчик сохранённых заказов.
func (m *OrderMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

// RecordCreateFailure увеличивает счётчик неуспешных запросов на создание.
func (m *OrderMetrics) RecordCreateFailure(reason string) {
	m.createFailures.WithLabelValues(reason).Inc()
}

// ObserveProductLookup реализует product.Observer.
func (m *OrderMetrics) ObserveProductLookup(outcome product.Outcome, duration time.Duration) {
	m.productLookups.WithLabelValues(string(outcome)).Inc()
	m.productLookupDuration.Observe(duration.Seconds())
}

// RecordEventPublish фиксирует результат публикации ORDER_CREATED.
func (m *OrderMetrics) RecordEventPublish(published bool) {
	result := "failed"
	if published {
		result = "published"
	}
	m.eventPublish.WithLabelValues(result).Inc()
}

// ObserveHTTPRequest записывает длительность HTTP-запроса.
func (m *OrderMetrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

var _ product.Observer = (*OrderMetrics)(nil)
