package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service's Prometheus collectors behind a private
// registry so tests can build isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	CatalogRefresh  *prometheus.CounterVec
	LocationWrites  *prometheus.CounterVec
	CartOps         *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		CatalogRefresh: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_catalog_refresh_total",
			Help: "Catalog snapshot refresh attempts by result.",
		}, []string{"result"}),
		LocationWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_location_writes_total",
			Help: "Location writes published to the navigation layer, by history mode.",
		}, []string{"mode"}),
		CartOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_cart_operations_total",
			Help: "Cart operations by kind.",
		}, []string{"op"}),
	}
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
