package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager holds custom Prometheus metrics.
type MetricsManager struct {
	Registry                 *prometheus.Registry
	ListingsCreatedTotal     prometheus.Counter
	ListingUpdatesTotal      prometheus.Counter
	ListingDeletesTotal      prometheus.Counter
	CommentsAddedTotal       prometheus.Counter
	ReservationsCreatedTotal prometheus.Counter
	APIErrorsTotal           *prometheus.CounterVec
	APILatency               *prometheus.HistogramVec
}

// NewMetricsManager initializes and registers custom Prometheus metrics on a
// dedicated registry.
func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()

	listingsCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listings_created_total",
		Help:      "Total number of food listings created.",
	})
	listingUpdatesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listing_updates_total",
		Help:      "Total number of food listings updated.",
	})
	listingDeletesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listing_deletes_total",
		Help:      "Total number of food listings deleted.",
	})
	commentsAddedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "comments_added_total",
		Help:      "Total number of comments appended to listings.",
	})
	reservationsCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "reservations_created_total",
		Help:      "Total number of reservations created.",
	})
	apiErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "api_errors_total",
		Help:      "Total number of API errors by handler.",
	}, []string{"handler", "error_type"})
	apiLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "api_request_latency_seconds",
		Help:      "Latency of API requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	registry.MustRegister(
		listingsCreatedTotal,
		listingUpdatesTotal,
		listingDeletesTotal,
		commentsAddedTotal,
		reservationsCreatedTotal,
		apiErrorsTotal,
		apiLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:                 registry,
		ListingsCreatedTotal:     listingsCreatedTotal,
		ListingUpdatesTotal:      listingUpdatesTotal,
		ListingDeletesTotal:      listingDeletesTotal,
		CommentsAddedTotal:       commentsAddedTotal,
		ReservationsCreatedTotal: reservationsCreatedTotal,
		APIErrorsTotal:           apiErrorsTotal,
		APILatency:               apiLatency,
	}
}

// StartMetricsServer exposes /metrics on its own port. A blank port disables
// the server.
func StartMetricsServer(port string, log *zap.Logger, registry *prometheus.Registry) error {
	if port == "" {
		log.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	log.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}
	return server.ListenAndServe()
}
