package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storemanager",
			Name:      "http_requests_total",
			Help:      "HTTP requests by service, route, method and status.",
		},
		[]string{"service", "route", "method", "status"},
	)

	relayOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storemanager",
			Name:      "relay_outcomes_total",
			Help:      "Relay calls to the item store by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, relayOutcomes)
	})
}

// Handler exposes registered metrics.
func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}

// ObserveRequest counts a served HTTP request.
func ObserveRequest(service, route, method string, status int) {
	httpRequests.WithLabelValues(service, route, method, strconv.Itoa(status)).Inc()
}

// IncRelayOutcome counts a relay call result.
func IncRelayOutcome(operation, outcome string) {
	relayOutcomes.WithLabelValues(operation, outcome).Inc()
}
