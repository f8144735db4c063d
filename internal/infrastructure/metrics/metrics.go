package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	CatalogRequests *prometheus.CounterVec
	Scans           *prometheus.CounterVec
}

// New registers the collectors on the given registerer. Tests pass a fresh
// registry so repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CatalogRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nutriscan_catalog_requests_total",
			Help: "Catalog requests by operation and outcome",
		}, []string{"operation", "outcome"}),
		Scans: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nutriscan_scans_total",
			Help: "Scan requests by identification method and outcome",
		}, []string{"method", "outcome"}),
	}
}

// CatalogRequest records one catalog call outcome.
func (m *Metrics) CatalogRequest(operation, outcome string) {
	m.CatalogRequests.WithLabelValues(operation, outcome).Inc()
}

// Scan records one scan outcome.
func (m *Metrics) Scan(method, outcome string) {
	m.Scans.WithLabelValues(method, outcome).Inc()
}
