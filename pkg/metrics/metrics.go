package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CheckoutMetrics counts checkout outcomes. A nil receiver is a no-op so
// callers can run without metrics wired.
type CheckoutMetrics struct {
	checkouts *prometheus.CounterVec
	receipts  *prometheus.CounterVec
}

// NewCheckoutMetrics registers and returns the checkout metrics.
func NewCheckoutMetrics() *CheckoutMetrics {
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "webshop",
		Subsystem: "checkout",
		Name:      "checkouts_total",
		Help:      "Total number of checkout attempts by result.",
	}, []string{"result"})
	receipts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "webshop",
		Subsystem: "checkout",
		Name:      "receipts_total",
		Help:      "Total number of receipt generations by result.",
	}, []string{"result"})

	prometheus.MustRegister(checkouts, receipts)

	return &CheckoutMetrics{checkouts: checkouts, receipts: receipts}
}

// ObserveCheckout counts one checkout attempt.
func (m *CheckoutMetrics) ObserveCheckout(result string) {
	if m == nil {
		return
	}
	m.checkouts.WithLabelValues(result).Inc()
}

// ObserveReceipt counts one receipt generation.
func (m *CheckoutMetrics) ObserveReceipt(result string) {
	if m == nil {
		return
	}
	m.receipts.WithLabelValues(result).Inc()
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
