package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuoteComputeTotal counts cost summary computations by outcome.
	QuoteComputeTotal *prometheus.CounterVec
	// SettlementEstimateTotal counts settlement estimates by outcome.
	SettlementEstimateTotal *prometheus.CounterVec
	// PricebookUpdateTotal counts admin pricebook updates by section and outcome.
	PricebookUpdateTotal *prometheus.CounterVec
	// LoginTotal counts login attempts by outcome.
	LoginTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuoteComputeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_compute_total",
			Help:      "Count of deal cost computations by outcome.",
		}, []string{"result"})
		SettlementEstimateTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlement_estimate_total",
			Help:      "Count of settlement estimates by outcome.",
		}, []string{"result"})
		PricebookUpdateTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricebook_update_total",
			Help:      "Count of admin pricebook updates by section and outcome.",
		}, []string{"section", "result"})
		LoginTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_total",
			Help:      "Count of login attempts by outcome.",
		}, []string{"result"})
		reg.MustRegister(QuoteComputeTotal, SettlementEstimateTotal, PricebookUpdateTotal, LoginTotal)
	})
}

// CountQuoteCompute records one computation outcome when metrics are registered.
func CountQuoteCompute(result string) {
	if QuoteComputeTotal != nil {
		QuoteComputeTotal.WithLabelValues(result).Inc()
	}
}

// CountSettlementEstimate records one settlement estimate outcome.
func CountSettlementEstimate(result string) {
	if SettlementEstimateTotal != nil {
		SettlementEstimateTotal.WithLabelValues(result).Inc()
	}
}

// CountPricebookUpdate records one pricebook update outcome.
func CountPricebookUpdate(section, result string) {
	if PricebookUpdateTotal != nil {
		PricebookUpdateTotal.WithLabelValues(section, result).Inc()
	}
}

// CountLogin records one login attempt outcome.
func CountLogin(result string) {
	if LoginTotal != nil {
		LoginTotal.WithLabelValues(result).Inc()
	}
}
