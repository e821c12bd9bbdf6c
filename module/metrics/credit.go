package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/taoledger/ledger-node/module"
)

// CreditCollector the metrics for credit validation and execution
type CreditCollector struct {
	accepted          *prometheus.CounterVec
	credited          *prometheus.CounterVec
	rejected          *prometheus.CounterVec
	postStateMismatch prometheus.Counter
	duration          prometheus.Histogram
}

// interface check
var _ module.CreditMetrics = (*CreditCollector)(nil)

func NewCreditCollector(registerer prometheus.Registerer) *CreditCollector {
	factory := promauto.With(registerer)
	return &CreditCollector{
		accepted: factory.NewCounterVec(prometheus.CounterOpts{
			Name:      "accepted_total",
			Namespace: namespaceLedger,
			Subsystem: subsystemCredit,
			Help:      "counter for the accepted credits, by source variant",
		}, []string{LabelVariant}),
		credited: factory.NewCounterVec(prometheus.CounterOpts{
			Name:      "credited_amount_total",
			Namespace: namespaceLedger,
			Subsystem: subsystemCredit,
			Help:      "sum of amounts credited, by source variant",
		}, []string{LabelVariant}),
		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name:      "rejected_total",
			Namespace: namespaceLedger,
			Subsystem: subsystemCredit,
			Help:      "counter for the rejected credits, by rejection category",
		}, []string{LabelCategory}),
		postStateMismatch: factory.NewCounter(prometheus.CounterOpts{
			Name:      "post_state_mismatch_total",
			Namespace: namespaceLedger,
			Subsystem: subsystemCredit,
			Help:      "counter for register scripts whose post-state checksum did not match",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:      "duration_seconds",
			Namespace: namespaceLedger,
			Subsystem: subsystemCredit,
			Help:      "time taken to validate and apply an accepted credit",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
	}
}

func (cc *CreditCollector) CreditAccepted(variant string, amount uint64, duration time.Duration) {
	cc.accepted.WithLabelValues(variant).Inc()
	cc.credited.WithLabelValues(variant).Add(float64(amount))
	cc.duration.Observe(duration.Seconds())
}

func (cc *CreditCollector) CreditRejected(category string) {
	cc.rejected.WithLabelValues(category).Inc()
}

func (cc *CreditCollector) PostStateMismatch() {
	cc.postStateMismatch.Inc()
}
