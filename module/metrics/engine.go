package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/taoledger/ledger-node/module"
)

type EngineCollector struct {
	admitted       prometheus.Counter
	connected      prometheus.Counter
	rejected       *prometheus.CounterVec
	mempoolEntries *prometheus.GaugeVec
}

var _ module.EngineMetrics = (*EngineCollector)(nil)
var _ module.MempoolMetrics = (*EngineCollector)(nil)

func NewEngineCollector(registerer prometheus.Registerer) *EngineCollector {
	factory := promauto.With(registerer)
	return &EngineCollector{
		admitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemEngine,
			Name:      "transactions_admitted_total",
			Help:      "number of transactions admitted to the mempool",
		}),
		connected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemEngine,
			Name:      "transactions_connected_total",
			Help:      "number of transactions connected to the ledger",
		}),
		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemEngine,
			Name:      "transactions_rejected_total",
			Help:      "number of rejected transactions, by stage",
		}, []string{LabelStage}),
		mempoolEntries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemMempool,
			Name:      "entries_total",
			Help:      "the number of entries in the mempool",
		}, []string{LabelResource}),
	}
}

func (ec *EngineCollector) TransactionAdmitted() {
	ec.admitted.Inc()
}

func (ec *EngineCollector) TransactionConnected() {
	ec.connected.Inc()
}

func (ec *EngineCollector) TransactionRejected(stage string) {
	ec.rejected.WithLabelValues(stage).Inc()
}

func (ec *EngineCollector) MempoolEntries(resource string, entries uint) {
	ec.mempoolEntries.WithLabelValues(resource).Set(float64(entries))
}
