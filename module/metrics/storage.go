package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/taoledger/ledger-node/module"
)

type StorageCollector struct {
	retryOnConflict prometheus.Counter
	proofsRecorded  prometheus.Counter
}

var _ module.StorageMetrics = (*StorageCollector)(nil)

func NewStorageCollector(registerer prometheus.Registerer) *StorageCollector {
	factory := promauto.With(registerer)
	return &StorageCollector{
		retryOnConflict: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemStorage,
			Help:      "number of times a commit was retried after a badger conflict",
			Name:      "retry_on_conflict_total",
		}),
		proofsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemStorage,
			Help:      "number of spent proof keys written",
			Name:      "proofs_recorded_total",
		}),
	}
}

func (sc *StorageCollector) RetryOnConflict() {
	sc.retryOnConflict.Inc()
}

func (sc *StorageCollector) ProofRecorded() {
	sc.proofsRecorded.Inc()
}

type CacheCollector struct {
	entries *prometheus.GaugeVec
	hits    *prometheus.CounterVec
	misses  *prometheus.CounterVec
}

var _ module.CacheMetrics = (*CacheCollector)(nil)

func NewCacheCollector(registerer prometheus.Registerer) *CacheCollector {
	factory := promauto.With(registerer)
	return &CacheCollector{
		entries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemCache,
			Name:      "entries_total",
			Help:      "the number of entries in the cache",
		}, []string{LabelResource}),
		hits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemCache,
			Name:      "hits_total",
			Help:      "the number of hits for the cache",
		}, []string{LabelResource}),
		misses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemCache,
			Name:      "misses_total",
			Help:      "the number of misses for the cache",
		}, []string{LabelResource}),
	}
}

// CacheEntries records the size of the cache for the given resource.
func (cc *CacheCollector) CacheEntries(resource string, entries uint) {
	cc.entries.WithLabelValues(resource).Set(float64(entries))
}

// CacheHit records the number of hits in the cache for the given resource.
func (cc *CacheCollector) CacheHit(resource string) {
	cc.hits.WithLabelValues(resource).Inc()
}

// CacheMiss records the number of misses in the cache for the given resource.
func (cc *CacheCollector) CacheMiss(resource string) {
	cc.misses.WithLabelValues(resource).Inc()
}
