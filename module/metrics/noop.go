package metrics

import (
	"time"

	"github.com/taoledger/ledger-node/module"
)

type NoopCollector struct{}

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

var _ module.CreditMetrics = (*NoopCollector)(nil)
var _ module.CacheMetrics = (*NoopCollector)(nil)
var _ module.StorageMetrics = (*NoopCollector)(nil)
var _ module.MempoolMetrics = (*NoopCollector)(nil)
var _ module.EngineMetrics = (*NoopCollector)(nil)

func (nc *NoopCollector) CreditAccepted(variant string, amount uint64, duration time.Duration) {}
func (nc *NoopCollector) CreditRejected(category string)                                       {}
func (nc *NoopCollector) PostStateMismatch()                                                   {}
func (nc *NoopCollector) CacheEntries(resource string, entries uint)                           {}
func (nc *NoopCollector) CacheHit(resource string)                                             {}
func (nc *NoopCollector) CacheMiss(resource string)                                            {}
func (nc *NoopCollector) RetryOnConflict()                                                     {}
func (nc *NoopCollector) ProofRecorded()                                                       {}
func (nc *NoopCollector) MempoolEntries(resource string, entries uint)                         {}
func (nc *NoopCollector) TransactionAdmitted()                                                 {}
func (nc *NoopCollector) TransactionConnected()                                                {}
func (nc *NoopCollector) TransactionRejected(stage string)                                     {}
