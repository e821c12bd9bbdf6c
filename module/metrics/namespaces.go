package metrics

// Prometheus metric namespaces
const (
	namespaceLedger = "ledger"
)

// Ledger subsystems
const (
	subsystemCredit  = "credit"
	subsystemStorage = "storage"
	subsystemCache   = "cache"
	subsystemMempool = "mempool"
	subsystemEngine  = "engine"
)
