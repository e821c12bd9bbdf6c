package module

import (
	"time"
)

// CreditMetrics tracks the outcome of credit operations.
type CreditMetrics interface {
	// CreditAccepted is called once per accepted credit with the claimed
	// source variant (coinbase, account, temporal).
	CreditAccepted(variant string, amount uint64, duration time.Duration)

	// CreditRejected is called once per rejected credit with the rejection
	// category.
	CreditRejected(category string)

	// PostStateMismatch tracks register-context checksums that disagree with
	// the locally recomputed post-state.
	PostStateMismatch()
}

// CacheMetrics tracks the register read cache.
type CacheMetrics interface {
	CacheEntries(resource string, entries uint)
	CacheHit(resource string)
	CacheMiss(resource string)
}

// StorageMetrics tracks the register and proof store.
type StorageMetrics interface {
	// RetryOnConflict tracks commits retried after a serialization conflict.
	RetryOnConflict()

	// ProofRecorded tracks proof keys written by committed credits.
	ProofRecorded()
}

// MempoolMetrics tracks speculative claims.
type MempoolMetrics interface {
	MempoolEntries(resource string, entries uint)
}

// EngineMetrics tracks transactions handled by the ledger engine.
type EngineMetrics interface {
	TransactionAdmitted()
	TransactionConnected()
	TransactionRejected(stage string)
}
