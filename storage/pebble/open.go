package pebble

import (
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/hashicorp/go-multierror"

	"github.com/taoledger/ledger-node/module"
	"github.com/taoledger/ledger-node/storage"
	"github.com/taoledger/ledger-node/storage/pebble/operation"
)

// OpenLedgerDB opens the pebble database in dir with a block cache of
// cacheSize bytes.
func OpenLedgerDB(dir string, cacheSize int64) (*pebble.DB, error) {
	err := storage.EnsureBackendDir(dir, "pebble")
	if err != nil {
		return nil, err
	}

	cache := pebble.NewCache(cacheSize)
	defer cache.Unref()

	opts := &pebble.Options{
		Cache:        cache,
		MemTableSize: 64 << 20,
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return db, nil
}

// NewLedgerWithPath opens the database in dir and checks that it holds a
// ledger. The database is closed again if the check fails.
func NewLedgerWithPath(dir string, cacheSize int64, metrics module.StorageMetrics, pending storage.PendingProofs) (*Ledger, *pebble.DB, error) {
	db, err := OpenLedgerDB(dir, cacheSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize pebble db: %w", err)
	}

	err = ensureDBType(db)
	if err != nil {
		dbErr := db.Close()
		if dbErr != nil {
			err = multierror.Append(err, fmt.Errorf("failed to close db: %w", dbErr))
		}
		return nil, nil, fmt.Errorf("failed to initialize ledger: %w", err)
	}
	return NewLedger(db, metrics, pending), db, nil
}

func ensureDBType(db *pebble.DB) error {
	batch := db.NewIndexedBatch()
	defer batch.Close()

	err := operation.EnsureDBType(operation.DBTypeLedger)(batch)
	if err != nil {
		return fmt.Errorf("could not check database type: %w", err)
	}
	return batch.Commit(pebble.Sync)
}
