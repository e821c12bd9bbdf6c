package badger

import (
	"fmt"

	"github.com/dgraph-io/badger/v2"
	"github.com/hashicorp/go-multierror"

	"github.com/taoledger/ledger-node/module"
	"github.com/taoledger/ledger-node/storage"
)

// OpenLedgerDB opens the badger database in dir.
func OpenLedgerDB(dir string) (*badger.DB, error) {
	err := storage.EnsureBackendDir(dir, "badger")
	if err != nil {
		return nil, err
	}

	opts := badger.
		DefaultOptions(dir).
		WithKeepL0InMemory(true).
		WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("could not open db: %w", err)
	}
	return db, nil
}

// NewLedgerWithPath opens the database in dir and the ledger on top of it.
// The database is closed again if the ledger cannot be opened.
func NewLedgerWithPath(dir string, cacheMetrics module.CacheMetrics, storageMetrics module.StorageMetrics, opts ...Option) (*Ledger, *badger.DB, error) {
	db, err := OpenLedgerDB(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize badger db: %w", err)
	}

	ledger, err := NewLedger(db, cacheMetrics, storageMetrics, opts...)
	if err != nil {
		dbErr := db.Close()
		if dbErr != nil {
			err = multierror.Append(err, fmt.Errorf("failed to close db: %w", dbErr))
		}
		return nil, nil, fmt.Errorf("failed to initialize ledger: %w", err)
	}
	return ledger, db, nil
}
