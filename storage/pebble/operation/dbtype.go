package operation

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/taoledger/ledger-node/storage"
)

// DBType marks what a database directory holds.
type DBType uint8

const (
	DBTypeLedger DBType = 1
)

// EnsureDBType marks an empty database with the expected type and checks the
// type of an existing one.
func EnsureDBType(expected DBType) func(*pebble.Batch) error {
	return func(batch *pebble.Batch) error {
		var actual DBType
		err := retrieve([]byte{codeDBType}, &actual)(batch)
		if errors.Is(err, storage.ErrNotFound) {
			return upsert([]byte{codeDBType}, expected)(batch)
		}
		if err != nil {
			return fmt.Errorf("could not read database type: %w", err)
		}
		if actual != expected {
			return fmt.Errorf("database type mismatch (expected=%d, actual=%d): %w", expected, actual, storage.ErrDataMismatch)
		}
		return nil
	}
}
