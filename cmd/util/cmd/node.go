package cmd

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/taoledger/ledger-node/config"
	engine "github.com/taoledger/ledger-node/engine/ledger"
	"github.com/taoledger/ledger-node/module"
	"github.com/taoledger/ledger-node/module/mempool"
	"github.com/taoledger/ledger-node/module/metrics"
	"github.com/taoledger/ledger-node/operation"
	"github.com/taoledger/ledger-node/storage"
	badgerstorage "github.com/taoledger/ledger-node/storage/badger"
	pebblestorage "github.com/taoledger/ledger-node/storage/pebble"
)

// node is the set of components a command works with.
type node struct {
	registry *prometheus.Registry
	ledger   storage.Ledger
	claims   *mempool.Claims
	executor *operation.Executor
	engine   *engine.Engine
	closer   io.Closer
}

type collectors struct {
	credit  module.CreditMetrics
	cache   module.CacheMetrics
	storage module.StorageMetrics
	engine  interface {
		module.EngineMetrics
		module.MempoolMetrics
	}
}

func newCollectors(c *config.LedgerConfig, registry *prometheus.Registry) collectors {
	if !c.Metrics.Enabled {
		noop := metrics.NewNoopCollector()
		return collectors{credit: noop, cache: noop, storage: noop, engine: noop}
	}
	return collectors{
		credit:  metrics.NewCreditCollector(registry),
		cache:   metrics.NewCacheCollector(registry),
		storage: metrics.NewStorageCollector(registry),
		engine:  metrics.NewEngineCollector(registry),
	}
}

// initNode opens the configured ledger and wires the executor and engine on
// top of it.
func initNode(c *config.LedgerConfig) (*node, error) {
	registry := prometheus.NewRegistry()
	m := newCollectors(c, registry)
	claims := mempool.NewClaims(m.engine)

	n := &node{registry: registry, claims: claims}

	switch c.Storage.Backend {
	case "badger":
		l, db, err := badgerstorage.NewLedgerWithPath(c.Storage.Dir, m.cache, m.storage,
			badgerstorage.WithCacheSize(c.Storage.CacheSize),
			badgerstorage.WithMaxConflictRetries(c.Storage.ConflictRetries),
			badgerstorage.WithPendingProofs(claims),
		)
		if err != nil {
			return nil, err
		}
		n.ledger, n.closer = l, db
	case "pebble":
		l, db, err := pebblestorage.NewLedgerWithPath(c.Storage.Dir, int64(c.Storage.BlockCacheMB)<<20, m.storage, claims)
		if err != nil {
			return nil, err
		}
		n.ledger, n.closer = l, db
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	n.executor = operation.NewExecutor(log.Logger, n.ledger, m.credit)
	n.engine = engine.New(log.Logger, n.executor, n.ledger, claims, m.engine, c.Engine.AdmissionWorkers)

	log.Debug().
		Str("backend", c.Storage.Backend).
		Str("dir", c.Storage.Dir).
		Msg("ledger opened")
	return n, nil
}

func (n *node) Close() error {
	if n.closer == nil {
		return nil
	}
	return n.closer.Close()
}
