// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/config"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/registry"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"

	ctrace "github.com/ava-labs/countervm/trace"
)

// Controller owns the database and applies transactions to it one at a
// time.
type Controller struct {
	log     logging.Logger
	tracer  trace.Tracer
	chainID ids.ID

	genesis *genesis.Genesis
	rules   *genesis.Rules
	parser  *registry.Parser
	bh      *storage.BalanceHandler

	db        state.Database
	processor *chain.Processor

	metrics  *metrics
	gatherer prometheus.Gatherers

	// Serializes [Submit]
	l sync.Mutex
}

// Open builds a controller from [cfg]: a console logger, the configured
// tracer and a pebble database under [config.Config.DatabasePath].
func Open(ctx context.Context, cfg *config.Config, genesisBytes []byte) (*Controller, error) {
	log := newLogger(cfg)
	tracer, err := ctrace.New(&cfg.Trace)
	if err != nil {
		log.Stop()
		return nil, err
	}
	db, dbRegistry, err := storage.New(cfg.Pebble, cfg.DatabasePath, storage.StateNamespace)
	if err != nil {
		log.Stop()
		return nil, errors.Join(err, tracer.Close())
	}
	c, err := New(ctx, log, tracer, cfg.MetricsNamespace, genesisBytes, db)
	if err != nil {
		log.Stop()
		return nil, errors.Join(err, db.Close(), tracer.Close())
	}
	c.gatherer = append(c.gatherer, dbRegistry)
	return c, nil
}

// New creates a controller over [db], writing the genesis allocations if
// [db] is empty.
func New(
	ctx context.Context,
	log logging.Logger,
	tracer trace.Tracer,
	metricsNamespace string,
	genesisBytes []byte,
	db state.Database,
) (*Controller, error) {
	g, err := genesis.New(genesisBytes)
	if err != nil {
		return nil, fmt.Errorf("unable to read genesis: %w", err)
	}
	chainID := genesis.ChainID(genesisBytes)
	log.Info("loaded genesis",
		zap.Stringer("chainID", chainID),
		zap.Any("genesis", g),
	)

	metricsRegistry, m, err := newMetrics(metricsNamespace)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		log:      log,
		tracer:   tracer,
		chainID:  chainID,
		genesis:  g,
		rules:    genesis.NewRules(g, chainID),
		parser:   &registry.Parser{},
		bh:       &storage.BalanceHandler{},
		db:       db,
		metrics:  m,
		gatherer: prometheus.Gatherers{metricsRegistry},
	}
	c.processor = chain.NewProcessor(tracer, c.rules, c.bh, db)

	loaded, err := g.Load(ctx, tracer, db, c.bh, chainID)
	if err != nil {
		return nil, err
	}
	if loaded {
		log.Info("initialized state from genesis",
			zap.Int("allocations", len(g.CustomAllocation)),
		)
	}
	return c, nil
}

func (c *Controller) ChainID() ids.ID {
	return c.chainID
}

func (c *Controller) Rules() chain.Rules {
	return c.rules
}

func (c *Controller) Parser() chain.Parser {
	return c.parser
}

func (c *Controller) Gatherer() prometheus.Gatherer {
	return c.gatherer
}

// Submit applies [tx]. Submissions are serialized: a transaction observes
// every transaction submitted before it.
func (c *Controller) Submit(ctx context.Context, tx *chain.Transaction) (*chain.Result, error) {
	c.l.Lock()
	defer c.l.Unlock()

	start := time.Now()
	result, err := c.processor.Execute(ctx, tx)
	c.metrics.submitLatency.Observe(float64(time.Since(start)))
	if err != nil {
		c.metrics.rejected.Inc()
		fields := []zap.Field{zap.Error(err)}
		if tx != nil {
			fields = append(fields, zap.Stringer("txID", tx.ID()))
			if tx.Auth != nil {
				fields = append(fields, zap.Stringer("actor", tx.Auth.Actor()))
			}
		}
		c.log.Debug("rejected transaction", fields...)
		return nil, err
	}

	switch tx.Action.(type) {
	case *actions.Initialize:
		c.metrics.initialize.Inc()
	case *actions.Increment:
		c.metrics.increment.Inc()
	}
	c.metrics.feesPaid.Add(float64(result.Fee))
	c.log.Info("accepted transaction",
		zap.Stringer("txID", result.TxID),
		zap.Stringer("actor", tx.Auth.Actor()),
		zap.Uint8("action", tx.Action.GetTypeID()),
		zap.Uint64("fee", result.Fee),
	)
	return result, nil
}

// SubmitBytes parses and applies a serialized transaction.
func (c *Controller) SubmitBytes(ctx context.Context, b []byte) (*chain.Result, error) {
	tx, err := chain.ParseTx(b, c.parser)
	if err != nil {
		return nil, err
	}
	return c.Submit(ctx, tx)
}

func (c *Controller) readState(_ context.Context, keys [][]byte) ([][]byte, []error) {
	values := make([][]byte, len(keys))
	errs := make([]error, len(keys))
	for i, k := range keys {
		values[i], errs[i] = c.db.Get(k)
	}
	return values, errs
}

// Counter returns the committed record at [addr].
func (c *Controller) Counter(ctx context.Context, addr codec.Address) (*storage.Counter, error) {
	counter, exists, err := storage.GetCounterFromState(ctx, c.readState, addr)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", actions.ErrRecordNotFound, addr)
	}
	return counter, nil
}

// Balance returns the committed balance of [addr].
func (c *Controller) Balance(ctx context.Context, addr codec.Address) (uint64, error) {
	return storage.GetBalanceFromState(ctx, c.readState, addr)
}

// Close releases the tracer, the logger and, if it can be closed, the
// database.
func (c *Controller) Close() error {
	c.l.Lock()
	defer c.l.Unlock()

	var errs []error
	if closer, ok := c.db.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	errs = append(errs, c.tracer.Close())
	c.log.Stop()
	return errors.Join(errs...)
}
