// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ava-labs/countervm/keys"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/tstate"
)

// Processor applies transactions to a [state.Database].
//
// Processor is not safe for concurrent use: the caller must serialize
// transactions that touch the same keys.
type Processor struct {
	tracer trace.Tracer
	rules  Rules
	bh     BalanceHandler
	db     state.Database
}

func NewProcessor(
	tracer trace.Tracer,
	rules Rules,
	bh BalanceHandler,
	db state.Database,
) *Processor {
	return &Processor{
		tracer: tracer,
		rules:  rules,
		bh:     bh,
		db:     db,
	}
}

// Execute verifies [tx] and, if every check passes, writes the resulting
// state in a single batch. On any error nothing is written.
func (p *Processor) Execute(ctx context.Context, tx *Transaction) (*Result, error) {
	if tx == nil || tx.Base == nil || tx.Action == nil {
		return nil, ErrInvalidObject
	}
	if tx.Auth == nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorizedSigner, ErrMissingAuth)
	}

	ctx, span := p.tracer.Start(ctx, "Processor.Execute", oteltrace.WithAttributes(
		attribute.Stringer("txID", tx.ID()),
		attribute.Int("actionType", int(tx.Action.GetTypeID())),
	))
	defer span.End()

	if err := tx.Base.Verify(p.rules); err != nil {
		return nil, err
	}

	// Every mutation is gated on the auth proving the signer authorized
	// this exact digest.
	msg, err := tx.Digest()
	if err != nil {
		return nil, err
	}
	if err := tx.Auth.Verify(ctx, msg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorizedSigner, err)
	}

	scope, err := tx.StateKeys(p.bh)
	if err != nil {
		return nil, err
	}
	storage, err := p.fetch(ctx, scope)
	if err != nil {
		return nil, err
	}

	// The sponsor must be able to pay for everything the action could
	// allocate before it runs.
	sponsor := tx.Sponsor()
	maxFee, err := AllocationFee(p.rules, maxAllocations(scope, storage))
	if err != nil {
		return nil, err
	}
	ts := tstate.New(len(scope))
	tsv := ts.NewView(scope, storage)
	if err := p.bh.CanDeduct(ctx, sponsor, tsv, maxFee); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInsufficientFunds, err)
	}

	actionStart := tsv.OpIndex()
	output, err := tx.Action.Execute(ctx, p.rules, tsv, tx.Auth.Actor(), tx.ID())
	if err != nil {
		tsv.Rollback(ctx, actionStart)
		return nil, err
	}

	allocations, _ := tsv.KeyOperations()
	fee, err := AllocationFee(p.rules, allocations)
	if err != nil {
		return nil, err
	}
	if fee > 0 {
		// Fee payment may only touch keys that already exist.
		tsv.DisableAllocation()
		err := p.bh.Deduct(ctx, sponsor, tsv, fee)
		tsv.EnableAllocation()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInsufficientFunds, err)
		}
	}
	tsv.Commit()

	batch := p.db.NewBatch()
	if err := ts.WriteChanges(ctx, batch, p.tracer); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		return nil, err
	}
	return &Result{
		TxID:   tx.ID(),
		Output: output,
		Fee:    fee,
	}, nil
}

// fetch loads the persisted value of every key in [scope].
func (p *Processor) fetch(ctx context.Context, scope state.Keys) (map[string][]byte, error) {
	_, span := p.tracer.Start(ctx, "Processor.fetch", oteltrace.WithAttributes(
		attribute.Int("keys", len(scope)),
	))
	defer span.End()

	storage := make(map[string][]byte, len(scope))
	for k := range scope {
		v, err := p.db.Get([]byte(k))
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		storage[k] = v
	}
	return storage, nil
}

// maxAllocations returns the keys in [scope] that may be allocated: those
// with [state.Allocate] that do not exist yet.
func maxAllocations(scope state.Keys, storage map[string][]byte) map[string]uint16 {
	allocations := make(map[string]uint16)
	for k, perm := range scope {
		if !perm.Has(state.Allocate) {
			continue
		}
		if _, ok := storage[k]; ok {
			continue
		}
		chunks, _ := keys.MaxChunks([]byte(k)) // validated in [Transaction.StateKeys]
		allocations[k] = chunks
	}
	return allocations
}
