// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/tstate"
	"github.com/ava-labs/countervm/utils"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

type CustomAllocation struct {
	Address codec.Address `json:"address"` // hex address
	Balance uint64        `json:"balance"`
}

type Genesis struct {
	// Fee Parameters
	UnitPrice                 uint64 `json:"unitPrice"`
	StorageKeyAllocateUnits   uint64 `json:"storageKeyAllocateUnits"`
	StorageValueAllocateUnits uint64 `json:"storageValueAllocateUnits"` // per chunk

	// Allocations
	CustomAllocation []*CustomAllocation `json:"customAllocation"`
}

func Default() *Genesis {
	return &Genesis{
		// Fee Parameters
		UnitPrice:                 1,
		StorageKeyAllocateUnits:   20,
		StorageValueAllocateUnits: 5,
	}
}

func New(b []byte) (*Genesis, error) {
	g := Default()
	if len(b) > 0 {
		if err := json.Unmarshal(b, g); err != nil {
			return nil, fmt.Errorf("failed to unmarshal genesis %s: %w", string(b), err)
		}
	}
	if g.UnitPrice == 0 {
		return nil, ErrInvalidUnitPrice
	}
	return g, nil
}

// ChainID identifies the instance created from [genesisBytes]. Transactions
// signed for one genesis are rejected by every other.
func ChainID(genesisBytes []byte) ids.ID {
	return utils.ToID(genesisBytes)
}

// InitializeState credits every custom allocation through [bh].
func (g *Genesis) InitializeState(
	ctx context.Context,
	tracer trace.Tracer,
	mu state.Mutable,
	bh chain.BalanceHandler,
) error {
	ctx, span := tracer.Start(ctx, "Genesis.InitializeState")
	defer span.End()

	supply := uint64(0)
	for _, alloc := range g.CustomAllocation {
		var err error
		supply, err = smath.Add(supply, alloc.Balance)
		if err != nil {
			return err
		}
		if err := bh.AddBalance(ctx, alloc.Address, mu, alloc.Balance); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.Address, alloc.Balance)
		}
	}
	return nil
}

// StateKeys is every key [InitializeState] and [Load] may touch.
func (g *Genesis) StateKeys(bh chain.BalanceHandler) state.Keys {
	keys := state.Keys{
		string(storage.GenesisKey()): state.Allocate | state.Write,
	}
	for _, alloc := range g.CustomAllocation {
		for k := range bh.SponsorStateKeys(alloc.Address) {
			keys.Add(k, state.Allocate|state.Write)
		}
	}
	return keys
}

// Load writes the genesis state to [db] in a single batch. It is a no-op if
// [db] already holds the genesis identified by [chainID] and fails if it
// holds another one.
func (g *Genesis) Load(
	ctx context.Context,
	tracer trace.Tracer,
	db state.Database,
	bh chain.BalanceHandler,
	chainID ids.ID,
) (bool, error) {
	ctx, span := tracer.Start(ctx, "Genesis.Load")
	defer span.End()

	stored, err := db.Get(storage.GenesisKey())
	switch {
	case err == nil:
		storedID, err := ids.ToID(stored)
		if err != nil {
			return false, err
		}
		if storedID != chainID {
			return false, fmt.Errorf("%w: stored=%x, expected=%s", ErrGenesisMismatch, stored, chainID)
		}
		return false, nil
	case !errors.Is(err, database.ErrNotFound):
		return false, err
	}

	scope := g.StateKeys(bh)
	values := make(map[string][]byte, len(scope))
	for k := range scope {
		v, err := db.Get([]byte(k))
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return false, err
		}
		values[k] = v
	}
	ts := tstate.New(len(scope))
	tsv := ts.NewView(scope, values)
	if err := g.InitializeState(ctx, tracer, tsv, bh); err != nil {
		return false, err
	}
	if err := setGenesis(ctx, tsv, chainID); err != nil {
		return false, err
	}
	tsv.Commit()

	batch := db.NewBatch()
	if err := ts.WriteChanges(ctx, batch, tracer); err != nil {
		return false, err
	}
	return true, batch.Write()
}

func setGenesis(ctx context.Context, mu state.Mutable, chainID ids.ID) error {
	return mu.Insert(ctx, storage.GenesisKey(), chainID[:])
}
