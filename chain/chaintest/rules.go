// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/chain"
)

var _ chain.Rules = (*Rules)(nil)

// Rules is a fixed [chain.Rules] for tests.
type Rules struct {
	ChainID                   ids.ID
	UnitPrice                 uint64
	StorageKeyAllocateUnits   uint64
	StorageValueAllocateUnits uint64
}

func (r *Rules) GetChainID() ids.ID { return r.ChainID }

func (r *Rules) GetUnitPrice() uint64 { return r.UnitPrice }

func (r *Rules) GetStorageKeyAllocateUnits() uint64 { return r.StorageKeyAllocateUnits }

func (r *Rules) GetStorageValueAllocateUnits() uint64 { return r.StorageValueAllocateUnits }
