// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/codec"
)

// Result is returned for every transaction that was applied.
type Result struct {
	TxID ids.ID `json:"txId"`

	// Output is the record state produced by the action.
	Output codec.Typed `json:"output"`

	// Fee is the amount debited from the sponsor for allocation.
	Fee uint64 `json:"fee"`
}
