// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codectest

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/codec"
)

// NewRandomAddress returns a random address of type [typeID]
// for use during testing
func NewRandomAddress(typeID uint8) codec.Address {
	return codec.CreateAddress(typeID, ids.GenerateTestID())
}
