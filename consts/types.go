// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

// Note: type IDs are assigned explicitly so that a registry cannot silently
// remap them.
const (
	// Action TypeIDs
	InitializeID uint8 = 0
	IncrementID  uint8 = 1

	// Auth TypeIDs
	ED25519ID uint8 = 0

	// Address TypeIDs (first byte of a [codec.Address])
	CounterID uint8 = 0xc0
)

const Name = "countervm"
