// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
)

const (
	InitializeSize = codec.AddressLen + consts.Uint64Len
	IncrementSize  = codec.AddressLen
)
