// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"errors"

	"github.com/ava-labs/avalanchego/utils/wrappers"
)

var (
	ErrTooManyItems       = errors.New("too many items")
	ErrDuplicateItem      = errors.New("duplicate item")
	ErrFieldNotPopulated  = errors.New("field is not populated")
	ErrInsufficientLength = wrappers.ErrInsufficientLength
	ErrInvalidSize        = errors.New("invalid size")
	ErrUnknownType        = errors.New("unknown type")
	ErrTrailingBytes      = errors.New("trailing bytes")
)
