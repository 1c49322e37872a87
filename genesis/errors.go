// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import "errors"

var (
	ErrInvalidUnitPrice = errors.New("invalid unit price")
	ErrGenesisMismatch  = errors.New("database was initialized with a different genesis")
)
