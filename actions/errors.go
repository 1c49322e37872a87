// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import "errors"

var (
	ErrAllocationConflict = errors.New("record already exists")
	ErrRecordNotFound     = errors.New("record not found")
	ErrAuthorityMismatch  = errors.New("signer is not the record authority")
	ErrCounterOverflow    = errors.New("counter overflow")
	ErrInvalidCounter     = errors.New("invalid counter address")
)
