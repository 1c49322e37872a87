// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	// Execution
	ErrUnauthorizedSigner = errors.New("unauthorized signer")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidChainID     = errors.New("invalid chain ID")
	ErrInvalidKeyValue    = errors.New("invalid key or value")
	ErrInvalidFee         = errors.New("invalid fee")

	// Parsing
	ErrInvalidObject  = errors.New("invalid object")
	ErrInvalidActor   = errors.New("invalid actor")
	ErrInvalidSponsor = errors.New("invalid sponsor")
	ErrMissingAuth    = errors.New("missing auth")
)
