// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import "github.com/ava-labs/countervm/consts"

const (
	ED25519ID = consts.ED25519ID

	ED25519Key = "ed25519"
)
