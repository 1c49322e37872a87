// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
)

var (
	Action *codec.TypeParser[chain.Action]
	Auth   *codec.TypeParser[chain.Auth]

	_ chain.Parser = (*Parser)(nil)
)

// Setup types
func init() {
	Action = codec.NewTypeParser[chain.Action]()
	Auth = codec.NewTypeParser[chain.Auth]()

	errs := &wrappers.Errs{}
	errs.Add(
		// When registering new actions, ALWAYS make sure to append at the end.
		Action.Register(&actions.Initialize{}, actions.UnmarshalInitialize),
		Action.Register(&actions.Increment{}, actions.UnmarshalIncrement),

		// When registering new auth, ALWAYS make sure to append at the end.
		Auth.Register(&auth.ED25519{}, auth.UnmarshalED25519),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
}

// Parser decodes transactions with the registered action and auth types.
type Parser struct{}

func (*Parser) ActionCodec() *codec.TypeParser[chain.Action] {
	return Action
}

func (*Parser) AuthCodec() *codec.TypeParser[chain.Auth] {
	return Auth
}
