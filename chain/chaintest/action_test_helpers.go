// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/state"
)

// ActionTest is a single table entry executed by [ActionTestSuite].
type ActionTest struct {
	Name string

	Action chain.Action

	Rules    chain.Rules
	State    state.Mutable
	Actor    codec.Address
	ActionID ids.ID

	ExpectedOutputs codec.Typed
	ExpectedErr     error

	// Assertion runs after Execute against the same state.
	Assertion func(context.Context, *testing.T, state.Mutable)
}

type ActionTestSuite struct {
	Tests []ActionTest
}

func (suite *ActionTestSuite) Run(t *testing.T) {
	for _, test := range suite.Tests {
		t.Run(test.Name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()

			output, err := test.Action.Execute(ctx, test.Rules, test.State, test.Actor, test.ActionID)

			require.ErrorIs(err, test.ExpectedErr)
			require.Equal(test.ExpectedOutputs, output)

			if test.Assertion != nil {
				test.Assertion(ctx, t, test.State)
			}
		})
	}
}
