// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/codec/codectest"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/storage"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		b           []byte
		expected    *Genesis
		expectedErr error
	}{
		{
			name:     "empty uses defaults",
			expected: Default(),
		},
		{
			name: "override",
			b:    []byte(`{"unitPrice":3}`),
			expected: &Genesis{
				UnitPrice:                 3,
				StorageKeyAllocateUnits:   20,
				StorageValueAllocateUnits: 5,
			},
		},
		{
			name:        "zero unit price",
			b:           []byte(`{"unitPrice":0}`),
			expectedErr: ErrInvalidUnitPrice,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			g, err := New(tt.b)
			require.ErrorIs(err, tt.expectedErr)
			require.Equal(tt.expected, g)
		})
	}

	_, err := New([]byte("{"))
	require.Error(t, err)
}

func TestAllocationJSON(t *testing.T) {
	require := require.New(t)
	addr := codectest.NewRandomAddress(consts.ED25519ID)
	g := Default()
	g.CustomAllocation = []*CustomAllocation{{Address: addr, Balance: 10}}

	b, err := json.Marshal(g)
	require.NoError(err)
	parsed, err := New(b)
	require.NoError(err)
	require.Equal(g, parsed)
}

func TestLoad(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	a1 := codectest.NewRandomAddress(consts.ED25519ID)
	a2 := codectest.NewRandomAddress(consts.ED25519ID)
	g := Default()
	g.CustomAllocation = []*CustomAllocation{
		{Address: a1, Balance: 100},
		{Address: a2, Balance: 1},
	}
	b, err := json.Marshal(g)
	require.NoError(err)
	chainID := ChainID(b)

	db := memdb.New()
	bh := &storage.BalanceHandler{}
	loaded, err := g.Load(ctx, trace.Noop, db, bh, chainID)
	require.NoError(err)
	require.True(loaded)

	for addr, expected := range map[codec.Address]uint64{a1: 100, a2: 1} {
		v, err := db.Get(storage.BalanceKey(addr))
		require.NoError(err)
		require.Len(v, consts.Uint64Len)
		bal, err := storage.GetBalanceFromState(ctx, func(_ context.Context, keys [][]byte) ([][]byte, []error) {
			v, err := db.Get(keys[0])
			return [][]byte{v}, []error{err}
		}, addr)
		require.NoError(err)
		require.Equal(expected, bal)
	}

	// Reloading the same genesis does nothing.
	loaded, err = g.Load(ctx, trace.Noop, db, bh, chainID)
	require.NoError(err)
	require.False(loaded)

	// A different genesis is rejected.
	_, err = g.Load(ctx, trace.Noop, db, bh, ids.GenerateTestID())
	require.ErrorIs(err, ErrGenesisMismatch)
}

func TestRules(t *testing.T) {
	require := require.New(t)
	chainID := ids.GenerateTestID()
	r := NewRules(Default(), chainID)
	require.Equal(chainID, r.GetChainID())
	require.Equal(uint64(1), r.GetUnitPrice())
	require.Equal(uint64(20), r.GetStorageKeyAllocateUnits())
	require.Equal(uint64(5), r.GetStorageValueAllocateUnits())
}
