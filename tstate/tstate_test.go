// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/keys"
	"github.com/ava-labs/countervm/state"
)

var (
	testKey = keys.EncodeChunks([]byte("key"), 1)
	testVal = []byte("value")

	key1    = keys.EncodeChunks([]byte("key1"), 1)
	key1str = string(key1)
	key2    = keys.EncodeChunks([]byte("key2"), 2)
	key2str = string(key2)
)

func TestScope(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	// No Scope
	tsv := ts.NewView(state.Keys{}, map[string][]byte{})
	val, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, ErrInvalidKeyOrPermission)
	require.Nil(val)
	require.ErrorIs(tsv.Insert(ctx, testKey, testVal), ErrInvalidKeyOrPermission)
	require.ErrorIs(tsv.Remove(ctx, testKey), ErrInvalidKeyOrPermission)
}

func TestGetValue(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.Read}, map[string][]byte{string(testKey): testVal})
	val, err := tsv.GetValue(ctx, testKey)
	require.NoError(err, "unable to get value")
	require.Equal(testVal, val, "value was not saved correctly")
}

func TestGetValueNoStorage(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.Read}, map[string][]byte{})
	_, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound, "data should not exist")
}

func TestInsertNew(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.All}, map[string][]byte{})

	// Test Disable Allocate
	tsv.DisableAllocation()
	require.ErrorIs(tsv.Insert(ctx, testKey, testVal), ErrAllocationDisabled)
	tsv.EnableAllocation()

	// Insert key
	require.NoError(tsv.Insert(ctx, testKey, testVal))
	val, err := tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(1, tsv.OpIndex(), "insert was not added as an operation")
	require.Equal(testVal, val, "value was not set correctly")

	allocates, writes := tsv.KeyOperations()
	require.Equal(uint16(1), allocates[string(testKey)])
	require.Equal(uint16(1), writes[string(testKey)])

	// Check commit
	tsv.Commit()
	require.Equal(1, ts.PendingChanges(), "insert was not committed")
}

func TestInsertPermissions(t *testing.T) {
	ctx := context.TODO()
	tests := []struct {
		name        string
		perm        state.Permissions
		storage     map[string][]byte
		expectedErr error
	}{
		{
			name:        "allocate without permission",
			perm:        state.Read | state.Write,
			storage:     map[string][]byte{},
			expectedErr: ErrInvalidKeyOrPermission,
		},
		{
			name:    "allocate with permission",
			perm:    state.Allocate,
			storage: map[string][]byte{},
		},
		{
			name:        "write without permission",
			perm:        state.Allocate,
			storage:     map[string][]byte{string(testKey): testVal},
			expectedErr: ErrInvalidKeyOrPermission,
		},
		{
			name:    "write with permission",
			perm:    state.Write,
			storage: map[string][]byte{string(testKey): testVal},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tsv := New(1).NewView(state.Keys{string(testKey): tt.perm}, tt.storage)
			err := tsv.Insert(ctx, testKey, []byte("new"))
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestInsertInvalid(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	// Key with zero chunks cannot hold a value
	key := keys.EncodeChunks([]byte("hello"), 0)
	tsv := ts.NewView(state.Keys{string(key): state.All}, map[string][]byte{})
	require.ErrorIs(tsv.Insert(ctx, key, []byte("cool")), ErrInvalidKeyValue)

	// Value too large for the key's chunks
	require.ErrorIs(tsv.Insert(ctx, key1, make([]byte, 65)), ErrInvalidKeyValue)
}

func TestInsertUpdate(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.Write}, map[string][]byte{string(testKey): testVal})
	newVal := []byte("newValue")
	require.NoError(tsv.Insert(ctx, testKey, newVal))
	val, err := tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(newVal, val, "value was not set correctly")
	require.Equal(1, tsv.OpIndex(), "insert was not added as an operation")

	allocates, writes := tsv.KeyOperations()
	require.Empty(allocates)
	require.Equal(uint16(1), writes[string(testKey)])
}

func TestRemoveInsertRollback(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.All}, map[string][]byte{})
	// Insert
	require.NoError(tsv.Insert(ctx, testKey, testVal))
	v, err := tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(testVal, v)
	require.Equal(1, tsv.OpIndex(), "opIndex not incremented")
	// Remove
	require.NoError(tsv.Remove(ctx, testKey), "unable to remove testKey")
	_, err = tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound, "key wasn't removed")
	require.Equal(2, tsv.OpIndex(), "opIndex not incremented")
	// Insert
	require.NoError(tsv.Insert(ctx, testKey, testVal))
	v, err = tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(testVal, v)
	require.Equal(3, tsv.OpIndex(), "opIndex not incremented")
	require.Equal(1, tsv.PendingChanges())
	// Rollback to before the second insert
	tsv.Rollback(ctx, 2)
	_, err = tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound, "key wasn't removed")
	// Rollback to before the remove
	tsv.Rollback(ctx, 1)
	v, err = tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(testVal, v)
	// Rollback everything
	tsv.Rollback(ctx, 0)
	_, err = tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound, "key wasn't removed")
	require.Zero(tsv.OpIndex(), "opIndex not decremented")
	require.Zero(tsv.PendingChanges())
	allocates, writes := tsv.KeyOperations()
	require.Empty(allocates)
	require.Empty(writes)
}

func TestRollbackRestoresPriorValue(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{key1str: state.Write}, map[string][]byte{key1str: []byte("old")})
	require.NoError(tsv.Insert(ctx, key1, []byte("new")))
	require.NoError(tsv.Insert(ctx, key1, []byte("newer")))
	tsv.Rollback(ctx, 1)
	v, err := tsv.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal([]byte("new"), v)

	tsv.Rollback(ctx, 0)
	v, err = tsv.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal([]byte("old"), v)
}

func TestCommitVisibleToNewView(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{key1str: state.All}, map[string][]byte{})
	require.NoError(tsv.Insert(ctx, key1, testVal))
	tsv.Commit()

	// Storage passed to the new view is stale; committed changes win.
	tsv = ts.NewView(state.Keys{key1str: state.Read}, map[string][]byte{})
	v, err := tsv.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(testVal, v)
}

func TestWriteChanges(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)
	db := memdb.New()
	require.NoError(db.Put(key2, []byte("stale")))

	tsv := ts.NewView(
		state.Keys{key1str: state.All, key2str: state.Write},
		map[string][]byte{key2str: []byte("stale")},
	)
	require.NoError(tsv.Insert(ctx, key1, testVal))
	require.NoError(tsv.Remove(ctx, key2))
	tsv.Commit()
	require.Equal(2, ts.PendingChanges())

	batch := db.NewBatch()
	require.NoError(ts.WriteChanges(ctx, batch, trace.Noop))

	// Nothing is visible until the batch is written
	has, err := db.Has(key1)
	require.NoError(err)
	require.False(has)

	require.NoError(batch.Write())
	v, err := db.Get(key1)
	require.NoError(err)
	require.Equal(testVal, v)
	_, err = db.Get(key2)
	require.ErrorIs(err, database.ErrNotFound)
}
