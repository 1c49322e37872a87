// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"
)

const batchSize = 10_000

func randBytes() []byte {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return b
}

func newTestDatabase(t *testing.T) *Database {
	cfg := NewDefaultConfig()
	cfg.Sync = false
	db, registry, err := New(t.TempDir(), cfg)
	require.NoError(t, err)
	require.NotNil(t, registry)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func TestPutGetDelete(t *testing.T) {
	require := require.New(t)
	db := newTestDatabase(t)

	k := []byte("hello")
	has, err := db.Has(k)
	require.NoError(err)
	require.False(has)
	_, err = db.Get(k)
	require.ErrorIs(err, database.ErrNotFound)

	require.NoError(db.Put(k, []byte("world")))
	has, err = db.Has(k)
	require.NoError(err)
	require.True(has)
	v, err := db.Get(k)
	require.NoError(err)
	require.Equal([]byte("world"), v)

	require.NoError(db.Delete(k))
	_, err = db.Get(k)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestBatchAtomic(t *testing.T) {
	require := require.New(t)
	db := newTestDatabase(t)
	require.NoError(db.Put([]byte("a"), []byte{1}))

	batch := db.NewBatch()
	require.NoError(batch.Put([]byte("b"), []byte{2}))
	require.NoError(batch.Delete([]byte("a")))
	require.Equal(3, batch.Size())

	// Nothing is visible until the batch is written.
	v, err := db.Get([]byte("a"))
	require.NoError(err)
	require.Equal([]byte{1}, v)
	has, err := db.Has([]byte("b"))
	require.NoError(err)
	require.False(has)

	require.NoError(batch.Write())
	_, err = db.Get([]byte("a"))
	require.ErrorIs(err, database.ErrNotFound)
	v, err = db.Get([]byte("b"))
	require.NoError(err)
	require.Equal([]byte{2}, v)
}

func TestBatchReplayReset(t *testing.T) {
	require := require.New(t)
	db := newTestDatabase(t)

	batch := db.NewBatch()
	require.NoError(batch.Put([]byte("a"), []byte{1}))
	require.NoError(batch.Put([]byte("b"), []byte{2}))
	require.NoError(batch.Delete([]byte("b")))

	mem := memdb.New()
	require.NoError(batch.Replay(mem))
	v, err := mem.Get([]byte("a"))
	require.NoError(err)
	require.Equal([]byte{1}, v)
	_, err = mem.Get([]byte("b"))
	require.ErrorIs(err, database.ErrNotFound)

	batch.Reset()
	require.Zero(batch.Size())
	require.NoError(batch.Write())
	_, err = db.Get([]byte("a"))
	require.ErrorIs(err, database.ErrNotFound)
}

func TestPersistsAcrossReopen(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	cfg := NewDefaultConfig()

	db, _, err := New(dir, cfg)
	require.NoError(err)
	require.NoError(db.Put([]byte("k"), []byte("v")))
	require.NoError(db.Close())

	db, _, err = New(dir, cfg)
	require.NoError(err)
	v, err := db.Get([]byte("k"))
	require.NoError(err)
	require.Equal([]byte("v"), v)
	require.NoError(db.Close())
}

func TestClosed(t *testing.T) {
	require := require.New(t)
	db, _, err := New(t.TempDir(), NewDefaultConfig())
	require.NoError(err)
	require.NoError(db.Close())

	_, err = db.Get([]byte("k"))
	require.ErrorIs(err, database.ErrClosed)
	require.ErrorIs(db.Put([]byte("k"), nil), database.ErrClosed)
	require.ErrorIs(db.Close(), database.ErrClosed)
}

func BenchmarkBatchInsertion(b *testing.B) {
	for _, sync := range []bool{false, true} {
		b.Run(fmt.Sprintf("sync=%t", sync), func(b *testing.B) {
			// Setup DB
			b.StopTimer()
			cfg := NewDefaultConfig()
			cfg.Sync = sync
			db, _, err := New(b.TempDir(), cfg)
			if err != nil {
				b.Fatal(err)
			}

			// Setup keys
			keys := make([][]byte, batchSize)
			for i := 0; i < batchSize; i++ {
				keys[i] = randBytes()
			}

			b.StartTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				batch := db.NewBatch()
				for j := 0; j < batchSize; j++ {
					if err := batch.Put(keys[j], randBytes()); err != nil {
						b.Fatal(err)
					}
				}
				if err := batch.Write(); err != nil {
					b.Fatal(err)
				}
			}
			b.StopTimer()

			if err := db.Close(); err != nil {
				b.Fatal(err)
			}
		})
	}
}
