// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"errors"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
)

var (
	_ database.Batch = (*batch)(nil)

	ErrInvalidOperation = errors.New("invalid batch operation")
)

// batch buffers writes in memory until [batch.Write] applies them to the
// database atomically.
type batch struct {
	db    *Database
	batch *pebble.Batch
	size  int
}

func (b *batch) Put(key, value []byte) error {
	b.size += len(key) + len(value)
	return b.batch.Set(key, value, nil)
}

func (b *batch) Delete(key []byte) error {
	b.size += len(key)
	return b.batch.Delete(key, nil)
}

func (b *batch) Size() int {
	return b.size
}

func (b *batch) Write() error {
	b.db.l.RLock()
	defer b.db.l.RUnlock()

	if b.db.closed {
		return database.ErrClosed
	}
	start := time.Now()
	if err := b.db.db.Apply(b.batch, b.db.writeOpts); err != nil {
		return err
	}
	b.db.observeBatch(start, b.size)
	return nil
}

func (b *batch) Reset() {
	b.batch.Reset()
	b.size = 0
}

func (b *batch) Replay(w database.KeyValueWriterDeleter) error {
	reader := b.batch.Reader()
	for {
		kind, k, v, ok := reader.Next()
		if !ok {
			return nil
		}
		switch kind {
		case pebble.InternalKeyKindSet:
			if err := w.Put(k, v); err != nil {
				return err
			}
		case pebble.InternalKeyKindDelete:
			if err := w.Delete(k); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %v", ErrInvalidOperation, kind)
		}
	}
}

func (b *batch) Inner() database.Batch {
	return b
}
