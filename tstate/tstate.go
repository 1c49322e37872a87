// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"sort"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/exp/maps"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// TState defines a struct for storing temporary state.
type TState struct {
	l           sync.RWMutex
	changedKeys map[string]maybe.Maybe[[]byte]
}

// New returns a new instance of TState. [changedSize] is an estimate of the
// number of keys that will be changed.
func New(changedSize int) *TState {
	return &TState{
		changedKeys: make(map[string]maybe.Maybe[[]byte], changedSize),
	}
}

func (ts *TState) getChangedValue(_ context.Context, key string) ([]byte, bool, bool) {
	ts.l.RLock()
	defer ts.l.RUnlock()

	if v, ok := ts.changedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	return nil, false, false
}

// PendingChanges returns the number of keys changed since [New].
func (ts *TState) PendingChanges() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return len(ts.changedKeys)
}

// WriteChanges writes every committed change in [TState] to [w] in key
// order. Callers pass a [database.Batch] so that the changes land
// atomically.
func (ts *TState) WriteChanges(
	ctx context.Context,
	w database.KeyValueWriterDeleter,
	t trace.Tracer, //nolint:interfacer
) error {
	_, span := t.Start(
		ctx, "TState.WriteChanges",
		oteltrace.WithAttributes(
			attribute.Int("items", ts.PendingChanges()),
		),
	)
	defer span.End()

	ts.l.RLock()
	defer ts.l.RUnlock()

	keys := maps.Keys(ts.changedKeys)
	sort.Strings(keys)
	for _, key := range keys {
		v := ts.changedKeys[key]
		if v.IsNothing() {
			if err := w.Delete([]byte(key)); err != nil {
				return err
			}
			continue
		}
		if err := w.Put([]byte(key), v.Value()); err != nil {
			return err
		}
	}
	return nil
}
