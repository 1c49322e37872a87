// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
)

var _ chain.Action = (*Initialize)(nil)

// Initialize creates a counter record owned by the actor.
//
// Counter addresses are not bound to a key: the first principal to
// initialize an address owns it. Clients should derive a fresh address per
// counter with [storage.NewCounterAddress].
type Initialize struct {
	// Counter is the address of the record to create. It must not exist.
	Counter codec.Address `json:"counter"`

	// Start is the initial count.
	Start uint64 `json:"start"`
}

func (*Initialize) GetTypeID() uint8 {
	return consts.InitializeID
}

func (i *Initialize) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.CounterKey(i.Counter)): state.Allocate,
	}
}

func (i *Initialize) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	if i.Counter.TypeID() != consts.CounterID {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCounter, i.Counter)
	}
	_, exists, err := storage.GetCounter(ctx, mu, i.Counter)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrAllocationConflict, i.Counter)
	}
	c := &storage.Counter{
		Authority: actor,
		Count:     i.Start,
	}
	if err := storage.SetCounter(ctx, mu, i.Counter, c); err != nil {
		return nil, err
	}
	return &InitializeResult{
		Authority: c.Authority,
		Count:     c.Count,
	}, nil
}

func (*Initialize) Size() int {
	return InitializeSize
}

func (i *Initialize) Marshal(p *codec.Packer) {
	p.PackAddress(i.Counter)
	p.PackUint64(i.Start)
}

func UnmarshalInitialize(p *codec.Packer) (chain.Action, error) {
	var i Initialize
	p.UnpackAddress(&i.Counter)
	i.Start = p.UnpackUint64(false)
	return &i, p.Err()
}

var _ codec.Typed = (*InitializeResult)(nil)

type InitializeResult struct {
	Authority codec.Address `json:"authority"`
	Count     uint64        `json:"count"`
}

func (*InitializeResult) GetTypeID() uint8 {
	return consts.InitializeID // Common practice is to use the action ID
}
