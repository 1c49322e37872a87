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

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var _ chain.Action = (*Increment)(nil)

// Increment adds one to an existing counter. Only the record's authority
// may increment it.
type Increment struct {
	Counter codec.Address `json:"counter"`
}

func (*Increment) GetTypeID() uint8 {
	return consts.IncrementID
}

func (i *Increment) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.CounterKey(i.Counter)): state.Write,
	}
}

func (i *Increment) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	c, exists, err := storage.GetCounter(ctx, mu, i.Counter)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, i.Counter)
	}
	if c.Authority != actor {
		return nil, fmt.Errorf("%w: authority=%s signer=%s", ErrAuthorityMismatch, c.Authority, actor)
	}
	count, err := smath.Add(c.Count, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCounterOverflow, err)
	}
	c.Count = count
	if err := storage.SetCounter(ctx, mu, i.Counter, c); err != nil {
		return nil, err
	}
	return &IncrementResult{
		Authority: c.Authority,
		Count:     c.Count,
	}, nil
}

func (*Increment) Size() int {
	return IncrementSize
}

func (i *Increment) Marshal(p *codec.Packer) {
	p.PackAddress(i.Counter)
}

func UnmarshalIncrement(p *codec.Packer) (chain.Action, error) {
	var i Increment
	p.UnpackAddress(&i.Counter)
	return &i, p.Err()
}

var _ codec.Typed = (*IncrementResult)(nil)

type IncrementResult struct {
	Authority codec.Address `json:"authority"`
	Count     uint64        `json:"count"`
}

func (*IncrementResult) GetTypeID() uint8 {
	return consts.IncrementID
}
