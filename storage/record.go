// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"bytes"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/hashing"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
)

const (
	DiscriminatorLen = 8

	// CounterSize is the fixed width of a stored [Counter]. The record is
	// reserved at this size when allocated and is never resized.
	CounterSize = DiscriminatorLen + codec.AddressLen + consts.Uint64Len
)

// CounterDiscriminator tags every stored [Counter] so that values of another
// type (or another version of this one) are never decoded as a counter.
var CounterDiscriminator = hashing.ComputeHash256([]byte("account:Counter"))[:DiscriminatorLen]

// Counter is the persisted record. [Authority] is set once when the record
// is created.
type Counter struct {
	Authority codec.Address `json:"authority"`
	Count     uint64        `json:"count"`
}

func (c *Counter) Marshal() ([]byte, error) {
	p := codec.NewWriter(CounterSize, CounterSize)
	p.PackFixedBytes(CounterDiscriminator)
	p.PackAddress(c.Authority)
	p.PackUint64(c.Count)
	if err := p.Err(); err != nil {
		return nil, err
	}
	return p.Bytes(), nil
}

func UnmarshalCounter(b []byte) (*Counter, error) {
	if len(b) != CounterSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidRecord, CounterSize, len(b))
	}
	p := codec.NewReader(b, CounterSize)
	var discriminator []byte
	p.UnpackFixedBytes(DiscriminatorLen, &discriminator)
	if !bytes.Equal(discriminator, CounterDiscriminator) {
		return nil, fmt.Errorf("%w: %x", ErrInvalidDiscriminator, discriminator)
	}
	var c Counter
	p.UnpackAddress(&c.Authority)
	c.Count = p.UnpackUint64(false)
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return &c, nil
}
