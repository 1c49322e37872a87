// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/state"
)

type Parser interface {
	ActionCodec() *codec.TypeParser[Action]
	AuthCodec() *codec.TypeParser[Auth]
}

type Rules interface {
	// Should almost always be constant (unless there is a fork of
	// a live network)
	GetChainID() ids.ID

	// Invariants:
	// * Creating a new key involves first allocating and then writing
	// * Allocation is the only storage operation that is charged; a
	//   transaction that only overwrites existing keys is free
	GetUnitPrice() uint64
	GetStorageKeyAllocateUnits() uint64
	GetStorageValueAllocateUnits() uint64 // per chunk
}

// BalanceHandler pays for the storage a transaction allocates.
type BalanceHandler interface {
	// SponsorStateKeys is a full enumeration of all database keys that could
	// be touched during fee payment by [addr].
	//
	// All keys specified must be suffixed with the number of chunks that could
	// ever be read from that key (formatted as a big-endian uint16).
	SponsorStateKeys(addr codec.Address) state.Keys

	// CanDeduct returns an error if [amount] cannot be paid by [addr].
	CanDeduct(ctx context.Context, addr codec.Address, im state.Immutable, amount uint64) error

	// Deduct removes [amount] from [addr] during transaction execution to pay fees.
	Deduct(ctx context.Context, addr codec.Address, mu state.Mutable, amount uint64) error

	// AddBalance adds [amount] to [addr].
	AddBalance(ctx context.Context, addr codec.Address, mu state.Mutable, amount uint64) error

	// GetBalance returns the balance of [addr].
	// If [addr] does not exist, this should return 0 and no error.
	GetBalance(ctx context.Context, addr codec.Address, im state.Immutable) (uint64, error)
}

type Action interface {
	codec.Typed

	// StateKeys is a full enumeration of all database keys that could be
	// touched during execution, along with the permission each key needs.
	// Keys absent from the returned set cannot be read or written.
	//
	// All keys specified must be suffixed with the number of chunks that could
	// ever be read from that key (formatted as a big-endian uint16).
	StateKeys(actor codec.Address) state.Keys

	// Execute applies the transition to [mu]. If an error is returned, every
	// change made to [mu] is discarded.
	//
	// [actor] is the principal that produced the transaction's valid
	// authorization proof.
	Execute(
		ctx context.Context,
		r Rules,
		mu state.Mutable,
		actor codec.Address,
		txID ids.ID,
	) (codec.Typed, error)

	// Size is the number of bytes [Marshal] writes.
	Size() int
	Marshal(p *codec.Packer)
}

type Auth interface {
	codec.Typed

	// Verify checks that the auth proves the signer authorized [msg]. It
	// must not depend on state.
	Verify(ctx context.Context, msg []byte) error

	// Actor is the identity actions execute as.
	Actor() codec.Address

	// Sponsor is the identity that pays for allocation.
	Sponsor() codec.Address

	Size() int
	Marshal(p *codec.Packer)
}

type AuthFactory interface {
	// Sign is used by helpers, auth object should store internally to be
	// ready for marshaling.
	Sign(msg []byte) (Auth, error)
	Address() codec.Address
}
