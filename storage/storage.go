// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

type ReadState func(context.Context, [][]byte) ([][]byte, []error)

// State
// 0x0/ (balance)
//   -> [owner] => balance
// 0x1/ (counter)
//   -> [counter] => discriminator|authority|count
// 0x2/ (genesis)
//   -> chainID

const (
	balancePrefix byte = 0x0
	counterPrefix byte = 0x1
	genesisPrefix byte = 0x2
)

const (
	BalanceChunks uint16 = 1
	CounterChunks uint16 = 1
	GenesisChunks uint16 = 1
)

// NewCounterAddress derives the address of a counter record from [id]. The
// caller picks [id]; any fresh value (such as a random or transaction id)
// yields a distinct record.
func NewCounterAddress(id ids.ID) codec.Address {
	return codec.CreateAddress(consts.CounterID, id)
}

// [balancePrefix] + [address]
func BalanceKey(addr codec.Address) []byte {
	k := make([]byte, consts.ByteLen+codec.AddressLen+consts.Uint16Len)
	k[0] = balancePrefix
	copy(k[1:], addr[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], BalanceChunks)
	return k
}

// [counterPrefix] + [address]
func CounterKey(addr codec.Address) []byte {
	k := make([]byte, consts.ByteLen+codec.AddressLen+consts.Uint16Len)
	k[0] = counterPrefix
	copy(k[1:], addr[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], CounterChunks)
	return k
}

// [genesisPrefix]
func GenesisKey() []byte {
	k := make([]byte, consts.ByteLen+consts.Uint16Len)
	k[0] = genesisPrefix
	binary.BigEndian.PutUint16(k[1:], GenesisChunks)
	return k
}

// GetCounter loads the record at [addr]. If no record exists, it returns
// false and no error.
func GetCounter(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) (*Counter, bool, error) {
	return innerGetCounter(im.GetValue(ctx, CounterKey(addr)))
}

// Used to serve queries outside of transaction execution
func GetCounterFromState(
	ctx context.Context,
	f ReadState,
	addr codec.Address,
) (*Counter, bool, error) {
	values, errs := f(ctx, [][]byte{CounterKey(addr)})
	return innerGetCounter(values[0], errs[0])
}

func innerGetCounter(v []byte, err error) (*Counter, bool, error) {
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	c, err := UnmarshalCounter(v)
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// SetCounter writes [c] at [addr]. Writing an absent record allocates it.
func SetCounter(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	c *Counter,
) error {
	v, err := c.Marshal()
	if err != nil {
		return err
	}
	return mu.Insert(ctx, CounterKey(addr), v)
}

// If the balance key does not exist, the balance is 0
func GetBalance(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) (uint64, error) {
	_, bal, _, err := getBalance(ctx, im, addr)
	return bal, err
}

func getBalance(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) ([]byte, uint64, bool, error) {
	k := BalanceKey(addr)
	bal, exists, err := innerGetBalance(im.GetValue(ctx, k))
	return k, bal, exists, err
}

// Used to serve queries outside of transaction execution
func GetBalanceFromState(
	ctx context.Context,
	f ReadState,
	addr codec.Address,
) (uint64, error) {
	values, errs := f(ctx, [][]byte{BalanceKey(addr)})
	bal, _, err := innerGetBalance(values[0], errs[0])
	return bal, err
}

func innerGetBalance(
	v []byte,
	err error,
) (uint64, bool, error) {
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	val, err := database.ParseUInt64(v)
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

func SetBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	balance uint64,
) error {
	return setBalance(ctx, mu, BalanceKey(addr), balance)
}

func setBalance(
	ctx context.Context,
	mu state.Mutable,
	key []byte,
	balance uint64,
) error {
	return mu.Insert(ctx, key, binary.BigEndian.AppendUint64(nil, balance))
}

func AddBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	amount uint64,
) (uint64, error) {
	key, bal, _, err := getBalance(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Add(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not add balance (bal=%d, addr=%v, amount=%d)",
			ErrInvalidBalance,
			bal,
			addr,
			amount,
		)
	}
	return nbal, setBalance(ctx, mu, key, nbal)
}

func SubBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	amount uint64,
) (uint64, error) {
	key, bal, ok, err := getBalance(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: no balance (addr=%v)", ErrInvalidBalance, addr)
	}
	nbal, err := smath.Sub(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not subtract balance (bal=%d, addr=%v, amount=%d)",
			ErrInvalidBalance,
			bal,
			addr,
			amount,
		)
	}
	if nbal == 0 {
		// If there is no balance left, we should delete the record instead of
		// setting it to 0.
		return 0, mu.Remove(ctx, key)
	}
	return nbal, setBalance(ctx, mu, key, nbal)
}
