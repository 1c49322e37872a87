// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/consts"
)

func TestNewWriter(t *testing.T) {
	require := require.New(t)
	wr := NewWriter(2, 2)
	require.Empty(wr.Bytes())
	wr.PackByte(1)
	wr.PackByte(2)
	require.NoError(wr.Err())
	// Exceeds [limit]
	wr.PackByte(3)
	require.Error(wr.Err())
}

func TestPackerUint64(t *testing.T) {
	require := require.New(t)
	wp := NewWriter(consts.Uint64Len, consts.Uint64Len)
	wp.PackUint64(42)
	require.Len(wp.Bytes(), consts.Uint64Len)

	rp := NewReader(wp.Bytes(), consts.Uint64Len)
	require.Equal(uint64(42), rp.UnpackUint64(true))
	require.NoError(rp.Err())
	require.True(rp.Empty())
}

func TestPackerRequiredUint64(t *testing.T) {
	require := require.New(t)
	wp := NewWriter(consts.Uint64Len, consts.Uint64Len)
	wp.PackUint64(0)

	rp := NewReader(wp.Bytes(), consts.Uint64Len)
	require.Zero(rp.UnpackUint64(false))
	require.NoError(rp.Err())

	rp = NewReader(wp.Bytes(), consts.Uint64Len)
	require.Zero(rp.UnpackUint64(true))
	require.ErrorIs(rp.Err(), ErrFieldNotPopulated)
}

func TestPackerID(t *testing.T) {
	require := require.New(t)
	id := ids.GenerateTestID()
	wp := NewWriter(consts.IDLen, consts.IDLen)
	wp.PackID(id)

	rp := NewReader(wp.Bytes(), consts.IDLen)
	var unpacked ids.ID
	rp.UnpackID(true, &unpacked)
	require.NoError(rp.Err())
	require.Equal(id, unpacked)

	wp = NewWriter(consts.IDLen, consts.IDLen)
	wp.PackID(ids.Empty)
	rp = NewReader(wp.Bytes(), consts.IDLen)
	rp.UnpackID(true, &unpacked)
	require.ErrorIs(rp.Err(), ErrFieldNotPopulated)
}

func TestPackerAddress(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(1, ids.GenerateTestID())
	wp := NewWriter(AddressLen, AddressLen)
	wp.PackAddress(addr)
	require.Len(wp.Bytes(), AddressLen)

	rp := NewReader(wp.Bytes(), AddressLen)
	var unpacked Address
	rp.UnpackAddress(&unpacked)
	require.NoError(rp.Err())
	require.Equal(addr, unpacked)

	wp = NewWriter(AddressLen, AddressLen)
	wp.PackAddress(EmptyAddress)
	rp = NewReader(wp.Bytes(), AddressLen)
	rp.UnpackAddress(&unpacked)
	require.ErrorIs(rp.Err(), ErrFieldNotPopulated)
}

func TestPackerBytes(t *testing.T) {
	require := require.New(t)
	msg := []byte("hello")
	wp := NewWriter(consts.IntLen+len(msg), consts.MaxInt)
	wp.PackBytes(msg)

	rp := NewReader(wp.Bytes(), consts.MaxInt)
	var unpacked []byte
	rp.UnpackBytes(len(msg), true, &unpacked)
	require.NoError(rp.Err())
	require.Equal(msg, unpacked)

	// Over limit
	rp = NewReader(wp.Bytes(), consts.MaxInt)
	rp.UnpackBytes(len(msg)-1, true, &unpacked)
	require.Error(rp.Err())
}

func TestPackerInsufficientLength(t *testing.T) {
	require := require.New(t)
	rp := NewReader([]byte{1, 2, 3}, consts.MaxInt)
	rp.UnpackUint64(false)
	require.ErrorIs(rp.Err(), ErrInsufficientLength)
}

func TestPackerFixedBytes(t *testing.T) {
	require := require.New(t)
	wp := NewWriter(4, consts.MaxInt)
	wp.PackFixedBytes([]byte{1, 2, 3, 4})
	require.NoError(wp.Err())

	rp := NewReader(wp.Bytes(), consts.MaxInt)
	var b []byte
	rp.UnpackFixedBytes(3, &b)
	require.NoError(rp.Err())
	require.Equal([]byte{1, 2, 3}, b)
	rp.UnpackFixedBytes(2, &b)
	require.ErrorIs(rp.Err(), ErrInsufficientLength)
}
