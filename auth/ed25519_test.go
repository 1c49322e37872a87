// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/crypto/ed25519"
)

func TestED25519SignVerify(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	factory := NewED25519Factory(priv)

	msg := []byte("increment")
	a, err := factory.Sign(msg)
	require.NoError(err)
	require.NoError(a.Verify(ctx, msg))
	require.ErrorIs(a.Verify(ctx, []byte("initialize")), ErrInvalidSignature)

	require.Equal(factory.Address(), a.Actor())
	require.Equal(a.Actor(), a.Sponsor())
	require.Equal(ED25519ID, a.Actor().TypeID())
}

func TestED25519WrongSigner(t *testing.T) {
	require := require.New(t)
	p1, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	p2, err := ed25519.GeneratePrivateKey()
	require.NoError(err)

	msg := []byte("msg")
	a := &ED25519{
		Signer:    p2.PublicKey(),
		Signature: ed25519.Sign(msg, p1),
	}
	require.ErrorIs(a.Verify(context.Background(), msg), ErrInvalidSignature)
	require.NotEqual(NewED25519Address(p1.PublicKey()), a.Actor())
}

func TestED25519Marshal(t *testing.T) {
	require := require.New(t)
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	a, err := NewED25519Factory(priv).Sign([]byte("msg"))
	require.NoError(err)

	p := codec.NewWriter(a.Size(), consts.NetworkSizeLimit)
	a.Marshal(p)
	require.NoError(p.Err())
	require.Len(p.Bytes(), ED25519Size)

	parsed, err := UnmarshalED25519(codec.NewReader(p.Bytes(), consts.NetworkSizeLimit))
	require.NoError(err)
	require.Equal(a.Actor(), parsed.Actor())
	require.NoError(parsed.Verify(context.Background(), []byte("msg")))

	_, err = UnmarshalED25519(codec.NewReader(p.Bytes()[:ED25519Size-1], consts.NetworkSizeLimit))
	require.ErrorIs(err, codec.ErrInsufficientLength)
}

func TestGetFactory(t *testing.T) {
	require := require.New(t)
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)

	pk := NewED25519PrivateKey(priv)
	factory, err := GetFactory(pk)
	require.NoError(err)
	require.Equal(pk.Address, factory.Address())

	_, err = GetFactory(&PrivateKey{Address: codec.CreateAddress(consts.CounterID, ids.GenerateTestID()), Bytes: pk.Bytes})
	require.ErrorIs(err, ErrInvalidKeyType)
	_, err = GetFactory(&PrivateKey{Address: pk.Address, Bytes: pk.Bytes[:1]})
	require.ErrorIs(err, ErrInvalidKeyType)
}
