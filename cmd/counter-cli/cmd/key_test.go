// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/crypto/ed25519"
)

func TestStoreLoadKey(t *testing.T) {
	require := require.New(t)
	keyFile = filepath.Join(t.TempDir(), "key")

	priv, err := generatePrivateKey(auth.ED25519Key)
	require.NoError(err)
	require.NoError(storeKey(priv))
	// Keys are never overwritten.
	require.ErrorIs(storeKey(priv), os.ErrExist)

	loaded, err := loadPrivateKey(keyFile)
	require.NoError(err)
	require.Equal(priv, loaded)
}

func TestImportKey(t *testing.T) {
	require := require.New(t)
	p, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	path := filepath.Join(t.TempDir(), "hex")
	require.NoError(os.WriteFile(path, []byte(p.ToHex()+"\n"), fsModeWrite))

	priv, err := importPrivateKey(auth.ED25519Key, path)
	require.NoError(err)
	require.Equal(auth.NewED25519Address(p.PublicKey()), priv.Address)

	_, err = importPrivateKey("rsa", path)
	require.ErrorIs(err, ErrInvalidKeyType)
	require.ErrorIs(checkKeyType("rsa"), ErrInvalidKeyType)
}

func TestNewCounterAddress(t *testing.T) {
	require := require.New(t)
	a, err := newCounterAddress()
	require.NoError(err)
	b, err := newCounterAddress()
	require.NoError(err)
	require.NotEqual(a, b)
	require.Equal(consts.CounterID, a.TypeID())

	parsed, err := parseAddress(a.String())
	require.NoError(err)
	require.Equal(a, parsed)
}
