// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestAddress(t *testing.T) {
	require := require.New(t)
	typeID := byte(0)
	addrID := ids.GenerateTestID()

	addr := CreateAddress(typeID, addrID)
	require.Equal(typeID, addr.TypeID())
	require.Equal(addrID[:], addr[1:])

	addrStr, err := addr.MarshalText()
	require.NoError(err)

	var parsedAddr Address
	require.NoError(parsedAddr.UnmarshalText(addrStr))
	require.Equal(addr, parsedAddr)
}

func TestAddressJSON(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(1, ids.GenerateTestID())

	addrJSONBytes, err := json.Marshal(addr)
	require.NoError(err)

	var parsedAddr Address
	require.NoError(json.Unmarshal(addrJSONBytes, &parsedAddr))
	require.Equal(addr, parsedAddr)
}

func TestAddressString(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(2, ids.GenerateTestID())

	originalAddr, err := StringToAddress(addr.String())
	require.NoError(err)
	require.Equal(addr, originalAddr)

	// no prefix
	originalAddr, err = StringToAddress(addr.String()[2:])
	require.NoError(err)
	require.Equal(addr, originalAddr)
}

func TestStringToAddressInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "short", input: "0x0102"},
		{name: "long", input: "0x" + ToHex(make([]byte, AddressLen+1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := StringToAddress(tt.input)
			require.ErrorIs(t, err, ErrInvalidSize)
		})
	}

	_, err := StringToAddress("0xzz")
	require.Error(t, err)
}
