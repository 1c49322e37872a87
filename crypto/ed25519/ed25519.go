// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"crypto/ed25519"
	"fmt"

	"github.com/hdevalence/ed25519consensus"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/crypto"
)

type (
	PublicKey  [ed25519.PublicKeySize]byte
	PrivateKey [ed25519.PrivateKeySize]byte
	Signature  [ed25519.SignatureSize]byte
)

// Signatures are verified with the ZIP-215 rules
// (https://zips.z.cash/zip-0215), which give an explicit validity criteria
// and accept signatures from almost all ed25519 implementations.
const (
	PublicKeyLen  = ed25519.PublicKeySize
	PrivateKeyLen = ed25519.PrivateKeySize
	// PrivateKeySeedLen is defined because ed25519.PrivateKey
	// is formatted as privateKey = seed|publicKey. We use this const
	// to extract the publicKey below.
	PrivateKeySeedLen = ed25519.SeedSize
	SignatureLen      = ed25519.SignatureSize
)

var (
	EmptyPublicKey  = PublicKey{}
	EmptyPrivateKey = PrivateKey{}
	EmptySignature  = Signature{}
)

// GeneratePrivateKey returns a Ed25519 PrivateKey.
func GeneratePrivateKey() (PrivateKey, error) {
	_, k, err := ed25519.GenerateKey(nil)
	if err != nil {
		return EmptyPrivateKey, err
	}
	return PrivateKey(k), nil
}

// PublicKey returns a PublicKey associated with the Ed25519 PrivateKey p.
// The PublicKey is the last 32 bytes of p.
func (p PrivateKey) PublicKey() PublicKey {
	return PublicKey(p[PrivateKeySeedLen:])
}

// ToHex returns the hex encoding of p.
func (p PrivateKey) ToHex() string {
	return codec.ToHex(p[:])
}

// HexToKey parses a hex encoded private key and checks that its embedded
// public key matches its seed.
func HexToKey(key string) (PrivateKey, error) {
	b, err := codec.LoadHex(key, PrivateKeyLen)
	if err != nil {
		return EmptyPrivateKey, fmt.Errorf("%w: %w", crypto.ErrInvalidPrivateKey, err)
	}
	p := PrivateKey(b)
	expected := ed25519.NewKeyFromSeed(p[:PrivateKeySeedLen])
	if PublicKey(expected[PrivateKeySeedLen:]) != p.PublicKey() {
		return EmptyPrivateKey, crypto.ErrInvalidPrivateKey
	}
	return p, nil
}

// Sign returns a valid signature for msg using pk.
func Sign(msg []byte, pk PrivateKey) Signature {
	sig := ed25519.Sign(pk[:], msg)
	return Signature(sig)
}

// Verify returns whether s is a valid signature of msg by p.
func Verify(msg []byte, p PublicKey, s Signature) bool {
	return ed25519consensus.Verify(p[:], msg, s[:])
}
