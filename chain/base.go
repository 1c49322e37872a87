// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
)

const BaseSize = consts.IDLen + consts.Uint64Len

type Base struct {
	// ChainID protects against replay attacks on different instances.
	ChainID ids.ID `json:"chainId"`

	// Nonce lets a principal sign the same action twice and still produce
	// distinct transactions.
	Nonce uint64 `json:"nonce"`
}

func (b *Base) Verify(r Rules) error {
	if b.ChainID != r.GetChainID() {
		return ErrInvalidChainID
	}
	return nil
}

func (*Base) Size() int {
	return BaseSize
}

func (b *Base) Marshal(p *codec.Packer) {
	p.PackID(b.ChainID)
	p.PackUint64(b.Nonce)
}

func UnmarshalBase(p *codec.Packer) (*Base, error) {
	var base Base
	p.UnpackID(true, &base.ChainID)
	base.Nonce = p.UnpackUint64(false)
	return &base, p.Err()
}
