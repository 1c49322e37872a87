// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/keys"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/utils"
)

// Transaction is a single request: one action, signed by one principal.
type Transaction struct {
	Base *Base `json:"base"`

	Action Action `json:"action"`
	Auth   Auth   `json:"auth"`

	digest []byte
	bytes  []byte
	size   int
	id     ids.ID
}

func NewTx(base *Base, action Action) *Transaction {
	return &Transaction{
		Base:   base,
		Action: action,
	}
}

// Digest is the message the auth signs: the base and the typed action.
func (t *Transaction) Digest() ([]byte, error) {
	if len(t.digest) > 0 {
		return t.digest, nil
	}
	size := t.Base.Size() + consts.ByteLen + t.Action.Size()
	p := codec.NewWriter(size, consts.NetworkSizeLimit)
	t.Base.Marshal(p)
	p.PackByte(t.Action.GetTypeID())
	t.Action.Marshal(p)
	return p.Bytes(), p.Err()
}

// Sign attaches an auth produced by [factory] and reloads the transaction
// from its bytes so that every cached field is populated.
func (t *Transaction) Sign(factory AuthFactory, parser Parser) (*Transaction, error) {
	msg, err := t.Digest()
	if err != nil {
		return nil, err
	}
	auth, err := factory.Sign(msg)
	if err != nil {
		return nil, err
	}
	t.Auth = auth

	size := len(msg) + consts.ByteLen + t.Auth.Size()
	p := codec.NewWriter(size, consts.NetworkSizeLimit)
	if err := t.Marshal(p); err != nil {
		return nil, err
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	p = codec.NewReader(p.Bytes(), consts.NetworkSizeLimit)
	return UnmarshalTx(p, parser)
}

func (t *Transaction) Bytes() []byte { return t.bytes }

func (t *Transaction) Size() int { return t.size }

func (t *Transaction) ID() ids.ID { return t.id }

// Sponsor is the [codec.Address] that pays for allocation.
func (t *Transaction) Sponsor() codec.Address { return t.Auth.Sponsor() }

// StateKeys is the union of the action's keys and the sponsor's fee keys.
func (t *Transaction) StateKeys(bh BalanceHandler) (state.Keys, error) {
	stateKeys := make(state.Keys)

	// Verify the formatting of state keys passed by the action
	for k, v := range t.Action.StateKeys(t.Auth.Actor()) {
		if !keys.Valid([]byte(k)) {
			return nil, ErrInvalidKeyValue
		}
		// [Add] will take the union of key permissions
		stateKeys.Add(k, v)
	}
	for k, v := range bh.SponsorStateKeys(t.Auth.Sponsor()) {
		if !keys.Valid([]byte(k)) {
			return nil, ErrInvalidKeyValue
		}
		stateKeys.Add(k, v)
	}
	return stateKeys, nil
}

func (t *Transaction) Marshal(p *codec.Packer) error {
	if len(t.bytes) > 0 {
		p.PackFixedBytes(t.bytes)
		return p.Err()
	}
	if t.Auth == nil {
		return ErrMissingAuth
	}
	t.Base.Marshal(p)
	p.PackByte(t.Action.GetTypeID())
	t.Action.Marshal(p)
	p.PackByte(t.Auth.GetTypeID())
	t.Auth.Marshal(p)
	return p.Err()
}

func UnmarshalTx(p *codec.Packer, parser Parser) (*Transaction, error) {
	start := p.Offset()
	base, err := UnmarshalBase(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal base", err)
	}
	action, err := parser.ActionCodec().Unmarshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal action", err)
	}
	digest := p.Offset()
	auth, err := parser.AuthCodec().Unmarshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal auth", err)
	}
	if actorType := auth.Actor().TypeID(); actorType != auth.GetTypeID() {
		return nil, fmt.Errorf("%w: actorType (%d) did not match authType (%d)", ErrInvalidActor, actorType, auth.GetTypeID())
	}
	if sponsorType := auth.Sponsor().TypeID(); sponsorType != auth.GetTypeID() {
		return nil, fmt.Errorf("%w: sponsorType (%d) did not match authType (%d)", ErrInvalidSponsor, sponsorType, auth.GetTypeID())
	}
	if err := p.Err(); err != nil {
		return nil, err
	}

	tx := &Transaction{
		Base:   base,
		Action: action,
		Auth:   auth,
	}
	codecBytes := p.Bytes()
	tx.digest = codecBytes[start:digest]
	tx.bytes = codecBytes[start:p.Offset()] // ensure errors handled before grabbing memory
	tx.size = len(tx.bytes)
	tx.id = utils.ToID(tx.bytes)
	return tx, nil
}

// ParseTx decodes a single transaction and rejects trailing bytes.
func ParseTx(b []byte, parser Parser) (*Transaction, error) {
	p := codec.NewReader(b, consts.NetworkSizeLimit)
	tx, err := UnmarshalTx(p, parser)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidObject, codec.ErrTrailingBytes)
	}
	return tx, nil
}
