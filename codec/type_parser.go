// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "fmt"

// Typed is implemented by every object that is serialized behind a one
// byte type prefix.
type Typed interface {
	GetTypeID() uint8
}

type decoder[T any] func(*Packer) (T, error)

// TypeParser maps explicitly assigned type IDs to their decoders.
type TypeParser[T Typed] struct {
	indexToDecoder map[uint8]decoder[T]
}

func NewTypeParser[T Typed]() *TypeParser[T] {
	return &TypeParser[T]{
		indexToDecoder: map[uint8]decoder[T]{},
	}
}

// Register adds [f] as the decoder for [instance]'s type ID. Registering the
// same ID twice is an error.
func (p *TypeParser[T]) Register(instance Typed, f func(*Packer) (T, error)) error {
	typeID := instance.GetTypeID()
	if _, ok := p.indexToDecoder[typeID]; ok {
		return fmt.Errorf("%w: type %d", ErrDuplicateItem, typeID)
	}
	p.indexToDecoder[typeID] = f
	return nil
}

func (p *TypeParser[T]) LookupIndex(index uint8) (func(*Packer) (T, error), bool) {
	f, ok := p.indexToDecoder[index]
	return f, ok
}

// Unmarshal reads a type byte from [packer] and decodes the remainder with
// the registered decoder.
func (p *TypeParser[T]) Unmarshal(packer *Packer) (T, error) {
	var empty T
	typeID := packer.UnpackByte()
	if err := packer.Err(); err != nil {
		return empty, err
	}
	f, ok := p.LookupIndex(typeID)
	if !ok {
		return empty, fmt.Errorf("%w: type %d", ErrUnknownType, typeID)
	}
	return f(packer)
}
