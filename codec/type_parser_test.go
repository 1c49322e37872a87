// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type Blah interface {
	Typed
	Bark() string
}

type Blah1 struct{}

func (*Blah1) Bark() string { return "blah1" }

func (*Blah1) GetTypeID() uint8 { return 0 }

type Blah2 struct{}

func (*Blah2) Bark() string { return "blah2" }

func (*Blah2) GetTypeID() uint8 { return 1 }

func TestTypeParser(t *testing.T) {
	tp := NewTypeParser[Blah]()

	t.Run("empty parser", func(t *testing.T) {
		require := require.New(t)
		f, ok := tp.LookupIndex(0)
		require.Nil(f)
		require.False(ok)
	})

	t.Run("populated parser", func(t *testing.T) {
		require := require.New(t)
		errBlah1 := errors.New("blah1")
		errBlah2 := errors.New("blah2")
		require.NoError(tp.Register(&Blah1{}, func(*Packer) (Blah, error) { return nil, errBlah1 }))
		require.NoError(tp.Register(&Blah2{}, func(*Packer) (Blah, error) { return nil, errBlah2 }))

		f, ok := tp.LookupIndex((&Blah1{}).GetTypeID())
		require.True(ok)
		res, err := f(nil)
		require.Nil(res)
		require.ErrorIs(err, errBlah1)

		_, err = tp.Unmarshal(NewReader([]byte{1}, 1))
		require.ErrorIs(err, errBlah2)
	})

	t.Run("duplicate item", func(t *testing.T) {
		err := tp.Register(&Blah1{}, nil)
		require.ErrorIs(t, err, ErrDuplicateItem)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := tp.Unmarshal(NewReader([]byte{7}, 1))
		require.ErrorIs(t, err, ErrUnknownType)
	})
}
