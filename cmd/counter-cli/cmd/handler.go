// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/controller"
	"github.com/ava-labs/countervm/utils"
)

// withController opens the local database for the duration of [f].
func withController(ctx context.Context, f func(*controller.Controller) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	genesisBytes, err := os.ReadFile(genesisFile)
	if err != nil {
		return err
	}
	c, err := controller.Open(ctx, cfg, genesisBytes)
	if err != nil {
		return err
	}
	return errors.Join(f(c), c.Close())
}

// submit signs [action] with the key in [keyFile] and applies it.
func submit(ctx context.Context, c *controller.Controller, action chain.Action) (*chain.Result, error) {
	priv, err := loadPrivateKey(keyFile)
	if err != nil {
		return nil, err
	}
	factory, err := auth.GetFactory(priv)
	if err != nil {
		return nil, err
	}
	base := &chain.Base{
		ChainID: c.ChainID(),
		Nonce:   uint64(time.Now().UnixNano()),
	}
	tx, err := chain.NewTx(base, action).Sign(factory, c.Parser())
	if err != nil {
		return nil, err
	}
	result, err := c.Submit(ctx, tx)
	if err != nil {
		return nil, err
	}
	utils.Outf("{{green}}txID:{{/}} %s {{yellow}}fee:{{/}} %d\n", result.TxID, result.Fee)
	return result, nil
}
