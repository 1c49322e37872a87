// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/controller"
	"github.com/ava-labs/countervm/utils"
)

var balanceCmd = &cobra.Command{
	Use: "balance [address]",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) > 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		var addr codec.Address
		if len(args) == 1 {
			var err error
			addr, err = parseAddress(args[0])
			if err != nil {
				return err
			}
		} else {
			priv, err := loadPrivateKey(keyFile)
			if err != nil {
				return err
			}
			addr = priv.Address
		}
		return withController(ctx, func(c *controller.Controller) error {
			bal, err := c.Balance(ctx, addr)
			if err != nil {
				return err
			}
			utils.Outf("{{yellow}}address:{{/}} %s {{yellow}}balance:{{/}} %d\n", addr, bal)
			return nil
		})
	},
}
