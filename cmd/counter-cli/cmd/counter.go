// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"crypto/rand"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/controller"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/utils"
)

func newCounterAddress() (codec.Address, error) {
	var id ids.ID
	if _, err := rand.Read(id[:]); err != nil {
		return codec.EmptyAddress, err
	}
	return storage.NewCounterAddress(id), nil
}

func singleAddress(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return ErrInvalidArgs
	}
	_, err := parseAddress(args[0])
	return err
}

var counterCmd = &cobra.Command{
	Use: "counter",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var initCounterCmd = &cobra.Command{
	Use: "init [--counter address] [--start count]",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		var (
			addr codec.Address
			err  error
		)
		if len(counterAddress) > 0 {
			addr, err = parseAddress(counterAddress)
		} else {
			addr, err = newCounterAddress()
		}
		if err != nil {
			return err
		}
		return withController(ctx, func(c *controller.Controller) error {
			result, err := submit(ctx, c, &actions.Initialize{Counter: addr, Start: start})
			if err != nil {
				return err
			}
			out := result.Output.(*actions.InitializeResult)
			utils.Outf(
				"{{green}}created counter:{{/}} %s {{yellow}}authority:{{/}} %s {{yellow}}count:{{/}} %d\n",
				addr,
				out.Authority,
				out.Count,
			)
			return nil
		})
	},
}

var incrementCounterCmd = &cobra.Command{
	Use:     "increment [address]",
	PreRunE: singleAddress,
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		addr, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		return withController(ctx, func(c *controller.Controller) error {
			result, err := submit(ctx, c, &actions.Increment{Counter: addr})
			if err != nil {
				return err
			}
			out := result.Output.(*actions.IncrementResult)
			utils.Outf("{{green}}count:{{/}} %d\n", out.Count)
			return nil
		})
	},
}

var getCounterCmd = &cobra.Command{
	Use:     "get [address]",
	PreRunE: singleAddress,
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		addr, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		return withController(ctx, func(c *controller.Controller) error {
			counter, err := c.Counter(ctx, addr)
			if err != nil {
				return err
			}
			utils.Outf(
				"{{yellow}}authority:{{/}} %s {{yellow}}count:{{/}} %d\n",
				counter.Authority,
				counter.Count,
			)
			return nil
		})
	},
}
