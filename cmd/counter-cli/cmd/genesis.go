// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/utils"
)

var genesisCmd = &cobra.Command{
	Use: "genesis",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var genGenesisCmd = &cobra.Command{
	Use:   "generate [custom allocations file] [options]",
	Short: "Creates a new genesis in the default location",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		g := genesis.Default()
		if unitPrice > 0 {
			g.UnitPrice = unitPrice
		}
		if storageKeyAllocateUnits > 0 {
			g.StorageKeyAllocateUnits = storageKeyAllocateUnits
		}
		if storageValueAllocateUnits > 0 {
			g.StorageValueAllocateUnits = storageValueAllocateUnits
		}

		a, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var allocs []*genesis.CustomAllocation
		if err := json.Unmarshal(a, &allocs); err != nil {
			return err
		}
		g.CustomAllocation = allocs

		b, err := json.Marshal(g)
		if err != nil {
			return err
		}
		if err := os.WriteFile(genesisFile, b, fsModeWrite); err != nil {
			return err
		}
		utils.Outf("{{green}}created genesis and saved to %s{{/}}\n", genesisFile)
		utils.Outf("{{yellow}}chainID:{{/}} %s\n", genesis.ChainID(b))
		return nil
	},
}
