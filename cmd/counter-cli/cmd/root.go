// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"os"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/config"
	"github.com/ava-labs/countervm/utils"
)

const (
	fsModeWrite    = 0o600
	defaultKey     = ".counter-key"
	defaultGenesis = "genesis.json"
)

var (
	configFile  string
	dbPath      string
	genesisFile string
	keyFile     string
	logLevel    string

	unitPrice                 uint64
	storageKeyAllocateUnits   uint64
	storageValueAllocateUnits uint64

	counterAddress string
	start          uint64

	rootCmd = &cobra.Command{
		Use:        "counter-cli",
		Short:      "Counter CLI",
		SuggestFor: []string{"counter-cli", "countercli"},
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		genesisCmd,
		keyCmd,
		counterCmd,
		balanceCmd,
	)
	rootCmd.PersistentFlags().StringVar(
		&configFile,
		"config",
		"",
		"path to a JSON config file",
	)
	rootCmd.PersistentFlags().StringVar(
		&dbPath,
		"database",
		"",
		"path to database (will create it missing, overrides config)",
	)
	rootCmd.PersistentFlags().StringVar(
		&genesisFile,
		"genesis-file",
		defaultGenesis,
		"genesis file path",
	)
	rootCmd.PersistentFlags().StringVar(
		&keyFile,
		"key-file",
		defaultKey,
		"private key file path",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		"",
		"log level (overrides config)",
	)
	rootCmd.SilenceErrors = true

	// genesis
	genGenesisCmd.PersistentFlags().Uint64Var(
		&unitPrice,
		"unit-price",
		0,
		"price of a storage unit",
	)
	genGenesisCmd.PersistentFlags().Uint64Var(
		&storageKeyAllocateUnits,
		"storage-key-allocate-units",
		0,
		"units charged per allocated key",
	)
	genGenesisCmd.PersistentFlags().Uint64Var(
		&storageValueAllocateUnits,
		"storage-value-allocate-units",
		0,
		"units charged per allocated value chunk",
	)
	genesisCmd.AddCommand(
		genGenesisCmd,
	)

	// key
	keyCmd.AddCommand(
		genKeyCmd,
		importKeyCmd,
		addressKeyCmd,
	)

	// counter
	initCounterCmd.PersistentFlags().StringVar(
		&counterAddress,
		"counter",
		"",
		"address of the counter to create (random if empty)",
	)
	initCounterCmd.PersistentFlags().Uint64Var(
		&start,
		"start",
		0,
		"initial count",
	)
	counterCmd.AddCommand(
		initCounterCmd,
		incrementCounterCmd,
		getCounterCmd,
	)
}

func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	var b []byte
	if len(configFile) > 0 {
		var err error
		b, err = os.ReadFile(configFile)
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.New(b)
	if err != nil {
		return nil, err
	}
	if len(dbPath) > 0 {
		cfg.DatabasePath = dbPath
	}
	if len(logLevel) > 0 {
		cfg.LogLevel, err = logging.ToLevel(logLevel)
		if err != nil {
			return nil, err
		}
	}
	utils.Outf("{{yellow}}database:{{/}} %s\n", cfg.DatabasePath)
	return cfg, nil
}
