// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/utils"
)

func checkKeyType(k string) error {
	switch k {
	case auth.ED25519Key:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidKeyType, k)
	}
}

func generatePrivateKey(k string) (*auth.PrivateKey, error) {
	switch k {
	case auth.ED25519Key:
		p, err := ed25519.GeneratePrivateKey()
		if err != nil {
			return nil, err
		}
		return auth.NewED25519PrivateKey(p), nil
	default:
		return nil, ErrInvalidKeyType
	}
}

// loadPrivateKey reads a raw key written by [storeKey].
func loadPrivateKey(path string) (*auth.PrivateKey, error) {
	p, err := utils.LoadBytes(path, ed25519.PrivateKeyLen)
	if err != nil {
		return nil, err
	}
	return auth.NewED25519PrivateKey(ed25519.PrivateKey(p)), nil
}

// importPrivateKey reads a hex encoded key.
func importPrivateKey(k string, path string) (*auth.PrivateKey, error) {
	switch k {
	case auth.ED25519Key:
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		p, err := ed25519.HexToKey(strings.TrimSpace(string(b)))
		if err != nil {
			return nil, err
		}
		return auth.NewED25519PrivateKey(p), nil
	default:
		return nil, ErrInvalidKeyType
	}
}

func storeKey(priv *auth.PrivateKey) error {
	if _, err := os.Stat(keyFile); err == nil {
		return fmt.Errorf("%w: %s already exists", os.ErrExist, keyFile)
	}
	return utils.SaveBytes(keyFile, priv.Bytes)
}

var keyCmd = &cobra.Command{
	Use: "key",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var genKeyCmd = &cobra.Command{
	Use: "generate [ed25519]",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return ErrInvalidArgs
		}
		return checkKeyType(args[0])
	},
	RunE: func(_ *cobra.Command, args []string) error {
		priv, err := generatePrivateKey(args[0])
		if err != nil {
			return err
		}
		if err := storeKey(priv); err != nil {
			return err
		}
		utils.Outf(
			"{{green}}created address:{{/}} %s\n",
			priv.Address,
		)
		return nil
	},
}

var importKeyCmd = &cobra.Command{
	Use: "import [type] [path]",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 2 {
			return ErrInvalidArgs
		}
		return checkKeyType(args[0])
	},
	RunE: func(_ *cobra.Command, args []string) error {
		priv, err := importPrivateKey(args[0], args[1])
		if err != nil {
			return err
		}
		if err := storeKey(priv); err != nil {
			return err
		}
		utils.Outf(
			"{{green}}imported address:{{/}} %s\n",
			priv.Address,
		)
		return nil
	},
}

var addressKeyCmd = &cobra.Command{
	Use: "address",
	RunE: func(*cobra.Command, []string) error {
		priv, err := loadPrivateKey(keyFile)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}address:{{/}} %s\n", priv.Address)
		return nil
	},
}

func parseAddress(s string) (codec.Address, error) {
	return codec.StringToAddress(s)
}
