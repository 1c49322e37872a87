// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/pebble"
	"github.com/ava-labs/countervm/trace"
)

const defaultDatabasePath = ".countervm"

type Config struct {
	// Logging
	LogLevel logging.Level `json:"logLevel"`
	// LogFile, if set, also receives JSON logs and is rotated at
	// LogFileMaxSize megabytes.
	LogFile        string `json:"logFile"`
	LogFileMaxSize int    `json:"logFileMaxSize"`

	// Storage
	DatabasePath string        `json:"databasePath"`
	Pebble       pebble.Config `json:"pebble"`

	// Observability
	Trace            trace.Config `json:"trace"`
	MetricsNamespace string       `json:"metricsNamespace"`
}

func New(b []byte) (*Config, error) {
	c := &Config{
		LogLevel:         logging.Info,
		LogFileMaxSize:   8,
		DatabasePath:     defaultDatabasePath,
		Pebble:           pebble.NewDefaultConfig(),
		Trace:            trace.NewDefaultConfig(consts.Name),
		MetricsNamespace: consts.Name,
	}

	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", string(b), err)
		}
	}

	return c, nil
}
