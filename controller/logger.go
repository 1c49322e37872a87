// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"os"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ava-labs/countervm/config"
	"github.com/ava-labs/countervm/consts"
)

// newLogger writes colored logs to stderr and, if [config.Config.LogFile]
// is set, JSON logs to a rotated file.
func newLogger(cfg *config.Config) logging.Logger {
	cores := []logging.WrappedCore{
		logging.NewWrappedCore(cfg.LogLevel, os.Stderr, logging.Colors.ConsoleEncoder()),
	}
	if len(cfg.LogFile) > 0 {
		w := &lumberjack.Logger{
			Filename: cfg.LogFile,
			MaxSize:  cfg.LogFileMaxSize,
			Compress: true,
		}
		cores = append(cores, logging.NewWrappedCore(cfg.LogLevel, w, logging.JSON.FileEncoder()))
	}
	return logging.NewLogger(consts.Name, cores...)
}
