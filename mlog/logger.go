/*
 * Copyright (C) 2020-2022, IrineSistiana
 *
 * This file is part of slist.
 *
 * slist is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * slist is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package mlog

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogConfig struct {
	// Level, See also zapcore.ParseLevel.
	Level string `yaml:"level"`

	// File that logger will be writen into.
	// Default is stderr.
	File string `yaml:"file"`

	// Production enables json output.
	Production bool `yaml:"production"`
}

var (
	stderr = zapcore.Lock(os.Stderr)

	lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	l   = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), stderr, lvl))
	s   = l.Sugar()

	nop = zap.NewNop()

	// closeFile closes the log file of the current global logger, if any.
	closeFile func()
)

// NewLogger builds a logger from lc. The returned logger also
// replaces the one returned by L and S.
func NewLogger(lc *LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	var out zapcore.WriteSyncer = stderr
	var closer func()
	if len(lc.File) > 0 {
		f, c, err := zap.Open(lc.File)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file, %w", err)
		}
		out, closer = zapcore.Lock(f), c
	}

	var enc zapcore.Encoder
	if lc.Production {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	lvl.SetLevel(level)
	lg := zap.New(zapcore.NewCore(enc, out, lvl))
	_ = l.Sync()
	if closeFile != nil {
		closeFile()
	}
	l, s, closeFile = lg, lg.Sugar(), closer
	return lg, nil
}

// L is a global logger.
func L() *zap.Logger {
	return l
}

// SetLevel sets the level of the global logger.
func SetLevel(level zapcore.Level) {
	lvl.SetLevel(level)
}

// S is a global sugared logger.
func S() *zap.SugaredLogger {
	return s
}

// Nop is a logger that never writes out logs.
func Nop() *zap.Logger {
	return nop
}
