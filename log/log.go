// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package log re-exports the logger type every other package in this
// module takes a dependency on, so callers configure logging once
// instead of importing github.com/luxfi/log directly everywhere.
package log

import (
	"github.com/luxfi/log"
	"go.uber.org/zap"
)

// Logger is the structured, leveled logger every consensus component
// logs through.
type Logger = log.Logger

// Field is a structured log field constructor, re-exported so callers
// don't need a separate zap import for simple call sites.
type Field = zap.Field

// NewNoOp returns a logger that discards everything, the default for
// unit tests.
func NewNoOp() Logger {
	return log.NewNoOpLogger()
}
