// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrMissingChainID          = errors.New("chain_id must not be empty")
	ErrCommitteeSizeMinTooLow  = errors.New("committee_size_min must be >= 1")
	ErrCommitteeSizeMaxTooLow  = errors.New("committee_size_max must be >= committee_size_min")
	ErrBlockTimeTooLow         = errors.New("block_time must be >= 1s")
	ErrPhaseTimeoutTooLow      = errors.New("phase timeouts must each be > 0")
	ErrMaxTxPerBlockTooLow     = errors.New("max_tx_per_block must be >= 1")
	ErrMaxBlockSizeTooLow      = errors.New("max_block_size must be >= 1")
	ErrClockDriftToleranceNeg  = errors.New("clock_drift_tolerance must be >= 0")
)
