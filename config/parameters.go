// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the consensus core's runtime configuration: the
// round timing budget, committee size bounds and per-block limits every
// other layer reads from.
package config

import "time"

// Parameters is the full configuration surface named in the spec.
type Parameters struct {
	ChainID string

	BlockTime             time.Duration
	TimeoutProposeWindow  time.Duration
	TimeoutVoting         time.Duration
	TimeoutFinalize       time.Duration

	CommitteeSizeMin int
	CommitteeSizeMax int

	MaxTxPerBlock       int
	MaxBlockSize        int // bytes
	ClockDriftTolerance time.Duration
}

// Default returns the spec's normative defaults: a 60s round split
// 50s/8s/2s across propose/vote/finalize, committees of 10-100, and a
// 1000-tx / 1MB block cap.
func Default(chainID string) Parameters {
	return Parameters{
		ChainID:              chainID,
		BlockTime:            60 * time.Second,
		TimeoutProposeWindow: 50 * time.Second,
		TimeoutVoting:        8 * time.Second,
		TimeoutFinalize:      2 * time.Second,
		CommitteeSizeMin:     10,
		CommitteeSizeMax:     100,
		MaxTxPerBlock:        1000,
		MaxBlockSize:         1_000_000,
		ClockDriftTolerance:  5 * time.Second,
	}
}

// Local returns a fast-round configuration suitable for single-process
// development and tests: the same shape as Default, scaled down to
// second-level timeouts instead of the production 60s round.
func Local(chainID string) Parameters {
	p := Default(chainID)
	p.BlockTime = 6 * time.Second
	p.TimeoutProposeWindow = 4 * time.Second
	p.TimeoutVoting = 1500 * time.Millisecond
	p.TimeoutFinalize = 500 * time.Millisecond
	p.CommitteeSizeMin = 1
	return p
}

// RoundTimeout is the sum of the three phase timeouts: the wall-clock
// budget for one full (height, round) cycle absent early transitions.
func (p Parameters) RoundTimeout() time.Duration {
	return p.TimeoutProposeWindow + p.TimeoutVoting + p.TimeoutFinalize
}
