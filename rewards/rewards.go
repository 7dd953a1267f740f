// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rewards distributes a committed round's block_reward across
// its participants. The core only ever depends on the Distributor
// interface; which distributor runs in production is a deployment
// decision the core has no opinion on.
package rewards

import "github.com/selfchain/poai-consensus/types"

// VoterRecord is one committee member's participation in a completed
// round.
type VoterRecord struct {
	ValidatorID     string
	VotedForWinner  bool
	VoteTimestamp   uint64
}

// CompletedRound is what the core hands a Distributor once a block
// commits.
type CompletedRound struct {
	RoundID          string
	WinningBuilderID string
	WinningBlockHash types.Hash
	Voters           []VoterRecord
	ColorValidatorID string
	BlockReward      uint64
}

// Distribution is a Distributor's output: how much of a round's
// BlockReward each participant receives.
type Distribution struct {
	RoundID string
	Amounts map[string]uint64
	Total   uint64
}

// Distributor turns a CompletedRound into a Distribution. The core
// treats every Distributor as opaque; it only ever calls Distribute.
type Distributor interface {
	Distribute(round CompletedRound) Distribution
}
