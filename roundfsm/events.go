// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package roundfsm

import (
	"crypto/ed25519"
	"time"

	"github.com/selfchain/poai-consensus/tally"
	"github.com/selfchain/poai-consensus/types"
)

// Event is one of the three inbound event kinds the driver accepts, in
// the total order an external scheduler delivers them.
type Event interface{ isEvent() }

// Tick carries the current time; it drives every timeout check.
type Tick struct {
	Now time.Time
}

func (Tick) isEvent() {}

// InboundProposal is a received BlockProposal plus the public key
// needed to verify its signature.
type InboundProposal struct {
	Proposal          *types.BlockProposal
	ProposerPublicKey ed25519.PublicKey
}

func (InboundProposal) isEvent() {}

// InboundVote is a received RankedVote.
type InboundVote struct {
	Vote types.RankedVote
}

func (InboundVote) isEvent() {}

// OutboundEvent is one of the events the driver publishes to
// subscribers as a side effect of processing an Event.
type OutboundEvent interface{ isOutbound() }

// ProposalAccepted fires once a proposal passes every validator check.
type ProposalAccepted struct {
	ProposerID      string
	EfficiencyScore uint64
}

func (ProposalAccepted) isOutbound() {}

// RoundAdvanced fires when a round fails to reach quorum in time.
type RoundAdvanced struct {
	Height uint64
	Round  uint64
	Reason string
}

func (RoundAdvanced) isOutbound() {}

// BlockCommitted fires once a block hash reaches quorum and its commit
// signatures have been attached.
type BlockCommitted struct {
	Block types.Block
}

func (BlockCommitted) isOutbound() {}

// EquivocationDetected fires when a committee member signs two
// conflicting RankedVotes within one (height, round).
type EquivocationDetected struct {
	ValidatorID string
	Evidence    tally.Equivocation
}

func (EquivocationDetected) isOutbound() {}
