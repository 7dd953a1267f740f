// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package roundfsm drives the per-(height, round) phase transitions:
// ProposeWindow, Voting, Finalize, Committed. It is deliberately built
// as a single-threaded event processor — Submit is the only entry
// point an external scheduler calls, in the total order it chooses for
// Tick, InboundProposal and InboundVote events — mirroring the
// teacher's poll.Set/prism.set split between pure vote accounting and
// the logging/metrics wrapper driving it.
package roundfsm

import (
	"context"
	"sort"
	"time"

	"github.com/selfchain/poai-consensus/cerr"
	"github.com/selfchain/poai-consensus/config"
	"github.com/selfchain/poai-consensus/log"
	"github.com/selfchain/poai-consensus/metrics"
	"github.com/selfchain/poai-consensus/tally"
	"github.com/selfchain/poai-consensus/types"
	"github.com/selfchain/poai-consensus/validator"
	"go.uber.org/zap"
)

// Driver owns one RoundState and advances it strictly through Submit.
type Driver struct {
	cfg       config.Parameters
	validator *validator.Validator
	metrics   *metrics.Metrics
	log       log.Logger

	state RoundState

	committee          tally.Committee
	tally              *tally.Tally
	proposals          map[string]*types.BlockProposal // proposer_id -> best verified proposal seen
	proposalEfficiency map[string]uint64
	blocksByHash       map[types.Hash]types.Block

	phaseDeadline time.Time
}

// RoundState is an alias of types.RoundState, exported here so callers
// can snapshot progress without reaching into driver internals.
type RoundState = types.RoundState

// New builds a Driver starting at (height, round 0, ProposeWindow).
// committee is the validator set for this round; NextHeight takes a
// fresh committee so membership can rotate between heights, while a
// timeout-driven round advance keeps the current committee.
func New(cfg config.Parameters, v *validator.Validator, m *metrics.Metrics, logger log.Logger, height uint64, committee tally.Committee) *Driver {
	if logger == nil {
		logger = log.NewNoOp()
	}
	d := &Driver{cfg: cfg, validator: v, metrics: m, log: logger}
	d.resetRound(height, 0, committee, time.Now())
	return d
}

func (d *Driver) resetRound(height, round uint64, committee tally.Committee, now time.Time) {
	d.state = RoundState{Height: height, Round: round, Step: types.StepProposeWindow}
	d.committee = committee
	d.tally = tally.New(height, round, committee)
	d.proposals = make(map[string]*types.BlockProposal)
	d.proposalEfficiency = make(map[string]uint64)
	d.blocksByHash = make(map[types.Hash]types.Block)
	d.phaseDeadline = now.Add(d.cfg.TimeoutProposeWindow)
	if d.metrics != nil {
		d.metrics.RoundsStarted.Inc()
	}
}

// State returns a snapshot of the current round state.
func (d *Driver) State() RoundState {
	return d.state
}

// NextHeight must be called once the caller has consumed the
// BlockCommitted event for the current height; it resets the driver to
// (height+1, round 0, ProposeWindow) against a (possibly rotated)
// committee.
func (d *Driver) NextHeight(committee tally.Committee, now time.Time) {
	d.resetRound(d.state.Height+1, 0, committee, now)
}

// Submit processes one Event against the current state and returns the
// OutboundEvents it produced. Submit is not safe for concurrent use;
// the calling scheduler is expected to serialize events.
func (d *Driver) Submit(ctx context.Context, ev Event) ([]OutboundEvent, error) {
	switch e := ev.(type) {
	case Tick:
		return d.onTick(e.Now), nil
	case InboundProposal:
		return d.onProposal(ctx, e)
	case InboundVote:
		return d.onVote(e.Vote)
	default:
		return nil, cerr.New(cerr.KindInternal, "unknown event type submitted to round state machine")
	}
}

func (d *Driver) onTick(now time.Time) []OutboundEvent {
	if d.state.Step == types.StepCommitted {
		return nil
	}

	if out := d.tryFinalize(); out != nil {
		return out
	}

	if now.Before(d.phaseDeadline) {
		return nil
	}

	switch d.state.Step {
	case types.StepProposeWindow:
		d.state.Step = types.StepVoting
		d.phaseDeadline = now.Add(d.cfg.TimeoutVoting)
		return nil
	case types.StepVoting:
		d.state.Step = types.StepFinalize
		d.phaseDeadline = now.Add(d.cfg.TimeoutFinalize)
		return nil
	case types.StepFinalize:
		return d.advanceRound("quorum_not_reached", now)
	default:
		return nil
	}
}

func (d *Driver) onProposal(ctx context.Context, e InboundProposal) ([]OutboundEvent, error) {
	if d.state.Step == types.StepCommitted {
		return nil, cerr.New(cerr.KindWrongHeight, "round already committed; awaiting NextHeight")
	}

	now := uint64(time.Now().Unix())
	result, err := d.validator.Validate(ctx, e.Proposal, e.ProposerPublicKey, d.state.Height, d.state.Round, d.state.ReferenceEfficiency, now)
	if err != nil {
		d.log.Debug("dropping proposal", zap.String("proposer_id", e.Proposal.ProposerID), zap.Error(err))
		return nil, err
	}

	prior, seen := d.proposalEfficiency[e.Proposal.ProposerID]
	if !seen || result.VerifiedEfficiency > prior {
		d.proposals[e.Proposal.ProposerID] = e.Proposal
		d.proposalEfficiency[e.Proposal.ProposerID] = result.VerifiedEfficiency
		d.blocksByHash[e.Proposal.Block.Hash()] = e.Proposal.Block
	}
	if result.VerifiedEfficiency > d.state.ReferenceEfficiency {
		d.state.ReferenceEfficiency = result.VerifiedEfficiency
	}
	d.state.ProposalsReceived++

	return []OutboundEvent{ProposalAccepted{ProposerID: e.Proposal.ProposerID, EfficiencyScore: result.VerifiedEfficiency}}, nil
}

func (d *Driver) onVote(vote types.RankedVote) ([]OutboundEvent, error) {
	if d.state.Step == types.StepCommitted {
		return nil, cerr.New(cerr.KindWrongHeight, "round already committed; awaiting NextHeight")
	}
	if _, known := d.blocksByHash[vote.BlockHash]; !known && !vote.BlockHash.IsZero() {
		return nil, cerr.New(cerr.KindInvalidVote, "vote names a block hash with no corresponding accepted proposal")
	}

	_, _, err := d.tally.Add(vote)
	if err != nil {
		if d.metrics != nil {
			d.metrics.VotesRejected.WithLabelValues(string(errKind(err))).Inc()
		}
		if cerr.Is(err, cerr.KindEquivocation) {
			ev := d.tally.Equivocations()
			last := ev[len(ev)-1]
			if d.metrics != nil {
				d.metrics.Equivocations.Inc()
			}
			return []OutboundEvent{EquivocationDetected{ValidatorID: last.ValidatorID, Evidence: last}}, nil
		}
		return nil, err
	}

	d.state.VotesReceived++
	if d.metrics != nil {
		d.metrics.VotesReceived.WithLabelValues("ranked").Inc()
	}

	if out := d.tryFinalize(); out != nil {
		return out, nil
	}
	return nil, nil
}

// tryFinalize checks whether any block hash has reached quorum and, if
// so, commits the lexicographically smallest such hash (the tie-break
// rule for the degenerate case of two hashes reaching quorum under a
// misconfigured, under-sized committee).
func (d *Driver) tryFinalize() []OutboundEvent {
	if d.state.Step == types.StepCommitted {
		return nil
	}
	winners := d.tally.Winners()
	if len(winners) == 0 {
		return nil
	}
	sort.Slice(winners, func(i, j int) bool { return winners[i].Less(winners[j]) })
	winner := winners[0]

	block := d.blocksByHash[winner]
	block.Header.CommitSignatures = d.tally.Signatures(winner)

	d.state.Step = types.StepCommitted
	d.state.WinnerHash = winner
	d.state.HasWinner = true

	if d.metrics != nil {
		d.metrics.RoundsCommitted.Inc()
		d.metrics.LastEfficiency.Set(float64(block.Header.EfficiencyScore))
	}

	return []OutboundEvent{BlockCommitted{Block: block}}
}

func (d *Driver) advanceRound(reason string, now time.Time) []OutboundEvent {
	nextRound := d.state.Round + 1
	d.resetRound(d.state.Height, nextRound, d.committee, now)
	if d.metrics != nil {
		d.metrics.RoundsAdvanced.Inc()
	}
	return []OutboundEvent{RoundAdvanced{Height: d.state.Height, Round: nextRound, Reason: reason}}
}

func errKind(err error) cerr.Kind {
	if ce, ok := err.(*cerr.Error); ok {
		return ce.Kind
	}
	return cerr.KindInternal
}
