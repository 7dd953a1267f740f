// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tally implements the ranked-vote tallier: it accumulates
// RankedVotes for the active (height, round), rejects invalid or
// out-of-committee votes, records equivocation evidence, and reports
// once some block hash has reached quorum.
package tally

import (
	"github.com/selfchain/poai-consensus/cerr"
	"github.com/selfchain/poai-consensus/types"
)

// Equivocation is the durable evidence produced when a validator signs
// two RankedVotes for the same (height, round) but different block
// hashes.
type Equivocation struct {
	ValidatorID string
	Height      uint64
	Round       uint64
	First       types.RankedVote
	Second      types.RankedVote
}

// Committee is the set of validators whose votes a Tally will accept,
// keyed by validator id.
type Committee map[string]types.ValidatorInfo

// Tally accumulates RankedVotes for a single (height, round). A new
// Tally must be constructed for every round; it does not reset itself.
type Tally struct {
	height    uint64
	round     uint64
	committee Committee
	quorum    int

	votesByHash map[types.Hash]map[string]types.RankedVote
	voted       map[string]types.RankedVote // validator_id -> their one accepted vote this round
	equivocations []Equivocation
}

// New builds a Tally for (height, round) against committee, with quorum
// computed from the committee's eligible size.
func New(height, round uint64, committee Committee) *Tally {
	n := 0
	for _, v := range committee {
		if v.IsEligible {
			n++
		}
	}
	return &Tally{
		height:      height,
		round:       round,
		committee:   committee,
		quorum:      types.Quorum(n),
		votesByHash: make(map[types.Hash]map[string]types.RankedVote),
		voted:       make(map[string]types.RankedVote),
	}
}

// Quorum returns the vote-set size required to win this round.
func (t *Tally) Quorum() int {
	return t.quorum
}

// Add validates and records vote. It returns the winning block hash and
// true once that hash's vote set reaches quorum; subsequent calls after
// a win continue to accept votes (a later hash could theoretically also
// reach quorum under a misconfigured committee — callers compare
// lexicographically on a tie per the round state machine's rule).
func (t *Tally) Add(vote types.RankedVote) (winner types.Hash, won bool, err error) {
	if vote.Height != t.height || vote.Round != t.round {
		return types.Hash{}, false, cerr.New(cerr.KindWrongRound, "vote is for a different (height, round)")
	}

	info, inCommittee := t.committee[vote.ValidatorID]
	if !inCommittee || !info.IsEligible {
		return types.Hash{}, false, cerr.New(cerr.KindNotInCommittee, "voting validator is not in the active committee")
	}

	if !ed25519Verify(vote, info) {
		return types.Hash{}, false, cerr.New(cerr.KindInvalidSignature, "ranked vote signature does not verify")
	}

	if prior, ok := t.voted[vote.ValidatorID]; ok {
		if prior.BlockHash != vote.BlockHash {
			t.equivocations = append(t.equivocations, Equivocation{
				ValidatorID: vote.ValidatorID,
				Height:      t.height,
				Round:       t.round,
				First:       prior,
				Second:      vote,
			})
			return types.Hash{}, false, cerr.New(cerr.KindEquivocation, "validator already voted for a different block hash this round")
		}
		return types.Hash{}, false, cerr.New(cerr.KindDuplicateVote, "validator already cast this vote")
	}

	t.voted[vote.ValidatorID] = vote
	set, ok := t.votesByHash[vote.BlockHash]
	if !ok {
		set = make(map[string]types.RankedVote)
		t.votesByHash[vote.BlockHash] = set
	}
	set[vote.ValidatorID] = vote

	if len(set) >= t.quorum {
		return vote.BlockHash, true, nil
	}
	return types.Hash{}, false, nil
}

// Winners returns every block hash whose vote set has reached quorum,
// which is normally at most one under a well-sized committee. Ties are
// broken by the caller per the round state machine's lexicographic rule.
func (t *Tally) Winners() []types.Hash {
	var out []types.Hash
	for hash, set := range t.votesByHash {
		if len(set) >= t.quorum {
			out = append(out, hash)
		}
	}
	return out
}

// Signatures returns the commit signatures backing hash's quorum: one
// CommitSignature per validator whose vote is in that hash's set.
func (t *Tally) Signatures(hash types.Hash) []types.CommitSignature {
	set := t.votesByHash[hash]
	out := make([]types.CommitSignature, 0, len(set))
	for _, v := range set {
		out = append(out, types.CommitSignature{ValidatorID: v.ValidatorID, Signature: v.Signature})
	}
	return out
}

// Equivocations returns every equivocation evidence recorded so far.
func (t *Tally) Equivocations() []Equivocation {
	return t.equivocations
}

// VoteCount returns how many validators have cast an accepted vote this
// round, regardless of which hash they voted for.
func (t *Tally) VoteCount() int {
	return len(t.voted)
}

func ed25519Verify(vote types.RankedVote, info types.ValidatorInfo) bool {
	return vote.VerifySignature(info.PublicKey[:])
}
