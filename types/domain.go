package types

// Domain prefixes are raw ASCII bytes prepended to a canonical encoding
// before hashing or signing. They exist solely to prevent a signature or
// hash produced for one message kind from being replayed as another.
const (
	DomainTransaction   = "self-chain-transaction-v1"
	DomainBlockHeader   = "self-chain-block-header-v1"
	DomainProposal      = "self-chain-proposal-v1"
	DomainVotePrevote   = "self-chain-vote-prevote-v1"
	DomainVotePrecommit = "self-chain-vote-precommit-v1"
	DomainRankedVote    = "self-chain-ranked-vote-v1"
)
