// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package rewards

// PrizePool accumulates an entire round's block_reward under a single
// pool id rather than paying it out immediately; an external process
// periodically draws from the pool. The core has no opinion on that
// process — it only ever sees the Distribute call below.
type PrizePool struct {
	PoolID string
}

func (p PrizePool) Distribute(round CompletedRound) Distribution {
	poolID := p.PoolID
	if poolID == "" {
		poolID = "prize-pool"
	}
	return Distribution{
		RoundID: round.RoundID,
		Amounts: map[string]uint64{poolID: round.BlockReward},
		Total:   round.BlockReward,
	}
}

// Staking splits a round's block_reward proportionally to validator
// stake weight, ignoring vote participation entirely. StakeWeights must
// be kept in sync with the committee externally.
type Staking struct {
	StakeWeights map[string]uint64
}

func (s Staking) Distribute(round CompletedRound) Distribution {
	amounts := make(map[string]uint64)
	var totalWeight uint64
	for _, w := range s.StakeWeights {
		totalWeight += w
	}
	if totalWeight == 0 {
		return Distribution{RoundID: round.RoundID, Amounts: amounts, Total: 0}
	}
	var distributed uint64
	for id, w := range s.StakeWeights {
		share := round.BlockReward * w / totalWeight
		amounts[id] = share
		distributed += share
	}
	return Distribution{RoundID: round.RoundID, Amounts: amounts, Total: distributed}
}

// Custom adapts an arbitrary function to Distributor, for deployments
// whose reward policy is opaque to this module entirely.
type Custom struct {
	Fn func(CompletedRound) Distribution
}

func (c Custom) Distribute(round CompletedRound) Distribution {
	return c.Fn(round)
}
