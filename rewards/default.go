// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package rewards

// DefaultPoAI is the core's default distributor: 90% to the winning
// builder, 8% split evenly across validators who voted for the winning
// block, 1% to the round's color validator, 1% to TreasuryID. Every
// share is floored; whatever the floors leave on the table accrues to
// the treasury rather than being discarded.
type DefaultPoAI struct {
	TreasuryID string
}

func (d DefaultPoAI) Distribute(round CompletedRound) Distribution {
	amounts := make(map[string]uint64)
	reward := round.BlockReward

	builderShare := reward * 90 / 100
	voterPoolShare := reward * 8 / 100
	colorShare := reward * 1 / 100

	amounts[round.WinningBuilderID] += builderShare

	var winners []string
	for _, v := range round.Voters {
		if v.VotedForWinner {
			winners = append(winners, v.ValidatorID)
		}
	}

	var voterPoolDistributed uint64
	if len(winners) > 0 {
		perVoter := voterPoolShare / uint64(len(winners))
		for _, id := range winners {
			amounts[id] += perVoter
		}
		voterPoolDistributed = perVoter * uint64(len(winners))
	}

	var colorDistributed uint64
	if round.ColorValidatorID != "" {
		amounts[round.ColorValidatorID] += colorShare
		colorDistributed = colorShare
	}

	treasuryID := d.TreasuryID
	if treasuryID == "" {
		treasuryID = "treasury"
	}
	// Dust is everything a floor-rounded share left unassigned: the
	// 90/8/1/1 split's own rounding remainder (which includes the
	// nominal 1% treasury share), an uneven voter-pool split, and an
	// unpaid color share when no color validator is named.
	distributed := builderShare + voterPoolDistributed + colorDistributed
	amounts[treasuryID] += reward - distributed

	return Distribution{RoundID: round.RoundID, Amounts: amounts, Total: sum(amounts)}
}

func sum(amounts map[string]uint64) uint64 {
	var total uint64
	for _, v := range amounts {
		total += v
	}
	return total
}
