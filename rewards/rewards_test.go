package rewards

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultPoAISplitsNinetyEightOneOne(t *testing.T) {
	round := CompletedRound{
		RoundID:          "r1",
		WinningBuilderID: "builder",
		Voters: []VoterRecord{
			{ValidatorID: "v1", VotedForWinner: true},
			{ValidatorID: "v2", VotedForWinner: true},
			{ValidatorID: "v3", VotedForWinner: false},
		},
		ColorValidatorID: "color-1",
		BlockReward:      1000,
	}

	d := DefaultPoAI{TreasuryID: "treasury"}
	dist := d.Distribute(round)

	require.Equal(t, uint64(900), dist.Amounts["builder"])
	require.Equal(t, uint64(40), dist.Amounts["v1"])
	require.Equal(t, uint64(40), dist.Amounts["v2"])
	require.Zero(t, dist.Amounts["v3"])
	require.Equal(t, uint64(10), dist.Amounts["color-1"])
	require.Equal(t, uint64(10), dist.Amounts["treasury"])
	require.Equal(t, uint64(1000), dist.Total)
}

func TestDefaultPoAINoDustIsLost(t *testing.T) {
	round := CompletedRound{
		RoundID:          "r2",
		WinningBuilderID: "builder",
		Voters: []VoterRecord{
			{ValidatorID: "v1", VotedForWinner: true},
			{ValidatorID: "v2", VotedForWinner: true},
			{ValidatorID: "v3", VotedForWinner: true},
		},
		BlockReward: 997, // deliberately not evenly divisible anywhere
	}

	d := DefaultPoAI{}
	dist := d.Distribute(round)
	require.Equal(t, round.BlockReward, dist.Total)
}

func TestDefaultPoAIHandlesMissingColorValidator(t *testing.T) {
	round := CompletedRound{RoundID: "r3", WinningBuilderID: "builder", BlockReward: 500}
	d := DefaultPoAI{}
	dist := d.Distribute(round)
	require.Equal(t, round.BlockReward, dist.Total)
	require.Zero(t, dist.Amounts["color-1"])
}

func TestStakingSplitsProportionally(t *testing.T) {
	s := Staking{StakeWeights: map[string]uint64{"a": 3, "b": 1}}
	dist := s.Distribute(CompletedRound{RoundID: "r4", BlockReward: 400})
	require.Equal(t, uint64(300), dist.Amounts["a"])
	require.Equal(t, uint64(100), dist.Amounts["b"])
}

func TestPrizePoolAccumulatesWholeReward(t *testing.T) {
	p := PrizePool{PoolID: "pool"}
	dist := p.Distribute(CompletedRound{RoundID: "r5", BlockReward: 250})
	require.Equal(t, uint64(250), dist.Amounts["pool"])
}

func TestCustomDelegatesToFn(t *testing.T) {
	c := Custom{Fn: func(r CompletedRound) Distribution {
		return Distribution{RoundID: r.RoundID, Amounts: map[string]uint64{"x": 1}, Total: 1}
	}}
	dist := c.Distribute(CompletedRound{RoundID: "r6"})
	require.Equal(t, uint64(1), dist.Amounts["x"])
}
