package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default("self-chain-mainnet").Validate())
}

func TestLocalIsValid(t *testing.T) {
	require.NoError(t, Local("self-chain-devnet").Validate())
}

func TestValidateRejectsMissingChainID(t *testing.T) {
	p := Default("")
	require.ErrorIs(t, p.Validate(), ErrMissingChainID)
}

func TestValidateRejectsInvertedCommitteeBounds(t *testing.T) {
	p := Default("c")
	p.CommitteeSizeMin = 50
	p.CommitteeSizeMax = 10
	require.ErrorIs(t, p.Validate(), ErrCommitteeSizeMaxTooLow)
}

func TestValidateRejectsZeroPhaseTimeout(t *testing.T) {
	p := Default("c")
	p.TimeoutVoting = 0
	require.ErrorIs(t, p.Validate(), ErrPhaseTimeoutTooLow)
}

func TestRoundTimeoutSumsPhases(t *testing.T) {
	p := Default("c")
	require.Equal(t, p.TimeoutProposeWindow+p.TimeoutVoting+p.TimeoutFinalize, p.RoundTimeout())
}
