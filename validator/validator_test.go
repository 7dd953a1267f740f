package validator

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/selfchain/poai-consensus/accountstate"
	"github.com/selfchain/poai-consensus/colormarker"
	"github.com/selfchain/poai-consensus/mempool"
	"github.com/selfchain/poai-consensus/selector"
	"github.com/selfchain/poai-consensus/types"
)

const chainID = "self-chain-devnet"

func buildProposal(t *testing.T, txPriv ed25519.PrivateKey, proposerPriv ed25519.PrivateKey, height, round uint64, nTxs int) (*types.BlockProposal, []types.Transaction) {
	t.Helper()

	txs := make([]types.Transaction, nTxs)
	for i := range txs {
		tx := types.Transaction{
			Nonce:      0,
			ChainID:    chainID,
			Sender:     "alice",
			PointPrice: uint64(i + 1),
			Timestamp:  1_700_000_000,
		}
		tx.Sign(txPriv)
		txs[i] = tx
	}

	score := selector.Efficiency(txs, 10000)
	header := types.BlockHeader{
		Height:           height,
		Round:            round,
		ChainID:          chainID,
		ProposerID:       "proposer-1",
		TransactionsRoot: types.ComputeTransactionsRoot(txs),
		EfficiencyScore:  score,
	}
	block := types.Block{Header: header, Transactions: txs}
	p := &types.BlockProposal{Height: height, Round: round, ProposerID: "proposer-1", Block: block}
	p.Sign(proposerPriv)
	return p, txs
}

func TestValidateAcceptsWellFormedProposal(t *testing.T) {
	ctx := context.Background()
	txPub, txPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	proposerPub, proposerPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	proposal, txs := buildProposal(t, txPriv, proposerPriv, 1, 0, 1)

	mp := mempool.NewInMemory()
	for _, tx := range txs {
		require.NoError(t, mp.Add(ctx, tx))
	}
	accounts := accountstate.NewInMemory()
	_ = txPub

	v := New(Config{ChainID: chainID, Selector: selector.Config{MaxTransactionsPerBlock: 1000, TargetBlockSize: 10000}, Workers: 4},
		mp, accounts, colormarker.NewCache(), nil)

	res, err := v.Validate(ctx, proposal, proposerPub, 1, 0, 0, 1_700_000_000)
	require.NoError(t, err)
	require.Equal(t, proposal.Block.Header.EfficiencyScore, res.VerifiedEfficiency)
}

func TestValidateRejectsBadProposerSignature(t *testing.T) {
	ctx := context.Background()
	_, txPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	_, proposerPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	wrongPub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	proposal, txs := buildProposal(t, txPriv, proposerPriv, 1, 0, 1)

	mp := mempool.NewInMemory()
	for _, tx := range txs {
		require.NoError(t, mp.Add(ctx, tx))
	}

	v := New(Config{ChainID: chainID, Selector: selector.Config{MaxTransactionsPerBlock: 1000, TargetBlockSize: 10000}},
		mp, accountstate.NewInMemory(), colormarker.NewCache(), nil)

	_, err = v.Validate(ctx, proposal, wrongPub, 1, 0, 0, 1)
	require.Error(t, err)
}

func TestValidateRejectsEfficiencyMismatch(t *testing.T) {
	ctx := context.Background()
	_, txPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	proposerPub, proposerPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	proposal, txs := buildProposal(t, txPriv, proposerPriv, 1, 0, 1)
	proposal.Block.Header.EfficiencyScore += 1 // tamper after signing is not possible; tamper before re-sign
	proposal.Sign(proposerPriv)

	mp := mempool.NewInMemory()
	for _, tx := range txs {
		require.NoError(t, mp.Add(ctx, tx))
	}

	v := New(Config{ChainID: chainID, Selector: selector.Config{MaxTransactionsPerBlock: 1000, TargetBlockSize: 10000}},
		mp, accountstate.NewInMemory(), colormarker.NewCache(), nil)

	_, err = v.Validate(ctx, proposal, proposerPub, 1, 0, 0, 1)
	require.Error(t, err)
}

func TestValidateComputesEfficiencyDelta(t *testing.T) {
	ctx := context.Background()
	_, txPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	proposerPub, proposerPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	proposal, txs := buildProposal(t, txPriv, proposerPriv, 1, 0, 1)

	mp := mempool.NewInMemory()
	for _, tx := range txs {
		require.NoError(t, mp.Add(ctx, tx))
	}

	v := New(Config{ChainID: chainID, Selector: selector.Config{MaxTransactionsPerBlock: 1000, TargetBlockSize: 10000}},
		mp, accountstate.NewInMemory(), colormarker.NewCache(), nil)

	res, err := v.Validate(ctx, proposal, proposerPub, 1, 0, res0(t), 1)
	require.NoError(t, err)
	require.Equal(t, int64(res.VerifiedEfficiency), res.EfficiencyDelta)
}

func res0(t *testing.T) uint64 {
	t.Helper()
	return 0
}
