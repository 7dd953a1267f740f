package selector

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/selfchain/poai-consensus/types"
)

func makeTx(t *testing.T, priv ed25519.PrivateKey, pointPrice, timestamp uint64, dataLen int) types.Transaction {
	t.Helper()
	tx := types.Transaction{
		Nonce:      1,
		ChainID:    "self-chain-devnet",
		Sender:     "0xsender",
		PointPrice: pointPrice,
		Timestamp:  timestamp,
		Data:       make([]byte, dataLen),
	}
	tx.Sign(priv)
	return tx
}

func TestSelectEmptyMempool(t *testing.T) {
	r := Select(nil, Config{MaxTransactionsPerBlock: 1000, TargetBlockSize: 1000})
	require.Empty(t, r.All())
	require.Zero(t, r.EfficiencyScore)
}

func TestSelectBucketSizesAndDisjointness(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	mempool := make([]types.Transaction, 100)
	for i := 0; i < 100; i++ {
		mempool[i] = makeTx(t, priv, uint64(1000*(i+1)), 1_700_000_000, 100)
	}

	r := Select(mempool, Config{MaxTransactionsPerBlock: 1000, TargetBlockSize: 1_000_000})

	require.Len(t, r.High, 20)
	require.Len(t, r.Low, 20)
	require.Len(t, r.Avg, 50)
	require.Len(t, r.Old, 10)
	require.LessOrEqual(t, len(r.All()), 1000)

	seen := make(map[types.Hash]int)
	for _, tx := range r.All() {
		seen[tx.ID()]++
	}
	for id, count := range seen {
		require.Equal(t, 1, count, "transaction %s selected more than once", id)
	}

	// High bucket must be the 20 highest point_price transactions.
	for _, tx := range r.High {
		require.GreaterOrEqual(t, tx.PointPrice, uint64(81_000))
	}
	// Low bucket must be the 20 lowest point_price transactions.
	for _, tx := range r.Low {
		require.LessOrEqual(t, tx.PointPrice, uint64(20_000))
	}
}

func TestSelectRespectsMaxTransactionsPerBlock(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	mempool := make([]types.Transaction, 50)
	for i := 0; i < 50; i++ {
		mempool[i] = makeTx(t, priv, uint64(i+1), 1_700_000_000, 10)
	}

	r := Select(mempool, Config{MaxTransactionsPerBlock: 10, TargetBlockSize: 1000})
	require.LessOrEqual(t, len(r.All()), 10)
}

func TestSelectIsDeterministic(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	mempool := make([]types.Transaction, 37)
	for i := 0; i < 37; i++ {
		mempool[i] = makeTx(t, priv, uint64((i*37)%101+1), uint64(1_700_000_000+i), 42)
	}

	r1 := Select(mempool, Config{MaxTransactionsPerBlock: 1000, TargetBlockSize: 100000})
	r2 := Select(mempool, Config{MaxTransactionsPerBlock: 1000, TargetBlockSize: 100000})
	require.Equal(t, r1.EfficiencyScore, r2.EfficiencyScore)
	require.Equal(t, idsOf(r1.All()), idsOf(r2.All()))
}

func idsOf(txs []types.Transaction) []types.Hash {
	out := make([]types.Hash, len(txs))
	for i := range txs {
		out[i] = txs[i].ID()
	}
	return out
}

func TestEfficiencyPerfectFillAndStability(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	base := types.Transaction{
		Nonce:      1,
		ChainID:    "c",
		Sender:     "s",
		PointPrice: 500,
		Timestamp:  1,
	}
	overhead := base.PointData() // encoded size with empty Data

	txs := make([]types.Transaction, 20)
	for i := range txs {
		tx := base
		tx.Data = make([]byte, 1000-overhead)
		tx.Sign(priv)
		txs[i] = tx
	}

	score := Efficiency(txs, 20000)
	// Every transaction has identical price, so price_stability == 100
	// exactly; total_point_data should land exactly on target_block_size.
	require.Equal(t, uint64(100_000_000), score)
}

func TestHalvingRatio(t *testing.T) {
	require.InDelta(t, 0.001, HalvingRatio(0), 1e-12)
	require.InDelta(t, 0.001, HalvingRatio(29_999_999_999), 1e-12)
	require.InDelta(t, 0.0005, HalvingRatio(30_000_000_000), 1e-12)
	require.InDelta(t, 0.0005, HalvingRatio(59_999_999_999), 1e-12)
	require.InDelta(t, 0.00025, HalvingRatio(60_000_000_000), 1e-12)
	require.InDelta(t, 0.00025, HalvingRatio(1_000_000_000_000), 1e-12)
}
