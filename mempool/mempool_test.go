package mempool

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/selfchain/poai-consensus/types"
)

func TestInMemoryAddSnapshotRemove(t *testing.T) {
	ctx := context.Background()
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	m := NewInMemory()
	tx := types.Transaction{Nonce: 1, ChainID: "c", Sender: "s", PointPrice: 1, Timestamp: 1}
	tx.Sign(priv)

	require.NoError(t, m.Add(ctx, tx))
	require.Equal(t, 1, m.Len())

	snap, err := m.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap, 1)
	require.Equal(t, tx.ID(), snap[0].ID())

	require.NoError(t, m.Remove(ctx, []types.Hash{tx.ID()}))
	require.Equal(t, 0, m.Len())
}

func TestInMemorySnapshotEmpty(t *testing.T) {
	snap, err := NewInMemory().Snapshot(context.Background())
	require.NoError(t, err)
	require.Empty(t, snap)
}
