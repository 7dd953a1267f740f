package accountstate

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/selfchain/poai-consensus/types"
)

func TestApplyAdvancesNonceAndRecordsKey(t *testing.T) {
	ctx := context.Background()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	s := NewInMemory()
	nonce, err := s.GetNonce(ctx, "alice")
	require.NoError(t, err)
	require.Zero(t, nonce)

	tx := types.Transaction{Nonce: 0, ChainID: "c", Sender: "alice", PointPrice: 1, Timestamp: 1}
	tx.Sign(priv)

	block := types.Block{Transactions: []types.Transaction{tx}}
	require.NoError(t, s.Apply(ctx, block))

	nonce, err = s.GetNonce(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, uint64(1), nonce)

	gotPub, known, err := s.PublicKeyOf(ctx, "alice")
	require.NoError(t, err)
	require.True(t, known)
	require.Equal(t, [32]byte(pub), gotPub)
}

func TestApplyRejectsWrongNonce(t *testing.T) {
	ctx := context.Background()
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	s := NewInMemory()
	tx := types.Transaction{Nonce: 5, ChainID: "c", Sender: "alice", PointPrice: 1, Timestamp: 1}
	tx.Sign(priv)

	err = s.Apply(ctx, types.Block{Transactions: []types.Transaction{tx}})
	require.Error(t, err)
}
