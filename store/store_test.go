package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInMemoryGetPut(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	_, found, err := s.Get(ctx, HeadKey("c"))
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Put(ctx, HeadKey("c"), []byte("head-bytes")))
	v, found, err := s.Get(ctx, HeadKey("c"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("head-bytes"), v)
}

func TestInMemoryIterateOrdersByKeyAndRespectsPrefix(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	require.NoError(t, s.Put(ctx, BlockKey("c", 3), []byte("b3")))
	require.NoError(t, s.Put(ctx, BlockKey("c", 1), []byte("b1")))
	require.NoError(t, s.Put(ctx, BlockKey("c", 2), []byte("b2")))
	require.NoError(t, s.Put(ctx, HeadKey("c"), []byte("head")))

	var seen []string
	err := s.Iterate(ctx, BlocksPrefix("c"), func(key string, value []byte) error {
		seen = append(seen, key)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{BlockKey("c", 1), BlockKey("c", 2), BlockKey("c", 3)}, seen)
}

func TestVotesPrefixScopesToHeightAndRound(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	require.NoError(t, s.Put(ctx, VoteKey("c", 1, 0, "v1"), []byte("vote1")))
	require.NoError(t, s.Put(ctx, VoteKey("c", 1, 1, "v1"), []byte("vote-other-round")))

	var seen []string
	err := s.Iterate(ctx, VotesPrefix("c", 1, 0), func(key string, value []byte) error {
		seen = append(seen, key)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{VoteKey("c", 1, 0, "v1")}, seen)
}
