package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatorKeyScope(t *testing.T) {
	master, err := NewMasterKey()
	require.NoError(t, err)

	vk := master.DeriveValidatorKey(1)

	_, err = vk.SignTransaction([]byte("anything"))
	require.ErrorContains(t, err, "cannot sign transactions")

	sig, err := vk.SignVote([]byte("vote-bytes"))
	require.NoError(t, err)
	require.Len(t, sig, 64)

	rev := master.RevokeValidatorKey(vk, 1_700_000_000)
	require.True(t, rev.Verify(master.PublicKey()))
	vk.Revoke()

	_, err = vk.SignVote([]byte("vote-bytes"))
	require.Error(t, err)
	require.True(t, vk.Revoked())
}

func TestDeriveValidatorKeyIsDeterministic(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}
	master := NewMasterKeyFromSeed(seed, 1_600_000_000)

	vk1 := master.DeriveValidatorKey(42)
	vk2 := master.DeriveValidatorKey(42)
	require.Equal(t, vk1.PublicKey(), vk2.PublicKey())

	vk3 := master.DeriveValidatorKey(43)
	require.NotEqual(t, vk1.PublicKey(), vk3.PublicKey())
}

func TestRevocationRejectsWrongSigner(t *testing.T) {
	master, err := NewMasterKey()
	require.NoError(t, err)
	other, err := NewMasterKey()
	require.NoError(t, err)

	vk := master.DeriveValidatorKey(1)
	rev := master.RevokeValidatorKey(vk, 1)
	require.False(t, rev.Verify(other.PublicKey()))
}

func TestAddressFormat(t *testing.T) {
	master, err := NewMasterKey()
	require.NoError(t, err)
	addr := master.Address()
	require.Equal(t, 42, len(addr)) // "0x" + 40 hex chars (20 bytes)
	require.Equal(t, "0x", addr[:2])
}
