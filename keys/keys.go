// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package keys implements the delegated key hierarchy: a master key that
// owns funds and is held client-side, and scope-limited validator keys
// deterministically derived from it so a validator can sign votes and
// color-marker attestations without ever holding (or being able to
// derive) spending authority.
package keys

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/sha3"
)

// ErrForbidden is returned when a validator key is asked to perform a
// master-only operation. No signature is ever produced in this case.
var ErrForbidden = errors.New("keys: operation not permitted for this key scope")

// derivationLabel is the domain separator mixed into the HMAC input for
// validator key derivation, per the v1 key-derivation scheme.
const derivationLabel = "SELF_VALIDATOR_KEY_v1"

// revocationLabel is the domain separator for Revocation signatures.
const revocationLabel = "REVOKE_VALIDATOR"

// MasterKey owns funds and is held client-side. It is the only key
// capable of sending transactions, revoking a validator key, or
// migrating a validator to a new one.
type MasterKey struct {
	priv      ed25519.PrivateKey
	createdAt uint64
}

// NewMasterKey generates a fresh master key, stamping it with the
// current wall-clock time as created_at.
func NewMasterKey() (*MasterKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("keys: generate master key: %w", err)
	}
	return &MasterKey{priv: priv, createdAt: uint64(time.Now().Unix())}, nil
}

// NewMasterKeyFromSeed reconstructs a master key from a 32-byte Ed25519
// seed and an explicit created_at, for deterministic tests and restores.
func NewMasterKeyFromSeed(seed []byte, createdAt uint64) *MasterKey {
	return &MasterKey{priv: ed25519.NewKeyFromSeed(seed), createdAt: createdAt}
}

// PublicKey returns the master public key.
func (m *MasterKey) PublicKey() ed25519.PublicKey {
	return m.priv.Public().(ed25519.PublicKey)
}

// CreatedAt returns the master key's creation timestamp, the same value
// mixed into every validator key derived from it.
func (m *MasterKey) CreatedAt() uint64 {
	return m.createdAt
}

// Address is the first 20 bytes of SHA3-256(public_key), hex-encoded
// and 0x-prefixed.
func (m *MasterKey) Address() string {
	return Address(m.PublicKey())
}

// Address derives the 0x-prefixed address for any Ed25519 public key.
func Address(pub ed25519.PublicKey) string {
	sum := sha3.Sum256(pub)
	return "0x" + hex.EncodeToString(sum[:20])
}

// SignTransaction signs msg with the master key. Only a MasterKey can
// send transactions.
func (m *MasterKey) SignTransaction(signingBytes []byte) []byte {
	return ed25519.Sign(m.priv, signingBytes)
}

// DeriveValidatorKey deterministically derives the nonce'th validator
// key for this master key: HMAC-SHA3-256(master_seed,
// "SELF_VALIDATOR_KEY_v1" || created_at_le8 || nonce_le8), taking the
// first 32 bytes of the MAC as the derived Ed25519 seed. Same (master,
// nonce) always yields the same validator key; different nonces yield
// independent keys.
func (m *MasterKey) DeriveValidatorKey(nonce uint64) *ValidatorKey {
	mac := hmac.New(sha3.New256, m.priv.Seed())
	mac.Write([]byte(derivationLabel))
	var le8 [8]byte
	binary.LittleEndian.PutUint64(le8[:], m.createdAt)
	mac.Write(le8[:])
	binary.LittleEndian.PutUint64(le8[:], nonce)
	mac.Write(le8[:])
	sum := mac.Sum(nil)

	priv := ed25519.NewKeyFromSeed(sum[:32])
	return &ValidatorKey{
		priv:          priv,
		pub:           priv.Public().(ed25519.PublicKey),
		masterAddress: m.Address(),
		nonce:         nonce,
		createdAt:     uint64(time.Now().Unix()),
	}
}

// RevokeValidatorKey produces a signed Revocation for vk, effective
// immediately once the revocation is applied by the caller (which must
// also call vk.Revoke() to zeroize local private material).
func (m *MasterKey) RevokeValidatorKey(vk *ValidatorKey, timestamp uint64) Revocation {
	r := Revocation{
		MasterAddress:     m.Address(),
		ValidatorPublicKey: append(ed25519.PublicKey(nil), vk.pub...),
		Timestamp:         timestamp,
	}
	sig := ed25519.Sign(m.priv, r.signingBytes())
	copy(r.Signature[:], sig)
	return r
}

// ValidatorKey is a scope-limited key derived from a master key. It can
// sign ranked/Tendermint-style votes and color-marker validations, but
// can never sign transactions, revoke itself, or migrate.
type ValidatorKey struct {
	priv          ed25519.PrivateKey
	pub           ed25519.PublicKey
	masterAddress string
	nonce         uint64
	createdAt     uint64
	revoked       bool
}

// PublicKey returns the validator's public key.
func (v *ValidatorKey) PublicKey() ed25519.PublicKey {
	return v.pub
}

// MasterAddress returns the owning master key's address.
func (v *ValidatorKey) MasterAddress() string {
	return v.masterAddress
}

// Nonce returns the derivation nonce this key was created with.
func (v *ValidatorKey) Nonce() uint64 {
	return v.nonce
}

// Revoked reports whether Revoke has been called on this key.
func (v *ValidatorKey) Revoked() bool {
	return v.revoked
}

// SignTransaction always fails: validator keys can never spend funds.
func (v *ValidatorKey) SignTransaction(signingBytes []byte) ([]byte, error) {
	return nil, fmt.Errorf("%w: cannot sign transactions with a validator key", ErrForbidden)
}

// SignVote signs arbitrary vote/ranked-vote signing bytes, provided the
// key has not been revoked.
func (v *ValidatorKey) SignVote(signingBytes []byte) ([]byte, error) {
	if v.revoked {
		return nil, fmt.Errorf("%w: validator key is revoked", ErrForbidden)
	}
	return ed25519.Sign(v.priv, signingBytes), nil
}

// SignColorValidation signs a color-marker transition attestation. Same
// scope as SignVote; kept as a distinct method so callers' intent is
// explicit and future scope splits (e.g. different revocation per use)
// stay easy.
func (v *ValidatorKey) SignColorValidation(signingBytes []byte) ([]byte, error) {
	if v.revoked {
		return nil, fmt.Errorf("%w: validator key is revoked", ErrForbidden)
	}
	return ed25519.Sign(v.priv, signingBytes), nil
}

// Revoke marks the key revoked and zeroizes the private material in
// place so it cannot be recovered from this struct's memory afterward.
func (v *ValidatorKey) Revoke() {
	v.revoked = true
	for i := range v.priv {
		v.priv[i] = 0
	}
}

// Revocation is a master-signed instruction invalidating a validator
// key. Valid iff Signature verifies against the master public key over
// "REVOKE_VALIDATOR" || validator_public_key || timestamp_le8.
type Revocation struct {
	MasterAddress      string
	ValidatorPublicKey ed25519.PublicKey
	Timestamp          uint64
	Signature          [64]byte
}

func (r *Revocation) signingBytes() []byte {
	buf := make([]byte, 0, len(revocationLabel)+len(r.ValidatorPublicKey)+8)
	buf = append(buf, revocationLabel...)
	buf = append(buf, r.ValidatorPublicKey...)
	var le8 [8]byte
	binary.LittleEndian.PutUint64(le8[:], r.Timestamp)
	buf = append(buf, le8[:]...)
	return buf
}

// Verify checks r.Signature against masterPub.
func (r *Revocation) Verify(masterPub ed25519.PublicKey) bool {
	return ed25519.Verify(masterPub, r.signingBytes(), r.Signature[:])
}
