// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package accountstate defines the account-facing state view the
// proposal validator consults for nonce and public-key checks, plus an
// in-memory reference implementation.
package accountstate

import (
	"context"
	"sync"

	"github.com/selfchain/poai-consensus/cerr"
	"github.com/selfchain/poai-consensus/types"
)

// AccountState is the account-facing view of chain state a validator
// checks a proposal's transactions against.
type AccountState interface {
	// GetNonce returns the next expected nonce for sender.
	GetNonce(ctx context.Context, sender string) (uint64, error)

	// PublicKeyOf returns the known public key for sender, if any has
	// been observed (e.g. from a prior transaction).
	PublicKeyOf(ctx context.Context, sender string) (pub [32]byte, known bool, err error)

	// Apply commits the effects of a finalized block's transactions:
	// nonce increments and any newly observed public keys.
	Apply(ctx context.Context, block types.Block) error
}

// InMemory is a map-backed AccountState suitable for a single-process
// node or tests.
type InMemory struct {
	mu     sync.RWMutex
	nonces map[string]uint64
	keys   map[string][32]byte
}

// NewInMemory returns an empty InMemory account state.
func NewInMemory() *InMemory {
	return &InMemory{
		nonces: make(map[string]uint64),
		keys:   make(map[string][32]byte),
	}
}

func (s *InMemory) GetNonce(_ context.Context, sender string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nonces[sender], nil
}

func (s *InMemory) PublicKeyOf(_ context.Context, sender string) ([32]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pub, ok := s.keys[sender]
	return pub, ok, nil
}

func (s *InMemory) Apply(_ context.Context, block types.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range block.Transactions {
		expected := s.nonces[tx.Sender]
		if tx.Nonce != expected {
			return cerr.New(cerr.KindBlockValidation, "transaction nonce does not match account state during apply")
		}
		s.nonces[tx.Sender] = expected + 1
		s.keys[tx.Sender] = tx.PublicKey
	}
	return nil
}
