// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mempool defines the pending-transaction view the selector and
// proposal validator read from, plus an in-memory reference
// implementation.
package mempool

import (
	"context"
	"sync"

	"github.com/selfchain/poai-consensus/types"
)

// Mempool is the pending-transaction source every block proposer and
// validator reads a snapshot from. Implementations must return a
// consistent snapshot for the duration of one Select/re-derivation
// call; they need not be consistent across calls.
type Mempool interface {
	// Snapshot returns every transaction currently eligible for
	// inclusion, in no particular order.
	Snapshot(ctx context.Context) ([]types.Transaction, error)

	// Remove drops the given transaction ids from the pool, called
	// once their block has committed.
	Remove(ctx context.Context, ids []types.Hash) error

	// Add admits a transaction into the pool. Callers are responsible
	// for having already verified its signature.
	Add(ctx context.Context, tx types.Transaction) error
}

// InMemory is a map-backed Mempool suitable for a single-process node
// or tests. It is safe for concurrent use.
type InMemory struct {
	mu  sync.RWMutex
	txs map[types.Hash]types.Transaction
}

// NewInMemory returns an empty InMemory mempool.
func NewInMemory() *InMemory {
	return &InMemory{txs: make(map[types.Hash]types.Transaction)}
}

func (m *InMemory) Snapshot(_ context.Context) ([]types.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Transaction, 0, len(m.txs))
	for _, tx := range m.txs {
		out = append(out, tx)
	}
	return out, nil
}

func (m *InMemory) Remove(_ context.Context, ids []types.Hash) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		delete(m.txs, id)
	}
	return nil
}

func (m *InMemory) Add(_ context.Context, tx types.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.txs[tx.ID()] = tx
	return nil
}

// Len reports the number of pending transactions.
func (m *InMemory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.txs)
}
