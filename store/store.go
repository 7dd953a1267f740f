// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package store defines the persisted key-value namespace the
// consensus core reads and writes: chain head, blocks, votes kept as
// equivocation evidence, validator key metadata, and color-marker
// cache entries.
package store

import "context"

// Store is a flat key-value namespace. Implementations need not
// support transactions across keys; the core only ever writes one key
// per logical event (a new head, a new block, one vote, one key
// revocation, one color update).
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error

	// Iterate calls fn for every key with the given prefix, in
	// ascending key order, stopping early if fn returns an error.
	Iterate(ctx context.Context, prefix string, fn func(key string, value []byte) error) error
}
