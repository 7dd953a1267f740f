// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package types defines the canonical data model for the PoAI consensus
// core: transactions, blocks, proposals, votes and the round/validator
// shapes that every layer above the codec operates on.
package types

import (
	"encoding/hex"
	"fmt"
)

// Hash is a 32-byte content hash, used for block hashes, transaction ids
// and Merkle roots alike. The zero value means "nil" wherever the spec
// calls for an absent reference (e.g. a Prevote with no valid proposal).
type Hash [32]byte

// String renders the hash as lowercase hex, matching the wire encodings
// used across the pack for fixed-size digests.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the all-zero "nil" hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Less reports whether h sorts lexicographically before o. Used to break
// ties deterministically (selector tiebreaks, quorum hash collisions).
func (h Hash) Less(o Hash) bool {
	for i := range h {
		if h[i] != o[i] {
			return h[i] < o[i]
		}
	}
	return false
}

// HashFromHex parses a lowercase or uppercase hex string into a Hash.
func HashFromHex(s string) (Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("hash: decode hex: %w", err)
	}
	if len(b) != 32 {
		return Hash{}, fmt.Errorf("hash: expected 32 bytes, got %d", len(b))
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}
