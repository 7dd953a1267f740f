// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import "fmt"

// HeadKey is where {height, block_hash} for the chain tip is stored.
func HeadKey(chainID string) string {
	return fmt.Sprintf("chain/%s/head", chainID)
}

// BlockKey is where a finalized block's bytes are stored, by height.
func BlockKey(chainID string, height uint64) string {
	return fmt.Sprintf("chain/%s/blocks/%d", chainID, height)
}

// VoteKey is where one validator's vote for (height, round) is stored,
// kept as equivocation evidence.
func VoteKey(chainID string, height, round uint64, validatorID string) string {
	return fmt.Sprintf("chain/%s/votes/%d/%d/%s", chainID, height, round, validatorID)
}

// ValidatorKeyKey is where a validator key's metadata is stored, keyed
// by its hex-encoded public key.
func ValidatorKeyKey(chainID, publicKeyHex string) string {
	return fmt.Sprintf("chain/%s/keys/validator/%s", chainID, publicKeyHex)
}

// ColorKey is where a wallet's color-marker cache entry is stored.
func ColorKey(chainID, address string) string {
	return fmt.Sprintf("chain/%s/colors/%s", chainID, address)
}

// BlocksPrefix returns the prefix covering every stored block for the
// chain, for range iteration.
func BlocksPrefix(chainID string) string {
	return fmt.Sprintf("chain/%s/blocks/", chainID)
}

// VotesPrefix returns the prefix covering every stored vote for a given
// (chain, height, round), for evidence collection.
func VotesPrefix(chainID string, height, round uint64) string {
	return fmt.Sprintf("chain/%s/votes/%d/%d/", chainID, height, round)
}
