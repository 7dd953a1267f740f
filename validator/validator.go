// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package validator implements the proposal validator: re-deriving the
// transaction selection a builder claims, verifying every signature
// involved, and comparing the result to the round's reference
// efficiency. Per-transaction signature verification is fanned out
// across a bounded worker pool and joined before Validate returns; the
// Merkle-root check and the nonce checks run inline. Validate is
// synchronous, so its caller waits until every check has finished.
package validator

import (
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/selfchain/poai-consensus/accountstate"
	"github.com/selfchain/poai-consensus/cerr"
	"github.com/selfchain/poai-consensus/colormarker"
	"github.com/selfchain/poai-consensus/log"
	"github.com/selfchain/poai-consensus/mempool"
	"github.com/selfchain/poai-consensus/selector"
	"github.com/selfchain/poai-consensus/types"
	"go.uber.org/zap"
)

// Config bounds re-derivation and caps the worker pool used for batch
// verification.
type Config struct {
	ChainID  string
	Selector selector.Config
	Workers  int // signature-verification concurrency; <= 0 means 1
}

// Result is the outcome of validating one proposal: whether it is
// acceptable, and how its re-derived efficiency compares to the round's
// reference.
type Result struct {
	VerifiedEfficiency uint64
	EfficiencyDelta    int64 // VerifiedEfficiency - referenceEfficiency; may be negative
}

// Validator re-derives and checks proposals against a mempool view and
// account state.
type Validator struct {
	cfg      Config
	mempool  mempool.Mempool
	accounts accountstate.AccountState
	colors   *colormarker.Cache
	log      log.Logger
}

// New builds a Validator. colors may be nil to skip color-marker
// bookkeeping entirely.
func New(cfg Config, mp mempool.Mempool, accounts accountstate.AccountState, colors *colormarker.Cache, logger log.Logger) *Validator {
	if logger == nil {
		logger = log.NewNoOp()
	}
	return &Validator{cfg: cfg, mempool: mp, accounts: accounts, colors: colors, log: logger}
}

// Validate runs every check named for a received proposal in order,
// stopping at the first failure. now is used only to timestamp
// color-marker cache updates.
func (v *Validator) Validate(ctx context.Context, proposal *types.BlockProposal, proposerPublicKey ed25519.PublicKey, height, round, referenceEfficiency, now uint64) (Result, error) {
	if err := proposal.ValidateShape(v.cfg.ChainID, height, round); err != nil {
		return Result{}, cerr.Wrap(cerr.KindBlockValidation, "proposal shape invalid", err)
	}

	if !proposal.VerifySignature(proposerPublicKey) {
		return Result{}, cerr.New(cerr.KindInvalidSignature, "proposal signature does not verify against proposer public key")
	}

	snapshot, err := v.mempool.Snapshot(ctx)
	if err != nil {
		return Result{}, cerr.Wrap(cerr.KindInternal, "mempool snapshot failed", err)
	}

	verified := selector.Select(snapshot, v.cfg.Selector)
	if verified.EfficiencyScore != proposal.Block.Header.EfficiencyScore {
		v.log.Debug("rejecting proposal",
			zap.String("reason", "efficiency_mismatch"),
			zap.Uint64("claimed", proposal.Block.Header.EfficiencyScore),
			zap.Uint64("verified", verified.EfficiencyScore),
		)
		return Result{}, cerr.New(cerr.KindEfficiencyMismatch, "re-derived efficiency does not match the proposal's claimed score")
	}

	if err := v.verifyTransactions(ctx, proposal.Block.Transactions); err != nil {
		return Result{}, err
	}

	if v.colors != nil {
		if err := v.checkColorTransitions(proposal.Block.Transactions, now); err != nil {
			return Result{}, err
		}
	}

	delta := int64(verified.EfficiencyScore) - int64(referenceEfficiency)
	return Result{VerifiedEfficiency: verified.EfficiencyScore, EfficiencyDelta: delta}, nil
}

// verifyTransactions checks every transaction's signature and nonce,
// fanning the signature checks out across Config.Workers goroutines and
// joining before returning.
func (v *Validator) verifyTransactions(ctx context.Context, txs []types.Transaction) error {
	workers := v.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(txs) {
		workers = len(txs)
	}
	if workers == 0 {
		return nil
	}

	type outcome struct {
		index int
		err   error
	}
	jobs := make(chan int)
	results := make(chan outcome, len(txs))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if !txs[i].VerifySignature() {
					results <- outcome{i, cerr.New(cerr.KindInvalidSignature, "transaction signature does not verify")}
					continue
				}
				results <- outcome{i, nil}
			}
		}()
	}

	go func() {
		for i := range txs {
			select {
			case jobs <- i:
			case <-ctx.Done():
			}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var firstErr error
	for res := range results {
		if res.err != nil && firstErr == nil {
			firstErr = res.err
		}
	}
	if firstErr != nil {
		return firstErr
	}
	if err := ctx.Err(); err != nil {
		return cerr.Wrap(cerr.KindInternal, "transaction verification cancelled", err)
	}

	for i := range txs {
		nonce, err := v.accounts.GetNonce(ctx, txs[i].Sender)
		if err != nil {
			return cerr.Wrap(cerr.KindInternal, "account state lookup failed", err)
		}
		if txs[i].Nonce != nonce {
			return cerr.New(cerr.KindBlockValidation, "transaction nonce does not match expected account nonce")
		}
	}
	return nil
}

// checkColorTransitions recomputes each sender's color-marker
// transition and advances the cache. A wallet with no cached entry is
// seeded with a random color rather than rejected, matching a first-seen
// sender.
func (v *Validator) checkColorTransitions(txs []types.Transaction, now uint64) error {
	for i := range txs {
		sender := txs[i].Sender
		if _, ok := v.colors.Get(sender); !ok {
			seed, err := colormarker.RandomColor()
			if err != nil {
				return cerr.Wrap(cerr.KindInternal, "seed wallet color", err)
			}
			v.colors.Seed(sender, seed, now)
		}
		hexTx := colormarker.HexTx(txs[i].CanonicalEncode())
		if _, err := v.colors.Apply(sender, hexTx, now); err != nil {
			return cerr.Wrap(cerr.KindBlockValidation, "color-marker transition failed", err)
		}
	}
	return nil
}
