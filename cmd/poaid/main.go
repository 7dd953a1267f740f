// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Command poaid runs a single-process demonstration node: it wires a
// mempool, the transaction selector, the proposal validator, the round
// state machine, the vote tallier and the reward distributor together
// and drives a handful of rounds against a synthetic committee, serving
// prometheus metrics alongside.
package main

import (
	"context"
	"crypto/ed25519"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/selfchain/poai-consensus/accountstate"
	"github.com/selfchain/poai-consensus/colormarker"
	"github.com/selfchain/poai-consensus/config"
	applog "github.com/selfchain/poai-consensus/log"
	"github.com/selfchain/poai-consensus/mempool"
	"github.com/selfchain/poai-consensus/metrics"
	"github.com/selfchain/poai-consensus/rewards"
	"github.com/selfchain/poai-consensus/roundfsm"
	"github.com/selfchain/poai-consensus/selector"
	"github.com/selfchain/poai-consensus/tally"
	"github.com/selfchain/poai-consensus/types"
	"github.com/selfchain/poai-consensus/validator"
)

var (
	chainID       = flag.String("chain-id", "self-chain-devnet", "chain id this node participates in")
	numValidators = flag.Int("validators", 4, "committee size for the demo")
	numRounds     = flag.Int("rounds", 5, "number of heights to run before exiting")
	txPerRound    = flag.Int("tx-per-round", 20, "synthetic transactions injected into the mempool each round")
	metricsAddr   = flag.String("metrics", ":9090", "address to serve /metrics on")
	blockReward   = flag.Uint64("block-reward", 1000, "block_reward handed to the reward distributor per committed round")
)

func main() {
	flag.Parse()
	logger := applog.NewNoOp()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "register metrics: %v\n", err)
		os.Exit(1)
	}
	m.CommitteeSize.Set(float64(*numValidators))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go serveMetrics(reg)

	if err := run(ctx, logger, m); err != nil {
		fmt.Fprintf(os.Stderr, "poaid: %v\n", err)
		os.Exit(1)
	}
}

func serveMetrics(reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: *metricsAddr, Handler: mux}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "metrics server: %v\n", err)
	}
}

type committeeMember struct {
	id   string
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

func run(ctx context.Context, logger applog.Logger, m *metrics.Metrics) error {
	cfg := config.Local(*chainID)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	members := make([]committeeMember, *numValidators)
	committee := make(tally.Committee, *numValidators)
	for i := range members {
		pub, priv, err := ed25519.GenerateKey(nil)
		if err != nil {
			return fmt.Errorf("generate validator key: %w", err)
		}
		id := fmt.Sprintf("validator-%d", i)
		members[i] = committeeMember{id: id, pub: pub, priv: priv}
		var pk [32]byte
		copy(pk[:], pub)
		committee[id] = types.ValidatorInfo{ValidatorID: id, PublicKey: pk, IsEligible: true}
	}

	mp := mempool.NewInMemory()
	accounts := accountstate.NewInMemory()
	colors := colormarker.NewCache()

	selCfg := selector.Config{MaxTransactionsPerBlock: cfg.MaxTxPerBlock, TargetBlockSize: cfg.MaxBlockSize}
	v := validator.New(validator.Config{ChainID: cfg.ChainID, Selector: selCfg, Workers: 4}, mp, accounts, colors, logger)

	distributor := rewards.DefaultPoAI{TreasuryID: "treasury"}

	d := roundfsm.New(cfg, v, m, logger, 1, committee)

	for round := 0; round < *numRounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil
		}

		seedTransactions(ctx, mp, members[round%len(members)].priv, round, *txPerRound)

		state := d.State()
		proposer := members[int(state.Height)%len(members)]

		snapshot, err := mp.Snapshot(ctx)
		if err != nil {
			return fmt.Errorf("mempool snapshot: %w", err)
		}
		sel := selector.Select(snapshot, selCfg)
		txs := sel.All()

		header := types.BlockHeader{
			Height:           state.Height,
			Round:            state.Round,
			ChainID:          cfg.ChainID,
			ProposerID:       proposer.id,
			Timestamp:        uint64(time.Now().Unix()),
			TransactionsRoot: types.ComputeTransactionsRoot(txs),
			EfficiencyScore:  sel.EfficiencyScore,
		}
		block := types.Block{Header: header, Transactions: txs}
		proposal := &types.BlockProposal{Height: state.Height, Round: state.Round, ProposerID: proposer.id, Block: block}
		proposal.Sign(proposer.priv)

		if _, err := d.Submit(ctx, roundfsm.InboundProposal{Proposal: proposal, ProposerPublicKey: proposer.pub}); err != nil {
			return fmt.Errorf("submit proposal: %w", err)
		}

		blockHash := block.Hash()
		var committed *roundfsm.BlockCommitted
		for _, mem := range members {
			rv := types.RankedVote{Height: state.Height, Round: state.Round, BlockHash: blockHash, EfficiencyScore: sel.EfficiencyScore, ValidatorID: mem.id}
			rv.Sign(mem.priv)
			out, err := d.Submit(ctx, roundfsm.InboundVote{Vote: rv})
			if err != nil {
				continue
			}
			for _, o := range out {
				if bc, ok := o.(roundfsm.BlockCommitted); ok {
					committed = &bc
				}
			}
		}

		if committed == nil {
			continue
		}

		if err := accounts.Apply(ctx, committed.Block); err != nil {
			return fmt.Errorf("apply committed block: %w", err)
		}
		ids := make([]types.Hash, len(committed.Block.Transactions))
		for i := range committed.Block.Transactions {
			ids[i] = committed.Block.Transactions[i].ID()
		}
		if err := mp.Remove(ctx, ids); err != nil {
			return fmt.Errorf("remove committed transactions: %w", err)
		}

		voters := make([]rewards.VoterRecord, len(members))
		for i, mem := range members {
			voters[i] = rewards.VoterRecord{ValidatorID: mem.id, VotedForWinner: true, VoteTimestamp: header.Timestamp}
		}
		dist := distributor.Distribute(rewards.CompletedRound{
			RoundID:          fmt.Sprintf("%d-%d", state.Height, state.Round),
			WinningBuilderID: proposer.id,
			WinningBlockHash: blockHash,
			Voters:           voters,
			ColorValidatorID: members[0].id,
			BlockReward:      *blockReward,
		})
		logger.Info("committed block",
			zap.Uint64("height", state.Height),
			zap.Uint64("round", state.Round),
			zap.String("proposer_id", proposer.id),
			zap.Uint64("efficiency_score", sel.EfficiencyScore),
			zap.Uint64("treasury_amount", dist.Amounts["treasury"]),
		)

		d.NextHeight(committee, time.Now())
	}

	return nil
}

func seedTransactions(ctx context.Context, mp *mempool.InMemory, priv ed25519.PrivateKey, round, n int) {
	for i := 0; i < n; i++ {
		tx := types.Transaction{
			Nonce:      0,
			ChainID:    *chainID,
			Sender:     fmt.Sprintf("sender-%d-%d", round, i),
			PointPrice: uint64(i + 1),
			Timestamp:  uint64(time.Now().Unix()),
			Data:       []byte("demo"),
		}
		tx.Sign(priv)
		_ = mp.Add(ctx, tx)
	}
}
