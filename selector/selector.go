// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package selector implements the deterministic 20/20/50/10
// transaction-selection algorithm and the efficiency score derived from
// its output. Selection is a pure function of the mempool snapshot and
// configuration: every validator that re-derives it from the same
// mempool view produces byte-identical buckets and therefore an
// identical efficiency_score.
package selector

import (
	"math"
	"sort"

	"github.com/selfchain/poai-consensus/types"
)

// ScaleFactor is the fixed-point scale efficiency_score is stored at:
// a floating-point score in [0, 100] is multiplied by ScaleFactor and
// rounded to the nearest integer before being carried as a uint64.
const ScaleFactor = 1_000_000

// Config bounds and sizes a selection.
type Config struct {
	MaxTransactionsPerBlock int
	TargetBlockSize         int // bytes
}

// Result is one deterministic selection: four disjoint buckets in
// normative order, plus the efficiency score they yield.
type Result struct {
	High, Low, Avg, Old []types.Transaction
	EfficiencyScore     uint64
}

// All returns the buckets concatenated in selection order (high, low,
// avg, old) — the order a candidate block's transaction list is built
// in.
func (r Result) All() []types.Transaction {
	out := make([]types.Transaction, 0, len(r.High)+len(r.Low)+len(r.Avg)+len(r.Old))
	out = append(out, r.High...)
	out = append(out, r.Low...)
	out = append(out, r.Avg...)
	out = append(out, r.Old...)
	return out
}

// Select deterministically partitions mempool into the 20/20/50/10
// buckets and scores the resulting block. An empty mempool yields an
// empty Result with EfficiencyScore 0.
func Select(mempool []types.Transaction, cfg Config) Result {
	if len(mempool) == 0 {
		return Result{}
	}

	avgPointPrice := meanPointPrice(mempool)

	n := len(mempool)
	if cfg.MaxTransactionsPerBlock > 0 && cfg.MaxTransactionsPerBlock < n {
		n = cfg.MaxTransactionsPerBlock
	}

	high := ceilFrac(n, 0.20)
	low := ceilFrac(n, 0.20)
	avg := ceilFrac(n, 0.50)
	old := ceilFrac(n, 0.10)

	// Ceiling rounding can make the four targets sum past n; trim the
	// later buckets so the selection never exceeds n transactions.
	low = min(low, n-high)
	avg = min(avg, n-high-low)
	old = min(old, n-high-low-avg)

	chosen := make(map[types.Hash]struct{}, n)

	highBucket := takeByRank(mempool, chosen, high, byPointPriceDesc)
	lowBucket := takeByRank(mempool, chosen, low, byPointPriceAsc)
	avgBucket := takeByRank(mempool, chosen, avg, byDistanceFromAverage(avgPointPrice))
	oldBucket := takeByRank(mempool, chosen, old, byTimestampAsc)

	all := make([]types.Transaction, 0, len(highBucket)+len(lowBucket)+len(avgBucket)+len(oldBucket))
	all = append(all, highBucket...)
	all = append(all, lowBucket...)
	all = append(all, avgBucket...)
	all = append(all, oldBucket...)

	score := Efficiency(all, cfg.TargetBlockSize)

	return Result{
		High:            highBucket,
		Low:             lowBucket,
		Avg:             avgBucket,
		Old:             oldBucket,
		EfficiencyScore: score,
	}
}

// ceilFrac returns ceil(n * frac), the target size for one bucket.
func ceilFrac(n int, frac float64) int {
	return int(math.Ceil(float64(n) * frac))
}

func meanPointPrice(txs []types.Transaction) float64 {
	if len(txs) == 0 {
		return 0
	}
	var sum uint64
	for i := range txs {
		sum += txs[i].PointPrice
	}
	return float64(sum) / float64(len(txs))
}

// rankLess reports whether a sorts strictly before b under a bucket's
// selection order; every comparator ends in a lexicographic-id tiebreak
// so the final boundary of a bucket is deterministic even when every
// other key is tied.
type rankLess func(a, b types.Transaction) bool

func byIDTiebreak(a, b types.Transaction) bool {
	ah, bh := a.ID(), b.ID()
	return ah.Less(bh)
}

func byPointPriceDesc(a, b types.Transaction) bool {
	if a.PointPrice != b.PointPrice {
		return a.PointPrice > b.PointPrice
	}
	return byIDTiebreak(a, b)
}

func byPointPriceAsc(a, b types.Transaction) bool {
	if a.PointPrice != b.PointPrice {
		return a.PointPrice < b.PointPrice
	}
	return byIDTiebreak(a, b)
}

func byTimestampAsc(a, b types.Transaction) bool {
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}
	return byIDTiebreak(a, b)
}

func byDistanceFromAverage(avgPointPrice float64) rankLess {
	dist := func(tx types.Transaction) float64 {
		return math.Abs(float64(tx.PointPrice) - avgPointPrice)
	}
	return func(a, b types.Transaction) bool {
		da, db := dist(a), dist(b)
		if da != db {
			return da < db
		}
		if a.PointPrice != b.PointPrice {
			return a.PointPrice < b.PointPrice
		}
		return byIDTiebreak(a, b)
	}
}

// takeByRank sorts a copy of mempool by less, skips transactions already
// in chosen, takes the first count not-yet-chosen entries, and marks
// them chosen.
func takeByRank(mempool []types.Transaction, chosen map[types.Hash]struct{}, count int, less rankLess) []types.Transaction {
	if count <= 0 {
		return nil
	}
	sorted := make([]types.Transaction, len(mempool))
	copy(sorted, mempool)
	sort.Slice(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	out := make([]types.Transaction, 0, count)
	for i := range sorted {
		if len(out) == count {
			break
		}
		id := sorted[i].ID()
		if _, taken := chosen[id]; taken {
			continue
		}
		chosen[id] = struct{}{}
		out = append(out, sorted[i])
	}
	return out
}

// Efficiency scores a candidate block's transaction list: 40% weight on
// how full the block is relative to targetBlockSize, 60% weight on how
// close the mean point price is to the median point price. The
// result is scaled by ScaleFactor and rounded to the nearest integer so
// every implementation produces the identical uint64.
func Efficiency(txs []types.Transaction, targetBlockSize int) uint64 {
	n := len(txs)
	if n == 0 {
		return 0
	}

	var totalPointData int
	var totalPointPrice uint64
	prices := make([]float64, n)
	for i := range txs {
		totalPointData += txs[i].PointData()
		totalPointPrice += txs[i].PointPrice
		prices[i] = float64(txs[i].PointPrice)
	}

	fillPercentage := 1.0
	if targetBlockSize > 0 {
		fillPercentage = math.Min(1.0, float64(totalPointData)/float64(targetBlockSize))
	}

	avg := float64(totalPointPrice) / float64(n)
	median := medianOf(prices)

	denom := math.Max(avg, 1.0)
	priceStability := 100.0 * (1.0 - math.Min(1.0, math.Abs(avg-median)/denom))

	score := 0.40*100.0*fillPercentage + 0.60*priceStability
	return uint64(math.Round(score * ScaleFactor))
}

func medianOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// HalvingRatio returns the point-to-coin conversion ratio at the given
// cumulative points spent: 0.001 halved every 30e9 points, capped at two
// halvings.
func HalvingRatio(cumulativePointsSpent uint64) float64 {
	const step = 30_000_000_000
	halvings := 0
	switch {
	case cumulativePointsSpent < step:
		halvings = 0
	case cumulativePointsSpent < 2*step:
		halvings = 1
	default:
		halvings = 2
	}
	return 0.001 / math.Pow(2, float64(halvings))
}
