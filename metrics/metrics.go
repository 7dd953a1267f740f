// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics registers the prometheus collectors every consensus
// component reports through: round progress, vote tallies, selection
// and efficiency scoring.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	errFailedRoundsMetric     = errors.New("failed to register rounds metric")
	errFailedVotesMetric      = errors.New("failed to register votes metric")
	errFailedEfficiencyMetric = errors.New("failed to register efficiency metric")
	errFailedCommitDurMetric  = errors.New("failed to register commit_duration metric")
	errFailedEquivocations    = errors.New("failed to register equivocations metric")
	errFailedCommitteeSize    = errors.New("failed to register committee_size metric")
)

// Metrics bundles the collectors the round state machine's Driver (and
// the demo binary, for CommitteeSize) report through. All fields are
// safe for concurrent use, being prometheus collectors themselves.
type Metrics struct {
	RoundsStarted    prometheus.Counter
	RoundsCommitted  prometheus.Counter
	RoundsAdvanced   prometheus.Counter
	VotesReceived    *prometheus.CounterVec // labeled by step; the Driver records ranked votes as "ranked"
	VotesRejected    *prometheus.CounterVec // labeled by reason
	Equivocations    prometheus.Counter
	CommitDuration   prometheus.Histogram
	LastEfficiency   prometheus.Gauge
	CommitteeSize    prometheus.Gauge
}

// New builds and registers every collector against reg. Registration
// failures are wrapped so callers can tell which collector failed.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RoundsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "poai_rounds_started_total",
			Help: "Number of consensus rounds started.",
		}),
		RoundsCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "poai_rounds_committed_total",
			Help: "Number of consensus rounds that reached quorum and committed.",
		}),
		RoundsAdvanced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "poai_rounds_advanced_total",
			Help: "Number of round advances caused by timeout or lack of quorum.",
		}),
		VotesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "poai_votes_received_total",
			Help: "Number of votes accepted by the tallier, labeled by step.",
		}, []string{"step"}),
		VotesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "poai_votes_rejected_total",
			Help: "Number of votes rejected by the tallier, labeled by reason.",
		}, []string{"reason"}),
		Equivocations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "poai_equivocations_total",
			Help: "Number of conflicting votes detected from a single validator within one round.",
		}),
		CommitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "poai_commit_duration_seconds",
			Help:    "Wall-clock time from round start to commit.",
			Buckets: prometheus.DefBuckets,
		}),
		LastEfficiency: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "poai_last_efficiency_score",
			Help: "efficiency_score of the most recently committed block, scaled by 1e6.",
		}),
		CommitteeSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "poai_committee_size",
			Help: "Number of eligible validators in the active committee.",
		}),
	}

	if err := reg.Register(m.RoundsStarted); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedRoundsMetric, err)
	}
	if err := reg.Register(m.RoundsCommitted); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedRoundsMetric, err)
	}
	if err := reg.Register(m.RoundsAdvanced); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedRoundsMetric, err)
	}
	if err := reg.Register(m.VotesReceived); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedVotesMetric, err)
	}
	if err := reg.Register(m.VotesRejected); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedVotesMetric, err)
	}
	if err := reg.Register(m.Equivocations); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedEquivocations, err)
	}
	if err := reg.Register(m.CommitDuration); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedCommitDurMetric, err)
	}
	if err := reg.Register(m.LastEfficiency); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedEfficiencyMetric, err)
	}
	if err := reg.Register(m.CommitteeSize); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedCommitteeSize, err)
	}

	return m, nil
}

// NewNoOp returns a Metrics registered against a private registry, safe
// to use in tests that don't care about collisions with a shared
// default registry.
func NewNoOp() *Metrics {
	m, err := New(prometheus.NewRegistry())
	if err != nil {
		panic(err)
	}
	return m
}
