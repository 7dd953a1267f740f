package types

import (
	"crypto/ed25519"

	"github.com/selfchain/poai-consensus/codec"
)

// Step distinguishes the two Tendermint-style vote rounds kept for
// compatibility with legacy gossip peers; the PoAI protocol itself uses
// RankedVote (see below) as its primary vote shape.
type Step uint8

const (
	StepPrevote   Step = 1
	StepPrecommit Step = 2
)

func (s Step) domain() string {
	if s == StepPrecommit {
		return DomainVotePrecommit
	}
	return DomainVotePrevote
}

// Vote is a single yes/no ballot on a specific block hash. An all-zero
// BlockHash means "nil": no valid proposal was seen.
type Vote struct {
	Height      uint64
	Round       uint64
	Step        Step
	BlockHash   Hash
	ValidatorID string
	Signature   [64]byte
}

func (v *Vote) encodeSignable() []byte {
	w := codec.NewWriter(0)
	w.WriteUint64(v.Height)
	w.WriteUint64(v.Round)
	w.WriteUint8(uint8(v.Step))
	w.WriteFixed(v.BlockHash[:])
	w.WriteString(v.ValidatorID)
	return w.Bytes()
}

// SigningBytes returns the step-specific domain-prefixed signing bytes.
func (v *Vote) SigningBytes() []byte {
	w := codec.NewWriter(0)
	w.WriteDomain(v.Step.domain())
	w.WriteFixed(v.encodeSignable())
	return w.Bytes()
}

// Sign signs v in place.
func (v *Vote) Sign(priv ed25519.PrivateKey) {
	sig := ed25519.Sign(priv, v.SigningBytes())
	copy(v.Signature[:], sig)
}

// VerifySignature checks Signature against pub.
func (v *Vote) VerifySignature(pub ed25519.PublicKey) bool {
	return ed25519.Verify(pub, v.SigningBytes(), v.Signature[:])
}

// RankedVote is the PoAI competition model's primary ballot: a single
// vote naming the proposal the validator judged most efficient, rather
// than a yes/no on one specific proposal.
type RankedVote struct {
	Height          uint64
	Round           uint64
	BlockHash       Hash
	EfficiencyScore uint64
	ValidatorID     string
	Signature       [64]byte
}

func (v *RankedVote) encodeSignable() []byte {
	w := codec.NewWriter(0)
	w.WriteUint64(v.Height)
	w.WriteUint64(v.Round)
	w.WriteFixed(v.BlockHash[:])
	w.WriteUint64(v.EfficiencyScore)
	w.WriteString(v.ValidatorID)
	return w.Bytes()
}

// SigningBytes returns the domain-prefixed ranked-vote signing bytes.
func (v *RankedVote) SigningBytes() []byte {
	w := codec.NewWriter(0)
	w.WriteDomain(DomainRankedVote)
	w.WriteFixed(v.encodeSignable())
	return w.Bytes()
}

// Sign signs v in place.
func (v *RankedVote) Sign(priv ed25519.PrivateKey) {
	sig := ed25519.Sign(priv, v.SigningBytes())
	copy(v.Signature[:], sig)
}

// VerifySignature checks Signature against pub.
func (v *RankedVote) VerifySignature(pub ed25519.PublicKey) bool {
	return ed25519.Verify(pub, v.SigningBytes(), v.Signature[:])
}
