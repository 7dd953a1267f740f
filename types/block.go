package types

import (
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"

	"github.com/selfchain/poai-consensus/codec"
)

// CommitSignature is one committee member's ranked-vote signature over
// the winning block hash, attached to the header post-finalization as
// proof of quorum.
type CommitSignature struct {
	ValidatorID string
	Signature   [64]byte
}

// BlockHeader's field order is normative for hashing: height,
// previous_hash, timestamp, state_root, transactions_root, proposer_id,
// round, chain_id, efficiency_score, point_price, commit_signatures.
type BlockHeader struct {
	Height           uint64
	PreviousHash     Hash
	Timestamp        uint64
	StateRoot        Hash
	TransactionsRoot Hash
	ProposerID       string
	Round            uint64
	ChainID          string
	EfficiencyScore  uint64 // fixed-point, scaled by 1e6 (see selector package)
	PointPrice       uint64
	CommitSignatures []CommitSignature
}

func (h *BlockHeader) encodeWithoutCommitSignatures() []byte {
	w := codec.NewWriter(160)
	w.WriteUint64(h.Height)
	w.WriteFixed(h.PreviousHash[:])
	w.WriteUint64(h.Timestamp)
	w.WriteFixed(h.StateRoot[:])
	w.WriteFixed(h.TransactionsRoot[:])
	w.WriteString(h.ProposerID)
	w.WriteUint64(h.Round)
	w.WriteString(h.ChainID)
	w.WriteUint64(h.EfficiencyScore)
	w.WriteUint64(h.PointPrice)
	return w.Bytes()
}

// CanonicalEncode returns the full header encoding, including
// commit_signatures. Commit signatures are attached post-finalization
// and never alter Hash().
func (h *BlockHeader) CanonicalEncode() []byte {
	w := codec.NewWriter(0)
	w.WriteFixed(h.encodeWithoutCommitSignatures())
	w.WriteSeq(len(h.CommitSignatures), func(w *codec.Writer, i int) {
		cs := h.CommitSignatures[i]
		w.WriteString(cs.ValidatorID)
		w.WriteFixed(cs.Signature[:])
	})
	return w.Bytes()
}

// Hash computes the block hash: SHA-256 of the domain-prefixed
// canonical encoding of the header with commit_signatures excluded.
func (h *BlockHeader) Hash() Hash {
	w := codec.NewWriter(0)
	w.WriteDomain(DomainBlockHeader)
	w.WriteFixed(h.encodeWithoutCommitSignatures())
	return Hash(sha256.Sum256(w.Bytes()))
}

// Block is a header plus its ordered transaction list.
type Block struct {
	Header       BlockHeader
	Transactions []Transaction
}

// Hash delegates to the header; the transaction list only enters the
// hash indirectly, through TransactionsRoot.
func (b *Block) Hash() Hash {
	return b.Header.Hash()
}

// ComputeTransactionsRoot builds the Merkle root over the ordered
// transaction ids. A single-leaf tree's root is that leaf's hash; an
// empty block's root is the all-zero hash.
func ComputeTransactionsRoot(txs []Transaction) Hash {
	if len(txs) == 0 {
		return Hash{}
	}
	leaves := make([]Hash, len(txs))
	for i := range txs {
		leaves[i] = txs[i].ID()
	}
	return merkleRoot(leaves)
}

func merkleRoot(level []Hash) Hash {
	if len(level) == 1 {
		return level[0]
	}
	next := make([]Hash, 0, (len(level)+1)/2)
	for i := 0; i < len(level); i += 2 {
		left := level[i]
		var right Hash
		if i+1 < len(level) {
			right = level[i+1]
		} else {
			right = left // duplicate the last node on an odd-sized level
		}
		var buf [64]byte
		copy(buf[:32], left[:])
		copy(buf[32:], right[:])
		next = append(next, Hash(sha256.Sum256(buf[:])))
	}
	return merkleRoot(next)
}

// BlockProposal is a builder's signed candidate for a given
// (height, round).
type BlockProposal struct {
	Height     uint64
	Round      uint64
	ProposerID string
	Block      Block
	Signature  [64]byte
}

func (p *BlockProposal) encodeSignable() []byte {
	w := codec.NewWriter(0)
	w.WriteUint64(p.Height)
	w.WriteUint64(p.Round)
	w.WriteString(p.ProposerID)
	w.WriteFixed(p.Block.Header.CanonicalEncode())
	w.WriteSeq(len(p.Block.Transactions), func(w *codec.Writer, i int) {
		w.WriteFixed(p.Block.Transactions[i].CanonicalEncode())
	})
	return w.Bytes()
}

// SigningBytes returns the domain-prefixed bytes the proposer's
// signature is computed over.
func (p *BlockProposal) SigningBytes() []byte {
	w := codec.NewWriter(0)
	w.WriteDomain(DomainProposal)
	w.WriteFixed(p.encodeSignable())
	return w.Bytes()
}

// Sign signs the proposal with priv.
func (p *BlockProposal) Sign(priv ed25519.PrivateKey) {
	sig := ed25519.Sign(priv, p.SigningBytes())
	copy(p.Signature[:], sig)
}

// VerifySignature checks Signature against proposerPublicKey.
func (p *BlockProposal) VerifySignature(proposerPublicKey ed25519.PublicKey) bool {
	return ed25519.Verify(proposerPublicKey, p.SigningBytes(), p.Signature[:])
}

// ValidateShape performs the structural (non-cryptographic) checks that
// must hold before a proposal is even worth re-deriving: matching
// height/round/chain_id and a transactions_root consistent with the
// enclosed transaction list.
func (p *BlockProposal) ValidateShape(expectedChainID string, expectedHeight, expectedRound uint64) error {
	if p.Block.Header.ChainID != expectedChainID {
		return fmt.Errorf("proposal: chain_id mismatch: got %q want %q", p.Block.Header.ChainID, expectedChainID)
	}
	if p.Height != expectedHeight || p.Block.Header.Height != expectedHeight {
		return fmt.Errorf("proposal: height mismatch: got %d want %d", p.Height, expectedHeight)
	}
	if p.Round != expectedRound || p.Block.Header.Round != expectedRound {
		return fmt.Errorf("proposal: round mismatch: got %d want %d", p.Round, expectedRound)
	}
	root := ComputeTransactionsRoot(p.Block.Transactions)
	if root != p.Block.Header.TransactionsRoot {
		return fmt.Errorf("proposal: transactions_root mismatch: got %s want %s", p.Block.Header.TransactionsRoot, root)
	}
	return nil
}
